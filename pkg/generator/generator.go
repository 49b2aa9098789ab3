// Package generator defines the key-system agnostic pieces of the vanity search:
// address patterns, candidate keypairs and the Scheme contract that lets the
// search engine run against Solana, Tron or Bitcoin without knowing which.
package generator

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Network represents the blockchain network for address generation.
type Network int

const (
	Solana  Network = iota // Solana (Ed25519, Base58)
	Tron                   // Tron (secp256k1, Keccak-256, Base58Check)
	Bitcoin                // Bitcoin legacy P2PKH (secp256k1, Hash160, Base58Check)
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Solana:
		return "Solana"
	case Tron:
		return "Tron"
	case Bitcoin:
		return "Bitcoin"
	default:
		return "Unknown"
	}
}

// ParseNetwork maps a case-insensitive network name to a Network.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "solana", "sol":
		return Solana, nil
	case "tron", "trx":
		return Tron, nil
	case "bitcoin", "btc":
		return Bitcoin, nil
	default:
		return 0, fmt.Errorf("unknown network %q", name)
	}
}

var (
	// ErrNoWorkers is returned when a search is requested with fewer than one worker.
	ErrNoWorkers = errors.New("worker count must be at least 1")
	// ErrCancelled is returned when a search stops before any worker found a match.
	ErrCancelled = errors.New("search cancelled before a match was found")
	// ErrKeyGeneration is returned when workers stop because their key source keeps failing.
	ErrKeyGeneration = errors.New("key generation failed")
	// ErrEmptyPattern is returned when neither a prefix nor a suffix was given.
	ErrEmptyPattern = errors.New("must specify a prefix or a suffix")
)

// Keypair is a public/secret key pair in the scheme's raw byte encoding.
type Keypair struct {
	PublicKey []byte
	SecretKey []byte
}

// Candidate is a freshly generated keypair and the address derived from it.
type Candidate struct {
	Keypair Keypair
	Address string
}

// SearchResult is the outcome of a successful search.
type SearchResult struct {
	Network  Network
	Keypair  Keypair
	Address  string
	Elapsed  time.Duration // wall-clock time from start until every worker stopped
	Attempts uint64        // keypairs generated across all workers
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of addresses generated
	HashRate    float64 // Addresses per second since start
	ElapsedSecs float64 // Time elapsed since start
}

// Scheme is the key system a search runs against.
// Implementations must be safe for concurrent use; all per-call randomness
// comes from the reader handed to GenerateKey.
type Scheme interface {
	// Network identifies the key system.
	Network() Network

	// GenerateKey produces one fresh keypair, reading entropy from rand.
	GenerateKey(rand io.Reader) (Keypair, error)

	// Address encodes a public key as the network's display address.
	Address(publicKey []byte) string

	// EncodeSecret renders the secret key in the network's portable import format.
	EncodeSecret(kp Keypair) string
}

// PatternValidator is implemented by schemes whose addresses carry a fixed
// leading character, so impossible prefixes can be rejected up front.
type PatternValidator interface {
	ValidatePattern(spec MatchSpec) error
}

// Generate produces one candidate: a fresh keypair plus its address.
func Generate(s Scheme, rand io.Reader) (Candidate, error) {
	kp, err := s.GenerateKey(rand)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Keypair: kp, Address: s.Address(kp.PublicKey)}, nil
}
