// Package bitcoin implements legacy P2PKH Bitcoin addresses, the only Bitcoin
// format that is plain Base58Check.
package bitcoin

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

var errZeroKey = errors.New("bitcoin: generated zero private key")

// Scheme generates P2PKH keypairs for a given chain.
type Scheme struct {
	params *chaincfg.Params
}

// New returns the mainnet P2PKH scheme (addresses start with '1').
func New() Scheme {
	return Scheme{params: &chaincfg.MainNetParams}
}

// NewWithParams returns a P2PKH scheme for another chain, e.g. testnet.
func NewWithParams(params *chaincfg.Params) Scheme {
	return Scheme{params: params}
}

func (Scheme) Network() generator.Network { return generator.Bitcoin }

// GenerateKey reads 32 bytes of rand as the private scalar.
// PublicKey is the 33-byte compressed form.
func (Scheme) GenerateKey(rand io.Reader) (generator.Keypair, error) {
	var privKeyBytes [32]byte
	if _, err := io.ReadFull(rand, privKeyBytes[:]); err != nil {
		return generator.Keypair{}, err
	}
	privKey, pubKey := btcec.PrivKeyFromBytes(privKeyBytes[:])
	if privKey.Key.IsZero() {
		return generator.Keypair{}, errZeroKey
	}
	return generator.Keypair{
		PublicKey: pubKey.SerializeCompressed(),
		SecretKey: privKey.Serialize(),
	}, nil
}

// Address returns Base58Check(version || Hash160(pubkey)).
func (s Scheme) Address(publicKey []byte) string {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(publicKey), s.params)
	if err != nil {
		return ""
	}
	return addr.EncodeAddress()
}

// EncodeSecret returns the compressed-key WIF (K... or L... on mainnet).
func (s Scheme) EncodeSecret(kp generator.Keypair) string {
	privKey, _ := btcec.PrivKeyFromBytes(kp.SecretKey)
	wif, err := btcutil.NewWIF(privKey, s.params, true)
	if err != nil {
		return ""
	}
	return wif.String()
}

// ValidatePattern rejects prefixes that cannot occur for this chain's P2PKH version byte.
func (s Scheme) ValidatePattern(spec generator.MatchSpec) error {
	p := spec.PrefixPattern()
	if p == "" {
		return nil
	}
	lead := "1"
	if s.params.PubKeyHashAddrID != chaincfg.MainNetParams.PubKeyHashAddrID {
		// testnet/regtest/signet P2PKH addresses start with m or n
		lead = "mn"
	}
	if !strings.ContainsRune(lead, rune(p[0])) {
		return fmt.Errorf("%s P2PKH addresses start with one of %q, got prefix %q", s.params.Name, lead, p)
	}
	return nil
}
