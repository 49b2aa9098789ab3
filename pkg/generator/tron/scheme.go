// Package tron implements the Tron key system on secp256k1.
package tron

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

// MainnetPrefix is the address version byte for Tron mainnet (0x41).
// All mainnet addresses start with 'T'.
const MainnetPrefix = 0x41

// Scheme generates Tron keypairs. The zero value is ready to use.
type Scheme struct{}

// New returns the Tron scheme.
func New() Scheme { return Scheme{} }

func (Scheme) Network() generator.Network { return generator.Tron }

// GenerateKey reads a 32-byte scalar from rand. Out-of-range scalars are
// rejected by crypto.ToECDSA and surface as an error.
func (Scheme) GenerateKey(rand io.Reader) (generator.Keypair, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return generator.Keypair{}, err
	}
	priv, err := crypto.ToECDSA(seed[:])
	if err != nil {
		return generator.Keypair{}, err
	}
	return generator.Keypair{
		PublicKey: crypto.FromECDSAPub(&priv.PublicKey),
		SecretKey: crypto.FromECDSA(priv),
	}, nil
}

// Address derives Base58Check(0x41 || last 20 bytes of Keccak256(pubKey[1:])).
// publicKey is the 65-byte uncompressed form.
func (Scheme) Address(publicKey []byte) string {
	hash := crypto.Keccak256(publicKey[1:])
	return base58.CheckEncode(hash[len(hash)-20:], MainnetPrefix)
}

// EncodeSecret returns the private key as hex, the format TronLink imports.
func (Scheme) EncodeSecret(kp generator.Keypair) string {
	return hex.EncodeToString(kp.SecretKey)
}

// ValidatePattern rejects prefixes that cannot occur on mainnet.
func (Scheme) ValidatePattern(spec generator.MatchSpec) error {
	if p := spec.PrefixPattern(); p != "" && !strings.HasPrefix(p, "T") {
		return fmt.Errorf("tron addresses always start with 'T', got prefix %q", p)
	}
	return nil
}
