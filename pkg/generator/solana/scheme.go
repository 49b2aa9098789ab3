// Package solana implements the Solana key system: Ed25519 keypairs whose
// address is the Base58-encoded 32-byte public key.
package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/mr-tron/base58"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

// Solana addresses are 32-44 Base58 characters long.
const (
	MinAddressLen = 32
	MaxAddressLen = 44
)

var errKeypairMismatch = errors.New("solana: secret key does not derive the public key")

// Scheme generates Solana keypairs. The zero value is ready to use.
type Scheme struct{}

// New returns the Solana scheme.
func New() Scheme { return Scheme{} }

func (Scheme) Network() generator.Network { return generator.Solana }

// GenerateKey creates an Ed25519 keypair from a 32-byte seed read from rand.
// The secret key is the 64-byte seed||pubkey form Solana wallets import.
func (Scheme) GenerateKey(rand io.Reader) (generator.Keypair, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return generator.Keypair{}, err
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return generator.Keypair{
		PublicKey: priv.Public().(ed25519.PublicKey),
		SecretKey: priv,
	}, nil
}

// Address returns the Base58-encoded public key.
func (Scheme) Address(publicKey []byte) string {
	return base58.Encode(publicKey)
}

// EncodeSecret returns the 64-byte secret key in Base58, the format Phantom and Solflare import.
func (Scheme) EncodeSecret(kp generator.Keypair) string {
	return base58.Encode(kp.SecretKey)
}

// EncodeSecretBase64 returns the 64-byte secret key in standard Base64.
func EncodeSecretBase64(kp generator.Keypair) string {
	return base64.StdEncoding.EncodeToString(kp.SecretKey)
}

// KeypairJSON renders the secret key as the JSON byte array written by solana-keygen.
func KeypairJSON(kp generator.Keypair) ([]byte, error) {
	ints := make([]int, len(kp.SecretKey))
	for i, b := range kp.SecretKey {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// Verify checks that the secret key derives the public key.
func Verify(kp generator.Keypair) error {
	if len(kp.SecretKey) != ed25519.PrivateKeySize || len(kp.PublicKey) != ed25519.PublicKeySize {
		return errKeypairMismatch
	}
	derived := ed25519.PrivateKey(kp.SecretKey).Public().(ed25519.PublicKey)
	if !bytes.Equal(derived, kp.PublicKey) {
		return errKeypairMismatch
	}
	return nil
}
