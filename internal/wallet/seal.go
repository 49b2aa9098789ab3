package wallet

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters, as recommended for interactive logins.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	keyLen       = 32
	saltLen      = 16
	nonceLen     = 24
	cipherSecret = "scrypt+xsalsa20poly1305"
)

var errDecrypt = errors.New("wallet: wrong passphrase or corrupted secret")

// Sealed is a secret encrypted under a passphrase-derived key.
type Sealed struct {
	Cipher     string `yaml:"cipher"     json:"cipher"`
	N          int    `yaml:"n"          json:"n"`
	R          int    `yaml:"r"          json:"r"`
	P          int    `yaml:"p"          json:"p"`
	Salt       string `yaml:"salt"       json:"salt"`
	Nonce      string `yaml:"nonce"      json:"nonce"`
	Ciphertext string `yaml:"ciphertext" json:"ciphertext"`
}

// Seal encrypts secret with a key derived from passphrase.
func Seal(secret, passphrase []byte) (*Sealed, error) {
	return seal(rand.Reader, secret, passphrase)
}

func seal(rand io.Reader, secret, passphrase []byte) (*Sealed, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand, salt); err != nil {
		return nil, fmt.Errorf("reading salt: %w", err)
	}
	var nonce [nonceLen]byte
	if _, err := io.ReadFull(rand, nonce[:]); err != nil {
		return nil, fmt.Errorf("reading nonce: %w", err)
	}

	key, err := deriveKey(passphrase, salt, scryptN, scryptR, scryptP)
	if err != nil {
		return nil, err
	}

	box := secretbox.Seal(nil, secret, &nonce, key)
	return &Sealed{
		Cipher:     cipherSecret,
		N:          scryptN,
		R:          scryptR,
		P:          scryptP,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce[:]),
		Ciphertext: base64.StdEncoding.EncodeToString(box),
	}, nil
}

// Open decrypts a sealed secret.
func Open(s *Sealed, passphrase []byte) ([]byte, error) {
	if s.Cipher != cipherSecret {
		return nil, fmt.Errorf("wallet: unsupported cipher %q", s.Cipher)
	}
	salt, err := base64.StdEncoding.DecodeString(s.Salt)
	if err != nil {
		return nil, fmt.Errorf("decoding salt: %w", err)
	}
	nonceBytes, err := base64.StdEncoding.DecodeString(s.Nonce)
	if err != nil || len(nonceBytes) != nonceLen {
		return nil, errDecrypt
	}
	box, err := base64.StdEncoding.DecodeString(s.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}

	key, err := deriveKey(passphrase, salt, s.N, s.R, s.P)
	if err != nil {
		return nil, err
	}

	var nonce [nonceLen]byte
	copy(nonce[:], nonceBytes)
	secret, ok := secretbox.Open(nil, box, &nonce, key)
	if !ok {
		return nil, errDecrypt
	}
	return secret, nil
}

func deriveKey(passphrase, salt []byte, n, r, p int) (*[keyLen]byte, error) {
	derived, err := scrypt.Key(passphrase, salt, n, r, p, keyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	var key [keyLen]byte
	copy(key[:], derived)
	return &key, nil
}
