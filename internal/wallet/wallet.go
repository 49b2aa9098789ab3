// Package wallet saves a found keypair to disk.
package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Amr-9/pumpvanity/pkg/generator"
	"github.com/Amr-9/pumpvanity/pkg/generator/solana"
)

// Output formats.
const (
	FormatText   = "text"
	FormatYAML   = "yaml"
	FormatJSON   = "json"
	FormatKeygen = "keygen" // solana-keygen byte array
)

// ErrKeygenFormat is returned when the keygen format is used for anything but a plain Solana key.
var ErrKeygenFormat = errors.New("keygen format only supports unencrypted Solana keys")

// Record is everything written about one found address.
type Record struct {
	Network      string    `yaml:"network"                 json:"network"`
	Address      string    `yaml:"address"                 json:"address"`
	SecretKey    string    `yaml:"secret_key,omitempty"    json:"secret_key,omitempty"`
	SecretBase64 string    `yaml:"secret_base64,omitempty" json:"secret_base64,omitempty"`
	SecretBytes  string    `yaml:"-"                       json:"-"`
	Sealed       *Sealed   `yaml:"sealed,omitempty"        json:"sealed,omitempty"`
	Attempts     uint64    `yaml:"attempts"                json:"attempts"`
	Elapsed      string    `yaml:"elapsed"                 json:"elapsed"`
	Generated    time.Time `yaml:"generated"               json:"generated"`
}

// NewRecord builds the record for res. With a non-nil passphrase the secret is
// sealed and no plaintext form is kept.
func NewRecord(scheme generator.Scheme, res *generator.SearchResult, passphrase []byte) (*Record, error) {
	rec := &Record{
		Network:   res.Network.String(),
		Address:   res.Address,
		Attempts:  res.Attempts,
		Elapsed:   res.Elapsed.Round(time.Millisecond).String(),
		Generated: time.Now().UTC().Truncate(time.Second),
	}

	if passphrase != nil {
		sealed, err := Seal([]byte(scheme.EncodeSecret(res.Keypair)), passphrase)
		if err != nil {
			return nil, err
		}
		rec.Sealed = sealed
		return rec, nil
	}

	rec.SecretKey = scheme.EncodeSecret(res.Keypair)
	if res.Network == generator.Solana {
		rec.SecretBase64 = solana.EncodeSecretBase64(res.Keypair)
		raw, err := solana.KeypairJSON(res.Keypair)
		if err != nil {
			return nil, err
		}
		rec.SecretBytes = string(raw)
	}
	return rec, nil
}

var textTemplate = template.Must(template.New("wallet").Parse(`{{.Network}} Vanity Address
=======================

Address:     {{.Address}}
{{- if .Sealed}}
Private Key: (encrypted, {{.Sealed.Cipher}})
  Salt:       {{.Sealed.Salt}}
  Nonce:      {{.Sealed.Nonce}}
  Ciphertext: {{.Sealed.Ciphertext}}
{{- else}}
Private Key: {{.SecretKey}}
{{- if .SecretBase64}}
Base64:      {{.SecretBase64}}
{{- end}}
{{- if .SecretBytes}}
Bytes:       {{.SecretBytes}}
{{- end}}
{{- end}}

Statistics:
  Time:     {{.Elapsed}}
  Attempts: {{.Attempts}}

Generated: {{.Generated.Format "2006-01-02 15:04:05"}}

WARNING: Keep this private key secret and secure!
`))

// Encode renders rec in the given format.
func Encode(rec *Record, res *generator.SearchResult, format string) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		if err := textTemplate.Execute(&buf, rec); err != nil {
			return nil, fmt.Errorf("rendering text: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(rec)
	case FormatJSON:
		return json.MarshalIndent(rec, "", "  ")
	case FormatKeygen:
		if res.Network != generator.Solana || rec.Sealed != nil {
			return nil, ErrKeygenFormat
		}
		return solana.KeypairJSON(res.Keypair)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Save writes rec to path with owner-only permissions and hides it where the OS supports that.
func Save(path, format string, rec *Record, res *generator.SearchResult) error {
	data, err := Encode(rec, res, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	HideFile(path)
	return nil
}
