package wallet

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var (
	ErrNotTerminal        = errors.New("passphrase prompt requires an interactive terminal")
	ErrPassphraseMismatch = errors.New("passphrases do not match")
	ErrEmptyPassphrase    = errors.New("passphrase must not be empty")
)

// ReadPassphrase prompts twice on the terminal without echo.
func ReadPassphrase() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	fmt.Fprint(os.Stderr, "Passphrase: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	if len(first) == 0 {
		return nil, ErrEmptyPassphrase
	}

	fmt.Fprint(os.Stderr, "Repeat passphrase: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	if !bytes.Equal(first, second) {
		return nil, ErrPassphraseMismatch
	}
	return first, nil
}
