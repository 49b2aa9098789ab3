package generator

import (
	"fmt"
	"strings"
)

// Base58 alphabet (Bitcoin/Solana style - excludes 0, O, I, l)
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// MatchKind selects which ends of the address a MatchSpec constrains.
type MatchKind int

const (
	MatchPrefix MatchKind = iota
	MatchSuffix
	MatchBoth
)

// MatchSpec describes the address pattern of one search. It is immutable once built.
type MatchSpec struct {
	kind   MatchKind
	prefix string
	suffix string
}

// Prefix matches addresses starting with p.
func Prefix(p string) MatchSpec {
	return MatchSpec{kind: MatchPrefix, prefix: p}
}

// Suffix matches addresses ending with s.
func Suffix(s string) MatchSpec {
	return MatchSpec{kind: MatchSuffix, suffix: s}
}

// Both matches addresses starting with p and ending with s.
func Both(p, s string) MatchSpec {
	return MatchSpec{kind: MatchBoth, prefix: p, suffix: s}
}

// NewMatchSpec picks the narrowest spec for the given prefix and suffix.
func NewMatchSpec(prefix, suffix string) MatchSpec {
	switch {
	case prefix != "" && suffix != "":
		return Both(prefix, suffix)
	case suffix != "":
		return Suffix(suffix)
	default:
		return Prefix(prefix)
	}
}

func (m MatchSpec) Kind() MatchKind { return m.kind }

// PrefixPattern returns the required prefix, empty for suffix-only specs.
func (m MatchSpec) PrefixPattern() string { return m.prefix }

// SuffixPattern returns the required suffix, empty for prefix-only specs.
func (m MatchSpec) SuffixPattern() string { return m.suffix }

// Len is the number of constrained characters.
func (m MatchSpec) Len() int { return len(m.prefix) + len(m.suffix) }

// Matches reports whether address satisfies the spec.
// Comparison is case-sensitive and byte-exact; empty patterns match everything.
func (m MatchSpec) Matches(address string) bool {
	switch m.kind {
	case MatchPrefix:
		return strings.HasPrefix(address, m.prefix)
	case MatchSuffix:
		return strings.HasSuffix(address, m.suffix)
	default:
		return strings.HasPrefix(address, m.prefix) && strings.HasSuffix(address, m.suffix)
	}
}

// Matches reports whether address satisfies spec.
func Matches(address string, spec MatchSpec) bool {
	return spec.Matches(address)
}

// Validate checks that both patterns only use Base58 characters.
func (m MatchSpec) Validate() error {
	if bad := InvalidBase58Chars(m.prefix + m.suffix); len(bad) > 0 {
		return &InvalidBase58Error{Chars: bad}
	}
	return nil
}

func (m MatchSpec) String() string {
	switch m.kind {
	case MatchPrefix:
		return fmt.Sprintf("prefix %q", m.prefix)
	case MatchSuffix:
		return fmt.Sprintf("suffix %q", m.suffix)
	default:
		return fmt.Sprintf("prefix %q and suffix %q", m.prefix, m.suffix)
	}
}

// IsValidBase58 checks if a string contains only valid Base58 characters.
// Base58 excludes: 0 (zero), O (uppercase o), I (uppercase i), l (lowercase L)
func IsValidBase58(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(Base58Alphabet, c) {
			return false
		}
	}
	return true
}

// InvalidBase58Chars returns any invalid Base58 characters in the input.
// Useful for providing helpful error messages to users.
func InvalidBase58Chars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(Base58Alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

// InvalidBase58Error represents a pattern containing characters outside the Base58 alphabet.
type InvalidBase58Error struct {
	Chars []rune
}

func (e *InvalidBase58Error) Error() string {
	return "invalid Base58 character(s): " + string(e.Chars) + " (not allowed: 0, O, I, l)"
}
