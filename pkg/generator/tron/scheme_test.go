package tron

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

func TestAddressShape(t *testing.T) {
	s := New()
	for i := 0; i < 50; i++ {
		c, err := generator.Generate(s, rand.Reader)
		require.NoError(t, err)

		assert.Len(t, c.Address, 34)
		assert.Equal(t, byte('T'), c.Address[0])

		payload, version, err := base58.CheckDecode(c.Address)
		require.NoError(t, err)
		assert.Equal(t, byte(MainnetPrefix), version)
		assert.Len(t, payload, 20)

		secret, err := hex.DecodeString(s.EncodeSecret(c.Keypair))
		require.NoError(t, err)
		assert.Len(t, secret, 32)
	}
}

func TestValidatePattern(t *testing.T) {
	s := New()
	require.NoError(t, s.ValidatePattern(generator.Prefix("TAbc")))
	require.NoError(t, s.ValidatePattern(generator.Suffix("abc")))
	require.Error(t, s.ValidatePattern(generator.Prefix("Abc")))
	require.Error(t, s.ValidatePattern(generator.Both("x", "abc")))
}
