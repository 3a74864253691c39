package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomHex(t *testing.T) {
	hex1, err := RandomHex(NonceSize)
	require.NoError(t, err)
	require.Len(t, hex1, NonceSize*2)

	hex2, err := RandomHex(NonceSize)
	require.NoError(t, err)
	require.NotEqual(t, hex1, hex2)

	_, err = RandomHex(0)
	require.Error(t, err)
}

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken("dev")
	require.NoError(t, err)

	prefix, random, found := strings.Cut(token, ":")
	require.True(t, found)
	require.Equal(t, "dev", prefix)
	require.Len(t, random, 64, "session tokens carry 32 random bytes as hex")
}
