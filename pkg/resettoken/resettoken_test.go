package resettoken_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskerra/taskerra/pkg/resettoken"
)

func TestRoundTrip(t *testing.T) {
	now := time.Now()
	issued := now.Add(-time.Hour)

	token := resettoken.Encode("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", issued, "deadbeefcafe")

	v, ok := resettoken.DecodeAt(token, now)
	require.True(t, ok)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", v.UserID)
	require.Equal(t, issued.UnixMilli(), v.IssuedAt.UnixMilli())
	require.False(t, v.Expired)
}

func TestExpiryBoundary(t *testing.T) {
	now := time.Now()

	t.Run("just inside the window", func(t *testing.T) {
		token := resettoken.Encode("u1", now.Add(-resettoken.TTL+time.Second), "nonce")
		v, ok := resettoken.DecodeAt(token, now)
		require.True(t, ok)
		require.False(t, v.Expired)
	})

	t.Run("25h in the past is expired", func(t *testing.T) {
		token := resettoken.Encode("u1", now.Add(-25*time.Hour), "nonce")
		v, ok := resettoken.DecodeAt(token, now)
		require.True(t, ok, "expired tokens are still structurally valid")
		require.True(t, v.Expired)
	})
}

func TestDecodeRejectsMalformed(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
	}{
		{"not base64url", "not-base64url-!!!"},
		{"empty string", ""},
		{"two fields only", base64.RawURLEncoding.EncodeToString([]byte("u1|12345"))},
		{"four fields", base64.RawURLEncoding.EncodeToString([]byte("u1|12345|n|extra"))},
		{"empty user id", resettoken.Encode("", now, "nonce")},
		{"whitespace user id", base64.RawURLEncoding.EncodeToString([]byte("  |12345|n"))},
		{"empty nonce", base64.RawURLEncoding.EncodeToString([]byte("u1|12345|"))},
		{"non-numeric timestamp", base64.RawURLEncoding.EncodeToString([]byte("u1|notatime|n"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := resettoken.DecodeAt(tt.token, now)
			require.False(t, ok)
			require.Nil(t, v)
		})
	}
}

func TestDecodeAnyIntegerTimestamp(t *testing.T) {
	// Negative and far-future timestamps parse; expiry is just arithmetic.
	token := base64.RawURLEncoding.EncodeToString([]byte("u1|-1000|n"))
	v, ok := resettoken.DecodeAt(token, time.Now())
	require.True(t, ok)
	require.True(t, v.Expired)
}
