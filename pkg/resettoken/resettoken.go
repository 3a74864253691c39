// Package resettoken encodes and decodes the self-describing password-reset
// bearer token: "userID|issuedAtMillis|nonceHex" base64url-encoded without
// padding. The encoded string is both the credential mailed to the user and
// the lookup key of the persisted record, so the two must never diverge.
package resettoken

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// TTL is how long a reset token stays redeemable after issuance.
const TTL = 24 * time.Hour

const fieldSeparator = "|"

// Validation is the result of decoding a structurally valid token. Expired is
// computed independently of structural validity; callers must check it before
// trusting UserID.
type Validation struct {
	UserID   string
	IssuedAt time.Time
	Expired  bool
}

// Encode builds a reset token from a user id, an issuance time and a random
// nonce (hex). Inputs are caller-guaranteed non-empty; Encode never fails.
func Encode(userID string, issuedAt time.Time, nonceHex string) string {
	payload := userID + fieldSeparator +
		strconv.FormatInt(issuedAt.UnixMilli(), 10) + fieldSeparator +
		nonceHex
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// Decode parses a user-supplied token. It returns (nil, false) for ANY
// structural failure: bad base64, wrong field count, empty field, or a
// non-integer timestamp. Callers must treat all of these identically as
// "invalid token" and must not surface which check failed.
func Decode(token string) (*Validation, bool) {
	return DecodeAt(token, time.Now())
}

// DecodeAt is Decode against an explicit clock.
func DecodeAt(token string, now time.Time) (*Validation, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, false
	}

	parts := strings.Split(string(raw), fieldSeparator)
	if len(parts) != 3 {
		return nil, false
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, false
		}
	}

	millis, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return nil, false
	}

	issuedAt := time.UnixMilli(millis)
	return &Validation{
		UserID:   parts[0],
		IssuedAt: issuedAt,
		Expired:  now.Sub(issuedAt) > TTL,
	}, true
}
