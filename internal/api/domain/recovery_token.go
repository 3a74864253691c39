package domain

import "time"

// RecoveryToken is the persisted half of a password-reset token. Token is the
// full encoded bearer string (also the primary key); the user id and issuance
// time are additionally embedded inside the token itself and the two
// representations must agree at redemption.
//
// ExpiresAt is never populated when tokens are minted. Redemption rejects
// any row where it is set.
type RecoveryToken struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt *time.Time
}
