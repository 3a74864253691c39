package domain

import "time"

// Session is a server-side browser session. The ID doubles as the bearer
// credential ("{envTag}:{64-hex}"). Rows are never deleted; invalidation
// marks them dead while keeping the audit trail.
type Session struct {
	ID            string
	UserID        string
	CreatedAt     time.Time
	InvalidatedAt *time.Time // nil while the session is live
}

// Invalidated reports whether the session has been permanently killed.
func (s Session) Invalidated() bool { return s.InvalidatedAt != nil }
