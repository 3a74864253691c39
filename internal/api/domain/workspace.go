package domain

import "time"

type Workspace struct {
	ID          string
	Name        string
	Slug        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is a user's membership in a workspace, denormalized with the user's
// display fields for listing.
type Member struct {
	ID             string // membership row id
	UserID         string
	Name           string
	Email          string
	LastAccessedAt *time.Time
}

// WorkspaceSummary is a workspace with its owner and member count, as
// returned by list queries.
type WorkspaceSummary struct {
	Workspace
	Owner        User
	TotalMembers int
}
