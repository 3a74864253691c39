package domain

import "time"

const (
	DefaultProjectIcon       = "Folder"
	DefaultProjectBackground = "#1a1a1a"
)

type Project struct {
	ID          string
	Name        string
	Slug        string // unique within the workspace
	Description string
	Icon        string
	Background  string
	WorkspaceID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
