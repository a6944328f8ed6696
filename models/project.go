package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus tracks a project's lifecycle. Projects start as drafts,
// may be imported from an external repository, and become deployed once
// published.
type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusImported   ProjectStatus = "imported"
	StatusGenerating ProjectStatus = "generating"
	StatusDeployed   ProjectStatus = "deployed"
)

// Project is a workspace owned by a single user. Files preserve insertion
// order; the first file created is the canonical entry file and the
// default editor selection.
type Project struct {
	ID          uuid.UUID     `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	DeployedURL *string       `json:"deployed_url,omitempty"`
	Files       FileMap       `json:"files"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateProjectRequest is the payload for creating a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// ProjectsResponse is the standard response format for project listings.
// Includes total count for potential pagination in the future.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}
