// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI and the REST API drive the core.
package primary

import (
	"context"
	"strings"

	"github.com/example/kanban/internal/core/workspace"
	apperrors "github.com/example/kanban/internal/errors"
)

// WorkspaceService defines the primary port for workspace operations.
type WorkspaceService interface {
	// CreateWorkspace creates a new, empty workspace.
	CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*workspace.Workspace, error)

	// ListWorkspaces lists all workspaces.
	ListWorkspaces(ctx context.Context) ([]*workspace.Workspace, error)

	// GetWorkspace retrieves a workspace by ID.
	GetWorkspace(ctx context.Context, workspaceID string) (*workspace.Workspace, error)

	// UpdateWorkspace updates a workspace's name and/or description.
	UpdateWorkspace(ctx context.Context, req UpdateWorkspaceRequest) (*workspace.Workspace, error)

	// DeleteWorkspace deletes a workspace together with its boards.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// CreateWorkspaceRequest contains parameters for creating a workspace.
type CreateWorkspaceRequest struct {
	Name        string
	Description *string // Optional
}

// Validate checks the request before any state is loaded.
func (r CreateWorkspaceRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Validationf("workspace name must not be blank")
	}
	return nil
}

// UpdateWorkspaceRequest contains parameters for updating a workspace.
// Nil fields are left unchanged.
type UpdateWorkspaceRequest struct {
	WorkspaceID string
	Name        *string
	Description *string
}

// Validate checks the request before any state is loaded.
func (r UpdateWorkspaceRequest) Validate() error {
	if r.WorkspaceID == "" {
		return apperrors.Validationf("workspace id is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.Validationf("workspace name must not be blank")
	}
	return nil
}
