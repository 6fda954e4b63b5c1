package secondary

import (
	"context"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
)

// WorkspaceRepository defines the secondary port for workspace persistence.
type WorkspaceRepository interface {
	// Save persists the workspace and the boards it holds. Stored boards that
	// are no longer part of the workspace are removed.
	Save(ctx context.Context, ws *workspace.Workspace) (*workspace.Workspace, error)

	// FindByID loads a workspace with its boards. Fails with a not-found error when absent.
	FindByID(ctx context.Context, workspaceID id.WorkspaceID) (*workspace.Workspace, error)

	// FindAll loads every workspace, ordered by creation time.
	FindAll(ctx context.Context) ([]*workspace.Workspace, error)

	// ExistsByID reports whether a workspace is stored.
	ExistsByID(ctx context.Context, workspaceID id.WorkspaceID) (bool, error)

	// DeleteByID removes a workspace and, by cascade, its boards.
	DeleteByID(ctx context.Context, workspaceID id.WorkspaceID) error
}
