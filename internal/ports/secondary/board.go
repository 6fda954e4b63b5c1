// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
)

// BoardRepository defines the secondary port for board aggregate persistence.
// A board is always loaded and saved whole, with its columns and cards.
type BoardRepository interface {
	// Save persists the board and everything it owns, returning the stored state.
	// Fails with an illegal-state error when the board's workspace does not exist.
	Save(ctx context.Context, b *board.Board) (*board.Board, error)

	// FindByID loads a board. Fails with a not-found error when absent.
	FindByID(ctx context.Context, boardID id.BoardID) (*board.Board, error)

	// FindByWorkspaceID loads all boards of a workspace.
	FindByWorkspaceID(ctx context.Context, workspaceID id.WorkspaceID) ([]*board.Board, error)

	// ExistsByID reports whether a board is stored.
	ExistsByID(ctx context.Context, boardID id.BoardID) (bool, error)

	// DeleteByID removes a board with its columns and cards. Deleting an absent
	// board is a no-op.
	DeleteByID(ctx context.Context, boardID id.BoardID) error
}
