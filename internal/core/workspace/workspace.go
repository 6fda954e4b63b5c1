// Package workspace contains the workspace entity, the top-level container
// of boards.
package workspace

import (
	"strings"
	"time"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/timestamp"
	apperrors "github.com/example/kanban/internal/errors"
)

// Workspace groups boards.
type Workspace struct {
	id          id.WorkspaceID
	name        string
	description *string
	boards      []*board.Board
	createdAt   time.Time
	updatedAt   time.Time
}

// NewWorkspace creates an empty workspace with a fresh id.
func NewWorkspace(name string, description *string) (*Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validationf("workspace name must not be blank")
	}
	now := timestamp.Now()
	return &Workspace{
		id:          id.NewWorkspaceID(),
		name:        name,
		description: clone(description),
		boards:      []*board.Board{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstituteWorkspace rebuilds a workspace from stored state.
func ReconstituteWorkspace(workspaceID id.WorkspaceID, name string, description *string, boards []*board.Board, createdAt, updatedAt time.Time) (*Workspace, error) {
	if workspaceID.IsZero() {
		return nil, apperrors.Validationf("workspace id is required")
	}
	owned := make([]*board.Board, 0, len(boards))
	for _, b := range boards {
		if b == nil {
			return nil, apperrors.Validationf("workspace %s contains a nil board", workspaceID)
		}
		owned = append(owned, b)
	}
	return &Workspace{
		id:          workspaceID,
		name:        name,
		description: clone(description),
		boards:      owned,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (w *Workspace) ID() id.WorkspaceID   { return w.id }
func (w *Workspace) Name() string         { return w.name }
func (w *Workspace) Description() *string { return clone(w.description) }
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }
func (w *Workspace) UpdatedAt() time.Time { return w.updatedAt }

// Boards returns the boards in order. The slice is a copy.
func (w *Workspace) Boards() []*board.Board {
	out := make([]*board.Board, len(w.boards))
	copy(out, w.boards)
	return out
}

// AddBoard attaches a board that belongs to this workspace.
func (w *Workspace) AddBoard(b *board.Board) error {
	if b == nil {
		return apperrors.Validationf("board must not be nil")
	}
	if b.WorkspaceID() != w.id {
		return apperrors.IllegalStatef("board %s belongs to workspace %s, not %s", b.ID(), b.WorkspaceID(), w.id)
	}
	if w.FindBoard(b.ID()) != nil {
		return apperrors.IllegalStatef("board %s already exists in workspace %s", b.ID(), w.id)
	}
	w.boards = append(w.boards, b)
	w.touch()
	return nil
}

// RemoveBoard detaches a board and returns it.
func (w *Workspace) RemoveBoard(boardID id.BoardID) (*board.Board, error) {
	for i, b := range w.boards {
		if b.ID() == boardID {
			w.boards = append(w.boards[:i], w.boards[i+1:]...)
			w.touch()
			return b, nil
		}
	}
	return nil, apperrors.NotFoundf("board %s not found in workspace %s", boardID, w.id)
}

// FindBoard returns the board with the given id, or nil.
func (w *Workspace) FindBoard(boardID id.BoardID) *board.Board {
	for _, b := range w.boards {
		if b.ID() == boardID {
			return b
		}
	}
	return nil
}

// UpdateName renames the workspace.
func (w *Workspace) UpdateName(newName string) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.Validationf("workspace name must not be blank")
	}
	w.name = newName
	w.touch()
	return nil
}

// UpdateDescription replaces the description. Nil clears it.
func (w *Workspace) UpdateDescription(newDescription *string) {
	w.description = clone(newDescription)
	w.touch()
}

func (w *Workspace) touch() {
	w.updatedAt = timestamp.Next(w.updatedAt)
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
