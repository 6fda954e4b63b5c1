package primary

import (
	"context"
	"strings"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	apperrors "github.com/example/kanban/internal/errors"
)

// BoardService defines the primary port for board, column and card operations.
// Every mutating operation returns the board as stored after the change.
type BoardService interface {
	// CreateBoard creates an empty board inside an existing workspace.
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*board.Board, error)

	// GetBoard retrieves a board with its columns and cards.
	GetBoard(ctx context.Context, boardID string) (*board.Board, error)

	// ListBoards lists the boards of a workspace.
	ListBoards(ctx context.Context, workspaceID string) ([]*board.Board, error)

	// UpdateBoard updates a board's name and/or description.
	UpdateBoard(ctx context.Context, req UpdateBoardRequest) (*board.Board, error)

	// DeleteBoard deletes a board with its columns and cards.
	DeleteBoard(ctx context.Context, boardID string) error

	// CreateColumn adds a column to a board.
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*board.Board, error)

	// UpdateColumn renames and/or repositions a column.
	UpdateColumn(ctx context.Context, req UpdateColumnRequest) (*board.Board, error)

	// DeleteColumn removes a column and all of its cards.
	DeleteColumn(ctx context.Context, req DeleteColumnRequest) (*board.Board, error)

	// CreateCard appends a card to a column.
	CreateCard(ctx context.Context, req CreateCardRequest) (*board.Board, error)

	// UpdateCard applies a partial title/description update to a card.
	UpdateCard(ctx context.Context, req UpdateCardRequest) (*board.Board, error)

	// DeleteCard removes a card from its column.
	DeleteCard(ctx context.Context, req DeleteCardRequest) error

	// MoveCard moves a card to the end of another column.
	MoveCard(ctx context.Context, req MoveCardRequest) (*board.Board, error)
}

// CreateBoardRequest contains parameters for creating a board.
type CreateBoardRequest struct {
	WorkspaceID string
	Name        string
	Description *string // Optional
}

// Validate checks the request before any state is loaded.
func (r CreateBoardRequest) Validate() error {
	if r.WorkspaceID == "" {
		return apperrors.Validationf("workspace id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Validationf("board name must not be blank")
	}
	return nil
}

// UpdateBoardRequest contains parameters for updating a board.
// Nil fields are left unchanged.
type UpdateBoardRequest struct {
	BoardID     string
	Name        *string
	Description *string
}

// Validate checks the request before any state is loaded.
func (r UpdateBoardRequest) Validate() error {
	if r.BoardID == "" {
		return apperrors.Validationf("board id is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.Validationf("board name must not be blank")
	}
	return nil
}

// CreateColumnRequest contains parameters for adding a column.
type CreateColumnRequest struct {
	BoardID  string
	Name     string
	Position *int // Optional, defaults to the end of the board
}

// Validate checks the request before any state is loaded.
func (r CreateColumnRequest) Validate() error {
	if r.BoardID == "" {
		return apperrors.Validationf("board id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Validationf("column name must not be blank")
	}
	if r.Position != nil && *r.Position < 0 {
		return apperrors.Validationf("column position must not be negative, got %d", *r.Position)
	}
	return nil
}

// UpdateColumnRequest contains parameters for renaming or repositioning a column.
// Nil fields are left unchanged.
type UpdateColumnRequest struct {
	BoardID  string
	ColumnID string
	Name     *string
	Position *int
}

// Validate checks the request before any state is loaded.
func (r UpdateColumnRequest) Validate() error {
	if r.BoardID == "" || r.ColumnID == "" {
		return apperrors.Validationf("board id and column id are required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.Validationf("column name must not be blank")
	}
	if r.Position != nil && *r.Position < 0 {
		return apperrors.Validationf("column position must not be negative, got %d", *r.Position)
	}
	return nil
}

// DeleteColumnRequest identifies a column to delete.
type DeleteColumnRequest struct {
	BoardID  string
	ColumnID string
}

// Validate checks the request before any state is loaded.
func (r DeleteColumnRequest) Validate() error {
	if r.BoardID == "" || r.ColumnID == "" {
		return apperrors.Validationf("board id and column id are required")
	}
	return nil
}

// CreateCardRequest contains parameters for creating a card.
type CreateCardRequest struct {
	BoardID     string
	ColumnID    string
	Title       string
	Description *string // Optional
}

// Validate checks the request before any state is loaded.
func (r CreateCardRequest) Validate() error {
	if r.BoardID == "" || r.ColumnID == "" {
		return apperrors.Validationf("board id and column id are required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.Validationf("card title must not be blank")
	}
	return nil
}

// UpdateCardRequest contains parameters for a partial card update.
// A nil or blank Title leaves the title unchanged. A nil Description leaves
// the description unchanged; an empty one clears it.
type UpdateCardRequest struct {
	BoardID     string
	ColumnID    string
	CardID      string
	Title       *string
	Description *string
}

// Validate checks the request before any state is loaded.
func (r UpdateCardRequest) Validate() error {
	if r.BoardID == "" || r.ColumnID == "" || r.CardID == "" {
		return apperrors.Validationf("board id, column id and card id are required")
	}
	return nil
}

// DeleteCardRequest identifies a card to delete.
type DeleteCardRequest struct {
	BoardID  string
	ColumnID string
	CardID   string
}

// Validate checks the request before any state is loaded.
func (r DeleteCardRequest) Validate() error {
	if r.BoardID == "" || r.ColumnID == "" || r.CardID == "" {
		return apperrors.Validationf("board id, column id and card id are required")
	}
	return nil
}

// MoveCardRequest contains parameters for moving a card between columns.
type MoveCardRequest struct {
	BoardID        string
	CardID         string
	SourceColumnID string
	TargetColumnID string
}

// Validate checks the request before any state is loaded.
// Moves within one column are rejected.
func (r MoveCardRequest) Validate() error {
	_, err := r.Parse()
	return err
}

// Parse validates the request and returns its ids in typed form.
func (r MoveCardRequest) Parse() (board.MoveCardContext, error) {
	var move board.MoveCardContext
	if r.BoardID == "" {
		return move, apperrors.Validationf("board id is required")
	}

	var err error
	if r.CardID != "" {
		if move.CardID, err = id.ParseCardID(r.CardID); err != nil {
			return move, err
		}
	}
	if r.SourceColumnID != "" {
		if move.SourceColumnID, err = id.ParseColumnID(r.SourceColumnID); err != nil {
			return move, err
		}
	}
	if r.TargetColumnID != "" {
		if move.TargetColumnID, err = id.ParseColumnID(r.TargetColumnID); err != nil {
			return move, err
		}
	}

	guard := board.CanMoveCard(move)
	if !guard.Allowed {
		return move, apperrors.Wrap(apperrors.CodeValidation, "invalid move", guard.Error())
	}
	return move, nil
}
