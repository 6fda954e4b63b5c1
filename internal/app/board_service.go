package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	apperrors "github.com/example/kanban/internal/errors"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// BoardServiceImpl implements the BoardService interface.
// Mutations follow one shape: load the board, mutate the aggregate, and save
// only if the mutation succeeded.
type BoardServiceImpl struct {
	boardRepo     secondary.BoardRepository
	workspaceRepo secondary.WorkspaceRepository
	logger        *log.Logger
}

// NewBoardService creates a new BoardService with injected dependencies.
func NewBoardService(boardRepo secondary.BoardRepository, workspaceRepo secondary.WorkspaceRepository, logger *log.Logger) *BoardServiceImpl {
	return &BoardServiceImpl{
		boardRepo:     boardRepo,
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// CreateBoard creates an empty board inside an existing workspace.
func (s *BoardServiceImpl) CreateBoard(ctx context.Context, req primary.CreateBoardRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.CreateBoard", attribute.String("kanban.workspace_id", req.WorkspaceID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	wsID, err := id.ParseWorkspaceID(req.WorkspaceID)
	if err != nil {
		return nil, err
	}

	exists, err := s.workspaceRepo.ExistsByID(ctx, wsID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate workspace: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFoundf("workspace '%s' not found", wsID)
	}

	b, err := board.NewBoard(wsID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, b)
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"workspace_id": wsID.String(),
		"board_id":     saved.ID().String(),
	}).Info("board created")
	return saved, nil
}

// GetBoard retrieves a board with its columns and cards.
func (s *BoardServiceImpl) GetBoard(ctx context.Context, boardID string) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.GetBoard", attribute.String("kanban.board_id", boardID))
	defer func() { op.end(ctx, err) }()

	bID, err := id.ParseBoardID(boardID)
	if err != nil {
		return nil, err
	}
	return s.boardRepo.FindByID(ctx, bID)
}

// ListBoards lists the boards of a workspace.
func (s *BoardServiceImpl) ListBoards(ctx context.Context, workspaceID string) (_ []*board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.ListBoards", attribute.String("kanban.workspace_id", workspaceID))
	defer func() { op.end(ctx, err) }()

	wsID, err := id.ParseWorkspaceID(workspaceID)
	if err != nil {
		return nil, err
	}

	exists, err := s.workspaceRepo.ExistsByID(ctx, wsID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate workspace: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFoundf("workspace '%s' not found", wsID)
	}

	boards, err := s.boardRepo.FindByWorkspaceID(ctx, wsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// UpdateBoard updates a board's name and/or description.
func (s *BoardServiceImpl) UpdateBoard(ctx context.Context, req primary.UpdateBoardRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.UpdateBoard", attribute.String("kanban.board_id", req.BoardID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		if req.Name != nil {
			if err := b.UpdateName(*req.Name); err != nil {
				return err
			}
		}
		if req.Description != nil {
			b.UpdateDescription(req.Description)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{"board_id": saved.ID().String()}).Info("board updated")
	return saved, nil
}

// DeleteBoard deletes a board with its columns and cards.
func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, boardID string) (err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.DeleteBoard", attribute.String("kanban.board_id", boardID))
	defer func() { op.end(ctx, err) }()

	bID, err := id.ParseBoardID(boardID)
	if err != nil {
		return err
	}

	exists, err := s.boardRepo.ExistsByID(ctx, bID)
	if err != nil {
		return fmt.Errorf("failed to check board: %w", err)
	}
	if !exists {
		return apperrors.NotFoundf("board '%s' not found", bID)
	}

	if err := s.boardRepo.DeleteByID(ctx, bID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	entry(ctx, s.logger, log.Fields{"board_id": bID.String()}).Info("board deleted")
	return nil
}

// CreateColumn adds a column to a board. Without an explicit position the
// column is placed after the existing ones.
func (s *BoardServiceImpl) CreateColumn(ctx context.Context, req primary.CreateColumnRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.CreateColumn", attribute.String("kanban.board_id", req.BoardID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	var columnID id.ColumnID
	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		position := len(b.Columns())
		if req.Position != nil {
			position = *req.Position
		}
		col, err := board.NewColumn(req.Name, position)
		if err != nil {
			return err
		}
		columnID = col.ID()
		return b.AddColumn(col)
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":  saved.ID().String(),
		"column_id": columnID.String(),
	}).Info("column created")
	return saved, nil
}

// UpdateColumn renames and/or repositions a column.
func (s *BoardServiceImpl) UpdateColumn(ctx context.Context, req primary.UpdateColumnRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.UpdateColumn",
		attribute.String("kanban.board_id", req.BoardID),
		attribute.String("kanban.column_id", req.ColumnID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	columnID, err := id.ParseColumnID(req.ColumnID)
	if err != nil {
		return nil, err
	}

	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		return b.UpdateColumn(columnID, req.Name, req.Position)
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":  saved.ID().String(),
		"column_id": columnID.String(),
	}).Info("column updated")
	return saved, nil
}

// DeleteColumn removes a column and all of its cards.
func (s *BoardServiceImpl) DeleteColumn(ctx context.Context, req primary.DeleteColumnRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.DeleteColumn",
		attribute.String("kanban.board_id", req.BoardID),
		attribute.String("kanban.column_id", req.ColumnID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	columnID, err := id.ParseColumnID(req.ColumnID)
	if err != nil {
		return nil, err
	}

	var removedCards int
	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		col, err := b.RemoveColumn(columnID)
		if err != nil {
			return err
		}
		removedCards = col.CardCount()
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":      saved.ID().String(),
		"column_id":     columnID.String(),
		"removed_cards": removedCards,
	}).Info("column deleted")
	return saved, nil
}

// CreateCard appends a card to a column.
func (s *BoardServiceImpl) CreateCard(ctx context.Context, req primary.CreateCardRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.CreateCard",
		attribute.String("kanban.board_id", req.BoardID),
		attribute.String("kanban.column_id", req.ColumnID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	columnID, err := id.ParseColumnID(req.ColumnID)
	if err != nil {
		return nil, err
	}

	card, err := board.NewCard(req.Title, req.Description, 0)
	if err != nil {
		return nil, err
	}

	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		return b.AddCardToColumn(columnID, card)
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":  saved.ID().String(),
		"column_id": columnID.String(),
		"card_id":   card.ID().String(),
	}).Info("card created")
	return saved, nil
}

// UpdateCard applies a partial title/description update to a card.
func (s *BoardServiceImpl) UpdateCard(ctx context.Context, req primary.UpdateCardRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.UpdateCard",
		attribute.String("kanban.board_id", req.BoardID),
		attribute.String("kanban.card_id", req.CardID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	columnID, err := id.ParseColumnID(req.ColumnID)
	if err != nil {
		return nil, err
	}
	cardID, err := id.ParseCardID(req.CardID)
	if err != nil {
		return nil, err
	}

	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		return b.UpdateCard(columnID, cardID, req.Title, req.Description)
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":  saved.ID().String(),
		"column_id": columnID.String(),
		"card_id":   cardID.String(),
	}).Info("card updated")
	return saved, nil
}

// DeleteCard removes a card from its column.
func (s *BoardServiceImpl) DeleteCard(ctx context.Context, req primary.DeleteCardRequest) (err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.DeleteCard",
		attribute.String("kanban.board_id", req.BoardID),
		attribute.String("kanban.card_id", req.CardID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return err
	}
	columnID, err := id.ParseColumnID(req.ColumnID)
	if err != nil {
		return err
	}
	cardID, err := id.ParseCardID(req.CardID)
	if err != nil {
		return err
	}

	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		_, err := b.RemoveCardFromColumn(columnID, cardID)
		return err
	})
	if err != nil {
		return err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":  saved.ID().String(),
		"column_id": columnID.String(),
		"card_id":   cardID.String(),
	}).Info("card deleted")
	return nil
}

// MoveCard moves a card to the end of another column.
func (s *BoardServiceImpl) MoveCard(ctx context.Context, req primary.MoveCardRequest) (_ *board.Board, err error) {
	ctx, op := begin(ctx, s.logger, "BoardService.MoveCard",
		attribute.String("kanban.board_id", req.BoardID),
		attribute.String("kanban.card_id", req.CardID))
	defer func() { op.end(ctx, err) }()

	move, err := req.Parse()
	if err != nil {
		return nil, err
	}
	cardID, sourceID, targetID := move.CardID, move.SourceColumnID, move.TargetColumnID

	saved, err := s.mutate(ctx, req.BoardID, func(b *board.Board) error {
		return b.MoveCard(cardID, sourceID, targetID)
	})
	if err != nil {
		return nil, err
	}

	entry(ctx, s.logger, log.Fields{
		"board_id":         saved.ID().String(),
		"card_id":          cardID.String(),
		"source_column_id": sourceID.String(),
		"target_column_id": targetID.String(),
	}).Info("card moved")
	return saved, nil
}

// mutate loads a board, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s *BoardServiceImpl) mutate(ctx context.Context, boardID string, fn func(b *board.Board) error) (*board.Board, error) {
	bID, err := id.ParseBoardID(boardID)
	if err != nil {
		return nil, err
	}

	b, err := s.boardRepo.FindByID(ctx, bID)
	if err != nil {
		return nil, err
	}

	if err := fn(b); err != nil {
		return nil, err
	}

	return s.save(ctx, b)
}

func (s *BoardServiceImpl) save(ctx context.Context, b *board.Board) (*board.Board, error) {
	saved, err := s.boardRepo.Save(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	return saved, nil
}
