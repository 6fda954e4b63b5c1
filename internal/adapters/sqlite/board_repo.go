// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	apperrors "github.com/example/kanban/internal/errors"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BoardRepository implements secondary.BoardRepository with SQLite.
type BoardRepository struct {
	db *sql.DB
}

// NewBoardRepository creates a new SQLite board repository.
func NewBoardRepository(db *sql.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Save persists the board with its columns and cards in one transaction.
func (r *BoardRepository) Save(ctx context.Context, b *board.Board) (*board.Board, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveBoard(ctx, tx, b); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit board: %w", err)
	}

	return r.FindByID(ctx, b.ID())
}

// FindByID loads a board with its columns and cards.
func (r *BoardRepository) FindByID(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
	return loadBoard(ctx, r.db, boardID)
}

// FindByWorkspaceID loads all boards of a workspace, oldest first.
func (r *BoardRepository) FindByWorkspaceID(ctx context.Context, workspaceID id.WorkspaceID) ([]*board.Board, error) {
	return loadBoardsByWorkspace(ctx, r.db, workspaceID)
}

// ExistsByID reports whether a board is stored.
func (r *BoardRepository) ExistsByID(ctx context.Context, boardID id.BoardID) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boards WHERE id = ?", boardID.String()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check board existence: %w", err)
	}
	return count > 0, nil
}

// DeleteByID removes a board; columns and cards go with it by cascade.
func (r *BoardRepository) DeleteByID(ctx context.Context, boardID id.BoardID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", boardID.String()); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// saveBoard upserts the board row and replaces its column and card rows in
// slice order.
func saveBoard(ctx context.Context, q querier, b *board.Board) error {
	var wsCount int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM workspaces WHERE id = ?", b.WorkspaceID().String()).Scan(&wsCount)
	if err != nil {
		return fmt.Errorf("failed to check workspace existence: %w", err)
	}
	if wsCount == 0 {
		return apperrors.IllegalStatef("workspace '%s' not found while saving board '%s'", b.WorkspaceID(), b.ID())
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO boards (id, workspace_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			workspace_id = excluded.workspace_id,
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		b.ID().String(), b.WorkspaceID().String(), b.Name(), nullString(b.Description()),
		formatTime(b.CreatedAt()), formatTime(b.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	if _, err := q.ExecContext(ctx, "DELETE FROM board_columns WHERE board_id = ?", b.ID().String()); err != nil {
		return fmt.Errorf("failed to clear board columns: %w", err)
	}

	for colOrder, col := range b.Columns() {
		_, err := q.ExecContext(ctx,
			"INSERT INTO board_columns (id, board_id, name, position, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			col.ID().String(), b.ID().String(), col.Name(), col.Position(), colOrder,
			formatTime(col.CreatedAt()), formatTime(col.UpdatedAt()),
		)
		if err != nil {
			return fmt.Errorf("failed to save column %s: %w", col.ID(), err)
		}

		for cardOrder, card := range col.Cards() {
			_, err := q.ExecContext(ctx,
				"INSERT INTO cards (id, column_id, title, description, position, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				card.ID().String(), col.ID().String(), card.Title(), nullString(card.Description()),
				card.Position(), cardOrder, formatTime(card.CreatedAt()), formatTime(card.UpdatedAt()),
			)
			if err != nil {
				return fmt.Errorf("failed to save card %s: %w", card.ID(), err)
			}
		}
	}

	return nil
}

// boardRow is a boards row awaiting its children.
type boardRow struct {
	id          string
	workspaceID string
	name        string
	description sql.NullString
	createdAt   string
	updatedAt   string
}

const boardColumns = "id, workspace_id, name, description, created_at, updated_at"

func scanBoardRow(scanner interface{ Scan(...any) error }) (boardRow, error) {
	var row boardRow
	err := scanner.Scan(&row.id, &row.workspaceID, &row.name, &row.description, &row.createdAt, &row.updatedAt)
	return row, err
}

func loadBoard(ctx context.Context, q querier, boardID id.BoardID) (*board.Board, error) {
	row, err := scanBoardRow(q.QueryRowContext(ctx,
		"SELECT "+boardColumns+" FROM boards WHERE id = ?", boardID.String()))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("board '%s' not found", boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return assembleBoard(ctx, q, row)
}

func loadBoardsByWorkspace(ctx context.Context, q querier, workspaceID id.WorkspaceID) ([]*board.Board, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+boardColumns+" FROM boards WHERE workspace_id = ? ORDER BY created_at, id", workspaceID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	// Drain the cursor before loading children; an in-memory database has a
	// single connection.
	var boardRows []boardRow
	for rows.Next() {
		row, err := scanBoardRow(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boardRows = append(boardRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	rows.Close()

	boards := make([]*board.Board, 0, len(boardRows))
	for _, row := range boardRows {
		b, err := assembleBoard(ctx, q, row)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// assembleBoard loads the columns and cards of row and reconstitutes the aggregate.
func assembleBoard(ctx context.Context, q querier, row boardRow) (*board.Board, error) {
	cardsByColumn, err := loadCards(ctx, q, row.id)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		"SELECT id, name, position, created_at, updated_at FROM board_columns WHERE board_id = ? ORDER BY sort_order", row.id)
	if err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}
	defer rows.Close()

	var columns []*board.Column
	for rows.Next() {
		var (
			rawID     string
			name      string
			position  int
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&rawID, &name, &position, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		colID, err := id.ParseColumnID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt column id %q: %w", rawID, err)
		}
		created, updated, err := parseTimes(createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		col, err := board.ReconstituteColumn(colID, name, position, cardsByColumn[rawID], created, updated)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}

	boardID, err := id.ParseBoardID(row.id)
	if err != nil {
		return nil, fmt.Errorf("corrupt board id %q: %w", row.id, err)
	}
	workspaceID, err := id.ParseWorkspaceID(row.workspaceID)
	if err != nil {
		return nil, fmt.Errorf("corrupt workspace id %q: %w", row.workspaceID, err)
	}
	created, updated, err := parseTimes(row.createdAt, row.updatedAt)
	if err != nil {
		return nil, err
	}
	return board.ReconstituteBoard(boardID, workspaceID, row.name, stringPtr(row.description), columns, created, updated)
}

// loadCards returns the cards of a board keyed by column id, each slice in
// column order.
func loadCards(ctx context.Context, q querier, boardID string) (map[string][]*board.Card, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.column_id, c.title, c.description, c.position, c.created_at, c.updated_at
		FROM cards c
		JOIN board_columns bc ON bc.id = c.column_id
		WHERE bc.board_id = ?
		ORDER BY c.column_id, c.sort_order`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	defer rows.Close()

	cards := make(map[string][]*board.Card)
	for rows.Next() {
		var (
			rawID       string
			columnID    string
			title       string
			description sql.NullString
			position    int
			createdAt   string
			updatedAt   string
		)
		if err := rows.Scan(&rawID, &columnID, &title, &description, &position, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cardID, err := id.ParseCardID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt card id %q: %w", rawID, err)
		}
		created, updated, err := parseTimes(createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		card, err := board.ReconstituteCard(cardID, title, stringPtr(description), position, created, updated)
		if err != nil {
			return nil, err
		}
		cards[columnID] = append(cards[columnID], card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	return cards, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimes(createdAt, updatedAt string) (time.Time, time.Time, error) {
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("corrupt created_at %q: %w", createdAt, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("corrupt updated_at %q: %w", updatedAt, err)
	}
	return created, updated, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
