package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	apperrors "github.com/example/kanban/internal/errors"
)

// WorkspaceRepository implements secondary.WorkspaceRepository with SQLite.
type WorkspaceRepository struct {
	db *sql.DB
}

// NewWorkspaceRepository creates a new SQLite workspace repository.
func NewWorkspaceRepository(db *sql.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Save persists the workspace and the boards it holds in one transaction.
// Stored boards that are no longer part of the workspace are deleted.
func (r *WorkspaceRepository) Save(ctx context.Context, ws *workspace.Workspace) (*workspace.Workspace, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		ws.ID().String(), ws.Name(), nullString(ws.Description()),
		formatTime(ws.CreatedAt()), formatTime(ws.UpdatedAt()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	boards := ws.Boards()
	query := "DELETE FROM boards WHERE workspace_id = ?"
	args := []any{ws.ID().String()}
	if len(boards) > 0 {
		placeholders := make([]string, len(boards))
		for i, b := range boards {
			placeholders[i] = "?"
			args = append(args, b.ID().String())
		}
		query += " AND id NOT IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to prune workspace boards: %w", err)
	}

	for _, b := range boards {
		if err := saveBoard(ctx, tx, b); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit workspace: %w", err)
	}

	return r.FindByID(ctx, ws.ID())
}

// FindByID loads a workspace with its boards.
func (r *WorkspaceRepository) FindByID(ctx context.Context, workspaceID id.WorkspaceID) (*workspace.Workspace, error) {
	row, err := scanWorkspaceRow(r.db.QueryRowContext(ctx,
		"SELECT "+workspaceColumns+" FROM workspaces WHERE id = ?", workspaceID.String()))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("workspace '%s' not found", workspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return r.assemble(ctx, row)
}

// FindAll loads every workspace, oldest first.
func (r *WorkspaceRepository) FindAll(ctx context.Context) ([]*workspace.Workspace, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+workspaceColumns+" FROM workspaces ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	var wsRows []workspaceRow
	for rows.Next() {
		row, err := scanWorkspaceRow(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		wsRows = append(wsRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	rows.Close()

	workspaces := make([]*workspace.Workspace, 0, len(wsRows))
	for _, row := range wsRows {
		ws, err := r.assemble(ctx, row)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, nil
}

// ExistsByID reports whether a workspace is stored.
func (r *WorkspaceRepository) ExistsByID(ctx context.Context, workspaceID id.WorkspaceID) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workspaces WHERE id = ?", workspaceID.String()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check workspace existence: %w", err)
	}
	return count > 0, nil
}

// DeleteByID removes a workspace; its boards go with it by cascade.
func (r *WorkspaceRepository) DeleteByID(ctx context.Context, workspaceID id.WorkspaceID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM workspaces WHERE id = ?", workspaceID.String()); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

type workspaceRow struct {
	id          string
	name        string
	description sql.NullString
	createdAt   string
	updatedAt   string
}

const workspaceColumns = "id, name, description, created_at, updated_at"

func scanWorkspaceRow(scanner interface{ Scan(...any) error }) (workspaceRow, error) {
	var row workspaceRow
	err := scanner.Scan(&row.id, &row.name, &row.description, &row.createdAt, &row.updatedAt)
	return row, err
}

func (r *WorkspaceRepository) assemble(ctx context.Context, row workspaceRow) (*workspace.Workspace, error) {
	wsID, err := id.ParseWorkspaceID(row.id)
	if err != nil {
		return nil, fmt.Errorf("corrupt workspace id %q: %w", row.id, err)
	}
	boards, err := loadBoardsByWorkspace(ctx, r.db, wsID)
	if err != nil {
		return nil, err
	}
	created, updated, err := parseTimes(row.createdAt, row.updatedAt)
	if err != nil {
		return nil, err
	}
	return workspace.ReconstituteWorkspace(wsID, row.name, stringPtr(row.description), boards, created, updated)
}
