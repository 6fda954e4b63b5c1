package sqlite

import (
	"context"
	"testing"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	apperrors "github.com/example/kanban/internal/errors"
	"github.com/example/kanban/internal/ports/secondary"
)

var _ secondary.WorkspaceRepository = (*WorkspaceRepository)(nil)

func TestWorkspaceRepository_SaveAndFind(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewWorkspaceRepository(testDB)
	ctx := context.Background()

	ws, _ := workspace.NewWorkspace("Engineering", nil)
	saved, err := repo.Save(ctx, ws)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID() != ws.ID() || saved.Name() != "Engineering" || saved.Description() != nil {
		t.Errorf("unexpected workspace: %s %q", saved.ID(), saved.Name())
	}

	if err := saved.UpdateName("Platform"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if _, err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	found, err := repo.FindByID(ctx, ws.ID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Name() != "Platform" {
		t.Errorf("name = %q, want Platform", found.Name())
	}
	if !found.CreatedAt().Equal(ws.CreatedAt()) {
		t.Error("createdAt must not change on update")
	}
}

func TestWorkspaceRepository_SavesAndPrunesBoards(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewWorkspaceRepository(testDB)
	ctx := context.Background()
	ws := seedWorkspace(t, testDB)

	keep := newBoardWithCards(t, ws)
	drop := newBoardWithCards(t, ws)
	if err := ws.AddBoard(keep); err != nil {
		t.Fatalf("AddBoard: %v", err)
	}
	if err := ws.AddBoard(drop); err != nil {
		t.Fatalf("AddBoard: %v", err)
	}

	saved, err := repo.Save(ctx, ws)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(saved.Boards()) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(saved.Boards()))
	}

	if _, err := saved.RemoveBoard(drop.ID()); err != nil {
		t.Fatalf("RemoveBoard: %v", err)
	}
	saved, err = repo.Save(ctx, saved)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	boards := saved.Boards()
	if len(boards) != 1 || boards[0].ID() != keep.ID() {
		t.Fatalf("expected only the kept board, got %d boards", len(boards))
	}
	if boards[0].CardCount() != 2 {
		t.Errorf("kept board should retain its cards, got %d", boards[0].CardCount())
	}

	exists, _ := NewBoardRepository(testDB).ExistsByID(ctx, drop.ID())
	if exists {
		t.Error("removed board should be deleted")
	}
}

func TestWorkspaceRepository_FindAllAndDelete(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewWorkspaceRepository(testDB)
	ctx := context.Background()

	first := seedWorkspace(t, testDB)
	second := seedWorkspace(t, testDB)
	if _, err := NewBoardRepository(testDB).Save(ctx, newBoardWithCards(t, second)); err != nil {
		t.Fatalf("save board: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(all))
	}

	if err := repo.DeleteByID(ctx, second.ID()); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if exists, _ := repo.ExistsByID(ctx, second.ID()); exists {
		t.Error("workspace should be deleted")
	}
	if exists, _ := repo.ExistsByID(ctx, first.ID()); !exists {
		t.Error("other workspace should remain")
	}

	var boards int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM boards").Scan(&boards); err != nil {
		t.Fatalf("count boards: %v", err)
	}
	if boards != 0 {
		t.Errorf("boards should be deleted by cascade, %d remain", boards)
	}
}

func TestWorkspaceRepository_FindByIDNotFound(t *testing.T) {
	repo := NewWorkspaceRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), id.NewWorkspaceID())
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}
