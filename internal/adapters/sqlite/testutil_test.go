package sqlite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/workspace"
	"github.com/example/kanban/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func strPtr(s string) *string { return &s }

// seedWorkspace stores an empty workspace and returns it.
func seedWorkspace(t *testing.T, testDB *sql.DB) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.NewWorkspace("Engineering", strPtr("all teams"))
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	saved, err := NewWorkspaceRepository(testDB).Save(context.Background(), ws)
	if err != nil {
		t.Fatalf("save workspace: %v", err)
	}
	return saved
}

// newBoardWithCards builds (but does not save) a board with columns
// "To Do" [A, B] and "Done" [].
func newBoardWithCards(t *testing.T, ws *workspace.Workspace) *board.Board {
	t.Helper()
	b, err := board.NewBoard(ws.ID(), "Sprint", nil)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	todo, _ := board.NewColumn("To Do", 0)
	done, _ := board.NewColumn("Done", 1)
	if err := b.AddColumn(todo); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if err := b.AddColumn(done); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	for _, title := range []string{"A", "B"} {
		card, _ := board.NewCard(title, nil, 0)
		if err := b.AddCardToColumn(todo.ID(), card); err != nil {
			t.Fatalf("AddCardToColumn: %v", err)
		}
	}
	return b
}
