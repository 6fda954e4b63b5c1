package workspace

import (
	"testing"
	"time"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/timestamp"
	apperrors "github.com/example/kanban/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestNewWorkspace(t *testing.T) {
	tests := []struct {
		name    string
		wsName  string
		wantErr bool
	}{
		{"valid", "Engineering", false},
		{"blank", "   ", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := NewWorkspace(tt.wsName, nil)
			if tt.wantErr {
				if !apperrors.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(ws.Boards()) != 0 {
				t.Error("new workspace should have no boards")
			}
			if !ws.CreatedAt().Equal(ws.UpdatedAt()) {
				t.Error("new workspace should have createdAt == updatedAt")
			}
		})
	}
}

func TestWorkspaceBoards(t *testing.T) {
	restore := timestamp.SetClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })
	defer restore()

	ws, _ := NewWorkspace("Engineering", nil)
	b, _ := board.NewBoard(ws.ID(), "Sprint", nil)
	foreign, _ := board.NewBoard(id.NewWorkspaceID(), "Elsewhere", nil)

	before := ws.UpdatedAt()
	if err := ws.AddBoard(b); err != nil {
		t.Fatalf("AddBoard: %v", err)
	}
	if !ws.UpdatedAt().After(before) {
		t.Error("AddBoard should refresh updatedAt")
	}
	if err := ws.AddBoard(b); !apperrors.IsIllegalState(err) {
		t.Errorf("duplicate board should be illegal state, got %v", err)
	}
	if err := ws.AddBoard(foreign); !apperrors.IsIllegalState(err) {
		t.Errorf("board of another workspace should be illegal state, got %v", err)
	}
	if ws.FindBoard(b.ID()) != b {
		t.Error("FindBoard should return the added board")
	}

	removed, err := ws.RemoveBoard(b.ID())
	if err != nil || removed != b {
		t.Fatalf("RemoveBoard: board=%v err=%v", removed, err)
	}
	if _, err := ws.RemoveBoard(b.ID()); !apperrors.IsNotFound(err) {
		t.Errorf("second removal should be not found, got %v", err)
	}
}

func TestWorkspaceUpdates(t *testing.T) {
	ws, _ := NewWorkspace("Engineering", strPtr("all teams"))

	if err := ws.UpdateName(" "); !apperrors.IsValidation(err) {
		t.Errorf("blank name should be rejected, got %v", err)
	}
	if err := ws.UpdateName("Platform"); err != nil || ws.Name() != "Platform" {
		t.Errorf("UpdateName failed: err=%v name=%q", err, ws.Name())
	}
	ws.UpdateDescription(nil)
	if ws.Description() != nil {
		t.Error("nil description should clear")
	}
}

func TestReconstituteWorkspace(t *testing.T) {
	ws, _ := NewWorkspace("Engineering", strPtr("desc"))
	b, _ := board.NewBoard(ws.ID(), "Sprint", nil)
	_ = ws.AddBoard(b)

	rebuilt, err := ReconstituteWorkspace(ws.ID(), ws.Name(), ws.Description(), ws.Boards(), ws.CreatedAt(), ws.UpdatedAt())
	if err != nil {
		t.Fatalf("ReconstituteWorkspace: %v", err)
	}
	if rebuilt.ID() != ws.ID() || rebuilt.Name() != ws.Name() || *rebuilt.Description() != "desc" ||
		len(rebuilt.Boards()) != 1 || !rebuilt.UpdatedAt().Equal(ws.UpdatedAt()) {
		t.Error("reconstituted workspace differs from original")
	}

	if _, err := ReconstituteWorkspace(id.WorkspaceID{}, "x", nil, nil, time.Now(), time.Now()); !apperrors.IsValidation(err) {
		t.Errorf("zero id should be rejected, got %v", err)
	}
}
