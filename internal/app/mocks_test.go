package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	apperrors "github.com/example/kanban/internal/errors"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

var (
	_ primary.BoardService     = (*BoardServiceImpl)(nil)
	_ primary.WorkspaceService = (*WorkspaceServiceImpl)(nil)

	_ secondary.BoardRepository     = (*mockBoardRepository)(nil)
	_ secondary.WorkspaceRepository = (*mockWorkspaceRepository)(nil)
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockBoardRepository implements secondary.BoardRepository for testing.
type mockBoardRepository struct {
	boards    map[id.BoardID]*board.Board
	saveErr   error
	findErr   error
	deleteErr error
	saveCalls int
}

func newMockBoardRepository() *mockBoardRepository {
	return &mockBoardRepository{boards: make(map[id.BoardID]*board.Board)}
}

func (m *mockBoardRepository) Save(ctx context.Context, b *board.Board) (*board.Board, error) {
	m.saveCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.boards[b.ID()] = b
	return b, nil
}

func (m *mockBoardRepository) FindByID(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if b, ok := m.boards[boardID]; ok {
		return b, nil
	}
	return nil, apperrors.NotFoundf("board '%s' not found", boardID)
}

func (m *mockBoardRepository) FindByWorkspaceID(ctx context.Context, workspaceID id.WorkspaceID) ([]*board.Board, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*board.Board
	for _, b := range m.boards {
		if b.WorkspaceID() == workspaceID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBoardRepository) ExistsByID(ctx context.Context, boardID id.BoardID) (bool, error) {
	_, ok := m.boards[boardID]
	return ok, nil
}

func (m *mockBoardRepository) DeleteByID(ctx context.Context, boardID id.BoardID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.boards, boardID)
	return nil
}

// mockWorkspaceRepository implements secondary.WorkspaceRepository for testing.
type mockWorkspaceRepository struct {
	workspaces map[id.WorkspaceID]*workspace.Workspace
	saveErr    error
	existsErr  error
	saveCalls  int
}

func newMockWorkspaceRepository() *mockWorkspaceRepository {
	return &mockWorkspaceRepository{workspaces: make(map[id.WorkspaceID]*workspace.Workspace)}
}

func (m *mockWorkspaceRepository) Save(ctx context.Context, ws *workspace.Workspace) (*workspace.Workspace, error) {
	m.saveCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.workspaces[ws.ID()] = ws
	return ws, nil
}

func (m *mockWorkspaceRepository) FindByID(ctx context.Context, workspaceID id.WorkspaceID) (*workspace.Workspace, error) {
	if ws, ok := m.workspaces[workspaceID]; ok {
		return ws, nil
	}
	return nil, apperrors.NotFoundf("workspace '%s' not found", workspaceID)
}

func (m *mockWorkspaceRepository) FindAll(ctx context.Context) ([]*workspace.Workspace, error) {
	result := make([]*workspace.Workspace, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		result = append(result, ws)
	}
	return result, nil
}

func (m *mockWorkspaceRepository) ExistsByID(ctx context.Context, workspaceID id.WorkspaceID) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.workspaces[workspaceID]
	return ok, nil
}

func (m *mockWorkspaceRepository) DeleteByID(ctx context.Context, workspaceID id.WorkspaceID) error {
	delete(m.workspaces, workspaceID)
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func newTestLogger() (*log.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return logger, hook
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// seedWorkspace stores a workspace and returns it.
func seedWorkspace(t *testing.T, repo *mockWorkspaceRepository) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.NewWorkspace("Engineering", nil)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	repo.workspaces[ws.ID()] = ws
	return ws
}

// seedBoard stores a board with columns "To Do" and "Done"; "To Do" holds one card.
func seedBoard(t *testing.T, repo *mockBoardRepository, wsID id.WorkspaceID) (*board.Board, *board.Column, *board.Column, *board.Card) {
	t.Helper()
	b, err := board.NewBoard(wsID, "Sprint", nil)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	todo, _ := board.NewColumn("To Do", 0)
	done, _ := board.NewColumn("Done", 1)
	_ = b.AddColumn(todo)
	_ = b.AddColumn(done)
	card, _ := board.NewCard("Ship it", nil, 0)
	if err := b.AddCardToColumn(todo.ID(), card); err != nil {
		t.Fatalf("AddCardToColumn: %v", err)
	}
	repo.boards[b.ID()] = b
	return b, todo, done, card
}
