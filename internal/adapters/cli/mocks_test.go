package cli

import (
	"context"
	"testing"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	"github.com/example/kanban/internal/ports/primary"
)

var (
	_ primary.WorkspaceService = (*mockWorkspaceService)(nil)
	_ primary.BoardService     = (*mockBoardService)(nil)
)

// mockWorkspaceService implements primary.WorkspaceService for testing
type mockWorkspaceService struct {
	workspaces []*workspace.Workspace
	err        error

	lastCreateReq primary.CreateWorkspaceRequest
	lastUpdateReq primary.UpdateWorkspaceRequest
	lastDeleteID  string
}

func (m *mockWorkspaceService) CreateWorkspace(ctx context.Context, req primary.CreateWorkspaceRequest) (*workspace.Workspace, error) {
	m.lastCreateReq = req
	if m.err != nil {
		return nil, m.err
	}
	return workspace.NewWorkspace(req.Name, req.Description)
}

func (m *mockWorkspaceService) ListWorkspaces(ctx context.Context) ([]*workspace.Workspace, error) {
	return m.workspaces, m.err
}

func (m *mockWorkspaceService) GetWorkspace(ctx context.Context, workspaceID string) (*workspace.Workspace, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.workspaces[0], nil
}

func (m *mockWorkspaceService) UpdateWorkspace(ctx context.Context, req primary.UpdateWorkspaceRequest) (*workspace.Workspace, error) {
	m.lastUpdateReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.workspaces[0], nil
}

func (m *mockWorkspaceService) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	m.lastDeleteID = workspaceID
	return m.err
}

// mockBoardService implements primary.BoardService for testing. Every
// board-returning call hands back the same fixture board.
type mockBoardService struct {
	board *board.Board
	err   error

	lastCreateColumn primary.CreateColumnRequest
	lastUpdateColumn primary.UpdateColumnRequest
	lastCreateCard   primary.CreateCardRequest
	lastUpdateCard   primary.UpdateCardRequest
	lastMove         primary.MoveCardRequest
	lastDeleteCard   primary.DeleteCardRequest
}

func (m *mockBoardService) result() (*board.Board, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.board, nil
}

func (m *mockBoardService) CreateBoard(ctx context.Context, req primary.CreateBoardRequest) (*board.Board, error) {
	return m.result()
}

func (m *mockBoardService) GetBoard(ctx context.Context, boardID string) (*board.Board, error) {
	return m.result()
}

func (m *mockBoardService) ListBoards(ctx context.Context, workspaceID string) ([]*board.Board, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.board == nil {
		return nil, nil
	}
	return []*board.Board{m.board}, nil
}

func (m *mockBoardService) UpdateBoard(ctx context.Context, req primary.UpdateBoardRequest) (*board.Board, error) {
	return m.result()
}

func (m *mockBoardService) DeleteBoard(ctx context.Context, boardID string) error {
	return m.err
}

func (m *mockBoardService) CreateColumn(ctx context.Context, req primary.CreateColumnRequest) (*board.Board, error) {
	m.lastCreateColumn = req
	return m.result()
}

func (m *mockBoardService) UpdateColumn(ctx context.Context, req primary.UpdateColumnRequest) (*board.Board, error) {
	m.lastUpdateColumn = req
	return m.result()
}

func (m *mockBoardService) DeleteColumn(ctx context.Context, req primary.DeleteColumnRequest) (*board.Board, error) {
	return m.result()
}

func (m *mockBoardService) CreateCard(ctx context.Context, req primary.CreateCardRequest) (*board.Board, error) {
	m.lastCreateCard = req
	return m.result()
}

func (m *mockBoardService) UpdateCard(ctx context.Context, req primary.UpdateCardRequest) (*board.Board, error) {
	m.lastUpdateCard = req
	return m.result()
}

func (m *mockBoardService) DeleteCard(ctx context.Context, req primary.DeleteCardRequest) error {
	m.lastDeleteCard = req
	return m.err
}

func (m *mockBoardService) MoveCard(ctx context.Context, req primary.MoveCardRequest) (*board.Board, error) {
	m.lastMove = req
	return m.result()
}

type boardFixture struct {
	board *board.Board
	todo  *board.Column
	done  *board.Column
	card  *board.Card
}

func newBoardFixture(t *testing.T) boardFixture {
	t.Helper()
	b, err := board.NewBoard(id.NewWorkspaceID(), "Sprint", strPtr("two weeks"))
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	todo, _ := board.NewColumn("Todo", 0)
	done, _ := board.NewColumn("Done", 1)
	if err := b.AddColumn(todo); err != nil {
		t.Fatalf("add column: %v", err)
	}
	if err := b.AddColumn(done); err != nil {
		t.Fatalf("add column: %v", err)
	}
	card, _ := board.NewCard("Write docs", strPtr("README first"), 0)
	if err := b.AddCardToColumn(todo.ID(), card); err != nil {
		t.Fatalf("add card: %v", err)
	}
	return boardFixture{board: b, todo: todo, done: done, card: card}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
