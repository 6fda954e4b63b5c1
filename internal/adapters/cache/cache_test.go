package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	apperrors "github.com/example/kanban/internal/errors"
	"github.com/example/kanban/internal/ports/secondary"
)

var (
	_ secondary.BoardRepository     = (*BoardCache)(nil)
	_ secondary.WorkspaceRepository = (*WorkspaceRepository)(nil)
)

type stubBoards struct {
	saveFn     func(ctx context.Context, b *board.Board) (*board.Board, error)
	findByIDFn func(ctx context.Context, boardID id.BoardID) (*board.Board, error)
	deleteFn   func(ctx context.Context, boardID id.BoardID) error
}

func (s *stubBoards) Save(ctx context.Context, b *board.Board) (*board.Board, error) {
	if s.saveFn == nil {
		return nil, errors.New("unexpected Save call")
	}
	return s.saveFn(ctx, b)
}

func (s *stubBoards) FindByID(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
	if s.findByIDFn == nil {
		return nil, errors.New("unexpected FindByID call")
	}
	return s.findByIDFn(ctx, boardID)
}

func (s *stubBoards) FindByWorkspaceID(ctx context.Context, workspaceID id.WorkspaceID) ([]*board.Board, error) {
	return nil, errors.New("unexpected FindByWorkspaceID call")
}

func (s *stubBoards) ExistsByID(ctx context.Context, boardID id.BoardID) (bool, error) {
	return false, errors.New("unexpected ExistsByID call")
}

func (s *stubBoards) DeleteByID(ctx context.Context, boardID id.BoardID) error {
	if s.deleteFn == nil {
		return errors.New("unexpected DeleteByID call")
	}
	return s.deleteFn(ctx, boardID)
}

type stubWorkspaces struct {
	secondary.WorkspaceRepository
	stored  *workspace.Workspace
	deleted bool
}

func (s *stubWorkspaces) FindByID(ctx context.Context, workspaceID id.WorkspaceID) (*workspace.Workspace, error) {
	if s.stored == nil || s.stored.ID() != workspaceID {
		return nil, apperrors.NotFoundf("workspace '%s' not found", workspaceID)
	}
	return s.stored, nil
}

func (s *stubWorkspaces) Save(ctx context.Context, ws *workspace.Workspace) (*workspace.Workspace, error) {
	s.stored = ws
	return ws, nil
}

func (s *stubWorkspaces) DeleteByID(ctx context.Context, workspaceID id.WorkspaceID) error {
	s.deleted = true
	return nil
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newLogger() *log.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func sampleBoard(t *testing.T) *board.Board {
	t.Helper()
	desc := "sprint board"
	b, err := board.NewBoard(id.NewWorkspaceID(), "Sprint", &desc)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	col, err := board.NewColumn("Todo", 0)
	if err != nil {
		t.Fatalf("new column: %v", err)
	}
	if err := b.AddColumn(col); err != nil {
		t.Fatalf("add column: %v", err)
	}
	card, err := board.NewCard("Write code", nil, 0)
	if err != nil {
		t.Fatalf("new card: %v", err)
	}
	if err := b.AddCardToColumn(col.ID(), card); err != nil {
		t.Fatalf("add card: %v", err)
	}
	return b
}

func TestBoardCacheFindByIDMissThenHit(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	expected := sampleBoard(t)

	var calls int
	cache := NewBoardCache(&stubBoards{
		findByIDFn: func(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
			calls++
			if boardID != expected.ID() {
				t.Fatalf("unexpected board id: %s", boardID)
			}
			return expected, nil
		},
	}, client, time.Minute, newLogger())

	got, err := cache.FindByID(ctx, expected.ID())
	if err != nil {
		t.Fatalf("find board: %v", err)
	}
	if got != expected {
		t.Fatal("miss should return the backing repository's board")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call to backend, got %d", calls)
	}
	if ttl := mr.TTL(boardCacheKey(expected.ID())); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}

	cached, err := cache.FindByID(ctx, expected.ID())
	if err != nil {
		t.Fatalf("find board from cache: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected cached read, backend called %d times", calls)
	}
	assertSameBoard(t, cached, expected)
}

func TestBoardCacheSaveEvicts(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	b := sampleBoard(t)

	var calls int
	cache := NewBoardCache(&stubBoards{
		findByIDFn: func(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
			calls++
			return b, nil
		},
		saveFn: func(ctx context.Context, saved *board.Board) (*board.Board, error) {
			return saved, nil
		},
	}, client, time.Minute, newLogger())

	if _, err := cache.FindByID(ctx, b.ID()); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if !mr.Exists(boardCacheKey(b.ID())) {
		t.Fatal("expected board to be cached")
	}

	if _, err := cache.Save(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mr.Exists(boardCacheKey(b.ID())) {
		t.Fatal("save should evict the cached board")
	}

	if _, err := cache.FindByID(ctx, b.ID()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected backend reload after eviction, got %d calls", calls)
	}
}

func TestBoardCacheWriteDuringLoadIsNotCached(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	stale := sampleBoard(t)
	fresh, err := snapshotBoard(stale).restore()
	if err != nil {
		t.Fatalf("copy board: %v", err)
	}
	if err := fresh.UpdateName("Sprint (renamed)"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	var (
		cache *BoardCache
		calls int
	)
	cache = NewBoardCache(&stubBoards{
		findByIDFn: func(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
			calls++
			if calls > 1 {
				return fresh, nil
			}
			// A writer commits after this reader loaded the old row.
			if _, err := cache.Save(ctx, fresh); err != nil {
				t.Fatalf("concurrent save: %v", err)
			}
			return stale, nil
		},
		saveFn: func(ctx context.Context, saved *board.Board) (*board.Board, error) {
			return saved, nil
		},
	}, client, time.Minute, newLogger())

	got, err := cache.FindByID(ctx, stale.ID())
	if err != nil {
		t.Fatalf("find board: %v", err)
	}
	if got != stale {
		t.Fatal("reader should still get what it loaded")
	}
	if mr.Exists(boardCacheKey(stale.ID())) {
		t.Fatal("state read before a concurrent write must not be cached")
	}

	got, err = cache.FindByID(ctx, stale.ID())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != fresh || calls != 2 {
		t.Fatalf("expected backend reload of the fresh board, calls=%d", calls)
	}
	if !mr.Exists(boardCacheKey(stale.ID())) {
		t.Fatal("an undisturbed load should be cached")
	}
}

func TestBoardCacheEvictBumpsGeneration(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	b := sampleBoard(t)

	cache := NewBoardCache(&stubBoards{}, client, time.Minute, newLogger())

	cache.Evict(ctx, b.ID())
	cache.Evict(ctx, b.ID())

	gen, err := mr.Get(boardGenerationKey(b.ID()))
	if err != nil {
		t.Fatalf("read generation: %v", err)
	}
	if gen != "2" {
		t.Fatalf("generation = %s, want 2", gen)
	}
	if ttl := mr.TTL(boardGenerationKey(b.ID())); ttl <= 0 || ttl > generationTTL {
		t.Fatalf("unexpected generation TTL: %v", ttl)
	}
}

func TestBoardCacheSaveErrorStillEvicts(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	b := sampleBoard(t)

	saveErr := errors.New("disk full")
	cache := NewBoardCache(&stubBoards{
		saveFn: func(ctx context.Context, saved *board.Board) (*board.Board, error) {
			return nil, saveErr
		},
	}, client, time.Minute, newLogger())

	if err := mr.Set(boardCacheKey(b.ID()), "{}"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if _, err := cache.Save(ctx, b); !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if mr.Exists(boardCacheKey(b.ID())) {
		t.Fatal("failed save should still evict")
	}
}

func TestBoardCacheDeleteEvicts(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	b := sampleBoard(t)

	var deleted id.BoardID
	cache := NewBoardCache(&stubBoards{
		deleteFn: func(ctx context.Context, boardID id.BoardID) error {
			deleted = boardID
			return nil
		},
	}, client, time.Minute, newLogger())

	if err := mr.Set(boardCacheKey(b.ID()), "{}"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if err := cache.DeleteByID(ctx, b.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != b.ID() {
		t.Fatalf("backend delete got %s", deleted)
	}
	if mr.Exists(boardCacheKey(b.ID())) {
		t.Fatal("delete should evict the cached board")
	}
}

func TestBoardCacheCorruptEntryFallsBack(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	b := sampleBoard(t)

	var calls int
	cache := NewBoardCache(&stubBoards{
		findByIDFn: func(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
			calls++
			return b, nil
		},
	}, client, time.Minute, newLogger())

	if err := mr.Set(boardCacheKey(b.ID()), "not-json"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	got, err := cache.FindByID(ctx, b.ID())
	if err != nil {
		t.Fatalf("find board: %v", err)
	}
	if got != b || calls != 1 {
		t.Fatalf("expected fallback to backend, calls=%d", calls)
	}
}

func TestBoardCacheRedisFailureFallsBack(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	b := sampleBoard(t)

	logger, hook := test.NewNullLogger()
	cache := NewBoardCache(&stubBoards{
		findByIDFn: func(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
			return b, nil
		},
	}, client, time.Minute, logger)

	mr.Close()

	got, err := cache.FindByID(ctx, b.ID())
	if err != nil {
		t.Fatalf("find board with redis down: %v", err)
	}
	if got != b {
		t.Fatal("expected backend board")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != log.WarnLevel {
		t.Fatal("expected a warning about the cache read")
	}
}

func TestBoardCacheNotFoundIsNotCached(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	missing := id.NewBoardID()

	cache := NewBoardCache(&stubBoards{
		findByIDFn: func(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
			return nil, apperrors.NotFoundf("board '%s' not found", boardID)
		},
	}, client, time.Minute, newLogger())

	if _, err := cache.FindByID(ctx, missing); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if mr.Exists(boardCacheKey(missing)) {
		t.Fatal("misses must not be cached")
	}
}

func TestWorkspaceRepositoryDeleteEvictsBoards(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()

	ws, err := workspace.NewWorkspace("Team", nil)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	b, err := board.NewBoard(ws.ID(), "Sprint", nil)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	if err := ws.AddBoard(b); err != nil {
		t.Fatalf("add board: %v", err)
	}

	boards := NewBoardCache(&stubBoards{}, client, time.Minute, newLogger())
	base := &stubWorkspaces{stored: ws}
	repo := NewWorkspaceRepository(base, boards)

	if err := mr.Set(boardCacheKey(b.ID()), "{}"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if err := repo.DeleteByID(ctx, ws.ID()); err != nil {
		t.Fatalf("delete workspace: %v", err)
	}
	if !base.deleted {
		t.Fatal("expected backend delete")
	}
	if mr.Exists(boardCacheKey(b.ID())) {
		t.Fatal("workspace delete should evict its boards")
	}
}

func TestWorkspaceRepositorySaveEvictsPrunedBoards(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()

	ws, err := workspace.NewWorkspace("Team", nil)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	b, err := board.NewBoard(ws.ID(), "Sprint", nil)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	if err := ws.AddBoard(b); err != nil {
		t.Fatalf("add board: %v", err)
	}

	boards := NewBoardCache(&stubBoards{}, client, time.Minute, newLogger())
	repo := NewWorkspaceRepository(&stubWorkspaces{stored: ws}, boards)

	if err := mr.Set(boardCacheKey(b.ID()), "{}"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	pruned, err := workspace.ReconstituteWorkspace(ws.ID(), ws.Name(), nil, nil, ws.CreatedAt(), ws.UpdatedAt())
	if err != nil {
		t.Fatalf("reconstitute: %v", err)
	}
	if _, err := repo.Save(ctx, pruned); err != nil {
		t.Fatalf("save workspace: %v", err)
	}
	if mr.Exists(boardCacheKey(b.ID())) {
		t.Fatal("boards dropped from the workspace should be evicted")
	}
}

func assertSameBoard(t *testing.T, got, want *board.Board) {
	t.Helper()
	if got.ID() != want.ID() || got.WorkspaceID() != want.WorkspaceID() || got.Name() != want.Name() {
		t.Fatalf("board header mismatch: got %s/%s", got.ID(), got.Name())
	}
	if !got.CreatedAt().Equal(want.CreatedAt()) || !got.UpdatedAt().Equal(want.UpdatedAt()) {
		t.Fatal("board timestamps mismatch")
	}
	gotCols, wantCols := got.Columns(), want.Columns()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("got %d columns, want %d", len(gotCols), len(wantCols))
	}
	for i := range wantCols {
		if gotCols[i].ID() != wantCols[i].ID() || gotCols[i].Name() != wantCols[i].Name() {
			t.Fatalf("column %d mismatch", i)
		}
		gotCards, wantCards := gotCols[i].Cards(), wantCols[i].Cards()
		if len(gotCards) != len(wantCards) {
			t.Fatalf("column %d: got %d cards, want %d", i, len(gotCards), len(wantCards))
		}
		for j := range wantCards {
			if gotCards[j].ID() != wantCards[j].ID() || gotCards[j].Title() != wantCards[j].Title() {
				t.Fatalf("card %d/%d mismatch", i, j)
			}
		}
	}
}
