// Package cache provides a Redis read-through cache in front of the board
// repository.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	"github.com/example/kanban/internal/ports/secondary"
)

// generationTTL only has to outlive an in-flight load.
const generationTTL = 10 * time.Minute

// BoardCache wraps a BoardRepository with Redis-backed caching of FindByID.
// Writes go to the backing repository and evict the cached entry.
type BoardCache struct {
	base   secondary.BoardRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewBoardCache creates a caching BoardRepository using the provided Redis client and TTL.
func NewBoardCache(base secondary.BoardRepository, client *redis.Client, ttl time.Duration, logger *log.Logger) *BoardCache {
	if base == nil {
		panic("cache.NewBoardCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardCache{
		base:   base,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

// Save persists through the backing repository and evicts the cached board.
func (c *BoardCache) Save(ctx context.Context, b *board.Board) (*board.Board, error) {
	saved, err := c.base.Save(ctx, b)
	// A failed transaction may still have raced a reader that cached stale state.
	c.Evict(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// FindByID serves the board from Redis when present, otherwise loads and caches it.
//
// The load runs under WATCH on the board's generation key, which every
// eviction bumps. A write that lands between the load and the SET aborts the
// transaction, so a reader never caches state older than the latest write.
func (c *BoardCache) FindByID(ctx context.Context, boardID id.BoardID) (*board.Board, error) {
	if b, ok := c.load(ctx, boardID); ok {
		return b, nil
	}
	if c.redis == nil || c.ttl == 0 {
		return c.base.FindByID(ctx, boardID)
	}

	var (
		b       *board.Board
		loadErr error
		loaded  bool
	)
	err := c.redis.Watch(ctx, func(tx *redis.Tx) error {
		b, loadErr = c.base.FindByID(ctx, boardID)
		loaded = true
		if loadErr != nil {
			return nil
		}
		return c.store(ctx, tx, b)
	}, boardGenerationKey(boardID))

	if !loaded {
		c.logger.WithError(err).WithField("board_id", boardID.String()).Warn("board cache watch failed")
		return c.base.FindByID(ctx, boardID)
	}
	if loadErr != nil {
		return nil, loadErr
	}
	switch {
	case errors.Is(err, redis.TxFailedErr):
		c.logger.WithField("board_id", boardID.String()).Debug("board changed while loading, not cached")
	case err != nil:
		c.logger.WithError(err).WithField("board_id", boardID.String()).Warn("board cache write failed")
	}
	return b, nil
}

// FindByWorkspaceID is not cached.
func (c *BoardCache) FindByWorkspaceID(ctx context.Context, workspaceID id.WorkspaceID) ([]*board.Board, error) {
	return c.base.FindByWorkspaceID(ctx, workspaceID)
}

// ExistsByID is not cached.
func (c *BoardCache) ExistsByID(ctx context.Context, boardID id.BoardID) (bool, error) {
	return c.base.ExistsByID(ctx, boardID)
}

// DeleteByID deletes through the backing repository and evicts the cached board.
func (c *BoardCache) DeleteByID(ctx context.Context, boardID id.BoardID) error {
	if err := c.base.DeleteByID(ctx, boardID); err != nil {
		return err
	}
	c.Evict(ctx, boardID)
	return nil
}

// Evict drops the cached entries for the given boards and bumps their
// generation so that in-flight loads do not cache what they read.
func (c *BoardCache) Evict(ctx context.Context, boardIDs ...id.BoardID) {
	if c.redis == nil || len(boardIDs) == 0 {
		return
	}
	_, err := c.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, boardID := range boardIDs {
			gen := boardGenerationKey(boardID)
			pipe.Incr(ctx, gen)
			pipe.Expire(ctx, gen, generationTTL)
			pipe.Del(ctx, boardCacheKey(boardID))
		}
		return nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("boards", len(boardIDs)).Warn("board cache eviction failed")
	}
}

func (c *BoardCache) load(ctx context.Context, boardID id.BoardID) (*board.Board, bool) {
	if c.redis == nil {
		return nil, false
	}
	key := boardCacheKey(boardID)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing repository without failing.
			c.logger.WithError(err).WithField("board_id", boardID.String()).Warn("board cache read failed")
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}

	var snap boardSnapshot
	if err := sonic.ConfigStd.Unmarshal(data, &snap); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	b, err := snap.restore()
	if err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return b, true
}

func (c *BoardCache) store(ctx context.Context, tx *redis.Tx, b *board.Board) error {
	data, err := sonic.ConfigStd.Marshal(snapshotBoard(b))
	if err != nil {
		return err
	}
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, boardCacheKey(b.ID()), data, c.ttl)
		return nil
	})
	return err
}

func boardCacheKey(boardID id.BoardID) string {
	return "kanban:board:" + boardID.String()
}

func boardGenerationKey(boardID id.BoardID) string {
	return "kanban:board-gen:" + boardID.String()
}

// WorkspaceRepository wraps a WorkspaceRepository so that workspace writes,
// which also rewrite or cascade-delete boards, evict those boards from the cache.
type WorkspaceRepository struct {
	secondary.WorkspaceRepository
	boards *BoardCache
}

// NewWorkspaceRepository creates the evicting wrapper.
func NewWorkspaceRepository(base secondary.WorkspaceRepository, boards *BoardCache) *WorkspaceRepository {
	return &WorkspaceRepository{WorkspaceRepository: base, boards: boards}
}

// Save persists the workspace and evicts every board it held before or after.
func (r *WorkspaceRepository) Save(ctx context.Context, ws *workspace.Workspace) (*workspace.Workspace, error) {
	affected := boardIDs(ws)
	if stored, err := r.WorkspaceRepository.FindByID(ctx, ws.ID()); err == nil {
		affected = append(affected, boardIDs(stored)...)
	}

	saved, err := r.WorkspaceRepository.Save(ctx, ws)
	r.boards.Evict(ctx, affected...)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteByID deletes the workspace and evicts its boards.
func (r *WorkspaceRepository) DeleteByID(ctx context.Context, workspaceID id.WorkspaceID) error {
	var affected []id.BoardID
	if stored, err := r.WorkspaceRepository.FindByID(ctx, workspaceID); err == nil {
		affected = boardIDs(stored)
	}

	if err := r.WorkspaceRepository.DeleteByID(ctx, workspaceID); err != nil {
		return err
	}
	r.boards.Evict(ctx, affected...)
	return nil
}

func boardIDs(ws *workspace.Workspace) []id.BoardID {
	var ids []id.BoardID
	for _, b := range ws.Boards() {
		ids = append(ids, b.ID())
	}
	return ids
}
