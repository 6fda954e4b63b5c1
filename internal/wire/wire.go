// Package wire provides dependency injection for the kanban application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/example/kanban/internal/adapters/cache"
	cliadapter "github.com/example/kanban/internal/adapters/cli"
	"github.com/example/kanban/internal/adapters/rest"
	"github.com/example/kanban/internal/adapters/sqlite"
	"github.com/example/kanban/internal/app"
	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/db"
	"github.com/example/kanban/internal/logging"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

var (
	configPath string

	cfg              *config.Config
	logger           *log.Logger
	database         *sql.DB
	redisClient      *redis.Client
	workspaceService primary.WorkspaceService
	boardService     primary.BoardService

	once    sync.Once
	initErr error
)

// SetConfigPath selects the config file. It must be called before any other
// function in this package; an empty path means the default location.
func SetConfigPath(path string) {
	configPath = path
}

// WorkspaceService returns the singleton WorkspaceService instance.
func WorkspaceService() (primary.WorkspaceService, error) {
	once.Do(initServices)
	return workspaceService, initErr
}

// BoardService returns the singleton BoardService instance.
func BoardService() (primary.BoardService, error) {
	once.Do(initServices)
	return boardService, initErr
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, initErr = config.Load(configPath)
	if initErr != nil {
		return
	}

	logger, initErr = logging.New(cfg.Log)
	if initErr != nil {
		return
	}

	database, initErr = db.Open(cfg.Database.Path, logger)
	if initErr != nil {
		initErr = fmt.Errorf("failed to initialize database: %w", initErr)
		return
	}

	// Create repository adapters (secondary ports)
	var workspaceRepo secondary.WorkspaceRepository = sqlite.NewWorkspaceRepository(database)
	var boardRepo secondary.BoardRepository = sqlite.NewBoardRepository(database)

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			initErr = fmt.Errorf("invalid redis.url: %w", err)
			return
		}
		redisClient = redis.NewClient(opts)
		boardCache := cache.NewBoardCache(boardRepo, redisClient, cfg.Redis.TTL, logger)
		boardRepo = boardCache
		workspaceRepo = cache.NewWorkspaceRepository(workspaceRepo, boardCache)
		logger.WithField("ttl", cfg.Redis.TTL).Debug("board cache enabled")
	}

	// Create services (primary ports implementation)
	workspaceService = app.NewWorkspaceService(workspaceRepo, logger)
	boardService = app.NewBoardService(boardRepo, workspaceRepo, logger)
}

// Server builds the REST server. The returned cleanup releases the
// authenticator's background refresh.
func Server() (*rest.Server, func(), error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, nil, initErr
	}

	auth, err := rest.NewAuthenticator(cfg.Auth, logger)
	if err != nil {
		return nil, nil, err
	}

	srv := rest.NewServer(cfg.HTTP, rest.Dependencies{
		Workspaces: workspaceService,
		Boards:     boardService,
		Auth:       auth,
		DB:         database,
	}, logger)
	return srv, auth.Close, nil
}

// Close releases the database and Redis connections.
func Close() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if database != nil {
		_ = database.Close()
	}
}

// WorkspaceAdapterWithOutput returns a new WorkspaceAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func WorkspaceAdapterWithOutput(out io.Writer) (*cliadapter.WorkspaceAdapter, error) {
	service, err := WorkspaceService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewWorkspaceAdapter(service, out), nil
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
func BoardAdapterWithOutput(out io.Writer) (*cliadapter.BoardAdapter, error) {
	service, err := BoardService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewBoardAdapter(service, out), nil
}
