// Package rest exposes the kanban use cases over HTTP with Echo.
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/version"
)

// Pinger reports database liveness. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies are the collaborators the server routes to. A nil Auth disables
// authentication.
type Dependencies struct {
	Workspaces primary.WorkspaceService
	Boards     primary.BoardService
	Auth       *Authenticator
	DB         Pinger
}

// Server is the HTTP entry point.
type Server struct {
	echo   *echo.Echo
	cfg    config.HTTPConfig
	logger *log.Logger
}

// NewServer builds the Echo instance and registers all routes.
func NewServer(cfg config.HTTPConfig, deps Dependencies, logger *log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestContext())
	e.Use(requestLogger(logger))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	register(e, deps)

	return &Server{echo: e, cfg: cfg, logger: logger}
}

func register(e *echo.Echo, deps Dependencies) {
	e.GET("/healthz", healthz(deps.DB))

	var guards []echo.MiddlewareFunc
	if deps.Auth != nil {
		guards = append(guards, requireBearer(deps.Auth))
	}
	api := e.Group("/api/v1", guards...)

	h := &handlers{workspaces: deps.Workspaces, boards: deps.Boards}

	api.GET("/workspaces", h.listWorkspaces)
	api.POST("/workspaces", h.createWorkspace)
	api.GET("/workspaces/:workspaceId", h.getWorkspace)
	api.PATCH("/workspaces/:workspaceId", h.updateWorkspace)
	api.DELETE("/workspaces/:workspaceId", h.deleteWorkspace)
	api.GET("/workspaces/:workspaceId/boards", h.listBoards)

	api.POST("/boards", h.createBoard)
	api.GET("/boards/:boardId", h.getBoard)
	api.PATCH("/boards/:boardId", h.updateBoard)
	api.DELETE("/boards/:boardId", h.deleteBoard)
	api.PATCH("/boards/:boardId/cards/:cardId/move", h.moveCard)

	api.POST("/boards/:boardId/columns", h.createColumn)
	api.PATCH("/boards/:boardId/columns/:columnId", h.updateColumn)
	api.DELETE("/boards/:boardId/columns/:columnId", h.deleteColumn)

	api.POST("/boards/:boardId/columns/:columnId/cards", h.createCard)
	api.PATCH("/boards/:boardId/columns/:columnId/cards/:cardId", h.updateCard)
	api.DELETE("/boards/:boardId/columns/:columnId/cards/:cardId", h.deleteCard)
}

func healthz(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		info := version.Get()
		resp := healthResponse{Status: "ok", Version: info.Release, Commit: info.Commit, Database: "ok"}
		if db != nil {
			if err := db.PingContext(c.Request().Context()); err != nil {
				resp.Status = "degraded"
				resp.Database = err.Error()
				return c.JSON(http.StatusServiceUnavailable, resp)
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("http server listening")
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
