package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/workspace"
	apperrors "github.com/example/kanban/internal/errors"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// WorkspaceServiceImpl implements the WorkspaceService interface.
type WorkspaceServiceImpl struct {
	workspaceRepo secondary.WorkspaceRepository
	logger        *log.Logger
}

// NewWorkspaceService creates a new WorkspaceService with injected dependencies.
func NewWorkspaceService(workspaceRepo secondary.WorkspaceRepository, logger *log.Logger) *WorkspaceServiceImpl {
	return &WorkspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// CreateWorkspace creates a new, empty workspace.
func (s *WorkspaceServiceImpl) CreateWorkspace(ctx context.Context, req primary.CreateWorkspaceRequest) (_ *workspace.Workspace, err error) {
	ctx, op := begin(ctx, s.logger, "WorkspaceService.CreateWorkspace")
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	ws, err := workspace.NewWorkspace(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	saved, err := s.workspaceRepo.Save(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	entry(ctx, s.logger, log.Fields{"workspace_id": saved.ID().String()}).Info("workspace created")
	return saved, nil
}

// ListWorkspaces lists all workspaces.
func (s *WorkspaceServiceImpl) ListWorkspaces(ctx context.Context) (_ []*workspace.Workspace, err error) {
	ctx, op := begin(ctx, s.logger, "WorkspaceService.ListWorkspaces")
	defer func() { op.end(ctx, err) }()

	workspaces, err := s.workspaceRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// GetWorkspace retrieves a workspace by ID.
func (s *WorkspaceServiceImpl) GetWorkspace(ctx context.Context, workspaceID string) (_ *workspace.Workspace, err error) {
	ctx, op := begin(ctx, s.logger, "WorkspaceService.GetWorkspace", attribute.String("kanban.workspace_id", workspaceID))
	defer func() { op.end(ctx, err) }()

	wsID, err := id.ParseWorkspaceID(workspaceID)
	if err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindByID(ctx, wsID)
}

// UpdateWorkspace updates a workspace's name and/or description.
func (s *WorkspaceServiceImpl) UpdateWorkspace(ctx context.Context, req primary.UpdateWorkspaceRequest) (_ *workspace.Workspace, err error) {
	ctx, op := begin(ctx, s.logger, "WorkspaceService.UpdateWorkspace", attribute.String("kanban.workspace_id", req.WorkspaceID))
	defer func() { op.end(ctx, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	wsID, err := id.ParseWorkspaceID(req.WorkspaceID)
	if err != nil {
		return nil, err
	}

	ws, err := s.workspaceRepo.FindByID(ctx, wsID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := ws.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		ws.UpdateDescription(req.Description)
	}

	saved, err := s.workspaceRepo.Save(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	entry(ctx, s.logger, log.Fields{"workspace_id": saved.ID().String()}).Info("workspace updated")
	return saved, nil
}

// DeleteWorkspace deletes a workspace together with its boards.
func (s *WorkspaceServiceImpl) DeleteWorkspace(ctx context.Context, workspaceID string) (err error) {
	ctx, op := begin(ctx, s.logger, "WorkspaceService.DeleteWorkspace", attribute.String("kanban.workspace_id", workspaceID))
	defer func() { op.end(ctx, err) }()

	wsID, err := id.ParseWorkspaceID(workspaceID)
	if err != nil {
		return err
	}

	exists, err := s.workspaceRepo.ExistsByID(ctx, wsID)
	if err != nil {
		return fmt.Errorf("failed to check workspace: %w", err)
	}
	if !exists {
		return apperrors.NotFoundf("workspace '%s' not found", wsID)
	}

	if err := s.workspaceRepo.DeleteByID(ctx, wsID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	entry(ctx, s.logger, log.Fields{"workspace_id": wsID.String()}).Info("workspace deleted")
	return nil
}
