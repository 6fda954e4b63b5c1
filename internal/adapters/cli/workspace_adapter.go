// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/kanban/internal/ports/primary"
)

const timeLayout = "2006-01-02 15:04"

// WorkspaceAdapter translates CLI operations to WorkspaceService calls.
type WorkspaceAdapter struct {
	service primary.WorkspaceService
	out     io.Writer
}

// NewWorkspaceAdapter creates a new WorkspaceAdapter with the given service.
func NewWorkspaceAdapter(service primary.WorkspaceService, out io.Writer) *WorkspaceAdapter {
	return &WorkspaceAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new workspace.
func (a *WorkspaceAdapter) Create(ctx context.Context, name string, description *string) error {
	ws, err := a.service.CreateWorkspace(ctx, primary.CreateWorkspaceRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Created workspace %s: %s\n", success(), ws.ID(), ws.Name())
	return nil
}

// List lists all workspaces.
func (a *WorkspaceAdapter) List(ctx context.Context) error {
	workspaces, err := a.service.ListWorkspaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	if len(workspaces) == 0 {
		fmt.Fprintln(a.out, "No workspaces found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBOARDS\tUPDATED")
	fmt.Fprintln(w, "--\t----\t------\t-------")
	for _, ws := range workspaces {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", ws.ID(), ws.Name(), len(ws.Boards()), ws.UpdatedAt().Local().Format(timeLayout))
	}
	return w.Flush()
}

// Show displays a workspace and its boards.
func (a *WorkspaceAdapter) Show(ctx context.Context, workspaceID string) error {
	ws, err := a.service.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nWorkspace: %s\n", ws.ID())
	fmt.Fprintf(a.out, "Name:    %s\n", heading(ws.Name()))
	if d := ws.Description(); d != nil && *d != "" {
		fmt.Fprintf(a.out, "Description: %s\n", *d)
	}
	fmt.Fprintf(a.out, "Created: %s\n", ws.CreatedAt().Local().Format(timeLayout))
	fmt.Fprintf(a.out, "Updated: %s\n", ws.UpdatedAt().Local().Format(timeLayout))

	boards := ws.Boards()
	if len(boards) > 0 {
		fmt.Fprintln(a.out, "\nBoards:")
		for _, b := range boards {
			fmt.Fprintf(a.out, "  - %s: %s (%d columns, %d cards)\n", b.ID(), b.Name(), len(b.Columns()), b.CardCount())
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// Update changes a workspace's name and/or description. Nil leaves a field unchanged.
func (a *WorkspaceAdapter) Update(ctx context.Context, workspaceID string, name, description *string) error {
	if name == nil && description == nil {
		return fmt.Errorf("must specify at least --name or --description")
	}

	ws, err := a.service.UpdateWorkspace(ctx, primary.UpdateWorkspaceRequest{
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Workspace %s updated\n", success(), ws.ID())
	return nil
}

// Delete deletes a workspace and its boards.
func (a *WorkspaceAdapter) Delete(ctx context.Context, workspaceID string) error {
	if err := a.service.DeleteWorkspace(ctx, workspaceID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Deleted workspace %s\n", success(), workspaceID)
	return nil
}
