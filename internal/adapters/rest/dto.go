package rest

import (
	"time"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/workspace"
)

// Response bodies

type workspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type boardResponse struct {
	ID          string           `json:"id"`
	WorkspaceID string           `json:"workspaceId"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Columns     []columnResponse `json:"columns"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type columnResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Position  int            `json:"position"`
	Cards     []cardResponse `json:"cards"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type cardResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Database string `json:"database"`
}

// Request bodies. A nil pointer on a PATCH body leaves the field unchanged.

type workspaceBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type workspacePatchBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type boardBody struct {
	WorkspaceID string  `json:"workspaceId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type boardPatchBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type columnBody struct {
	Name     string `json:"name"`
	Position *int   `json:"position"`
}

type columnPatchBody struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

type cardBody struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type cardPatchBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type moveCardBody struct {
	SourceColumnID string `json:"sourceColumnId"`
	TargetColumnID string `json:"targetColumnId"`
}

func toWorkspaceResponse(ws *workspace.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:          ws.ID().String(),
		Name:        ws.Name(),
		Description: ws.Description(),
		CreatedAt:   ws.CreatedAt(),
		UpdatedAt:   ws.UpdatedAt(),
	}
}

func toBoardResponse(b *board.Board) boardResponse {
	columns := b.Columns()
	resp := boardResponse{
		ID:          b.ID().String(),
		WorkspaceID: b.WorkspaceID().String(),
		Name:        b.Name(),
		Description: b.Description(),
		Columns:     make([]columnResponse, 0, len(columns)),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
	for _, col := range columns {
		cards := col.Cards()
		cr := columnResponse{
			ID:        col.ID().String(),
			Name:      col.Name(),
			Position:  col.Position(),
			Cards:     make([]cardResponse, 0, len(cards)),
			CreatedAt: col.CreatedAt(),
			UpdatedAt: col.UpdatedAt(),
		}
		for _, card := range cards {
			cr.Cards = append(cr.Cards, cardResponse{
				ID:          card.ID().String(),
				Title:       card.Title(),
				Description: card.Description(),
				Position:    card.Position(),
				CreatedAt:   card.CreatedAt(),
				UpdatedAt:   card.UpdatedAt(),
			})
		}
		resp.Columns = append(resp.Columns, cr)
	}
	return resp
}
