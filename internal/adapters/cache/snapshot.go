package cache

import (
	"time"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/core/id"
)

// boardSnapshot is the cached form of a board aggregate.
type boardSnapshot struct {
	ID          string           `json:"id"`
	WorkspaceID string           `json:"workspaceId"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Columns     []columnSnapshot `json:"columns"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type columnSnapshot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Position  int            `json:"position"`
	Cards     []cardSnapshot `json:"cards"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type cardSnapshot struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func snapshotBoard(b *board.Board) boardSnapshot {
	snap := boardSnapshot{
		ID:          b.ID().String(),
		WorkspaceID: b.WorkspaceID().String(),
		Name:        b.Name(),
		Description: b.Description(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
	for _, col := range b.Columns() {
		cs := columnSnapshot{
			ID:        col.ID().String(),
			Name:      col.Name(),
			Position:  col.Position(),
			CreatedAt: col.CreatedAt(),
			UpdatedAt: col.UpdatedAt(),
		}
		for _, card := range col.Cards() {
			cs.Cards = append(cs.Cards, cardSnapshot{
				ID:          card.ID().String(),
				Title:       card.Title(),
				Description: card.Description(),
				Position:    card.Position(),
				CreatedAt:   card.CreatedAt(),
				UpdatedAt:   card.UpdatedAt(),
			})
		}
		snap.Columns = append(snap.Columns, cs)
	}
	return snap
}

func (s boardSnapshot) restore() (*board.Board, error) {
	columns := make([]*board.Column, 0, len(s.Columns))
	for _, cs := range s.Columns {
		cards := make([]*board.Card, 0, len(cs.Cards))
		for _, k := range cs.Cards {
			cardID, err := id.ParseCardID(k.ID)
			if err != nil {
				return nil, err
			}
			card, err := board.ReconstituteCard(cardID, k.Title, k.Description, k.Position, k.CreatedAt, k.UpdatedAt)
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
		colID, err := id.ParseColumnID(cs.ID)
		if err != nil {
			return nil, err
		}
		col, err := board.ReconstituteColumn(colID, cs.Name, cs.Position, cards, cs.CreatedAt, cs.UpdatedAt)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	boardID, err := id.ParseBoardID(s.ID)
	if err != nil {
		return nil, err
	}
	workspaceID, err := id.ParseWorkspaceID(s.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return board.ReconstituteBoard(boardID, workspaceID, s.Name, s.Description, columns, s.CreatedAt, s.UpdatedAt)
}
