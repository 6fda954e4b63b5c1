package board

import (
	"strings"
	"time"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/timestamp"
	apperrors "github.com/example/kanban/internal/errors"
)

// Column is an ordered lane of cards owned by exactly one Board.
// The order of the cards slice is authoritative; card positions are advisory.
type Column struct {
	id        id.ColumnID
	name      string
	position  int
	cards     []*Card
	createdAt time.Time
	updatedAt time.Time
}

// NewColumn creates an empty column with a fresh id.
func NewColumn(name string, position int) (*Column, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validationf("column name must not be blank")
	}
	if position < 0 {
		return nil, apperrors.Validationf("column position must not be negative, got %d", position)
	}
	now := timestamp.Now()
	return &Column{
		id:        id.NewColumnID(),
		name:      name,
		position:  position,
		cards:     []*Card{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteColumn rebuilds a column and its cards from stored state.
func ReconstituteColumn(columnID id.ColumnID, name string, position int, cards []*Card, createdAt, updatedAt time.Time) (*Column, error) {
	if columnID.IsZero() {
		return nil, apperrors.Validationf("column id is required")
	}
	owned := make([]*Card, 0, len(cards))
	for _, c := range cards {
		if c == nil {
			return nil, apperrors.Validationf("column %s contains a nil card", columnID)
		}
		owned = append(owned, c)
	}
	return &Column{
		id:        columnID,
		name:      name,
		position:  position,
		cards:     owned,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Column) ID() id.ColumnID      { return c.id }
func (c *Column) Name() string         { return c.name }
func (c *Column) Position() int        { return c.position }
func (c *Column) CreatedAt() time.Time { return c.createdAt }
func (c *Column) UpdatedAt() time.Time { return c.updatedAt }
func (c *Column) CardCount() int       { return len(c.cards) }

// Cards returns the cards in order. The slice is a copy; the cards are not.
func (c *Column) Cards() []*Card {
	out := make([]*Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// AddCard appends a card to the end of the column. The caller owns the
// card's position.
func (c *Column) AddCard(card *Card) error {
	if card == nil {
		return apperrors.Validationf("card must not be nil")
	}
	if c.ContainsCard(card.ID()) {
		return apperrors.IllegalStatef("card %s already exists in column %s", card.ID(), c.id)
	}
	c.cards = append(c.cards, card)
	c.touch()
	return nil
}

// RemoveCard removes the card and returns it.
func (c *Column) RemoveCard(cardID id.CardID) (*Card, error) {
	idx := c.indexOf(cardID)
	if idx < 0 {
		return nil, apperrors.NotFoundf("card %s not found in column %s", cardID, c.id)
	}
	card := c.cards[idx]
	c.cards = append(c.cards[:idx], c.cards[idx+1:]...)
	c.touch()
	return card, nil
}

// FindCard returns the card with the given id, or nil.
func (c *Column) FindCard(cardID id.CardID) *Card {
	if idx := c.indexOf(cardID); idx >= 0 {
		return c.cards[idx]
	}
	return nil
}

// ContainsCard reports whether the card belongs to this column.
func (c *Column) ContainsCard(cardID id.CardID) bool {
	return c.indexOf(cardID) >= 0
}

// UpdateName renames the column.
func (c *Column) UpdateName(newName string) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.Validationf("column name must not be blank")
	}
	c.name = newName
	c.touch()
	return nil
}

// UpdatePosition sets the column's position on the board.
func (c *Column) UpdatePosition(newPosition int) error {
	if newPosition < 0 {
		return apperrors.Validationf("column position must not be negative, got %d", newPosition)
	}
	c.position = newPosition
	c.touch()
	return nil
}

func (c *Column) indexOf(cardID id.CardID) int {
	for i, card := range c.cards {
		if card.ID() == cardID {
			return i
		}
	}
	return -1
}

func (c *Column) touch() {
	c.updatedAt = timestamp.Next(c.updatedAt)
}
