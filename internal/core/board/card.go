package board

import (
	"strings"
	"time"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/timestamp"
	apperrors "github.com/example/kanban/internal/errors"
)

// Card is a unit of work owned by exactly one Column.
type Card struct {
	id          id.CardID
	title       string
	description *string
	position    int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCard creates a card with a fresh id.
func NewCard(title string, description *string, position int) (*Card, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.Validationf("card title must not be blank")
	}
	if position < 0 {
		return nil, apperrors.Validationf("card position must not be negative, got %d", position)
	}
	now := timestamp.Now()
	return &Card{
		id:          id.NewCardID(),
		title:       title,
		description: cloneString(description),
		position:    position,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstituteCard rebuilds a card from stored state without business validation.
func ReconstituteCard(cardID id.CardID, title string, description *string, position int, createdAt, updatedAt time.Time) (*Card, error) {
	if cardID.IsZero() {
		return nil, apperrors.Validationf("card id is required")
	}
	return &Card{
		id:          cardID,
		title:       title,
		description: cloneString(description),
		position:    position,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Card) ID() id.CardID        { return c.id }
func (c *Card) Title() string        { return c.title }
func (c *Card) Description() *string { return cloneString(c.description) }
func (c *Card) Position() int        { return c.position }
func (c *Card) CreatedAt() time.Time { return c.createdAt }
func (c *Card) UpdatedAt() time.Time { return c.updatedAt }

// UpdateTitle replaces the title.
func (c *Card) UpdateTitle(newTitle string) error {
	if strings.TrimSpace(newTitle) == "" {
		return apperrors.Validationf("card title must not be blank")
	}
	c.title = newTitle
	c.touch()
	return nil
}

// UpdateDescription replaces the description. Nil clears it.
func (c *Card) UpdateDescription(newDescription *string) {
	c.description = cloneString(newDescription)
	c.touch()
}

// UpdatePosition sets the advisory position.
func (c *Card) UpdatePosition(newPosition int) error {
	if newPosition < 0 {
		return apperrors.Validationf("card position must not be negative, got %d", newPosition)
	}
	c.position = newPosition
	c.touch()
	return nil
}

func (c *Card) touch() {
	c.updatedAt = timestamp.Next(c.updatedAt)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
