// Package board contains the board aggregate: a board owns ordered columns,
// each column owns ordered cards. All cross-column invariants, including card
// movement, are enforced by Board.
package board

import (
	"strings"
	"time"

	"github.com/example/kanban/internal/core/id"
	"github.com/example/kanban/internal/core/timestamp"
	apperrors "github.com/example/kanban/internal/errors"
)

// Board is the aggregate root. Its updatedAt is refreshed on every successful
// mutation at any nesting level.
type Board struct {
	id          id.BoardID
	workspaceID id.WorkspaceID
	name        string
	description *string
	columns     []*Column
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBoard creates an empty board in the given workspace.
func NewBoard(workspaceID id.WorkspaceID, name string, description *string) (*Board, error) {
	if workspaceID.IsZero() {
		return nil, apperrors.Validationf("workspace id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validationf("board name must not be blank")
	}
	now := timestamp.Now()
	return &Board{
		id:          id.NewBoardID(),
		workspaceID: workspaceID,
		name:        name,
		description: cloneString(description),
		columns:     []*Column{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstituteBoard rebuilds a board and its columns from stored state.
func ReconstituteBoard(boardID id.BoardID, workspaceID id.WorkspaceID, name string, description *string, columns []*Column, createdAt, updatedAt time.Time) (*Board, error) {
	if boardID.IsZero() {
		return nil, apperrors.Validationf("board id is required")
	}
	if workspaceID.IsZero() {
		return nil, apperrors.Validationf("workspace id is required for board %s", boardID)
	}
	owned := make([]*Column, 0, len(columns))
	for _, col := range columns {
		if col == nil {
			return nil, apperrors.Validationf("board %s contains a nil column", boardID)
		}
		owned = append(owned, col)
	}
	return &Board{
		id:          boardID,
		workspaceID: workspaceID,
		name:        name,
		description: cloneString(description),
		columns:     owned,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Board) ID() id.BoardID              { return b.id }
func (b *Board) WorkspaceID() id.WorkspaceID { return b.workspaceID }
func (b *Board) Name() string                { return b.name }
func (b *Board) Description() *string        { return cloneString(b.description) }
func (b *Board) CreatedAt() time.Time        { return b.createdAt }
func (b *Board) UpdatedAt() time.Time        { return b.updatedAt }

// Columns returns the columns in order. The slice is a copy; the columns are not.
func (b *Board) Columns() []*Column {
	out := make([]*Column, len(b.columns))
	copy(out, b.columns)
	return out
}

// CardCount returns the number of cards across all columns.
func (b *Board) CardCount() int {
	total := 0
	for _, col := range b.columns {
		total += col.CardCount()
	}
	return total
}

// UpdateName renames the board.
func (b *Board) UpdateName(newName string) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.Validationf("board name must not be blank")
	}
	b.name = newName
	b.touch()
	return nil
}

// UpdateDescription replaces the description. Nil clears it.
func (b *Board) UpdateDescription(newDescription *string) {
	b.description = cloneString(newDescription)
	b.touch()
}

// AddColumn appends a column.
func (b *Board) AddColumn(column *Column) error {
	if column == nil {
		return apperrors.Validationf("column must not be nil")
	}
	if b.FindColumn(column.ID()) != nil {
		return apperrors.IllegalStatef("column %s already exists in board %s", column.ID(), b.id)
	}
	for _, card := range column.cards {
		if b.findCardAnywhere(card.ID()) {
			return apperrors.IllegalStatef("card %s already exists in board %s", card.ID(), b.id)
		}
	}
	b.columns = append(b.columns, column)
	b.touch()
	return nil
}

// RemoveColumn removes a column together with all of its cards.
func (b *Board) RemoveColumn(columnID id.ColumnID) (*Column, error) {
	idx := b.columnIndex(columnID)
	if idx < 0 {
		return nil, b.columnNotFound(columnID)
	}
	col := b.columns[idx]
	b.columns = append(b.columns[:idx], b.columns[idx+1:]...)
	b.touch()
	return col, nil
}

// FindColumn returns the column with the given id, or nil.
func (b *Board) FindColumn(columnID id.ColumnID) *Column {
	if idx := b.columnIndex(columnID); idx >= 0 {
		return b.columns[idx]
	}
	return nil
}

// UpdateColumn renames and/or repositions a column. Nil fields are left unchanged.
func (b *Board) UpdateColumn(columnID id.ColumnID, name *string, position *int) error {
	col := b.FindColumn(columnID)
	if col == nil {
		return b.columnNotFound(columnID)
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return apperrors.Validationf("column name must not be blank")
	}
	if position != nil && *position < 0 {
		return apperrors.Validationf("column position must not be negative, got %d", *position)
	}
	if name != nil {
		if err := col.UpdateName(*name); err != nil {
			return err
		}
	}
	if position != nil {
		if err := col.UpdatePosition(*position); err != nil {
			return err
		}
	}
	b.touch()
	return nil
}

// MoveCard relocates a card from one column to the end of another.
// Every reference is resolved before anything changes, so a failed move leaves
// the board untouched. Rejecting same-column moves is the caller's concern.
func (b *Board) MoveCard(cardID id.CardID, sourceColumnID, targetColumnID id.ColumnID) error {
	source := b.FindColumn(sourceColumnID)
	if source == nil {
		return apperrors.NotFoundf("source column %s not found in board %s", sourceColumnID, b.id)
	}
	card := source.FindCard(cardID)
	if card == nil {
		return apperrors.NotFoundf("card %s not found in column %s", cardID, sourceColumnID)
	}
	target := b.FindColumn(targetColumnID)
	if target == nil {
		return apperrors.NotFoundf("target column %s not found in board %s", targetColumnID, b.id)
	}

	if err := card.UpdatePosition(target.CardCount()); err != nil {
		return err
	}
	if _, err := source.RemoveCard(cardID); err != nil {
		return err
	}
	if err := target.AddCard(card); err != nil {
		return err
	}
	b.touch()
	return nil
}

// AddCardToColumn appends a card to the end of a column, setting its position.
func (b *Board) AddCardToColumn(columnID id.ColumnID, card *Card) error {
	if card == nil {
		return apperrors.Validationf("card must not be nil")
	}
	col := b.FindColumn(columnID)
	if col == nil {
		return b.columnNotFound(columnID)
	}
	if b.findCardAnywhere(card.ID()) {
		return apperrors.IllegalStatef("card %s already exists in board %s", card.ID(), b.id)
	}
	if err := card.UpdatePosition(col.CardCount()); err != nil {
		return err
	}
	if err := col.AddCard(card); err != nil {
		return err
	}
	b.touch()
	return nil
}

// UpdateCard applies a partial update to a card. A nil or blank title is
// ignored; a nil description is ignored while an empty one clears the text.
func (b *Board) UpdateCard(columnID id.ColumnID, cardID id.CardID, title *string, description *string) error {
	col := b.FindColumn(columnID)
	if col == nil {
		return b.columnNotFound(columnID)
	}
	card := col.FindCard(cardID)
	if card == nil {
		return apperrors.NotFoundf("card %s not found in column %s", cardID, columnID)
	}
	if title != nil && strings.TrimSpace(*title) != "" {
		if err := card.UpdateTitle(*title); err != nil {
			return err
		}
	}
	if description != nil {
		card.UpdateDescription(description)
	}
	b.touch()
	return nil
}

// RemoveCardFromColumn deletes a card from a column.
func (b *Board) RemoveCardFromColumn(columnID id.ColumnID, cardID id.CardID) (*Card, error) {
	col := b.FindColumn(columnID)
	if col == nil {
		return nil, b.columnNotFound(columnID)
	}
	card, err := col.RemoveCard(cardID)
	if err != nil {
		return nil, err
	}
	b.touch()
	return card, nil
}

func (b *Board) columnIndex(columnID id.ColumnID) int {
	for i, col := range b.columns {
		if col.ID() == columnID {
			return i
		}
	}
	return -1
}

func (b *Board) findCardAnywhere(cardID id.CardID) bool {
	for _, col := range b.columns {
		if col.ContainsCard(cardID) {
			return true
		}
	}
	return false
}

func (b *Board) columnNotFound(columnID id.ColumnID) error {
	return apperrors.NotFoundf("column %s not found in board %s", columnID, b.id)
}

func (b *Board) touch() {
	b.updatedAt = timestamp.Next(b.updatedAt)
}
