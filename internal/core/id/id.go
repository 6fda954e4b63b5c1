// Package id defines the typed identifiers of the kanban aggregate.
// Each identifier wraps a random 128-bit UUID; the zero value means "absent".
package id

import (
	"github.com/google/uuid"

	apperrors "github.com/example/kanban/internal/errors"
)

// WorkspaceID identifies a workspace.
type WorkspaceID uuid.UUID

// BoardID identifies a board.
type BoardID uuid.UUID

// ColumnID identifies a column within a board.
type ColumnID uuid.UUID

// CardID identifies a card within a column.
type CardID uuid.UUID

func NewWorkspaceID() WorkspaceID { return WorkspaceID(uuid.New()) }
func NewBoardID() BoardID         { return BoardID(uuid.New()) }
func NewColumnID() ColumnID       { return ColumnID(uuid.New()) }
func NewCardID() CardID           { return CardID(uuid.New()) }

// ParseWorkspaceID parses the canonical textual form of a workspace id.
func ParseWorkspaceID(s string) (WorkspaceID, error) {
	u, err := parse("workspace", s)
	return WorkspaceID(u), err
}

// ParseBoardID parses the canonical textual form of a board id.
func ParseBoardID(s string) (BoardID, error) {
	u, err := parse("board", s)
	return BoardID(u), err
}

// ParseColumnID parses the canonical textual form of a column id.
func ParseColumnID(s string) (ColumnID, error) {
	u, err := parse("column", s)
	return ColumnID(u), err
}

// ParseCardID parses the canonical textual form of a card id.
func ParseCardID(s string) (CardID, error) {
	u, err := parse("card", s)
	return CardID(u), err
}

func parse(kind, s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeValidation, "invalid "+kind+" id '"+s+"'", err)
	}
	if u == uuid.Nil {
		return uuid.Nil, apperrors.Validationf("%s id must not be nil", kind)
	}
	return u, nil
}

func (i WorkspaceID) String() string { return uuid.UUID(i).String() }
func (i BoardID) String() string     { return uuid.UUID(i).String() }
func (i ColumnID) String() string    { return uuid.UUID(i).String() }
func (i CardID) String() string      { return uuid.UUID(i).String() }

func (i WorkspaceID) IsZero() bool { return uuid.UUID(i) == uuid.Nil }
func (i BoardID) IsZero() bool     { return uuid.UUID(i) == uuid.Nil }
func (i ColumnID) IsZero() bool    { return uuid.UUID(i) == uuid.Nil }
func (i CardID) IsZero() bool      { return uuid.UUID(i) == uuid.Nil }

func (i WorkspaceID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i BoardID) MarshalText() ([]byte, error)     { return uuid.UUID(i).MarshalText() }
func (i ColumnID) MarshalText() ([]byte, error)    { return uuid.UUID(i).MarshalText() }
func (i CardID) MarshalText() ([]byte, error)      { return uuid.UUID(i).MarshalText() }

func (i *WorkspaceID) UnmarshalText(b []byte) error {
	v, err := ParseWorkspaceID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i *BoardID) UnmarshalText(b []byte) error {
	v, err := ParseBoardID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i *ColumnID) UnmarshalText(b []byte) error {
	v, err := ParseColumnID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i *CardID) UnmarshalText(b []byte) error {
	v, err := ParseCardID(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
