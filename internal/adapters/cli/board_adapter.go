package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/ports/primary"
)

// BoardAdapter translates CLI operations on boards, columns and cards to
// BoardService calls.
type BoardAdapter struct {
	service primary.BoardService
	out     io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given service.
func NewBoardAdapter(service primary.BoardService, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new board in a workspace.
func (a *BoardAdapter) Create(ctx context.Context, workspaceID, name string, description *string) error {
	b, err := a.service.CreateBoard(ctx, primary.CreateBoardRequest{
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Created board %s: %s\n", success(), b.ID(), b.Name())
	return nil
}

// List lists the boards of a workspace.
func (a *BoardAdapter) List(ctx context.Context, workspaceID string) error {
	boards, err := a.service.ListBoards(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}

	if len(boards) == 0 {
		fmt.Fprintln(a.out, "No boards found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLUMNS\tCARDS")
	fmt.Fprintln(w, "--\t----\t-------\t-----")
	for _, b := range boards {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", b.ID(), b.Name(), len(b.Columns()), b.CardCount())
	}
	return w.Flush()
}

// Show renders a board with its columns and cards.
func (a *BoardAdapter) Show(ctx context.Context, boardID string) error {
	b, err := a.service.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}

	a.render(b)
	return nil
}

// Update changes a board's name and/or description. Nil leaves a field unchanged.
func (a *BoardAdapter) Update(ctx context.Context, boardID string, name, description *string) error {
	if name == nil && description == nil {
		return fmt.Errorf("must specify at least --name or --description")
	}

	b, err := a.service.UpdateBoard(ctx, primary.UpdateBoardRequest{
		BoardID:     boardID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Board %s updated\n", success(), b.ID())
	return nil
}

// Delete deletes a board.
func (a *BoardAdapter) Delete(ctx context.Context, boardID string) error {
	if err := a.service.DeleteBoard(ctx, boardID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Deleted board %s\n", success(), boardID)
	return nil
}

// AddColumn appends a column, or places it at position when given.
func (a *BoardAdapter) AddColumn(ctx context.Context, boardID, name string, position *int) error {
	b, err := a.service.CreateColumn(ctx, primary.CreateColumnRequest{
		BoardID:  boardID,
		Name:     name,
		Position: position,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Added column %q to board %s\n", success(), name, b.ID())
	return nil
}

// UpdateColumn renames and/or repositions a column.
func (a *BoardAdapter) UpdateColumn(ctx context.Context, boardID, columnID string, name *string, position *int) error {
	if name == nil && position == nil {
		return fmt.Errorf("must specify at least --name or --position")
	}

	if _, err := a.service.UpdateColumn(ctx, primary.UpdateColumnRequest{
		BoardID:  boardID,
		ColumnID: columnID,
		Name:     name,
		Position: position,
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Column %s updated\n", success(), columnID)
	return nil
}

// DeleteColumn removes a column and its cards.
func (a *BoardAdapter) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	if _, err := a.service.DeleteColumn(ctx, primary.DeleteColumnRequest{
		BoardID:  boardID,
		ColumnID: columnID,
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Deleted column %s\n", success(), columnID)
	return nil
}

// AddCard appends a card to a column.
func (a *BoardAdapter) AddCard(ctx context.Context, boardID, columnID, title string, description *string) error {
	b, err := a.service.CreateCard(ctx, primary.CreateCardRequest{
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return err
	}

	cardID := "?"
	for _, col := range b.Columns() {
		if col.ID().String() != columnID {
			continue
		}
		if cards := col.Cards(); len(cards) > 0 {
			cardID = cards[len(cards)-1].ID().String()
		}
	}

	fmt.Fprintf(a.out, "%s Added card %s: %s\n", success(), cardID, title)
	return nil
}

// UpdateCard changes a card's title and/or description.
func (a *BoardAdapter) UpdateCard(ctx context.Context, boardID, columnID, cardID string, title, description *string) error {
	if title == nil && description == nil {
		return fmt.Errorf("must specify at least --title or --description")
	}

	if _, err := a.service.UpdateCard(ctx, primary.UpdateCardRequest{
		BoardID:     boardID,
		ColumnID:    columnID,
		CardID:      cardID,
		Title:       title,
		Description: description,
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Card %s updated\n", success(), cardID)
	return nil
}

// MoveCard moves a card to the end of another column.
func (a *BoardAdapter) MoveCard(ctx context.Context, boardID, cardID, sourceColumnID, targetColumnID string) error {
	b, err := a.service.MoveCard(ctx, primary.MoveCardRequest{
		BoardID:        boardID,
		CardID:         cardID,
		SourceColumnID: sourceColumnID,
		TargetColumnID: targetColumnID,
	})
	if err != nil {
		return err
	}

	target := targetColumnID
	for _, col := range b.Columns() {
		if col.ID().String() == targetColumnID {
			target = col.Name()
		}
	}
	fmt.Fprintf(a.out, "%s Moved card %s to %s\n", success(), cardID, target)
	return nil
}

// DeleteCard removes a card from a column.
func (a *BoardAdapter) DeleteCard(ctx context.Context, boardID, columnID, cardID string) error {
	if err := a.service.DeleteCard(ctx, primary.DeleteCardRequest{
		BoardID:  boardID,
		ColumnID: columnID,
		CardID:   cardID,
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Deleted card %s\n", success(), cardID)
	return nil
}

func (a *BoardAdapter) render(b *board.Board) {
	fmt.Fprintf(a.out, "\nBoard: %s\n", b.ID())
	fmt.Fprintf(a.out, "Name:      %s\n", heading(b.Name()))
	fmt.Fprintf(a.out, "Workspace: %s\n", b.WorkspaceID())
	if d := b.Description(); d != nil && *d != "" {
		fmt.Fprintf(a.out, "Description: %s\n", *d)
	}
	fmt.Fprintf(a.out, "Updated:   %s\n", b.UpdatedAt().Local().Format(timeLayout))

	columns := b.Columns()
	if len(columns) == 0 {
		fmt.Fprintf(a.out, "\n%s\n\n", dim("(no columns)"))
		return
	}

	for _, col := range columns {
		fmt.Fprintf(a.out, "\n%s %s\n", heading(fmt.Sprintf("[%d] %s", col.Position(), col.Name())), dim(col.ID().String()))
		cards := col.Cards()
		if len(cards) == 0 {
			fmt.Fprintf(a.out, "  %s\n", dim("(empty)"))
			continue
		}
		for _, card := range cards {
			fmt.Fprintf(a.out, "  %d. %s  %s\n", card.Position(), card.Title(), dim(card.ID().String()))
			if d := card.Description(); d != nil && *d != "" {
				fmt.Fprintf(a.out, "     %s\n", *d)
			}
		}
	}
	fmt.Fprintln(a.out)
}
