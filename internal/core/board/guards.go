package board

import (
	"fmt"

	"github.com/example/kanban/internal/core/id"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// MoveCardContext provides context for card move guards.
// Ids are compared by value, so every textual spelling of one column
// resolves to the same id.
type MoveCardContext struct {
	CardID         id.CardID
	SourceColumnID id.ColumnID
	TargetColumnID id.ColumnID
}

// CanMoveCard evaluates whether a move request is well-formed.
// Rules:
// - Card, source and target must be given
// - Source and target must differ
func CanMoveCard(ctx MoveCardContext) GuardResult {
	if ctx.CardID.IsZero() {
		return GuardResult{Allowed: false, Reason: "card id is required"}
	}
	if ctx.SourceColumnID.IsZero() || ctx.TargetColumnID.IsZero() {
		return GuardResult{Allowed: false, Reason: "source and target column ids are required"}
	}
	if ctx.SourceColumnID == ctx.TargetColumnID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("card %s is already in column %s", ctx.CardID, ctx.SourceColumnID),
		}
	}
	return GuardResult{Allowed: true}
}
