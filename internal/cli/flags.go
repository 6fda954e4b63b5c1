package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/ctxutil"
)

// optionalString returns the flag value only when the flag was given, so an
// absent flag (unchanged) stays distinct from an explicit empty one (clear).
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optionalInt is optionalString for integer flags.
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// commandContext tags the command's context with the CLI actor.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxutil.WithActor(ctx, ctxutil.CLIActor)
}
