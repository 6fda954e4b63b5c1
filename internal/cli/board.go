package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/wire"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
		Long:  "Create, list, show, update and delete boards within a workspace.",
	}

	cmd.AddCommand(boardCreateCmd())
	cmd.AddCommand(boardListCmd())
	cmd.AddCommand(boardShowCmd())
	cmd.AddCommand(boardUpdateCmd())
	cmd.AddCommand(boardDeleteCmd())

	return cmd
}

func boardCreateCmd() *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new board in a workspace",
		Long: `Create a new, empty board.

Examples:
  kanban board create Sprint --workspace <workspace-id>
  kanban board create Roadmap -w <workspace-id> -d "Quarterly plan"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Create(commandContext(cmd), workspaceID, args[0], optionalString(cmd, "description"))
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "Workspace ID (required)")
	cmd.Flags().StringP("description", "d", "", "Board description")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func boardListCmd() *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the boards of a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.List(commandContext(cmd), workspaceID)
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "Workspace ID (required)")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func boardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [board-id]",
		Short: "Show a board with its columns and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Show(commandContext(cmd), args[0])
		},
	}
}

func boardUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [board-id]",
		Short: "Update a board's name or description",
		Long: `Update a board. Flags that are not given leave the field unchanged;
--description "" clears the description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Update(commandContext(cmd), args[0],
				optionalString(cmd, "name"), optionalString(cmd, "description"))
		},
	}

	cmd.Flags().StringP("name", "n", "", "New name")
	cmd.Flags().StringP("description", "d", "", "New description (empty to clear)")

	return cmd
}

func boardDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [board-id]",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Delete(commandContext(cmd), args[0])
		},
	}
}
