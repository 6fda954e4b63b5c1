package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/wire"
)

// ColumnCmd returns the column command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage the columns of a board",
	}

	cmd.AddCommand(columnAddCmd())
	cmd.AddCommand(columnUpdateCmd())
	cmd.AddCommand(columnDeleteCmd())

	return cmd
}

func columnAddCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a column to a board",
		Long: `Add a column. Without --position it is appended after the last column.

Examples:
  kanban column add Todo --board <board-id>
  kanban column add Review -b <board-id> --position 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.AddColumn(commandContext(cmd), boardID, args[0], optionalInt(cmd, "position"))
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	cmd.Flags().IntP("position", "p", 0, "Column position")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func columnUpdateCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "update [column-id]",
		Short: "Rename or reposition a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.UpdateColumn(commandContext(cmd), boardID, args[0],
				optionalString(cmd, "name"), optionalInt(cmd, "position"))
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	cmd.Flags().StringP("name", "n", "", "New name")
	cmd.Flags().IntP("position", "p", 0, "New position")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func columnDeleteCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "delete [column-id]",
		Short: "Delete a column and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.DeleteColumn(commandContext(cmd), boardID, args[0])
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}
