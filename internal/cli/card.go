package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/wire"
)

// CardCmd returns the card command
func CardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage the cards of a board",
	}

	cmd.AddCommand(cardAddCmd())
	cmd.AddCommand(cardUpdateCmd())
	cmd.AddCommand(cardMoveCmd())
	cmd.AddCommand(cardDeleteCmd())

	return cmd
}

func cardAddCmd() *cobra.Command {
	var boardID, columnID string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a card to the end of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.AddCard(commandContext(cmd), boardID, columnID, args[0], optionalString(cmd, "description"))
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	cmd.Flags().StringVarP(&columnID, "column", "c", "", "Column ID (required)")
	cmd.Flags().StringP("description", "d", "", "Card description")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func cardUpdateCmd() *cobra.Command {
	var boardID, columnID string

	cmd := &cobra.Command{
		Use:   "update [card-id]",
		Short: "Update a card's title or description",
		Long: `Update a card. Flags that are not given leave the field unchanged;
--description "" clears the description. A blank --title is ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.UpdateCard(commandContext(cmd), boardID, columnID, args[0],
				optionalString(cmd, "title"), optionalString(cmd, "description"))
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	cmd.Flags().StringVarP(&columnID, "column", "c", "", "Column ID holding the card (required)")
	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("description", "d", "", "New description (empty to clear)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func cardMoveCmd() *cobra.Command {
	var boardID, from, to string

	cmd := &cobra.Command{
		Use:   "move [card-id]",
		Short: "Move a card to the end of another column",
		Long: `Move a card between columns of the same board.

Examples:
  kanban card move <card-id> --board <board-id> --from <todo-id> --to <done-id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.MoveCard(commandContext(cmd), boardID, args[0], from, to)
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	cmd.Flags().StringVar(&from, "from", "", "Source column ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "Target column ID (required)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func cardDeleteCmd() *cobra.Command {
	var boardID, columnID string

	cmd := &cobra.Command{
		Use:   "delete [card-id]",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.DeleteCard(commandContext(cmd), boardID, columnID, args[0])
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (required)")
	cmd.Flags().StringVarP(&columnID, "column", "c", "", "Column ID holding the card (required)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}
