package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/wire"
)

// WorkspaceCmd returns the workspace command
func WorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
		Long:    "Create, list, show, update and delete workspaces.",
	}

	cmd.AddCommand(workspaceCreateCmd())
	cmd.AddCommand(workspaceListCmd())
	cmd.AddCommand(workspaceShowCmd())
	cmd.AddCommand(workspaceUpdateCmd())
	cmd.AddCommand(workspaceDeleteCmd())

	return cmd
}

func workspaceCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.WorkspaceAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Create(commandContext(cmd), args[0], optionalString(cmd, "description"))
		},
	}

	cmd.Flags().StringP("description", "d", "", "Workspace description")

	return cmd
}

func workspaceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.WorkspaceAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.List(commandContext(cmd))
		},
	}
}

func workspaceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [workspace-id]",
		Short: "Show workspace details and its boards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.WorkspaceAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Show(commandContext(cmd), args[0])
		},
	}
}

func workspaceUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [workspace-id]",
		Short: "Update a workspace's name or description",
		Long: `Update a workspace. Flags that are not given leave the field unchanged;
--description "" clears the description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.WorkspaceAdapterWithOutput(cmd.OutOrStdout())
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

func workspaceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [workspace-id]",
		Short: "Delete a workspace and all of its boards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.WorkspaceAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Delete(commandContext(cmd), args[0])
		},
	}
}
