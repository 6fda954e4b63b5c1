package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/version"
	"github.com/example/kanban/internal/wire"
)

// RootCmd returns the kanban command tree.
func RootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "kanban",
		Short:   "Kanban - workspaces, boards, columns and cards",
		Version: version.String(),
		Long: `Kanban manages workspaces of boards, each an ordered list of columns holding
ordered cards. Use the subcommands locally or run "kanban serve" for the REST API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.SetConfigPath(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.kanban/config.yaml)")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(ConfigCmd())

	// Entity commands
	rootCmd.AddCommand(WorkspaceCmd())
	rootCmd.AddCommand(BoardCmd())
	rootCmd.AddCommand(ColumnCmd())
	rootCmd.AddCommand(CardCmd())

	return rootCmd
}
