package cmd

import (
	"log/slog"

	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/board"
	"github.com/ianroy/makerflowPM/internal/cli/record"
	"github.com/ianroy/makerflowPM/internal/cli/seed"
	"github.com/ianroy/makerflowPM/internal/launcher"
	"github.com/ianroy/makerflowPM/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = NewRootCmd()

// NewRootCmd builds the makerflow command tree. Without a subcommand it
// opens the interactive board.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makerflow",
		Short: "MakerFlow - Kanban and List boards for makerspace records",
		Long: `MakerFlow shows tasks, projects, intake requests, assets, consumables and
partnerships as Kanban status columns or as a sortable List table.

Run without a subcommand to open the interactive board.`,
		Example: `  makerflow
  makerflow --kind intake --scope fab-lab
  makerflow board show --mode list --json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = slog.LevelDebug
			}
			return logging.Init(level)
		},
		RunE: runTUI,
	}

	cmd.PersistentFlags().Bool("debug", false, "Write debug logs to ~/.makerflow/logs")
	cmd.Flags().String("kind", "tasks", "Entity kind to open (tasks, projects, intake, assets, consumables, partnerships)")
	cmd.Flags().String("scope", "all", "Board scope: all, or a team or space name")

	cmd.AddCommand(board.BoardCmd())
	cmd.AddCommand(record.RecordCmd())
	cmd.AddCommand(seed.SeedCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("kind")
	kind, err := cli.ParseKind(name)
	if err != nil {
		return err
	}
	scope, _ := cmd.Flags().GetString("scope")
	return launcher.Launch(launcher.Options{Kind: kind, Scope: scope})
}

// Execute runs the command named on the command line
func Execute() error {
	return rootCmd.Execute()
}
