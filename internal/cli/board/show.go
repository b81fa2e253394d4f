package board

import (
	"context"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/spf13/cobra"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board as Kanban columns or a List table",
		Long: `Show a board with its saved customizations applied.

Without --view the board opens in the layout it was last left in.`,
		Example: `  makerflow board show
  makerflow board show --kind intake --view list
  makerflow board show --kind assets --json`,
		Args: cobra.NoArgs,
	}

	addBoardFlags(cmd)
	cmd.Flags().String("view", "", "Layout: kanban or list (default: the saved layout)")
	cmd.Flags().Int("width", 0, "Render width (default: terminal width)")

	cmd.RunE = handler.Command(handler.HandlerFunc(runShow), parseShowFlags)
	return cmd
}

func parseShowFlags(cmd *cobra.Command) error {
	view, _ := cmd.Flags().GetString("view")
	if view == "" {
		return nil
	}
	_, err := cli.ParseMode(view)
	return err
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	return withBoard(ctx, args, func(b *engine.Board) (any, error) {
		mode := b.Config().Mode
		if view := args.GetString("view", ""); view != "" {
			mode, _ = cli.ParseMode(view)
		}

		width := args.GetInt("width", 0)
		if width <= 0 {
			width = terminalWidth()
		}

		if mode == viewconfig.ModeList {
			return newListOutput(b, width), nil
		}
		return newKanbanOutput(b, width), nil
	})
}
