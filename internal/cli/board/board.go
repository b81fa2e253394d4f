package board

import (
	"context"
	"log/slog"
	"os"
	"strings"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show, edit and customize record boards",
		Long: `Boards show one entity kind as Kanban status columns or as a List table.
Edits go through the record service; customizations are saved per user and board.`,
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ConfigCmd())

	return cmd
}

// addBoardFlags registers the flags every board command shares
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", string(models.KindTasks), "Entity kind (tasks, projects, intake, assets, consumables, partnerships)")
	cmd.Flags().String("scope", "all", "Board scope: all, or a team or space name")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// withBoard opens the board named by --kind and --scope, runs fn against it
// and releases it again
func withBoard(ctx context.Context, args *handler.Arguments, fn func(*engine.Board) (any, error)) (any, error) {
	kind, err := handler.NewFlagParser(args.GetCmd()).ParseKind("kind")
	if err != nil {
		return nil, err
	}
	scope := strings.TrimSpace(args.GetString("scope", "all"))
	if scope == "" {
		scope = "all"
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close cli", "error", err)
		}
	}()

	b, err := cliInstance.OpenBoard(ctx, kind, scope)
	if err != nil {
		return nil, err
	}
	return fn(b)
}

// fieldKey resolves a --field reference to a schema field key. Added columns
// are presentation only and cannot be edited through the record service.
func fieldKey(b *engine.Board, ref string) (string, error) {
	schema := b.Schema()
	idx, err := cli.ColumnIndex(schema, b.Config(), ref)
	if err != nil {
		return "", err
	}
	if idx >= len(schema.Fields) {
		return "", cli.Usagef("column '%s' was added to the view and is not stored on records", ref)
	}
	return schema.Fields[idx].Key, nil
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
