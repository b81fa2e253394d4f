package board

import (
	"context"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/spf13/cobra"
)

// MoveCmd returns the board move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a record to another status column",
		Long: `Move a record to another Kanban status, like dropping its card on a column.

The move is refused when the target status is hidden, restricted, or when the
record's current column does not allow edits.`,
		Example: `  makerflow board move 12 --to Done
  makerflow board move --kind partnerships --id 4 --to Pilot`,
		Args: cobra.MaximumNArgs(1),
	}

	addBoardFlags(cmd)
	cmd.Flags().Int64("id", 0, "Record ID (can also be provided as positional argument)")
	cmd.Flags().String("to", "", "Target status (required)")

	cmd.RunE = handler.Command(handler.HandlerFunc(runMove), func(cmd *cobra.Command) error {
		_, err := handler.NewFlagParser(cmd).ParseString("to")
		return err
	})
	return cmd
}

func runMove(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseRecordID("id", args.Args)
	if err != nil {
		return nil, err
	}
	to, err := handler.NewFlagParser(args.GetCmd()).ParseString("to")
	if err != nil {
		return nil, err
	}

	return withBoard(ctx, args, func(b *engine.Board) (any, error) {
		res := b.Dispatch(ctx, engine.MoveRecord{RecordID: id, To: to})
		if res.Err != nil {
			return nil, res.Err
		}

		rec, _ := b.Record(id)
		return &RecordResult{
			Action: "move",
			Record: toRecordJSON(rec),
			ID:     id,
			Field:  b.Schema().StatusField,
			Value:  rec.Status(),
		}, nil
	})
}
