package board

import (
	"context"
	"fmt"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a record",
		Long: `Delete a record from its board.

Some kinds only allow deleting records in certain statuses; the record stays
on the board when the record service refuses.`,
		Example: `  makerflow board delete 12 --force
  makerflow board delete --kind consumables --id 3 --force`,
		Args: cobra.MaximumNArgs(1),
	}

	addBoardFlags(cmd)
	cmd.Flags().Int64("id", 0, "Record ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(runDelete))
	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseRecordID("id", args.Args)
	if err != nil {
		return nil, err
	}

	return withBoard(ctx, args, func(b *engine.Board) (any, error) {
		rec, ok := b.Record(id)
		if !ok {
			return nil, fmt.Errorf("record %d: %w", id, cache.ErrRecordNotCached)
		}

		if !args.GetBool("force") && !args.GetBool("json") && !args.GetBool("quiet") {
			if !cli.Confirm(fmt.Sprintf("Delete #%d '%s'?", id, rec.Title())) {
				return "Cancelled", nil
			}
		}

		res := b.Dispatch(ctx, engine.DeleteRecord{RecordID: id})
		if res.Err != nil {
			return nil, res.Err
		}
		return &RecordResult{Action: "delete", Record: toRecordJSON(rec), ID: id}, nil
	})
}
