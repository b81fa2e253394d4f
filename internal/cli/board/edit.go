package board

import (
	"context"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/spf13/cobra"
)

// EditCmd returns the board edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Quick-edit one field of a record",
		Long: `Change one field of a record the way an inline board control does.

The edit is checked against the board's required and restrict-edit settings
before it is sent; the record service has the final say.`,
		Example: `  makerflow board edit 12 --field priority --value High
  makerflow board edit --id 12 --field Project --value "MakerLab Launch"
  makerflow board edit 12 --field assignee --value ""`,
		Args: cobra.MaximumNArgs(1),
	}

	addBoardFlags(cmd)
	cmd.Flags().Int64("id", 0, "Record ID (can also be provided as positional argument)")
	cmd.Flags().String("field", "", "Field key, column label or column index (required)")
	cmd.Flags().String("value", "", "New value; an empty value clears the field (required)")
	cmd.Flags().String("layout", string(viewconfig.ScopeKanban), "Layout whose rules apply: kanban or list")

	cmd.RunE = handler.Command(handler.HandlerFunc(runEdit), parseEditFlags)
	return cmd
}

func parseEditFlags(cmd *cobra.Command) error {
	parser := handler.NewFlagParser(cmd)
	if _, err := parser.ParseString("field"); err != nil {
		return err
	}
	if !cmd.Flags().Changed("value") {
		return cli.Usagef("value is required (use --value \"\" to clear)")
	}
	layout, _ := cmd.Flags().GetString("layout")
	_, err := parseScope(layout)
	return err
}

func runEdit(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseRecordID("id", args.Args)
	if err != nil {
		return nil, err
	}
	scope, err := parseScope(args.GetString("layout", string(viewconfig.ScopeKanban)))
	if err != nil {
		return nil, err
	}
	value := args.GetString("value", "")

	return withBoard(ctx, args, func(b *engine.Board) (any, error) {
		key, err := fieldKey(b, args.GetString("field", ""))
		if err != nil {
			return nil, err
		}

		res := b.Dispatch(ctx, engine.EditField{RecordID: id, Field: key, Value: value, Scope: scope})
		if res.Err != nil {
			return nil, res.Err
		}

		rec, _ := b.Record(id)
		return &RecordResult{
			Action: "edit",
			Record: toRecordJSON(rec),
			ID:     id,
			Field:  key,
			Value:  rec.Get(key),
		}, nil
	})
}

// parseScope maps a layout name to a customization scope
func parseScope(name string) (viewconfig.Scope, error) {
	mode, err := cli.ParseMode(name)
	if err != nil {
		return "", err
	}
	if mode == viewconfig.ModeList {
		return viewconfig.ScopeList, nil
	}
	return viewconfig.ScopeKanban, nil
}
