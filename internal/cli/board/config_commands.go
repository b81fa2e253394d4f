package board

import (
	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/spf13/cobra"
)

func customizationCmds() []*cobra.Command {
	return []*cobra.Command{
		customizationCmd("hide", "Hide a status or column", targetFlags, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := parseTarget(b, args)
			return customize.SetHidden{Target: t, On: true}, err
		}),
		customizationCmd("unhide", "Show a hidden status or column again", targetFlags, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := parseTarget(b, args)
			return customize.SetHidden{Target: t, On: false}, err
		}),
		customizationCmd("rename", "Set the header alias; an empty alias restores the name", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("alias", "", "New header text")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := parseTarget(b, args)
			return customize.Rename{Target: t, Alias: args.GetString("alias", "")}, err
		}),
		customizationCmd("color", "Set the header color; an empty color clears it", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("color", "", "Hex color #RRGGBB")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			color, err := handler.NewFlagParser(args.GetCmd()).ParseColor("color")
			if err != nil {
				return nil, err
			}
			t, err := parseTarget(b, args)
			return customize.SetColor{Target: t, Color: color}, err
		}),
		customizationCmd("labels", "Rename or color individual values of a column", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().StringToString("alias", nil, "Value aliases, e.g. High=Urgent")
			cmd.Flags().StringToString("value-color", nil, "Value colors, e.g. High=#ff0000")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			aliases := args.GetStringMap("alias", nil)
			colors := args.GetStringMap("value-color", nil)
			for value, color := range colors {
				if color == "" {
					continue
				}
				if err := cli.ValidateColorHex(color); err != nil {
					return nil, cli.Usagef("color for '%s': %v", value, err)
				}
			}
			t, err := parseTarget(b, args)
			return customize.SetLabels{Target: t, Aliases: aliases, Colors: colors}, err
		}),
		customizationCmd("filter", "Filter a status or column; an empty text clears it", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("text", "", "Filter text")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := parseTarget(b, args)
			return customize.SetFilter{Target: t, Text: args.GetString("text", "")}, err
		}),
		customizationCmd("sort", "Sort a status column's cards or the table by a column", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("dir", "asc", "Direction: asc, desc or none")
			cmd.Flags().String("field", "", "Field to sort cards by (Kanban only, default: title)")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			dir, err := cli.ParseSortDir(args.GetString("dir", "asc"))
			if err != nil {
				return nil, err
			}
			t, err := parseTarget(b, args)
			if err != nil {
				return nil, err
			}
			var field string
			if ref := args.GetString("field", ""); ref != "" {
				if field, err = fieldKey(b, ref); err != nil {
					return nil, err
				}
			}
			return customize.SetSort{Target: t, Dir: dir, Field: field}, nil
		}),
		customizationCmd("group", "Group a status column's cards by a field, or the table by a column", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("field", "", "Field to group cards by (Kanban only)")
			cmd.Flags().Bool("off", false, "Stop grouping")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := parseTarget(b, args)
			if err != nil {
				return nil, err
			}
			off := args.GetBool("off")
			var field string
			if t.Scope == viewconfig.ScopeKanban && !off {
				ref := args.GetString("field", "")
				if ref == "" {
					return nil, cli.Usagef("--field is required to group a status column")
				}
				if field, err = fieldKey(b, ref); err != nil {
					return nil, err
				}
			}
			return customize.SetGroupBy{Target: t, Field: field, Off: off}, nil
		}),
		toggleCmd("collapse", "Collapse a status or column", func(t customize.Target, on bool) customize.Command {
			return customize.SetCollapsed{Target: t, On: on}
		}),
		toggleCmd("require", "Require a value in a column before edits save", func(t customize.Target, on bool) customize.Command {
			return customize.SetRequired{Target: t, On: on}
		}),
		toggleCmd("restrict-edit", "Disable inline edits under a status or column", func(t customize.Target, on bool) customize.Command {
			return customize.SetRestrictEdit{Target: t, On: on}
		}),
		toggleCmd("restrict-view", "Remove a status or column from your view entirely", func(t customize.Target, on bool) customize.Command {
			return customize.SetRestrictView{Target: t, On: on}
		}),
		toggleCmd("mute", "Mute assignment notifications for a status or column", func(t customize.Target, on bool) customize.Command {
			return customize.SetMuteAssign{Target: t, On: on}
		}),
		customizationCmd("describe", "Set the help text shown under a header", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("text", "", "Description; empty clears it")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := parseTarget(b, args)
			return customize.SetDescription{Target: t, Text: args.GetString("text", "")}, err
		}),
		customizationCmd("duplicate", "Add a copy of a List column to the right of it", targetFlags, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := listTarget(b, args)
			return customize.DuplicateColumn{Target: t}, err
		}),
		customizationCmd("add-column", "Add an empty List column to the right of a column", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("title", "", "Header of the new column")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := listTarget(b, args)
			return customize.AddColumnRight{Target: t, Title: args.GetString("title", "")}, err
		}),
		customizationCmd("change-type", "Change the value type of an added List column", withTarget(func(cmd *cobra.Command) {
			cmd.Flags().String("type", "", "Type: text, number or date")
		}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := listTarget(b, args)
			return customize.ChangeColumnType{Target: t, Type: models.FieldType(args.GetString("type", ""))}, err
		}),
		customizationCmd("clear", "Blank every visible cell of a List column", targetFlags, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := listTarget(b, args)
			return customize.ClearColumn{Target: t}, err
		}),
		customizationCmd("fill-down", "Copy the first visible value of a List column down", targetFlags, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			t, err := listTarget(b, args)
			return customize.FillDown{Target: t}, err
		}),
		customizationCmd("columns", "Choose the List columns to show", func(cmd *cobra.Command) {
			cmd.Flags().StringSlice("show", nil, "Columns to show (keys, labels or indexes); empty shows all")
		}, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			refs := args.GetStringSlice("show", nil)
			cols := make([]int, 0, len(refs))
			for _, ref := range refs {
				idx, err := cli.ColumnIndex(b.Schema(), b.Config(), ref)
				if err != nil {
					return nil, err
				}
				cols = append(cols, idx)
			}
			return customize.SetVisibleColumns{Columns: cols}, nil
		}),
		customizationCmd("search", "Search both layouts; an empty text clears it", func(cmd *cobra.Command) {
			cmd.Flags().String("text", "", "Search text")
		}, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			return customize.SetSearch{Text: args.GetString("text", "")}, nil
		}),
		customizationCmd("person", "Show only records referencing a person", func(cmd *cobra.Command) {
			cmd.Flags().String("user", "", "Person name; empty shows everyone")
		}, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			return customize.SetPerson{Person: args.GetString("user", "")}, nil
		}),
		customizationCmd("mode", "Choose the layout the board opens in", func(cmd *cobra.Command) {
			cmd.Flags().String("view", "", "Layout: kanban or list (required)")
		}, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			mode, err := cli.ParseMode(args.GetString("view", ""))
			return customize.SetViewMode{Mode: mode}, err
		}),
		customizationCmd("reset", "Forget customizations of one layout, or all of them", func(cmd *cobra.Command) {
			cmd.Flags().String("layout", "", "Layout to reset: kanban or list (default: both)")
		}, func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
			layout := args.GetString("layout", "")
			if layout == "" {
				return customize.Reset{}, nil
			}
			scope, err := parseScope(layout)
			return customize.Reset{Scope: scope}, err
		}),
	}
}

// withTarget adds the target flags before a command's own flags
func withTarget(flags func(*cobra.Command)) func(*cobra.Command) {
	return func(cmd *cobra.Command) {
		targetFlags(cmd)
		flags(cmd)
	}
}

// toggleCmd builds an on/off customization; --off turns it back off
func toggleCmd(use, short string, build func(customize.Target, bool) customize.Command) *cobra.Command {
	return customizationCmd(use, short, withTarget(func(cmd *cobra.Command) {
		cmd.Flags().Bool("off", false, "Turn the setting off")
	}), func(b *engine.Board, args *handler.Arguments) (customize.Command, error) {
		t, err := parseTarget(b, args)
		if err != nil {
			return nil, err
		}
		return build(t, !args.GetBool("off")), nil
	})
}
