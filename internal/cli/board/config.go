package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	engine "github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/spf13/cobra"
)

// ConfigCmd returns the board config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Customize how a board looks",
		Long: `Customize status columns (--status) and table columns (--column).

Customizations are saved for you on this board only and never change records,
except clear and fill-down on stored columns, which edit each visible record.`,
	}

	cmd.AddCommand(ConfigShowCmd())
	cmd.AddCommand(ConfigMenuCmd())
	for _, sub := range customizationCmds() {
		cmd.AddCommand(sub)
	}
	return cmd
}

// ConfigResult is the configuration after a customization
type ConfigResult struct {
	BoardKey string          `json:"board_key"`
	Action   string          `json:"action,omitempty"`
	Edits    int             `json:"edits,omitempty"`
	Added    *int            `json:"added_column,omitempty"`
	Config   json.RawMessage `json:"config"`
}

// Human prints the action and the saved configuration
func (r *ConfigResult) Human() string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, r.Config, "", "  "); err != nil {
		pretty.Write(r.Config)
	}
	if r.Action == "" {
		return pretty.String()
	}
	line := fmt.Sprintf("✓ %s saved for %s", r.Action, r.BoardKey)
	if r.Added != nil {
		line += fmt.Sprintf(" (new column %d)", *r.Added)
	}
	if r.Edits > 0 {
		line += fmt.Sprintf(", %d %s saved", r.Edits, plural(r.Edits, "edit"))
	}
	return line
}

func newConfigResult(b *engine.Board, action string, res engine.Result) (*ConfigResult, error) {
	blob, err := viewconfig.Encode(b.Config())
	if err != nil {
		return nil, fmt.Errorf("failed to encode view configuration: %w", err)
	}
	out := &ConfigResult{BoardKey: b.Key(), Action: action, Edits: len(res.Outcomes), Config: blob}
	if res.Effects.Added >= 0 && action != "" {
		added := res.Effects.Added
		out.Added = &added
	}
	return out, nil
}

// ConfigShowCmd returns the board config show subcommand
func ConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved configuration of a board",
		Args:  cobra.NoArgs,
	}
	addBoardFlags(cmd)

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
		return withBoard(ctx, args, func(b *engine.Board) (any, error) {
			return newConfigResult(b, "", engine.Result{Effects: customize.Effects{Added: -1}})
		})
	}))
	return cmd
}

// MenuOutput lists the header menu of one layout
type MenuOutput struct {
	Layout viewconfig.Scope     `json:"layout"`
	Items  []customize.MenuItem `json:"items"`
}

// Human prints one action per line
func (m *MenuOutput) Human() string {
	var b strings.Builder
	for _, it := range m.Items {
		fmt.Fprintf(&b, "%-16s %s\n", it.Action, it.Label)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ConfigMenuCmd returns the board config menu subcommand
func ConfigMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List the header actions available in a layout",
		Args:  cobra.NoArgs,
	}
	addBoardFlags(cmd)
	cmd.Flags().String("layout", string(viewconfig.ScopeKanban), "Layout: kanban or list")

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
		scope, err := parseScope(args.GetString("layout", string(viewconfig.ScopeKanban)))
		if err != nil {
			return nil, err
		}
		return withBoard(ctx, args, func(b *engine.Board) (any, error) {
			return &MenuOutput{Layout: scope, Items: b.Menu(scope)}, nil
		})
	}))
	return cmd
}

// buildFunc turns parsed flags into the customization to dispatch
type buildFunc func(b *engine.Board, args *handler.Arguments) (customize.Command, error)

// customizationCmd builds a config subcommand that dispatches one customization
func customizationCmd(use, short string, flags func(*cobra.Command), build buildFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
	}
	addBoardFlags(cmd)
	if flags != nil {
		flags(cmd)
	}

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
		return withBoard(ctx, args, func(b *engine.Board) (any, error) {
			c, err := build(b, args)
			if err != nil {
				return nil, err
			}
			res := b.Dispatch(ctx, c)
			if res.Err != nil {
				return nil, res.Err
			}
			for _, o := range res.Outcomes {
				if o.Err != nil {
					return nil, o.Err
				}
			}
			return newConfigResult(b, c.Name(), res)
		})
	}))
	return cmd
}

// targetFlags registers --status and --column
func targetFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "Kanban status to customize")
	cmd.Flags().String("column", "", "List column to customize: field key, label or index")
}

// parseTarget resolves --status or --column to a customization target
func parseTarget(b *engine.Board, args *handler.Arguments) (customize.Target, error) {
	status := strings.TrimSpace(args.GetString("status", ""))
	column := strings.TrimSpace(args.GetString("column", ""))

	switch {
	case status != "" && column != "":
		return customize.Target{}, cli.Usagef("use either --status or --column, not both")
	case status != "":
		return customize.KanbanStatus(status), nil
	case column != "":
		idx, err := cli.ColumnIndex(b.Schema(), b.Config(), column)
		if err != nil {
			return customize.Target{}, err
		}
		return customize.ListColumn(idx), nil
	}
	return customize.Target{}, cli.Usagef("--status or --column is required")
}

// listTarget is parseTarget for actions that only exist in the List layout
func listTarget(b *engine.Board, args *handler.Arguments) (customize.Target, error) {
	if args.GetString("status", "") != "" {
		return customize.Target{}, fmt.Errorf("%w: use --column", customize.ErrWrongScope)
	}
	return parseTarget(b, args)
}
