package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/cli/styles"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/spf13/cobra"
)

// long text fields are rendered as markdown below the other fields
var longTextFields = map[string]bool{
	"description": true,
	"notes":       true,
	"details":     true,
}

// ShowCmd returns the record show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show record details",
		Long:  "Display every field of a record. Descriptions and notes are rendered as markdown.",
		Example: `  makerflow record show 12
  makerflow record show --kind intake --id 3 --json`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().String("kind", string(models.KindTasks), "Entity kind (tasks, projects, intake, assets, consumables, partnerships)")
	cmd.Flags().Int64("id", 0, "Record ID (can also be provided as positional argument)")
	cmd.Flags().Int("width", 80, "Wrap width for markdown fields")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(runShow))
	return cmd
}

// Detail is a record with its field layout
type Detail struct {
	ID     int64             `json:"id"`
	Kind   models.EntityKind `json:"kind"`
	Title  string            `json:"title"`
	Status string            `json:"status"`
	Fields map[string]string `json:"fields"`

	schema models.Schema
	width  int
}

// GetID lets --quiet print the record ID
func (d *Detail) GetID() int {
	return int(d.ID)
}

// Human renders the record as a card
func (d *Detail) Human() string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d: %s", d.ID, d.Title)))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s · %s", d.schema.Label, d.Status)))
	content.WriteString("\n\n")

	labelWidth := 0
	for _, f := range d.schema.Fields {
		labelWidth = max(labelWidth, len(f.Label))
	}
	for _, f := range d.schema.Fields {
		if f.Key == d.schema.TitleField || longTextFields[f.Key] {
			continue
		}
		value := d.Fields[f.Key]
		if value == "" {
			value = "-"
		}
		label := fmt.Sprintf("%-*s", labelWidth+1, f.Label+":")
		content.WriteString(styles.LabelStyle.Render(label) + " " + styles.ValueStyle.Render(value) + "\n")
	}

	for _, f := range d.schema.Fields {
		if !longTextFields[f.Key] || d.Fields[f.Key] == "" {
			continue
		}
		content.WriteString("\n")
		content.WriteString(styles.SectionStyle.Render(f.Label))
		content.WriteString("\n")
		content.WriteString(renderMarkdown(d.Fields[f.Key], d.width))
	}

	return styles.RenderCard(strings.TrimRight(content.String(), "\n"))
}

// renderMarkdown renders long text with glamour, falling back to the raw text
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Warn("failed to create markdown renderer", "error", err)
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		slog.Warn("failed to render markdown", "error", err)
		return text + "\n"
	}
	return strings.Trim(out, "\n") + "\n"
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	parser := handler.NewFlagParser(args.GetCmd())
	kind, err := parser.ParseKind("kind")
	if err != nil {
		return nil, err
	}
	id, err := parser.ParseRecordID("id", args.Args)
	if err != nil {
		return nil, err
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
	styles.Init(cliInstance.App.Config.ColorScheme)

	b, err := cliInstance.OpenBoard(ctx, kind, "all")
	if err != nil {
		return nil, err
	}
	rec, ok := b.Record(id)
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", kind, id, cache.ErrRecordNotCached)
	}

	return &Detail{
		ID:     rec.ID,
		Kind:   rec.Kind,
		Title:  rec.Title(),
		Status: rec.Status(),
		Fields: rec.Fields,
		schema: b.Schema(),
		width:  max(args.GetInt("width", 80)-8, 20),
	}, nil
}
