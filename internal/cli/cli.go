package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ianroy/makerflowPM/internal/app"
	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/config"
	"github.com/ianroy/makerflowPM/internal/models"
)

type contextKey string

const appKey contextKey = "app"

// WithApp returns a context carrying an already wired App. Commands run under
// it use that App instead of building one from the config file.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// CLI represents the CLI application context
type CLI struct {
	App *app.App

	owned  bool // App was created here and is closed with the CLI
	opened []string
}

// NewCLI returns the App injected with WithApp, or loads the config file and
// wires a new one
func NewCLI(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return &CLI{App: a, owned: true}, nil
}

// OpenBoard opens the configured user's board and fails when the records
// could not be loaded
func (c *CLI) OpenBoard(ctx context.Context, kind models.EntityKind, scope string) (*board.Board, error) {
	b, err := c.App.OpenBoard(ctx, kind, scope)
	if err != nil {
		return nil, err
	}
	c.opened = append(c.opened, b.Key())
	if err := b.LoadError(); err != nil {
		return nil, err
	}
	return b, nil
}

// Close releases the boards opened by this command, and the App when the
// CLI created it
func (c *CLI) Close() error {
	for _, key := range c.opened {
		c.App.Boards.Close(key)
	}
	c.opened = nil
	if !c.owned {
		return nil
	}
	slog.Debug("closing cli app")
	return c.App.Close()
}
