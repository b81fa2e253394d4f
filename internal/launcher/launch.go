package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/ianroy/makerflowPM/internal/app"
	"github.com/ianroy/makerflowPM/internal/config"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/tui/core"
)

// drainTimeout bounds how long saves still in flight may take after quit
const drainTimeout = 5 * time.Second

// Options selects the board the TUI opens
type Options struct {
	Kind  models.EntityKind
	Scope string
}

// Launch starts the TUI application on one board
func Launch(opts Options) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing app", "error", err)
		}
	}()

	b, err := application.OpenBoard(ctx, opts.Kind, opts.Scope)
	if err != nil {
		return fmt.Errorf("failed to open board: %w", err)
	}
	slog.Info("board opened", "board", b.Key(), "session", b.SessionID(), "records", len(b.Records()))

	tuiApp := core.New(ctx, b, cfg, application.Publisher)
	p := tea.NewProgram(tuiApp, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
	}

	waitForSaves(b.Pending, drainTimeout)
	return nil
}

// waitForSaves gives quick-edits still in flight a chance to finish before
// the record service connection closes
func waitForSaves[T any](pending func() []T, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for len(pending()) > 0 {
		if time.Now().After(deadline) {
			slog.Warn("quitting with saves still pending", "count", len(pending()))
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
