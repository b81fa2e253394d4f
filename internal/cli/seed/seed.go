package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/cli/handler"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/spf13/cobra"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample records into the local database",
		Long: `Load deterministic sample records for every kind into the local database.

The same --seed always produces the same records. Only available when the
record service mode is local.`,
		Example: `  makerflow seed
  makerflow seed --seed 42 --json`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().Uint64("seed", 1, "Random seed for the generated records")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(runSeed))
	return cmd
}

// Result reports how many records were created per kind
type Result struct {
	Seed   uint64                    `json:"seed"`
	Counts map[models.EntityKind]int `json:"counts"`
}

// Human prints one summary line
func (r *Result) Human() string {
	parts := make([]string, 0, len(models.AllKinds))
	for _, kind := range models.AllKinds {
		if n := r.Counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	return "✓ Seeded " + strings.Join(parts, ", ")
}

func runSeed(ctx context.Context, args *handler.Arguments) (any, error) {
	seed, err := args.GetCmd().Flags().GetUint64("seed")
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed flag: %w", err)
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

	repo := cliInstance.App.Repo()
	if repo == nil {
		return nil, cli.Usagef("seed needs the local record service (record_service.mode: local)")
	}

	if err := recordservice.Seed(ctx, repo, recordservice.DefaultSeedCounts, seed); err != nil {
		return nil, fmt.Errorf("failed to seed records: %w", err)
	}
	slog.Info("seeded sample records", "seed", seed)

	counts := make(map[models.EntityKind]int, len(recordservice.DefaultSeedCounts))
	for kind, n := range recordservice.DefaultSeedCounts {
		counts[kind] = n
	}
	return &Result{Seed: seed, Counts: counts}, nil
}
