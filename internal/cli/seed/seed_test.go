package seed

import (
	"context"
	"testing"

	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/testutil"
	clitest "github.com/ianroy/makerflowPM/internal/testutil/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLoadsEveryKind(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--seed", "7", "--json"})
	require.NoError(t, err)

	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, float64(7), data["seed"])
	counts := data["counts"].(map[string]any)

	for kind, want := range recordservice.DefaultSeedCounts {
		records, err := app.Repo().Records.List(context.Background(), kind, "")
		require.NoError(t, err)
		assert.Len(t, records, want, "kind %s", kind)
		assert.Equal(t, float64(want), counts[string(kind)])
	}
}

func TestSeedHumanOutput(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{})
	require.NoError(t, err)
	assert.Contains(t, output, "Seeded")
	assert.Contains(t, output, string(models.KindTasks))
}

func TestSeedNeedsLocalRecords(t *testing.T) {
	app := clitest.SetupCLITestWithService(t, testutil.NewFakeService())

	_, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
