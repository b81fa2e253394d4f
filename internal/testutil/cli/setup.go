// Package cli runs makerflow commands against an in-memory App in tests.
package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ianroy/makerflowPM/internal/app"
	makerflowcli "github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/config"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/testutil"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/spf13/cobra"
)

// SetupCLITest creates an in-memory database and an App whose records and
// view configurations both live in it
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testApp, err := app.New(context.Background(), config.Default(), app.WithDB(db))
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() { _ = testApp.Close() })
	return db, testApp
}

// SetupCLITestWithService creates an App over svc with an in-memory view store
func SetupCLITestWithService(t *testing.T, svc recordservice.Service) *app.App {
	t.Helper()

	testApp, err := app.New(context.Background(), config.Default(),
		app.WithRecordService(svc),
		app.WithViewStore(viewconfig.NewMemoryStore()),
	)
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() { _ = testApp.Close() })
	return testApp
}

// ExecuteCLICommand executes a CLI command with a test app instance
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetContext(makerflowcli.WithApp(context.Background(), testApp))
	return testutil.ExecuteCommand(t, cmd, args...)
}
