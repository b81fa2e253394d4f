package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupFiltersByLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&buf, slog.LevelInfo)

	slog.Debug("hidden detail")
	slog.Warn("view configuration normalized to defaults", "board", "u1:tasks:all")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, "board=u1:tasks:all") {
		t.Errorf("expected key/value pair in %q", out)
	}
}

func TestInitCreatesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Init(slog.LevelDebug); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	slog.Info("board opened")

	data, err := os.ReadFile(filepath.Join(home, ".makerflow", "logs", "makerflow.log"))
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "board opened") {
		t.Errorf("log file does not contain message: %s", data)
	}
}
