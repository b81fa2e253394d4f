package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ianroy/makerflowPM/internal/config/colors"
)

func TestThemeFileLoading(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	themeFile := filepath.Join(t.TempDir(), "theme.yaml")
	themeContent := []byte(`theme:
  accent: "#FF0000"
  separator: "#00FF00"
  locked: "#0000FF"
`)
	if err := os.WriteFile(themeFile, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	t.Setenv("MAKERFLOW_THEME_FILE", themeFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Separator != "#00FF00" {
		t.Errorf("Expected separator to be #00FF00, got %s", cfg.ColorScheme.Separator)
	}
	if cfg.ColorScheme.Locked != "#0000FF" {
		t.Errorf("Expected locked to be #0000FF, got %s", cfg.ColorScheme.Locked)
	}

	// Verify other colors still have defaults
	if cfg.ColorScheme.ErrorFg == "" {
		t.Error("Expected error_fg to have default value")
	}
}

func TestPresetDefaults(t *testing.T) {
	for _, name := range []string{"default", "monochrome", "wave", "dragon", "lotus"} {
		t.Run(name, func(t *testing.T) {
			scheme := colors.ColorScheme{Preset: name, Accent: "#123456"}
			scheme.ApplyDefaults()

			if scheme.Accent != "#123456" {
				t.Errorf("custom accent overwritten: %s", scheme.Accent)
			}
			preset := colors.GetPreset(name)
			if scheme.Normal != preset.Normal || scheme.Normal == "" {
				t.Errorf("Normal = %q, want preset %q", scheme.Normal, preset.Normal)
			}
			if scheme.StatusBarBg == "" || scheme.Pending == "" {
				t.Error("preset left colors empty")
			}
		})
	}
}

func TestUnknownPresetFallsBack(t *testing.T) {
	if colors.GetPreset("neon").Preset != "default" {
		t.Error("unknown preset should fall back to default")
	}
}
