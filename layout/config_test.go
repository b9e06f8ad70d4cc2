// ABOUTME: Tests for display configuration loading.
// ABOUTME: Covers defaults, partial YAML overlay, missing files, and category color fallback.
package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MonthWidth != 18 {
		t.Errorf("MonthWidth = %d, want 18", cfg.MonthWidth)
	}
	if cfg.BarHeight <= 0 || cfg.RowGap <= 0 {
		t.Errorf("bar metrics must be positive: %d, %d", cfg.BarHeight, cfg.RowGap)
	}
	for _, cat := range []string{"federal", "state", "municipal", "partisan", "other"} {
		if cfg.Colors[cat] == "" {
			t.Errorf("missing default color for %q", cat)
		}
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.MonthWidth != 18 {
		t.Errorf("MonthWidth = %d, want default 18", cfg.MonthWidth)
	}

	cfg, err = LoadConfig("")
	if err != nil || cfg.MonthWidth != 18 {
		t.Errorf("empty path should yield defaults, got %d, %v", cfg.MonthWidth, err)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.yaml")
	content := "month_width: 9\ncolors:\n  federal: \"#ff0000\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MonthWidth != 9 {
		t.Errorf("MonthWidth = %d, want 9", cfg.MonthWidth)
	}
	if cfg.Colors["federal"] != "#ff0000" {
		t.Errorf("federal color = %q", cfg.Colors["federal"])
	}
	// Untouched fields keep defaults.
	if cfg.BarHeight != DefaultConfig().BarHeight {
		t.Errorf("BarHeight = %d, want default", cfg.BarHeight)
	}
	if cfg.Colors["state"] != DefaultConfig().Colors["state"] {
		t.Errorf("state color lost its default: %q", cfg.Colors["state"])
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("month_width: [nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestConfigColorFallback(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Color("federal") != cfg.Colors["federal"] {
		t.Error("known category should use its own color")
	}
	if cfg.Color("unheard-of") != cfg.Colors["other"] {
		t.Error("unknown category should fall back to the other color")
	}
}
