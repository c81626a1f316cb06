package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got: %v", err)
	}
	if cfg.DPI != 200 {
		t.Errorf("default DPI = %d, want 200", cfg.DPI)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := Default()
	want.DefaultTemplate = "corporate.yaml"
	want.FontPath = "/usr/share/fonts/arial.ttf"
	want.DPI = 150
	want.ColorMap = map[string]string{"FAIL": "FFDC2626"}
	want.DetailedLog = true

	if err := SaveTo(want, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.DefaultTemplate != want.DefaultTemplate ||
		got.FontPath != want.FontPath ||
		got.DPI != want.DPI ||
		got.DetailedLog != want.DetailedLog ||
		got.ColorMap["FAIL"] != "FFDC2626" {
		t.Errorf("roundtrip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadFromInvalidDPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"dpi": -5}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DPI != 200 {
		t.Errorf("invalid DPI not reset, got %d", cfg.DPI)
	}
}

func TestLoadFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("corrupt config should fail")
	}
}
