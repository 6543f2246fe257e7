package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "depth: 5\nignore:\n  - HTTPException\n  - app.Ignored\nformat: json\nstrict: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.MaxDepth(3); got != 5 {
		t.Errorf("MaxDepth = %d, want 5", got)
	}
	if got := cfg.OutputFormat("text"); got != "json" {
		t.Errorf("OutputFormat = %q, want json", got)
	}
	if !cfg.StrictMode(false) {
		t.Error("StrictMode = false, want true")
	}
	want := []string{"HTTPException", "app.Ignored", "Extra"}
	if got := cfg.IgnoreList([]string{"Extra"}); !reflect.DeepEqual(got, want) {
		t.Errorf("IgnoreList = %v, want %v", got, want)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of an explicit missing file should error")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "depth: [not\n")
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML should error")
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "depth: 2\n")

	cfg, err := LoadDefault(dir)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if got := cfg.MaxDepth(3); got != 2 {
		t.Errorf("MaxDepth = %d, want 2", got)
	}
}

func TestLoadDefault_NextToFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "depth: 1\n")
	target := filepath.Join(dir, "router.py")
	if err := os.WriteFile(target, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDefault(target)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if got := cfg.MaxDepth(3); got != 1 {
		t.Errorf("MaxDepth = %d, want 1", got)
	}
}

func TestLoadDefault_Absent(t *testing.T) {
	cfg, err := LoadDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg != nil {
		t.Errorf("cfg = %+v, want nil when no file exists", cfg)
	}
}

func TestNilConfigFallbacks(t *testing.T) {
	var cfg *Config
	if got := cfg.MaxDepth(3); got != 3 {
		t.Errorf("MaxDepth = %d, want fallback 3", got)
	}
	if got := cfg.OutputFormat("text"); got != "text" {
		t.Errorf("OutputFormat = %q, want fallback text", got)
	}
	if cfg.StrictMode(false) {
		t.Error("StrictMode should fall back to false")
	}
	if got := cfg.IgnoreList([]string{"A"}); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("IgnoreList = %v, want [A]", got)
	}
}
