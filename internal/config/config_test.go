package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
[format]
indent = 4
tabs = false

[[language]]
name = "nickel"
extensions = ["ncl"]
grammar = "https://github.com/nickel-lang/tree-sitter-nickel"
revision = "abc123"
symbol = "tree_sitter_nickel"
query = "nickel.scm"
`

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir())

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Format.Indent != 4 {
		t.Errorf("Indent = %d, want 4", cfg.Format.Indent)
	}
	if len(cfg.Languages) != 1 {
		t.Fatalf("decoded %d languages, want 1", len(cfg.Languages))
	}
	l := cfg.Languages[0]
	if l.Name != "nickel" || l.Revision != "abc123" || l.Query != "nickel.scm" {
		t.Errorf("language decoded wrong: %+v", l)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("config not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want file under %q", path, root)
	}
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for defaults", cfg.Path)
	}
	if cfg.Format.Indent != 2 {
		t.Errorf("default Indent = %d, want 2", cfg.Format.Indent)
	}
}

func TestRegistryMergesConfigured(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, t.TempDir()))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	r := cfg.Registry()
	l, err := r.Detect("config.ncl")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if l.Grammar.Revision != "abc123" {
		t.Errorf("configured grammar lost: %+v", l.Grammar)
	}
	if _, err := r.Detect("x.json"); err != nil {
		t.Errorf("built-in language lost: %v", err)
	}
}
