package query

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"arbor/internal/errs"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"json.scm", "toml.scm", "css.scm"} {
		t.Run(name, func(t *testing.T) {
			set, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q): %v", name, err)
			}
			if len(set.Rules) == 0 {
				t.Errorf("bundled %s has no rules", name)
			}
		})
	}
}

func TestLoadBuiltinMissing(t *testing.T) {
	_, err := LoadBuiltin("nope.scm")
	if err == nil {
		t.Fatal("expected an error")
	}
	var internal *errs.Internal
	if !errors.As(err, &internal) {
		t.Fatalf("error type = %T, want *errs.Internal", err)
	}
	if internal.Cause == nil {
		t.Error("missing-file cause dropped")
	}
}

func TestResolvePrefersUserQueries(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "queries"), 0o755); err != nil {
		t.Fatal(err)
	}
	custom := "newline after \";\"\n"
	if err := os.WriteFile(filepath.Join(dir, "queries", "json.scm"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Resolve("json.scm", dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(set.Rules) != 1 || !set.NewlineAfterToken(";") {
		t.Errorf("user query not used: %+v", set.Rules)
	}

	// Without a user copy the bundled file is used.
	set, err = Resolve("json.scm", t.TempDir())
	if err != nil {
		t.Fatalf("Resolve bundled: %v", err)
	}
	if !set.NewlineAfterToken("{") {
		t.Error("bundled json rules not loaded")
	}
}
