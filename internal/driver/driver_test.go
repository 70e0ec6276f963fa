package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arbor/internal/config"
	"arbor/internal/errs"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatPathsInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", `{"a":1}`)

	results, err := FormatPaths(context.Background(), []string{path}, config.Default(), Options{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("result error: %v", results[0].Err)
	}
	if !results[0].Changed {
		t.Error("file should have been rewritten")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "{\n  \"a\": 1\n}\n" {
		t.Errorf("rewritten content = %q", content)
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	original := `{"a":1}`
	path := writeFile(t, dir, "a.json", original)

	results, err := FormatPaths(context.Background(), []string{path}, config.Default(), Options{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed {
		t.Error("check mode should report pending changes")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != original {
		t.Error("check mode modified the file")
	}
}

func TestFormatPathsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"b":2}`)
	writeFile(t, dir, "notes.txt", "not an input")
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "a.json", `{"a":1}`)

	results, err := FormatPaths(context.Background(), []string{dir}, config.Default(), Options{Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (txt must be skipped)", len(results))
	}
	// Deterministic order regardless of walk interleaving.
	if !strings.HasSuffix(results[0].Path, "b.json") || !strings.HasSuffix(results[1].Path, filepath.Join("sub", "a.json")) {
		t.Errorf("unexpected order: %q, %q", results[0].Path, results[1].Path)
	}
}

func TestFormatPathsClassifiesPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"a":1}`)
	broken := writeFile(t, dir, "broken.json", `{"a":1`)
	unknown := writeFile(t, dir, "data.xyz", "x")

	results, err := FormatPaths(context.Background(), []string{good, broken, unknown}, config.Default(), Options{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}

	byPath := make(map[string]Result, len(results))
	for _, r := range results {
		byPath[filepath.Base(r.Path)] = r
	}

	if byPath["good.json"].Err != nil {
		t.Errorf("good file failed: %v", byPath["good.json"].Err)
	}

	var perr *errs.Parsing
	if !errors.As(byPath["broken.json"].Err, &perr) {
		t.Errorf("broken.json error = %T, want *errs.Parsing", byPath["broken.json"].Err)
	}

	var det *errs.LanguageDetection
	if !errors.As(byPath["data.xyz"].Err, &det) {
		t.Errorf("data.xyz error = %T, want *errs.LanguageDetection", byPath["data.xyz"].Err)
	} else if det.Extension != "xyz" {
		t.Errorf("Extension = %q, want xyz", det.Extension)
	}
}

func TestFormatPathsForcedLanguage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.xyz", `{"a":1}`)

	results, err := FormatPaths(context.Background(), []string{path}, config.Default(), Options{Stdout: true, Language: "json"})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("forced language failed: %v", results[0].Err)
	}
	if string(results[0].Formatted) != "{\n  \"a\": 1\n}\n" {
		t.Errorf("Formatted = %q", results[0].Formatted)
	}

	_, err = FormatPaths(context.Background(), []string{path}, config.Default(), Options{Language: "klingon"})
	if err == nil || !strings.Contains(err.Error(), "unknown language") {
		t.Errorf("err = %v, want unknown language", err)
	}
}

func TestFormatStdin(t *testing.T) {
	var out bytes.Buffer
	err := FormatStdin(context.Background(), strings.NewReader(`{"a":1}`), &out, config.Default(), Options{Language: "json"})
	if err != nil {
		t.Fatalf("FormatStdin: %v", err)
	}
	if out.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestFormatStdinNeedsLanguage(t *testing.T) {
	var out bytes.Buffer
	err := FormatStdin(context.Background(), strings.NewReader("x"), &out, config.Default(), Options{})
	if err == nil {
		t.Fatal("expected a detection error")
	}
	var det *errs.LanguageDetection
	if !errors.As(err, &det) {
		t.Fatalf("error type = %T, want *errs.LanguageDetection", err)
	}
	if det.Filename != "-" {
		t.Errorf("Filename = %q, want -", det.Filename)
	}
	want := "Cannot detect language from standard input. Try specifying language explicitly."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
