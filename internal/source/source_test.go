package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arbor/internal/errs"
)

func TestPos(t *testing.T) {
	f, err := New("test.txt", []byte("ab\ncde\n\nf"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		off      uint32
		expected LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"middle of first line", 1, LineCol{Line: 1, Col: 2}},
		{"newline belongs to its line", 2, LineCol{Line: 1, Col: 3}},
		{"start of second line", 3, LineCol{Line: 2, Col: 1}},
		{"end of second line", 6, LineCol{Line: 2, Col: 4}},
		{"empty third line", 7, LineCol{Line: 3, Col: 1}},
		{"start of fourth line", 8, LineCol{Line: 4, Col: 1}},
		{"offset past the end clamps", 100, LineCol{Line: 4, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Pos(tt.off); got != tt.expected {
				t.Errorf("Pos(%d) = %v, want %v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestPosSingleLine(t *testing.T) {
	f, err := New("one.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f.Pos(4); got != (LineCol{Line: 1, Col: 5}) {
		t.Errorf("Pos(4) = %v, want 1:5", got)
	}
}

func TestLine(t *testing.T) {
	f, err := New("test.txt", []byte("ab\ncde\n\nf"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		line     uint32
		expected string
	}{
		{1, "ab"},
		{2, "cde"},
		{3, ""},
		{4, "f"},
		{5, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.Line(tt.line); got != tt.expected {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestLineColBefore(t *testing.T) {
	a := LineCol{Line: 1, Col: 5}
	b := LineCol{Line: 2, Col: 1}
	if !a.Before(b) || b.Before(a) {
		t.Error("line-major ordering is wrong across lines")
	}
	c := LineCol{Line: 1, Col: 6}
	if !a.Before(c) || c.Before(a) {
		t.Error("column ordering is wrong within a line")
	}
	if a.Before(a) {
		t.Error("a position is not before itself")
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	var reading *errs.Reading
	if !errors.As(err, &reading) {
		t.Fatalf("error type = %T, want *errs.Reading", err)
	}
	sub, ok := reading.Err.(*errs.ReadIO)
	if !ok {
		t.Fatalf("sub variant = %T, want *errs.ReadIO", reading.Err)
	}
	if !strings.Contains(sub.Context, "absent.json") {
		t.Errorf("context %q does not name the file", sub.Context)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("original cause lost from the chain")
	}
}

func TestNewRejectsInvalidUTF8(t *testing.T) {
	_, err := New("bad.bin", []byte{'h', 'i', 0xff, 0xfe})
	if err == nil {
		t.Fatal("expected an error for invalid UTF-8")
	}

	var reading *errs.Reading
	if !errors.As(err, &reading) {
		t.Fatalf("error type = %T, want *errs.Reading", err)
	}
	if _, ok := reading.Err.(*errs.ReadUTF8); !ok {
		t.Fatalf("sub variant = %T, want *errs.ReadUTF8", reading.Err)
	}
	if got := err.Error(); got != "Input is not UTF8" {
		t.Errorf("message = %q, want fixed UTF8 text", got)
	}
}

func TestReadStdin(t *testing.T) {
	f, err := ReadStdin(strings.NewReader("x = 1\n"))
	if err != nil {
		t.Fatalf("ReadStdin: %v", err)
	}
	if f.Path != StdinName {
		t.Errorf("Path = %q, want %q", f.Path, StdinName)
	}
	if string(f.Content) != "x = 1\n" {
		t.Errorf("Content = %q", f.Content)
	}
}
