// Package source loads formatter input and resolves byte offsets to
// line/column positions for parse spans.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"arbor/internal/errs"
)

// StdinName is the pseudo path used for input read from standard input.
const StdinName = "-"

// File is a single immutable formatter input.
type File struct {
	Path    string
	Content []byte

	// lineIdx holds the byte offset of every '\n' in Content.
	lineIdx []uint32
}

// Load reads a file from disk and validates it as UTF-8.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, errs.ReadFailed(fmt.Sprintf("Could not read input file %q", path), err)
	}
	return New(normalizePath(path), content)
}

// ReadStdin reads the whole of r as standard-input content.
func ReadStdin(r io.Reader) (*File, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.ReadFailed("Could not read from standard input", err)
	}
	return New(StdinName, content)
}

// New builds a File from in-memory content. Invalid UTF-8 lifts to a
// reading error; content larger than the 32-bit offset space is rejected
// because spans address bytes with uint32 offsets.
func New(path string, content []byte) (*File, error) {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, &errs.Internal{Message: fmt.Sprintf("input %q exceeds the addressable size", path), Cause: nil}
	}
	if err := validateUTF8(content); err != nil {
		return nil, errs.Lift(err)
	}
	return &File{
		Path:    path,
		Content: content,
		lineIdx: buildLineIndex(content),
	}, nil
}

// validateUTF8 runs the content through the x/text UTF-8 validator and
// returns its sentinel error on the first invalid sequence.
func validateUTF8(content []byte) error {
	_, _, err := transform.Bytes(encoding.UTF8Validator, content)
	return err
}

func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
