package query

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"arbor/internal/errs"
)

//go:embed queries/*.scm
var builtinFS embed.FS

// LoadBuiltin parses one of the bundled query files. A query error from
// a bundled file is a defect in arbor, not in user input.
func LoadBuiltin(name string) (*Set, error) {
	data, err := builtinFS.ReadFile("queries/" + name)
	if err != nil {
		return nil, &errs.Internal{Message: "bundled query file " + name + " is missing", Cause: err}
	}
	return Parse(name, bytes.NewReader(data))
}

// Resolve loads the query file for a language: a file of that name next
// to the configuration when one exists there, otherwise the bundled
// copy.
func Resolve(name, configDir string) (*Set, error) {
	if configDir != "" {
		path := filepath.Join(configDir, "queries", name)
		f, err := os.Open(path) // #nosec G304 -- path derives from user configuration
		if err == nil {
			defer f.Close()
			return Parse(path, f)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errs.ReadFailed("Could not read query file \""+path+"\"", err)
		}
	}
	return LoadBuiltin(name)
}
