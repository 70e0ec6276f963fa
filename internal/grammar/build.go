package grammar

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"arbor/internal/errs"
)

// Build compiles the parser sources in repoDir into a shared object
// under outDir and returns the artifact path. Filesystem and spawn
// failures are I/O compilation errors; a non-zero compiler exit is
// reported with both captured output streams.
func Build(ctx context.Context, name, repoDir, outDir string) (string, error) {
	srcDir := filepath.Join(repoDir, "src")
	sources, err := parserSources(srcDir)
	if err != nil {
		return "", &errs.ParserCompilation{Err: &errs.CompileIO{Cause: err}}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", &errs.ParserCompilation{Err: &errs.CompileIO{Cause: err}}
	}
	artifact := filepath.Join(outDir, name+".so")

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}
	args := []string{"-shared", "-fPIC", "-O2", "-I", srcDir, "-o", artifact}
	args = append(args, sources...)

	slog.Debug("compiling grammar", slog.String("cc", cc), slog.String("artifact", artifact))

	cmd := exec.CommandContext(ctx, cc, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &errs.ParserCompilation{Err: &errs.CompileCC{
				Stdout: stdout.String(),
				Stderr: stderr.String(),
			}}
		}
		return "", &errs.ParserCompilation{Err: &errs.CompileIO{Cause: err}}
	}
	return artifact, nil
}

// parserSources lists the C sources of a grammar checkout. parser.c is
// mandatory; scanner.c and scanner.cc are optional.
func parserSources(srcDir string) ([]string, error) {
	parser := filepath.Join(srcDir, "parser.c")
	if _, err := os.Stat(parser); err != nil {
		return nil, err
	}
	sources := []string{parser}
	for _, optional := range []string{"scanner.c", "scanner.cc"} {
		path := filepath.Join(srcDir, optional)
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
		}
	}
	return sources, nil
}
