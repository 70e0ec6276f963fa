// Package driver orchestrates formatting across files and directories.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"arbor/internal/config"
	"arbor/internal/engine"
	"arbor/internal/errs"
	"arbor/internal/grammar"
	"arbor/internal/lang"
	"arbor/internal/query"
	"arbor/internal/source"
)

// Options configures a formatting run.
type Options struct {
	// Check reports whether files would change instead of rewriting
	// them.
	Check bool
	// Stdout returns formatted content in the results instead of
	// touching files.
	Stdout bool
	// Language forces a language by name instead of detecting one per
	// file.
	Language string
	// FetchGrammars fetches, builds and loads the configured grammar
	// for each language instead of using the built-in generic parser.
	FetchGrammars bool
	// SkipVerification disables the idempotence check.
	SkipVerification bool
	// Jobs bounds parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// Result captures the outcome for a single file. Err, when set, is
// always a classified formatter error.
type Result struct {
	Path      string
	Changed   bool
	Formatted []byte
	Err       error
}

// FormatPaths formats the given files and directories. Directories are
// walked recursively, picking up files whose extension maps to a known
// language. Per-file failures land in the result; only argument and
// traversal problems abort the whole run.
func FormatPaths(ctx context.Context, paths []string, cfg *config.Config, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	registry := cfg.Registry()

	var forced *lang.Language
	if opts.Language != "" {
		l, ok := registry.ByName(opts.Language)
		if !ok {
			return nil, fmt.Errorf("unknown language %q (known: %s)",
				opts.Language, strings.Join(registry.Names(), ", "))
		}
		forced = l
	}

	files, err := collectFiles(paths, registry)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(ctx, path, cfg, registry, forced, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FormatStdin formats standard input onto w. The language must be
// forced or detection fails, since there is no filename to inspect.
func FormatStdin(ctx context.Context, r io.Reader, w io.Writer, cfg *config.Config, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := source.ReadStdin(r)
	if err != nil {
		return err
	}

	registry := cfg.Registry()
	var l *lang.Language
	if opts.Language != "" {
		known, ok := registry.ByName(opts.Language)
		if !ok {
			return fmt.Errorf("unknown language %q (known: %s)",
				opts.Language, strings.Join(registry.Names(), ", "))
		}
		l = known
	} else {
		if l, err = registry.Detect(source.StdinName); err != nil {
			return err
		}
	}

	out, err := formatFile(ctx, f, l, cfg, opts)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s", out); err != nil {
		return errs.LiftPrint(err)
	}
	return nil
}

func formatOne(ctx context.Context, path string, cfg *config.Config, registry *lang.Registry, forced *lang.Language, opts Options) Result {
	res := Result{Path: path}

	f, err := source.Load(path)
	if err != nil {
		res.Err = err
		return res
	}

	l := forced
	if l == nil {
		if l, err = registry.Detect(path); err != nil {
			res.Err = err
			return res
		}
	}

	out, err := formatFile(ctx, f, l, cfg, opts)
	if err != nil {
		res.Err = err
		return res
	}

	res.Changed = !bytes.Equal(f.Content, out)
	if opts.Stdout {
		res.Formatted = out
		return res
	}
	if opts.Check || !res.Changed {
		return res
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		res.Err = errs.Lift(err)
	}
	return res
}

func formatFile(ctx context.Context, f *source.File, l *lang.Language, cfg *config.Config, opts Options) ([]byte, error) {
	configDir := ""
	if cfg.Path != "" {
		configDir = filepath.Dir(cfg.Path)
	}
	set, err := query.Resolve(l.QueryFile, configDir)
	if err != nil {
		return nil, err
	}

	parser, err := resolveParser(ctx, l, opts)
	if err != nil {
		return nil, err
	}

	engineOpts := engine.Options{
		IndentWidth: cfg.Format.Indent,
		UseTabs:     cfg.Format.Tabs,
		Parser:      parser,
	}
	if opts.SkipVerification {
		return engine.Format(f, set, engineOpts)
	}
	return engine.FormatVerified(f, set, engineOpts)
}

func resolveParser(ctx context.Context, l *lang.Language, opts Options) (engine.Parser, error) {
	if !opts.FetchGrammars || l.Grammar.Repository == "" {
		return engine.GenericParser{}, nil
	}
	root, err := grammar.CacheDir()
	if err != nil {
		return nil, &errs.ParserCompilation{Err: &errs.CompileIO{Cause: err}}
	}
	return grammar.Ensure(ctx, l, root, grammar.OpenCache(root))
}

// collectFiles expands the argument list: files are taken as given,
// directories contribute every file with a known extension, sorted for
// deterministic result order.
func collectFiles(paths []string, registry *lang.Registry) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot stat %q: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, detectErr := registry.Detect(p); detectErr == nil {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
