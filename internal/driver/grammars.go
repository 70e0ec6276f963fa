package driver

import (
	"context"
	"fmt"
	"log/slog"

	"arbor/internal/config"
	"arbor/internal/grammar"
	"arbor/internal/lang"
)

// GrammarResult is the outcome of preparing one language's grammar.
type GrammarResult struct {
	Language string
	Err      error
}

// EnsureGrammars fetches, builds and loads the grammars for the named
// languages, or for every language with a configured grammar when no
// names are given. Each failure is classified and reported per
// language.
func EnsureGrammars(ctx context.Context, cfg *config.Config, names []string) ([]GrammarResult, error) {
	registry := cfg.Registry()

	var languages []*lang.Language
	if len(names) == 0 {
		for _, name := range registry.Names() {
			l, _ := registry.ByName(name)
			if l.Grammar.Repository != "" {
				languages = append(languages, l)
			}
		}
	} else {
		for _, name := range names {
			l, ok := registry.ByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown language %q", name)
			}
			languages = append(languages, l)
		}
	}

	root, err := grammar.CacheDir()
	if err != nil {
		return nil, err
	}
	cache := grammar.OpenCache(root)

	results := make([]GrammarResult, 0, len(languages))
	for _, l := range languages {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		slog.Info("preparing grammar", slog.String("language", l.Name))
		_, err := grammar.Ensure(ctx, l, root, cache)
		results = append(results, GrammarResult{Language: l.Name, Err: err})
	}
	return results, nil
}
