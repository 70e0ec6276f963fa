package grammar

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"arbor/internal/engine"
	"arbor/internal/lang"
)

// Ensure returns a ready parser for the language: cache hit, or fetch +
// build + load, recording the artifact for next time. Languages without
// a grammar repository use the built-in generic parser.
func Ensure(ctx context.Context, l *lang.Language, cacheRoot string, cache *Cache) (engine.Parser, error) {
	if l.Grammar.Repository == "" {
		return engine.GenericParser{}, nil
	}

	key := Key(l.Grammar)
	var cached Payload
	if ok, err := cache.Get(key, &cached); err == nil && ok {
		if _, statErr := os.Stat(cached.Artifact); statErr == nil {
			parser, loadErr := Load(cached.Artifact, cached.Symbol)
			if loadErr == nil {
				return parser, nil
			}
			slog.Debug("cached grammar failed to load, rebuilding",
				slog.String("language", l.Name), slog.Any("error", loadErr))
		}
	}

	repoDir, err := Fetch(ctx, l, cacheRoot)
	if err != nil {
		return nil, err
	}
	artifact, err := Build(ctx, l.Name, repoDir, filepath.Join(cacheRoot, "lib"))
	if err != nil {
		return nil, err
	}
	parser, err := Load(artifact, l.Grammar.Symbol)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(key, &Payload{
		Name:     l.Name,
		Revision: l.Grammar.Revision,
		Artifact: artifact,
		Symbol:   l.Grammar.Symbol,
	}); err != nil {
		slog.Debug("grammar cache write failed", slog.Any("error", err))
	}
	return parser, nil
}
