// Package grammar fetches, builds, loads and caches the native parser
// grammars the formatter depends on.
package grammar

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"arbor/internal/errs"
	"arbor/internal/lang"
)

// Fetch clones or updates the grammar repository for a language under
// dir and checks out the configured revision. Every git failure is
// classified as a grammar-fetch error.
func Fetch(ctx context.Context, l *lang.Language, dir string) (string, error) {
	repoDir := filepath.Join(dir, "grammars", l.Name)

	slog.Debug("fetching grammar",
		slog.String("language", l.Name),
		slog.String("url", l.Grammar.Repository),
		slog.String("dir", repoDir))

	repo, err := git.PlainCloneContext(ctx, repoDir, false, &git.CloneOptions{
		URL: l.Grammar.Repository,
	})
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = openAndUpdate(ctx, repoDir)
	}
	if err != nil {
		return "", &errs.Git{Cause: err}
	}

	if l.Grammar.Revision != "" {
		if err := checkout(repo, l.Grammar.Revision); err != nil {
			return "", &errs.Git{Cause: err}
		}
	}
	return repoDir, nil
}

func openAndUpdate(ctx context.Context, repoDir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return nil, err
	}
	err = repo.FetchContext(ctx, &git.FetchOptions{})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, err
	}
	return repo, nil
}

func checkout(repo *git.Repository, revision string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
}

// CacheDir returns the arbor cache root, honouring XDG_CACHE_HOME.
func CacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "arbor")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
