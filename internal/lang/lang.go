// Package lang holds the language registry and filename-based language
// detection.
package lang

import (
	"path/filepath"
	"sort"
	"strings"

	"arbor/internal/errs"
	"arbor/internal/source"
)

// Grammar describes where a language's parser grammar comes from.
type Grammar struct {
	// Repository is the git URL of the grammar sources.
	Repository string
	// Revision is the commit or reference to check out; empty means the
	// remote default branch.
	Revision string
	// Symbol is the exported parser symbol of the built library.
	Symbol string
}

// Language is one formattable language.
type Language struct {
	Name string
	// Extensions are matched case-insensitively, without the leading dot.
	Extensions []string
	Grammar    Grammar
	// QueryFile names the formatting query file for the language.
	QueryFile string
}

// Registry maps filenames to languages.
type Registry struct {
	languages []*Language
	byName    map[string]*Language
	byExt     map[string]*Language
}

// NewRegistry builds a registry from the given languages. Later entries
// override earlier ones on name or extension clashes, so user
// configuration can shadow the built-in set.
func NewRegistry(languages []*Language) *Registry {
	r := &Registry{
		byName: make(map[string]*Language, len(languages)),
		byExt:  make(map[string]*Language),
	}
	for _, l := range languages {
		r.add(l)
	}
	return r
}

func (r *Registry) add(l *Language) {
	key := strings.ToLower(l.Name)
	if prev, ok := r.byName[key]; ok {
		for i, known := range r.languages {
			if known == prev {
				r.languages[i] = l
			}
		}
	} else {
		r.languages = append(r.languages, l)
	}
	r.byName[key] = l
	for _, ext := range l.Extensions {
		r.byExt[strings.ToLower(ext)] = l
	}
}

// Names returns the registered language names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.languages))
	for _, l := range r.languages {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

// ByName looks up a language by its configured name.
func (r *Registry) ByName(name string) (*Language, bool) {
	l, ok := r.byName[strings.ToLower(name)]
	return l, ok
}

// Detect infers the language of a filename from its extension. Standard
// input and extensionless names fail without an extension payload; a
// parsed but unrecognized extension is reported in the error.
func (r *Registry) Detect(filename string) (*Language, error) {
	if filename == source.StdinName {
		return nil, &errs.LanguageDetection{Filename: filename}
	}
	ext := strings.TrimPrefix(filepath.Ext(filepath.Base(filename)), ".")
	if ext == "" {
		return nil, &errs.LanguageDetection{Filename: filename}
	}
	if l, ok := r.byExt[strings.ToLower(ext)]; ok {
		return l, nil
	}
	return nil, &errs.LanguageDetection{Filename: filename, Extension: ext}
}
