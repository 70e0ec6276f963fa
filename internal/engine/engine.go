// Package engine formats a source file by rewriting its token stream
// through the rules of a formatting query set, and verifies that the
// result is idempotent.
package engine

import (
	"bytes"

	"arbor/internal/errs"
	"arbor/internal/query"
	"arbor/internal/source"
)

// Options configures formatting.
type Options struct {
	IndentWidth int
	UseTabs     bool

	// Parser overrides the built-in generic parser, typically with one
	// loaded from a compiled grammar.
	Parser Parser
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	if o.Parser == nil {
		o.Parser = GenericParser{}
	}
	return o
}

// Parser produces the token stream for a file, reporting syntax errors
// as positioned parsing failures.
type Parser interface {
	Parse(f *source.File) ([]Token, error)
}

// Format parses f and rewrites its tokens through the query set.
func Format(f *source.File, set *query.Set, opt Options) ([]byte, error) {
	opt = opt.withDefaults()

	tokens, err := opt.Parser.Parse(f)
	if err != nil {
		return nil, err
	}

	w := newWriter(opt)
	pr := printer{set: set, writer: w}
	if err := pr.print(tokens); err != nil {
		return nil, err
	}
	return w.finish()
}

// FormatVerified formats f, then formats the output a second time. A
// failure in the second pass means the formatter produced invalid code;
// a differing second output means formatting is not idempotent. Both
// are defects in arbor rather than in the input.
func FormatVerified(f *source.File, set *query.Set, opt Options) ([]byte, error) {
	first, err := Format(f, set, opt)
	if err != nil {
		return nil, err
	}

	refed, err := source.New(f.Path, first)
	if err != nil {
		return nil, &errs.Formatting{Cause: errs.Lift(err)}
	}
	second, err := Format(refed, set, opt)
	if err != nil {
		return nil, &errs.Formatting{Cause: errs.Lift(err)}
	}

	if !bytes.Equal(first, second) {
		return nil, &errs.Idempotence{}
	}
	return first, nil
}
