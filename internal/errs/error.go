package errs

import (
	"errors"
	"fmt"
)

const pleaseLogMessage = "It would be helpful if you logged this error at " +
	"https://github.com/arbor-fmt/arbor/issues/new?assignees=&labels=type%3A+bug&template=bug_report.md"

// Error is the closed set of failures arbor can surface. Every concrete
// variant lives in this package; the unexported method seals the set.
type Error interface {
	error
	Kind() Kind
	formatterError()
}

// Formatting reports that re-formatting the tool's own output failed
// during the idempotence check. With the bundled query files this is a
// bug in arbor.
type Formatting struct {
	Cause Error
}

func (e *Formatting) Kind() Kind      { return KindFormatting }
func (e *Formatting) formatterError() {}

func (e *Formatting) Error() string {
	return "The formatter errored when trying to format the code twice (idempotence check).\n" +
		"This probably means that the formatter produced invalid code.\n" +
		pleaseLogMessage
}

func (e *Formatting) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Idempotence reports that formatting the output a second time changed
// it further. With the bundled query files this is a bug in arbor.
type Idempotence struct{}

func (e *Idempotence) Kind() Kind      { return KindIdempotence }
func (e *Idempotence) formatterError() {}

func (e *Idempotence) Error() string {
	return "The formatter did not produce the same result when invoked twice (idempotence check).\n" +
		pleaseLogMessage
}

// Internal reports an invariant violation inside arbor, optionally
// wrapping the I/O failure that exposed it. Always a bug.
type Internal struct {
	Message string
	Cause   error
}

func (e *Internal) Kind() Kind      { return KindInternal }
func (e *Internal) formatterError() {}
func (e *Internal) Error() string   { return e.Message }
func (e *Internal) Unwrap() error   { return e.Cause }

// Parsing reports that the grammar could not parse the input without
// syntax errors in the given span. Positions are 1-based; the end
// position is never before the start position.
type Parsing struct {
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
}

func (e *Parsing) Kind() Kind      { return KindParsing }
func (e *Parsing) formatterError() {}

func (e *Parsing) Error() string {
	return fmt.Sprintf("Parsing error between line %d, column %d and line %d, column %d",
		e.StartLine, e.StartColumn, e.EndLine, e.EndColumn)
}

// Query reports an error in a formatting query file, optionally wrapping
// the lower-level cause from the query parser.
type Query struct {
	Message string
	Cause   error
}

func (e *Query) Kind() Kind      { return KindQuery }
func (e *Query) formatterError() {}
func (e *Query) Error() string   { return e.Message }
func (e *Query) Unwrap() error   { return e.Cause }

// LanguageDetection reports that no language could be inferred from a
// filename. Extension is empty when the name carries no extension at
// all; non-empty when an extension was parsed but not recognized.
type LanguageDetection struct {
	Filename  string
	Extension string
}

func (e *LanguageDetection) Kind() Kind      { return KindLanguageDetection }
func (e *LanguageDetection) formatterError() {}

func (e *LanguageDetection) Error() string {
	source := fmt.Sprintf("of file '%s'", e.Filename)
	if e.Filename == "-" {
		source = "from standard input"
	}
	if e.Extension != "" {
		return fmt.Sprintf("Cannot detect language %s due to unknown extension '.%s'. Try specifying language explicitly.",
			source, e.Extension)
	}
	return fmt.Sprintf("Cannot detect language %s. Try specifying language explicitly.", source)
}

// Reading reports that the input could not be read.
type Reading struct {
	Err ReadError
}

func (e *Reading) Kind() Kind      { return KindReading }
func (e *Reading) formatterError() {}
func (e *Reading) Error() string   { return e.Err.Error() }
func (e *Reading) Unwrap() error   { return e.Err.Unwrap() }

// Writing reports that the formatted output could not be produced. The
// top-line message is fixed; the sub-variant detail travels on the
// cause chain.
type Writing struct {
	Err WriteError
}

func (e *Writing) Kind() Kind      { return KindWriting }
func (e *Writing) formatterError() {}
func (e *Writing) Error() string   { return "Writing error" }
func (e *Writing) Unwrap() error   { return e.Err.Unwrap() }

// Git reports a failure while fetching a grammar from a git repository.
type Git struct {
	Cause error
}

func (e *Git) Kind() Kind      { return KindGit }
func (e *Git) formatterError() {}

func (e *Git) Error() string {
	return fmt.Sprintf("The formatter errored when trying to fetch a grammar from git. See the following message: %v", e.Cause)
}

func (e *Git) Unwrap() error { return e.Cause }

// ParserLoading reports that a built parser dynamic library could not
// be loaded.
type ParserLoading struct {
	Cause error
}

func (e *ParserLoading) Kind() Kind      { return KindParserLoading }
func (e *ParserLoading) formatterError() {}

func (e *ParserLoading) Error() string {
	return fmt.Sprintf("The formatter errored when trying load the parser dynamic library: %v", e.Cause)
}

func (e *ParserLoading) Unwrap() error { return e.Cause }

// ParserCompilation reports that a native parser source failed to build.
type ParserCompilation struct {
	Err CompileError
}

func (e *ParserCompilation) Kind() Kind      { return KindParserCompilation }
func (e *ParserCompilation) formatterError() {}

func (e *ParserCompilation) Error() string {
	switch err := e.Err.(type) {
	case *CompileIO:
		return fmt.Sprintf("The formatter ran into an IO error when compiling a Parser: %v", err.Cause)
	case *CompileCC:
		return fmt.Sprintf("The formatter ran into an error when compiling a Parser. Output from the CC subprocess: %s %s",
			err.Stdout, err.Stderr)
	}
	return e.Err.Error()
}

func (e *ParserCompilation) Unwrap() error { return e.Err.Unwrap() }

// Chain returns err followed by each successive cause, outermost first.
// It walks the standard Unwrap chain, so foreign causes below the
// taxonomy boundary are included.
func Chain(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		err = errors.Unwrap(err)
	}
	return chain
}
