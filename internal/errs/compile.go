package errs

// CompileError is the closed sub-taxonomy under ParserCompilation.
type CompileError interface {
	error
	compileError()
	Unwrap() error
}

// CompileIO is an I/O failure while preparing or running the parser
// build (missing sources, unwritable output directory, spawn failure).
type CompileIO struct {
	Cause error
}

func (e *CompileIO) compileError() {}
func (e *CompileIO) Error() string { return e.Cause.Error() }
func (e *CompileIO) Unwrap() error { return e.Cause }

// CompileCC is a build failure reported by the CC subprocess itself,
// carrying both captured output streams.
type CompileCC struct {
	Stdout string
	Stderr string
}

func (e *CompileCC) compileError() {}
func (e *CompileCC) Error() string { return "cc failed: " + e.Stdout + " " + e.Stderr }
func (e *CompileCC) Unwrap() error { return nil }
