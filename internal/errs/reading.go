package errs

// ReadError is the closed sub-taxonomy under Reading.
type ReadError interface {
	error
	readError()
	Unwrap() error
}

// ReadIO is an I/O failure while reading input. Context is the
// human-meaningful description supplied at the call site (naming the
// file or standard input); it is what the user sees.
type ReadIO struct {
	Context string
	Cause   error
}

func (e *ReadIO) readError()    {}
func (e *ReadIO) Error() string { return e.Context }
func (e *ReadIO) Unwrap() error { return e.Cause }

// ReadUTF8 is a decoding failure: the input is not valid UTF-8.
type ReadUTF8 struct {
	Cause error
}

func (e *ReadUTF8) readError()    {}
func (e *ReadUTF8) Error() string { return "Input is not UTF8" }
func (e *ReadUTF8) Unwrap() error { return e.Cause }
