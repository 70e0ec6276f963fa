package errs

// WriteError is the closed sub-taxonomy under Writing.
type WriteError interface {
	error
	writeError()
	Unwrap() error
}

// WriteFmt is a failure in a print primitive while emitting output.
type WriteFmt struct {
	Cause error
}

func (e *WriteFmt) writeError()   {}
func (e *WriteFmt) Error() string { return "print primitive failed: " + e.Cause.Error() }
func (e *WriteFmt) Unwrap() error { return e.Cause }

// WriteFlush is a failure while flushing the buffered output writer.
type WriteFlush struct {
	Cause error
}

func (e *WriteFlush) writeError()   {}
func (e *WriteFlush) Error() string { return "buffer flush failed: " + e.Cause.Error() }
func (e *WriteFlush) Unwrap() error { return e.Cause }

// WriteIO is a generic I/O failure while emitting output.
type WriteIO struct {
	Cause error
}

func (e *WriteIO) writeError()   {}
func (e *WriteIO) Error() string { return e.Cause.Error() }
func (e *WriteIO) Unwrap() error { return e.Cause }

// WriteUTF8 is a decoding failure on an owned output buffer: the
// produced bytes are not valid UTF-8.
type WriteUTF8 struct {
	Cause error
}

func (e *WriteUTF8) writeError()   {}
func (e *WriteUTF8) Error() string { return "output is not UTF8: " + e.Cause.Error() }
func (e *WriteUTF8) Unwrap() error { return e.Cause }
