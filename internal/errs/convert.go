package errs

import (
	"errors"

	"golang.org/x/text/encoding"
)

// Lift classifies a foreign failure at the point its result crosses into
// the pipeline. Already-classified errors pass through unchanged. An
// invalid-UTF-8 decoding failure (the x/text sentinel) becomes a reading
// error; any other failure is presumed to occur during output and maps
// to Writing. Read call sites must use ReadFailed instead, since a read
// failure needs a description of what was being read.
func Lift(err error) Error {
	if err == nil {
		return nil
	}
	var classified Error
	if errors.As(err, &classified) {
		return classified
	}
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return &Reading{Err: &ReadUTF8{Cause: err}}
	}
	return &Writing{Err: &WriteIO{Cause: err}}
}

// ReadFailed wraps an input I/O failure together with a context string
// naming what was being read. The context is rendered verbatim.
func ReadFailed(context string, err error) *Reading {
	return &Reading{Err: &ReadIO{Context: context, Cause: err}}
}

// LiftFlush classifies a buffered-writer flush failure.
func LiftFlush(err error) *Writing {
	return &Writing{Err: &WriteFlush{Cause: err}}
}

// LiftPrint classifies a print-primitive failure during output emission.
func LiftPrint(err error) *Writing {
	return &Writing{Err: &WriteFmt{Cause: err}}
}

// LiftOutputUTF8 classifies a decoding failure on an owned output
// buffer.
func LiftOutputUTF8(err error) *Writing {
	return &Writing{Err: &WriteUTF8{Cause: err}}
}
