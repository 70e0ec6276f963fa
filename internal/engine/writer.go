package engine

import (
	"bufio"
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"arbor/internal/errs"
)

// writer accumulates formatted output behind a buffered writer and
// lifts every emission failure into the writing taxonomy.
type writer struct {
	buf *bytes.Buffer
	out *bufio.Writer
	opt Options

	indentLevel int
	atLineStart bool
	lastByte    byte
}

func newWriter(opt Options) *writer {
	buf := &bytes.Buffer{}
	return &writer{
		buf: buf,
		out: bufio.NewWriter(buf),
		opt: opt,
	}
}

func (w *writer) writeIndent() error {
	if !w.atLineStart {
		return nil
	}
	w.atLineStart = false
	indent := "\t"
	count := w.indentLevel
	if !w.opt.UseTabs {
		indent = " "
		count = w.indentLevel * w.opt.IndentWidth
	}
	for range count {
		if err := w.out.WriteByte(indent[0]); err != nil {
			return errs.Lift(err)
		}
		w.lastByte = indent[0]
	}
	return nil
}

// writeString writes s, emitting pending indentation first.
func (w *writer) writeString(s string) error {
	if s == "" {
		return nil
	}
	if err := w.writeIndent(); err != nil {
		return err
	}
	if _, err := w.out.WriteString(s); err != nil {
		return errs.Lift(err)
	}
	w.lastByte = s[len(s)-1]
	w.atLineStart = w.lastByte == '\n'
	return nil
}

// space writes a single space unless the output already ends with
// whitespace or is at a line start.
func (w *writer) space() error {
	if w.atLineStart || w.lastByte == 0 {
		return nil
	}
	if w.lastByte == ' ' || w.lastByte == '\n' || w.lastByte == '\t' {
		return nil
	}
	if err := w.out.WriteByte(' '); err != nil {
		return errs.Lift(err)
	}
	w.lastByte = ' '
	return nil
}

// newline ends the current line unless the output already did.
func (w *writer) newline() error {
	if w.lastByte == '\n' || w.lastByte == 0 {
		w.atLineStart = true
		return nil
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return errs.Lift(err)
	}
	w.lastByte = '\n'
	w.atLineStart = true
	return nil
}

// blankLine writes an empty line even when the output already ends a
// line, preserving intentional vertical spacing.
func (w *writer) blankLine() error {
	if w.lastByte == 0 {
		return nil
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return errs.Lift(err)
	}
	w.lastByte = '\n'
	w.atLineStart = true
	return nil
}

func (w *writer) indentPush() {
	w.indentLevel++
}

func (w *writer) indentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// finish flushes the buffered output, verifies it decodes as UTF-8 and
// returns the owned bytes.
func (w *writer) finish() ([]byte, error) {
	if err := w.newline(); err != nil {
		return nil, err
	}
	if err := w.out.Flush(); err != nil {
		return nil, errs.LiftFlush(err)
	}
	out := w.buf.Bytes()
	if _, _, err := transform.Bytes(encoding.UTF8Validator, out); err != nil {
		return nil, errs.LiftOutputUTF8(err)
	}
	return out, nil
}
