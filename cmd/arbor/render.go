package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"arbor/internal/errs"
	"arbor/internal/source"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold)
	noteLabel   = color.New(color.FgYellow, color.Bold)
	gutterColor = color.New(color.FgHiBlack)
	caretColor  = color.New(color.FgRed, color.Bold)
)

// reportError prints one failure to stderr: a labeled message, an
// annotated source snippet for parse errors, and the cause chain when
// --verbose is on.
func reportError(cmd *cobra.Command, path string, err error) {
	out := cmd.ErrOrStderr()

	prefix := errorLabel.Sprint("error:")
	if path != "" {
		prefix = fmt.Sprintf("%s %s:", prefix, path)
	}
	msg := err.Error()
	if strings.Contains(msg, "\n") {
		fmt.Fprintf(out, "%s\n%s\n", prefix, msg)
	} else {
		fmt.Fprintf(out, "%s %s\n", prefix, msg)
	}

	var perr *errs.Parsing
	if errors.As(err, &perr) && path != "" {
		writeSnippet(cmd, path, perr)
	}

	var classified errs.Error
	if errors.As(err, &classified) && classified.Kind() == errs.KindInternal {
		fmt.Fprintf(out, "%s this is a bug in arbor, not in your input\n", noteLabel.Sprint("note:"))
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		for i, cause := range errs.Chain(err) {
			if i == 0 {
				continue
			}
			fmt.Fprintf(out, "%scaused by: %v\n", strings.Repeat("  ", i), cause)
		}
	}
}

// writeSnippet shows the offending line with a caret run under the
// error span. Best effort: if the file cannot be re-read the snippet is
// simply omitted.
func writeSnippet(cmd *cobra.Command, path string, perr *errs.Parsing) {
	f, err := source.Load(path)
	if err != nil {
		return
	}
	line := f.Line(perr.StartLine)
	if line == "" && perr.StartLine != 1 {
		return
	}

	out := cmd.ErrOrStderr()
	gutter := fmt.Sprintf("%4d | ", perr.StartLine)
	fmt.Fprintf(out, "%s%s\n", gutterColor.Sprint(gutter), line)

	start := int(perr.StartColumn)
	if start < 1 {
		start = 1
	}
	if start > len(line)+1 {
		start = len(line) + 1
	}
	span := 1
	if perr.EndLine == perr.StartLine && int(perr.EndColumn) > start {
		span = int(perr.EndColumn) - start
	} else if perr.EndLine > perr.StartLine {
		span = len(line) - start + 1
		if span < 1 {
			span = 1
		}
	}

	// Columns are byte-based; pad by the display width of the prefix so
	// the carets line up under wide runes and tabs notwithstanding.
	pad := runewidth.StringWidth(line[:min(start-1, len(line))])
	fmt.Fprintf(out, "%s%s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", pad),
		caretColor.Sprint(strings.Repeat("^", span)))
}
