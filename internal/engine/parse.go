package engine

import (
	"unicode"
	"unicode/utf8"

	"arbor/internal/errs"
	"arbor/internal/source"
)

// TokenKind distinguishes the coarse token classes the printer needs.
type TokenKind uint8

const (
	// TokWord is a run of letters, digits and word-internal punctuation.
	TokWord TokenKind = iota
	// TokString is a double-quoted literal, kept verbatim.
	TokString
	// TokPunct is a single punctuation rune.
	TokPunct
)

// Token is one lexeme with its byte offset in the original content.
// NewlinesBefore counts the line breaks between the previous token and
// this one, capped at 2 so at most one blank line survives formatting.
type Token struct {
	Kind           TokenKind
	Text           string
	Off            uint32
	NewlinesBefore int
}

// GenericParser is the built-in grammar: it splits the input into
// words, string literals and punctuation, and checks that bracket
// delimiters nest properly. Loaded grammar parsers replace it per
// language.
type GenericParser struct{}

type openDelim struct {
	r   rune
	off uint32
}

var delimPairs = map[rune]rune{')': '(', ']': '[', '}': '{'}

// Parse tokenizes f. Unterminated strings and mismatched or unclosed
// delimiters produce a parsing error spanning from the opening byte to
// the byte where the mismatch became apparent.
func (GenericParser) Parse(f *source.File) ([]Token, error) {
	var tokens []Token
	var stack []openDelim

	pendingNewlines := 0
	push := func(tok Token) {
		if len(tokens) > 0 && pendingNewlines > 0 {
			tok.NewlinesBefore = min(pendingNewlines, 2)
		}
		pendingNewlines = 0
		tokens = append(tokens, tok)
	}

	content := f.Content
	i := 0
	for i < len(content) {
		r, size := utf8.DecodeRune(content[i:])
		off := uint32(i)

		switch {
		case unicode.IsSpace(r):
			if r == '\n' {
				pendingNewlines++
			}
			i += size

		case r == '"':
			end, ok := scanString(content, i)
			if !ok {
				return nil, parseError(f, off, uint32(len(content)))
			}
			push(Token{Kind: TokString, Text: string(content[i:end]), Off: off})
			i = end

		case r == '(' || r == '[' || r == '{':
			stack = append(stack, openDelim{r: r, off: off})
			push(Token{Kind: TokPunct, Text: string(r), Off: off})
			i += size

		case r == ')' || r == ']' || r == '}':
			if len(stack) == 0 {
				return nil, parseError(f, off, off)
			}
			top := stack[len(stack)-1]
			if top.r != delimPairs[r] {
				return nil, parseError(f, top.off, off)
			}
			stack = stack[:len(stack)-1]
			push(Token{Kind: TokPunct, Text: string(r), Off: off})
			i += size

		case isWordRune(r):
			j := i
			for j < len(content) {
				wr, wsize := utf8.DecodeRune(content[j:])
				if !isWordRune(wr) {
					break
				}
				j += wsize
			}
			push(Token{Kind: TokWord, Text: string(content[i:j]), Off: off})
			i = j

		default:
			push(Token{Kind: TokPunct, Text: string(r), Off: off})
			i += size
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, parseError(f, top.off, uint32(len(content)))
	}
	return tokens, nil
}

// scanString returns the offset one past the closing quote, or false if
// the literal never terminates.
func scanString(content []byte, start int) (int, bool) {
	i := start + 1
	for i < len(content) {
		switch content[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, true
		case '\n':
			return 0, false
		default:
			i++
		}
	}
	return 0, false
}

func isWordRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '_', '.', '-', '+':
		return true
	}
	return false
}

func parseError(f *source.File, startOff, endOff uint32) *errs.Parsing {
	start := f.Pos(startOff)
	end := f.Pos(endOff)
	if end.Before(start) {
		start, end = end, start
	}
	return &errs.Parsing{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
	}
}
