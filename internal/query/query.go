// Package query parses the per-language formatting query files that
// drive the engine's rewriting rules.
//
// Query files are line oriented. Blank lines and lines starting with ';'
// are ignored. Each remaining line is one directive:
//
//	space after ","          ; a single space follows the token
//	space around "="         ; a single space on both sides
//	nothing before ","       ; no space may precede the token
//	newline after "{"        ; the token ends its line
//	indent between "{" "}"   ; the region between the pair is indented
//
// Tokens are double-quoted strings using Go quoting rules.
package query

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"arbor/internal/errs"
)

// Action is one rewriting directive kind.
type Action uint8

const (
	SpaceAfter Action = iota
	SpaceAround
	NothingBefore
	NewlineAfter
	IndentBetween
)

func (a Action) String() string {
	switch a {
	case SpaceAfter:
		return "space after"
	case SpaceAround:
		return "space around"
	case NothingBefore:
		return "nothing before"
	case NewlineAfter:
		return "newline after"
	case IndentBetween:
		return "indent between"
	}
	return "unknown"
}

// Rule is a single parsed directive. Close is set only for
// IndentBetween.
type Rule struct {
	Action Action
	Token  string
	Close  string
}

// Set is a compiled query file.
type Set struct {
	Rules []Rule

	spaceAfter    map[string]bool
	spaceAround   map[string]bool
	nothingBefore map[string]bool
	newlineAfter  map[string]bool
	indentOpen    map[string]string // open token -> close token
}

// Parse reads a query file. The name is used in error messages only.
func Parse(name string, r io.Reader) (*Set, error) {
	set := &Set{
		spaceAfter:    make(map[string]bool),
		spaceAround:   make(map[string]bool),
		nothingBefore: make(map[string]bool),
		newlineAfter:  make(map[string]bool),
		indentOpen:    make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rule, err := parseLine(line)
		if err != nil {
			return nil, &errs.Query{
				Message: fmt.Sprintf("query file %s, line %d: %v", name, lineNo, err),
				Cause:   err,
			}
		}
		set.addRule(rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, &errs.Query{
			Message: fmt.Sprintf("query file %s: could not be read", name),
			Cause:   err,
		}
	}
	return set, nil
}

func parseLine(line string) (Rule, error) {
	fields, err := splitFields(line)
	if err != nil {
		return Rule{}, err
	}
	if len(fields) < 3 {
		return Rule{}, fmt.Errorf("incomplete directive %q", line)
	}

	verb := fields[0] + " " + fields[1]
	switch verb {
	case "space after":
		return singleToken(SpaceAfter, fields)
	case "space around":
		return singleToken(SpaceAround, fields)
	case "nothing before":
		return singleToken(NothingBefore, fields)
	case "newline after":
		return singleToken(NewlineAfter, fields)
	case "indent between":
		if len(fields) != 4 {
			return Rule{}, fmt.Errorf("indent between takes an open and a close token")
		}
		open, err := unquote(fields[2])
		if err != nil {
			return Rule{}, err
		}
		closeTok, err := unquote(fields[3])
		if err != nil {
			return Rule{}, err
		}
		return Rule{Action: IndentBetween, Token: open, Close: closeTok}, nil
	default:
		return Rule{}, fmt.Errorf("unknown directive %q", verb)
	}
}

func singleToken(action Action, fields []string) (Rule, error) {
	if len(fields) != 3 {
		return Rule{}, fmt.Errorf("%s takes exactly one token", action)
	}
	tok, err := unquote(fields[2])
	if err != nil {
		return Rule{}, err
	}
	return Rule{Action: action, Token: tok}, nil
}

func unquote(field string) (string, error) {
	tok, err := strconv.Unquote(field)
	if err != nil {
		return "", fmt.Errorf("malformed token %s: %w", field, err)
	}
	if tok == "" {
		return "", fmt.Errorf("empty token")
	}
	return tok, nil
}

// splitFields splits a directive into whitespace-separated fields,
// keeping double-quoted strings intact.
func splitFields(line string) ([]string, error) {
	var fields []string
	i := 0
	for i < len(line) {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '"':
			j := i + 1
			for j < len(line) {
				if line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == '"' {
					break
				}
				j++
			}
			if j >= len(line) {
				return nil, fmt.Errorf("unterminated token %s", line[i:])
			}
			fields = append(fields, line[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			fields = append(fields, line[i:j])
			i = j
		}
	}
	return fields, nil
}

func (s *Set) addRule(r Rule) {
	s.Rules = append(s.Rules, r)
	switch r.Action {
	case SpaceAfter:
		s.spaceAfter[r.Token] = true
	case SpaceAround:
		s.spaceAround[r.Token] = true
	case NothingBefore:
		s.nothingBefore[r.Token] = true
	case NewlineAfter:
		s.newlineAfter[r.Token] = true
	case IndentBetween:
		s.indentOpen[r.Token] = r.Close
	}
}

// SpaceAfterToken reports whether a space follows tok.
func (s *Set) SpaceAfterToken(tok string) bool {
	return s.spaceAfter[tok] || s.spaceAround[tok]
}

// SpaceBeforeToken reports whether a space may precede tok.
func (s *Set) SpaceBeforeToken(tok string) bool {
	return s.spaceAround[tok]
}

// NothingBeforeToken reports whether space before tok is removed.
func (s *Set) NothingBeforeToken(tok string) bool {
	return s.nothingBefore[tok]
}

// NewlineAfterToken reports whether tok ends its line.
func (s *Set) NewlineAfterToken(tok string) bool {
	return s.newlineAfter[tok]
}

// IndentPair returns the close token if tok opens an indented region.
func (s *Set) IndentPair(tok string) (string, bool) {
	closeTok, ok := s.indentOpen[tok]
	return closeTok, ok
}
