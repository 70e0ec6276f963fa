package engine

import (
	"arbor/internal/query"
)

// printer walks the token stream and applies the query rules through
// the writer.
type printer struct {
	set    *query.Set
	writer *writer

	// closers tracks the close tokens of currently open indented
	// regions, innermost last.
	closers []string
}

func (p *printer) print(tokens []Token) error {
	var prev *Token
	for i := range tokens {
		tok := &tokens[i]
		if err := p.separate(prev, tok); err != nil {
			return err
		}
		if err := p.emit(tok); err != nil {
			return err
		}
		prev = tok
	}
	return nil
}

// separate decides what goes between prev and tok.
func (p *printer) separate(prev, tok *Token) error {
	if prev == nil {
		return nil
	}

	if p.isOpenCloser(tok.Text) {
		p.writer.indentPop()
		p.popCloser(tok.Text)
		return p.writer.newline()
	}

	if p.set.NothingBeforeToken(tok.Text) {
		return nil
	}
	if tok.NewlinesBefore > 0 {
		if err := p.writer.newline(); err != nil {
			return err
		}
		if tok.NewlinesBefore > 1 {
			return p.writer.blankLine()
		}
		return nil
	}
	if p.set.SpaceAfterToken(prev.Text) || p.set.SpaceBeforeToken(tok.Text) {
		return p.writer.space()
	}
	// Words and strings must not merge into one lexeme.
	if prev.Kind != TokPunct && tok.Kind != TokPunct {
		return p.writer.space()
	}
	return nil
}

func (p *printer) emit(tok *Token) error {
	if err := p.writer.writeString(tok.Text); err != nil {
		return err
	}

	if closeTok, ok := p.set.IndentPair(tok.Text); ok {
		p.writer.indentPush()
		p.closers = append(p.closers, closeTok)
	}
	if p.set.NewlineAfterToken(tok.Text) {
		return p.writer.newline()
	}
	return nil
}

// isOpenCloser reports whether text closes the innermost open region.
func (p *printer) isOpenCloser(text string) bool {
	return len(p.closers) > 0 && p.closers[len(p.closers)-1] == text
}

func (p *printer) popCloser(text string) {
	if p.isOpenCloser(text) {
		p.closers = p.closers[:len(p.closers)-1]
	}
}
