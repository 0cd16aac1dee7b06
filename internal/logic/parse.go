package logic

import (
	"fmt"
	"strings"
)

// Parse reads an expression using the grammar in the package doc.
// Whitespace is insignificant. An empty or all-space input returns ErrEmptyExpression.
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}
	p := &parser{src: src}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, &SyntaxError{Pos: p.pos, Message: fmt.Sprintf("unexpected %q", p.src[p.pos])}
	}
	return e, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// accept consumes c if it is the next non-space byte.
func (p *parser) accept(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.accept('|') {
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &Or{Terms: terms}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.accept('&') {
		next, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &And{Terms: terms}, nil
}

func (p *parser) parseFactor() (Expr, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, &SyntaxError{Pos: p.pos, Message: "unexpected end of expression"}
	}

	switch c := p.src[p.pos]; {
	case c == '~':
		p.pos++
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Not{X: x}, nil
	case c == '(':
		open := p.pos
		p.pos++
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(')') {
			return nil, &SyntaxError{Pos: open, Message: "unclosed parenthesis"}
		}
		return e, nil
	case isIdentStart(c):
		start := p.pos
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		return &Var{Name: p.src[start:p.pos]}, nil
	default:
		return nil, &SyntaxError{Pos: p.pos, Message: fmt.Sprintf("unexpected %q", c)}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
