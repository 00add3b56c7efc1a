package levels

import (
	"strconv"
	"strings"
)

// parser reads {key: int, ...} objects with quoted keys.
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() (Levels, error) {
	out := Levels{}

	p.skipSpace()
	if !p.consume('{') {
		return nil, p.fail("expected '{'")
	}

	p.skipSpace()
	if p.consume('}') {
		return out, p.end()
	}

	for {
		p.skipSpace()
		key, err := p.key()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if !p.consume(':') {
			return nil, p.fail("expected ':'")
		}

		p.skipSpace()
		level, err := p.integer()
		if err != nil {
			return nil, err
		}
		out[key] = level

		p.skipSpace()
		if p.consume('}') {
			return out, p.end()
		}
		if !p.consume(',') {
			return nil, p.fail("expected ',' or '}'")
		}

		// trailing comma
		p.skipSpace()
		if p.consume('}') {
			return out, p.end()
		}
	}
}

func (p *parser) key() (string, error) {
	if p.pos >= len(p.input) {
		return "", p.fail("expected quoted key")
	}

	q := p.input[p.pos]
	if q != '\'' && q != '"' {
		return "", p.fail("expected quoted key")
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == q:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.input) {
				return "", p.fail("unterminated escape")
			}
			b.WriteByte(p.input[p.pos+1])
			p.pos += 2
		case c == '\n':
			return "", p.fail("newline in key")
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return "", p.fail("unterminated key")
}

func (p *parser) integer() (int, error) {
	start := p.pos
	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}

	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		p.pos = start
		return 0, p.fail("expected integer level")
	}
	return n, nil
}

func (p *parser) end() error {
	p.skipSpace()
	if p.pos != len(p.input) {
		return p.fail("unexpected trailing data")
	}
	return nil
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) fail(msg string) *DecodeError {
	return &DecodeError{Input: p.input, Offset: p.pos, Message: msg}
}
