package predicate

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a predicate string that does not match the grammar.
// Offset is the byte position in the input where parsing failed.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

// Error returns a message with a position indicator.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid predicate %q: %s at offset %d", e.Input, e.Msg, e.Offset)
}

// operators ordered so that multi-character operators are tried before
// their single-character prefixes.
var operators = []struct {
	text string
	op   Operator
}{
	{">=", Gte},
	{"<=", Lte},
	{"!=", Neq},
	{"=", Eq},
	{">", Gt},
	{"<", Lt},
}

// Parse parses a single comparison expression into a Predicate.
//
// The grammar is:
//
//	predicate := column operator value
//	column    := [A-Za-z0-9_.]+
//	operator  := ">=" | "<=" | "!=" | "=" | ">" | "<"
//	value     := quoted string | true | false | null | number
//
// Whitespace around tokens is ignored, but the whole input must be consumed:
// trailing characters are an error. Parse is a pure function.
func Parse(input string) (Predicate, error) {
	p := &parser{input: input}

	p.skipWhitespace()
	column, err := p.readColumn()
	if err != nil {
		return Predicate{}, err
	}

	p.skipWhitespace()
	op, err := p.readOperator()
	if err != nil {
		return Predicate{}, err
	}

	p.skipWhitespace()
	value, err := p.readValue()
	if err != nil {
		return Predicate{}, err
	}

	p.skipWhitespace()
	if p.pos < len(p.input) {
		return Predicate{}, p.errorf("unexpected trailing characters")
	}

	return Predicate{Column: column, Op: op, Value: value}, nil
}

// parser is a single-pass scanner over a predicate string.
type parser struct {
	input string
	pos   int
}

// ch returns the current byte, or 0 at end of input.
func (p *parser) ch() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: p.input, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipWhitespace() {
	for {
		switch p.ch() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isColumnChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// readColumn reads a column identifier: one or more of [A-Za-z0-9_.].
func (p *parser) readColumn() (string, error) {
	start := p.pos
	for isColumnChar(p.ch()) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected column name")
	}
	return p.input[start:p.pos], nil
}

// readOperator reads a comparison operator, trying multi-character
// operators first.
func (p *parser) readOperator() (Operator, error) {
	rest := p.input[p.pos:]
	for _, cand := range operators {
		if strings.HasPrefix(rest, cand.text) {
			p.pos += len(cand.text)
			return cand.op, nil
		}
	}
	return 0, p.errorf("expected comparison operator")
}

// readValue reads a quoted string, a bool/null literal, or a number.
func (p *parser) readValue() (Value, error) {
	switch c := p.ch(); {
	case c == '\'' || c == '"':
		return p.readQuoted(c)
	case c == '-' || c == '+' || isDigit(c):
		return p.readNumber()
	case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		return p.readLiteral()
	default:
		return Value{}, p.errorf("expected value")
	}
}

// readQuoted reads a string delimited by the given quote character.
// Backslash escapes the quote character and the backslash itself.
func (p *parser) readQuoted(quote byte) (Value, error) {
	start := p.pos
	p.pos++ // opening quote

	var out strings.Builder
	for {
		switch c := p.ch(); c {
		case 0:
			p.pos = start
			return Value{}, p.errorf("unterminated string")
		case quote:
			p.pos++
			return Text(out.String()), nil
		case '\\':
			p.pos++
			esc := p.ch()
			if esc == 0 {
				p.pos = start
				return Value{}, p.errorf("unterminated string")
			}
			out.WriteByte(esc)
			p.pos++
		default:
			out.WriteByte(c)
			p.pos++
		}
	}
}

// readLiteral reads a bare word and maps it to a bool or null value.
func (p *parser) readLiteral() (Value, error) {
	start := p.pos
	for c := p.ch(); c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'; c = p.ch() {
		p.pos++
	}

	switch p.input[start:p.pos] {
	case "true", "TRUE":
		return Bool(true), nil
	case "false", "FALSE":
		return Bool(false), nil
	case "null", "NULL":
		return Null(), nil
	default:
		p.pos = start
		return Value{}, p.errorf("expected value")
	}
}

// readNumber reads an optionally signed number. A number without a
// fractional part becomes an integer, otherwise a float. No exponent
// notation and no digit separators are accepted.
func (p *parser) readNumber() (Value, error) {
	start := p.pos
	if c := p.ch(); c == '-' || c == '+' {
		p.pos++
	}

	digits := 0
	for isDigit(p.ch()) {
		p.pos++
		digits++
	}
	if digits == 0 {
		p.pos = start
		return Value{}, p.errorf("expected number")
	}

	if p.ch() == '.' {
		p.pos++
		fraction := 0
		for isDigit(p.ch()) {
			p.pos++
			fraction++
		}
		if fraction == 0 {
			p.pos = start
			return Value{}, p.errorf("expected digits after decimal point")
		}
	}

	text := p.input[start:p.pos]
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return Value{}, p.errorf("malformed number %q", text)
	}
	return Float(f), nil
}
