package types

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports a malformed type expression.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid type %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// Parse parses the textual form of a type expression.
func Parse(s string) (*Type, error) {
	p := &parser{src: s}
	if !utf8.ValidString(s) {
		return nil, p.errorf("invalid UTF-8")
	}
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("empty type")
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	// Lifetimes are only valid as generic arguments and reference bounds.
	if t.Kind == Lifetime {
		return nil, &ParseError{Input: s, Offset: 0, Msg: "a lifetime is not a type"}
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is Parse that panics on error. Intended for tests and tables.
func MustParse(s string) *Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek(tok string) bool {
	p.skipSpace()
	return strings.HasPrefix(p.src[p.pos:], tok)
}

func (p *parser) accept(tok string) bool {
	if p.peek(tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) expect(tok string) error {
	if !p.accept(tok) {
		if p.eof() {
			return p.errorf("expected %q, found end of input", tok)
		}
		return p.errorf("expected %q", tok)
	}
	return nil
}

// keyword accepts word only when it is not the prefix of a longer identifier.
func (p *parser) keyword(word string) bool {
	if !p.peek(word) {
		return false
	}
	end := p.pos + len(word)
	if end < len(p.src) && isIdentRune(rune(p.src[end])) {
		return false
	}
	p.pos = end
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *parser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		r := rune(p.src[p.pos])
		if !isIdentRune(r) || (p.pos == start && unicode.IsDigit(r)) {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.src[start:p.pos], nil
}

func (p *parser) lifetime() (string, error) {
	if err := p.expect("'"); err != nil {
		return "", err
	}
	return p.ident()
}

func (p *parser) parseType() (*Type, error) {
	p.skipSpace()
	switch {
	case p.accept("&&"):
		// && is two references in a row.
		inner, err := p.parseRefTail()
		if err != nil {
			return nil, err
		}
		return NewRef(inner), nil
	case p.accept("&"):
		return p.parseRefTail()
	case p.accept("["):
		return p.parseBracket()
	case p.accept("("):
		return p.parseTuple()
	case p.accept("<"):
		return p.parseQualified()
	case p.peek("'"):
		name, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		return &Type{Kind: Lifetime, Name: name}, nil
	case p.keyword("impl"):
		bound, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return NewImpl(bound), nil
	default:
		return p.parsePath()
	}
}

func (p *parser) parseRefTail() (*Type, error) {
	t := &Type{Kind: Ref}
	if p.peek("'") {
		name, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		t.Name = name
	}
	if p.keyword("mut") {
		t.Mutable = true
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if elem.Kind == Lifetime {
		return nil, p.errorf("reference to a lifetime")
	}
	t.Elem = elem
	return t, nil
}

func (p *parser) parseBracket() (*Type, error) {
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.accept("]") {
		return NewSlice(elem), nil
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	p.skipSpace()
	start, depth := p.pos, 0
	for ; !p.eof(); p.pos++ {
		switch p.src[p.pos] {
		case '[', '(', '{':
			depth++
		case ')', '}':
			depth--
		case ']':
			if depth == 0 {
				n := strings.TrimSpace(p.src[start:p.pos])
				if n == "" {
					return nil, p.errorf("missing array length")
				}
				p.pos++
				return &Type{Kind: Array, Elem: elem, Len: n}, nil
			}
			depth--
		}
	}
	return nil, p.errorf("unterminated array type")
}

func (p *parser) parseTuple() (*Type, error) {
	t := &Type{Kind: Tuple}
	if p.accept(")") {
		return t, nil
	}
	trailing := false
	for {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		t.Elems = append(t.Elems, elem)
		if p.accept(")") {
			break
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
		if p.accept(")") {
			trailing = true
			break
		}
	}
	if len(t.Elems) == 1 && !trailing {
		// (T) is a parenthesized type, not a tuple.
		return t.Elems[0], nil
	}
	return t, nil
}

func (p *parser) parseQualified() (*Type, error) {
	self, err := p.parseType()
	if err != nil {
		return nil, err
	}
	t := &Type{Kind: Qualified, Elem: self}
	if p.keyword("as") {
		trait, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		t.Trait = trait
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	for p.accept("::") {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
	}
	if len(t.Segments) == 0 {
		return nil, p.errorf("qualified path without associated item")
	}
	return t, nil
}

func (p *parser) parsePath() (*Type, error) {
	t := &Type{Kind: Path}
	if p.accept("::") {
		t.Global = true
	}
	for {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
		if !p.accept("::") {
			break
		}
	}
	return t, nil
}

func (p *parser) parseSegment() (Segment, error) {
	name, err := p.ident()
	if err != nil {
		return Segment{}, err
	}
	seg := Segment{Name: name}
	// Turbofish form a::b::<T> is folded into the previous segment by callers
	// that care; declarations never use it.
	if !p.accept("<") {
		return seg, nil
	}
	for {
		arg, err := p.parseType()
		if err != nil {
			return Segment{}, err
		}
		seg.Args = append(seg.Args, arg)
		if p.accept(">") {
			return seg, nil
		}
		if err := p.expect(","); err != nil {
			return Segment{}, err
		}
		if p.accept(">") {
			return seg, nil
		}
	}
}
