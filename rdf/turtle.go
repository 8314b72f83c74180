package rdf

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Decode parses Turtle from r into a new graph. The supported subset covers
// @prefix/@base directives, IRI references, prefixed names, blank node
// labels and anonymous [ ... ] property lists, plain/typed/tagged literals,
// numeric and boolean shorthand, the 'a' keyword, and ';' / ',' lists.
// RDF collections '( ... )' are not supported.
func Decode(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read turtle source: %w", err)
	}

	p := &ttlParser{
		src: []rune(string(data)),
		g:   NewGraph(),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.g, nil
}

// DecodeString parses Turtle from a string into a new graph.
func DecodeString(s string) (*Graph, error) {
	return Decode(strings.NewReader(s))
}

type ttlParser struct {
	src  []rune
	pos  int
	line int
	base string
	g    *Graph
}

func (p *ttlParser) run() error {
	p.line = 1
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
}

func (p *ttlParser) errorf(format string, args ...any) error {
	return fmt.Errorf("turtle: line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *ttlParser) eof() bool { return p.pos >= len(p.src) }

func (p *ttlParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *ttlParser) next() rune {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *ttlParser) skipSpace() {
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		case unicode.IsSpace(c):
			p.next()
		default:
			return
		}
	}
}

func (p *ttlParser) expect(c rune) error {
	p.skipSpace()
	if p.eof() || p.peek() != c {
		return p.errorf("expected %q", string(c))
	}
	p.next()
	return nil
}

func (p *ttlParser) statement() error {
	if p.peek() == '@' {
		return p.directive()
	}
	// SPARQL-style PREFIX/BASE directives have no trailing dot.
	if word, ok := p.peekWord(); ok {
		switch strings.ToUpper(word) {
		case "PREFIX":
			p.consumeWord(word)
			return p.prefixDirective(false)
		case "BASE":
			p.consumeWord(word)
			return p.baseDirective(false)
		}
	}

	subject, err := p.subject()
	if err != nil {
		return err
	}
	if err := p.predicateObjectList(subject); err != nil {
		return err
	}
	return p.expect('.')
}

func (p *ttlParser) directive() error {
	p.next() // '@'
	word, ok := p.peekWord()
	if !ok {
		return p.errorf("bad directive")
	}
	p.consumeWord(word)
	switch word {
	case "prefix":
		return p.prefixDirective(true)
	case "base":
		return p.baseDirective(true)
	default:
		return p.errorf("unknown directive @%s", word)
	}
}

func (p *ttlParser) prefixDirective(dotted bool) error {
	p.skipSpace()
	prefix, err := p.pnamePrefix()
	if err != nil {
		return err
	}
	if err := p.expect(':'); err != nil {
		return err
	}
	p.skipSpace()
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.g.Bind(prefix, string(iri))
	if dotted {
		return p.expect('.')
	}
	return nil
}

func (p *ttlParser) baseDirective(dotted bool) error {
	p.skipSpace()
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.base = string(iri)
	if dotted {
		return p.expect('.')
	}
	return nil
}

// peekWord returns the bare word at the cursor without consuming it.
func (p *ttlParser) peekWord() (string, bool) {
	i := p.pos
	for i < len(p.src) && (unicode.IsLetter(p.src[i]) || p.src[i] == '_') {
		i++
	}
	if i == p.pos {
		return "", false
	}
	// A ':' right after means this is a prefixed name, not a keyword.
	if i < len(p.src) && p.src[i] == ':' {
		return "", false
	}
	return string(p.src[p.pos:i]), true
}

func (p *ttlParser) consumeWord(word string) {
	p.pos += len([]rune(word))
}

func (p *ttlParser) subject() (Term, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '<':
		return p.iriRef()
	case c == '_':
		return p.blankLabel()
	case c == '[':
		return p.blankPropertyList()
	default:
		return p.prefixedName()
	}
}

func (p *ttlParser) predicateObjectList(subject Term) error {
	for {
		verb, err := p.verb()
		if err != nil {
			return err
		}
		for {
			object, err := p.object()
			if err != nil {
				return err
			}
			p.g.Add(Triple{Subject: subject, Predicate: verb, Object: object})
			p.skipSpace()
			if p.peek() != ',' {
				break
			}
			p.next()
		}
		p.skipSpace()
		if p.peek() != ';' {
			return nil
		}
		p.next()
		p.skipSpace()
		// Trailing ';' before '.' or ']' is permitted.
		if c := p.peek(); c == '.' || c == ']' {
			return nil
		}
	}
}

func (p *ttlParser) verb() (Term, error) {
	p.skipSpace()
	if word, ok := p.peekWord(); ok && word == "a" {
		p.consumeWord(word)
		return RDFType, nil
	}
	if p.peek() == '<' {
		return p.iriRef()
	}
	return p.prefixedName()
}

func (p *ttlParser) object() (Term, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '<':
		return p.iriRef()
	case c == '_':
		return p.blankLabel()
	case c == '[':
		return p.blankPropertyList()
	case c == '"':
		return p.literal()
	case c == '(':
		return nil, p.errorf("RDF collections are not supported")
	case c == '+' || c == '-' || unicode.IsDigit(c):
		return p.numericLiteral()
	default:
		if word, ok := p.peekWord(); ok && (word == "true" || word == "false") {
			p.consumeWord(word)
			return TypedLiteral(word, XSDBoolean), nil
		}
		return p.prefixedName()
	}
}

func (p *ttlParser) iriRef() (IRI, error) {
	if p.peek() != '<' {
		return "", p.errorf("expected IRI reference")
	}
	p.next()
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated IRI reference")
		}
		c := p.next()
		if c == '>' {
			break
		}
		sb.WriteRune(c)
	}
	iri := sb.String()
	if p.base != "" && !strings.Contains(iri, ":") {
		iri = p.base + iri
	}
	return IRI(iri), nil
}

func (p *ttlParser) blankLabel() (BlankNode, error) {
	p.next() // '_'
	if p.peek() != ':' {
		return "", p.errorf("expected ':' after '_' in blank node label")
	}
	p.next()
	var sb strings.Builder
	for !p.eof() && isLocalChar(p.peek()) {
		if p.peek() == '.' && !p.localDotAllowed() {
			break
		}
		sb.WriteRune(p.next())
	}
	if sb.Len() == 0 {
		return "", p.errorf("empty blank node label")
	}
	return BlankNode(sb.String()), nil
}

func (p *ttlParser) blankPropertyList() (Term, error) {
	p.next() // '['
	node := NewBlankNode()
	p.skipSpace()
	if p.peek() == ']' {
		p.next()
		return node, nil
	}
	if err := p.predicateObjectList(node); err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *ttlParser) pnamePrefix() (string, error) {
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' {
			sb.WriteRune(p.next())
			continue
		}
		break
	}
	return sb.String(), nil
}

func (p *ttlParser) prefixedName() (Term, error) {
	prefix, err := p.pnamePrefix()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.peek() != ':' {
		return nil, p.errorf("expected prefixed name near %q", prefix)
	}
	p.next()
	var sb strings.Builder
	for !p.eof() && isLocalChar(p.peek()) {
		if p.peek() == '.' && !p.localDotAllowed() {
			break
		}
		sb.WriteRune(p.next())
	}
	ns, ok := p.g.Namespaces()[prefix]
	if !ok {
		return nil, p.errorf("undefined prefix %q", prefix)
	}
	return IRI(ns + sb.String()), nil
}

// localDotAllowed reports whether the '.' at the cursor continues a local
// name rather than terminating the statement.
func (p *ttlParser) localDotAllowed() bool {
	if p.pos+1 >= len(p.src) {
		return false
	}
	c := p.src[p.pos+1]
	return isLocalChar(c) && c != '.'
}

func isLocalChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' || c == '.'
}

func (p *ttlParser) literal() (Term, error) {
	p.next() // opening '"'
	var sb strings.Builder
	for {
		if p.eof() {
			return nil, p.errorf("unterminated literal")
		}
		c := p.next()
		if c == '"' {
			break
		}
		if c == '\\' {
			if p.eof() {
				return nil, p.errorf("unterminated escape in literal")
			}
			e := p.next()
			switch e {
			case 't':
				sb.WriteRune('\t')
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case '"', '\\':
				sb.WriteRune(e)
			default:
				return nil, p.errorf("unsupported escape \\%s in literal", string(e))
			}
			continue
		}
		sb.WriteRune(c)
	}

	lit := Literal{Value: sb.String()}
	if !p.eof() && p.peek() == '@' {
		p.next()
		var lang strings.Builder
		for !p.eof() && (unicode.IsLetter(p.peek()) || p.peek() == '-') {
			lang.WriteRune(p.next())
		}
		lit.Lang = lang.String()
		return lit, nil
	}
	if p.pos+1 < len(p.src) && p.peek() == '^' && p.src[p.pos+1] == '^' {
		p.next()
		p.next()
		var dt Term
		var err error
		if p.peek() == '<' {
			dt, err = p.iriRef()
		} else {
			dt, err = p.prefixedName()
		}
		if err != nil {
			return nil, err
		}
		lit.Datatype = dt.(IRI)
	}
	return lit, nil
}

func (p *ttlParser) numericLiteral() (Term, error) {
	var sb strings.Builder
	if c := p.peek(); c == '+' || c == '-' {
		sb.WriteRune(p.next())
	}
	decimal := false
	digits := 0
	for !p.eof() {
		c := p.peek()
		if unicode.IsDigit(c) {
			digits++
			sb.WriteRune(p.next())
			continue
		}
		// A '.' is part of the number only when a digit follows; otherwise
		// it terminates the statement.
		if c == '.' && !decimal && p.pos+1 < len(p.src) && unicode.IsDigit(p.src[p.pos+1]) {
			decimal = true
			sb.WriteRune(p.next())
			continue
		}
		break
	}
	if digits == 0 {
		return nil, p.errorf("malformed numeric literal")
	}
	if decimal {
		return TypedLiteral(sb.String(), XSDDecimal), nil
	}
	return TypedLiteral(sb.String(), XSDInteger), nil
}
