package gramtree

import "strconv"

// RegexParser compiles the package's regex-like surface syntax into a
// grammar tree. The zero value is ready to use; parsing is stateless
// across calls.
type RegexParser struct{}

// Parse compiles pattern into a grammar tree, or returns a *ParseError
// describing the first offending offset range and a human message.
func (RegexParser) Parse(pattern string) (GrammarNode, error) {
	return Parse(pattern)
}

// Parse is the package-level convenience form of RegexParser{}.Parse.
func Parse(pattern string) (GrammarNode, error) {
	s := &regexScanner{runes: []rune(pattern)}
	node, err := s.parsePattern()
	if err != nil {
		return nil, err
	}
	return node, nil
}

type regexScanner struct {
	runes          []rune
	pos            int
	captureCounter int
}

func (s *regexScanner) atEnd() bool {
	return s.pos >= len(s.runes)
}

func (s *regexScanner) peek(offset int) (rune, bool) {
	i := s.pos + offset
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

func (s *regexScanner) current() (rune, bool) {
	return s.peek(0)
}

func (s *regexScanner) advance() rune {
	c := s.runes[s.pos]
	s.pos++
	return c
}

func (s *regexScanner) isAt(c rune) bool {
	r, ok := s.current()
	return ok && r == c
}

func (s *regexScanner) errAt(start, end int, message string) error {
	return newParseError(start, end, message)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isAlnum(r rune) bool { return isAlpha(r) || isDigit(r) }

func hexDigitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

func (s *regexScanner) parsePattern() (GrammarNode, error) {
	node, err := s.parseAlt()
	if err != nil {
		return nil, err
	}
	if !s.atEnd() {
		return nil, s.errAt(s.pos, s.pos+1, "Unexpected character.")
	}
	return node, nil
}

func (s *regexScanner) parseAlt() (GrammarNode, error) {
	first, err := s.parseSeq()
	if err != nil {
		return nil, err
	}
	nodes := []GrammarNode{first}
	for s.isAt('|') {
		s.advance()
		n, err := s.parseSeq()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return NewAlternation(nodes...)
}

// emptySequence is what an empty seq production compiles to: a
// zero-width node that always succeeds, since NegatedAlternation with
// no children vacuously has "none of its children match".
var emptySequence = NegatedAlternation{}

func (s *regexScanner) parseSeq() (GrammarNode, error) {
	var nodes []GrammarNode
	for {
		if s.atEnd() || s.isAt('|') || s.isAt(')') {
			break
		}
		n, err := s.parseAtom()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	switch len(nodes) {
	case 0:
		return emptySequence, nil
	case 1:
		return nodes[0], nil
	default:
		return NewSequence(nodes...)
	}
}

func (s *regexScanner) parseAtom() (GrammarNode, error) {
	start := s.pos
	primary, err := s.parsePrimary()
	if err != nil {
		return nil, err
	}
	return s.parseQuantifier(primary, start)
}

func (s *regexScanner) parseQuantifier(node GrammarNode, start int) (GrammarNode, error) {
	c, ok := s.current()
	if !ok {
		return node, nil
	}
	var min int
	var max *int
	switch c {
	case '?':
		s.advance()
		one := 1
		min, max = 0, &one
	case '*':
		s.advance()
		min, max = 0, nil
	case '+':
		s.advance()
		min, max = 1, nil
	case '{':
		save := s.pos
		s.advance()
		n1, ok1 := s.parseDigits()
		if !ok1 {
			s.pos = save
			return node, nil
		}
		hasComma := false
		if s.isAt(',') {
			hasComma = true
			s.advance()
		}
		n2, ok2 := s.parseDigits()
		if !s.isAt('}') {
			s.pos = save
			return node, nil
		}
		s.advance()
		min = n1
		if !hasComma {
			m := n1
			max = &m
		} else if ok2 {
			m := n2
			max = &m
		} else {
			max = nil
		}
	default:
		return node, nil
	}
	lazy := false
	if s.isAt('?') {
		lazy = true
		s.advance()
	}
	rep, err := NewRepetition(node, min, max, lazy)
	if err != nil {
		return nil, s.errAt(start, s.pos, err.Error())
	}
	return rep, nil
}

func (s *regexScanner) parsePrimary() (GrammarNode, error) {
	start := s.pos
	if s.atEnd() {
		return nil, s.errAt(start, start+1, "Unexpected end of pattern.")
	}
	c := s.runes[s.pos]
	switch c {
	case '.':
		s.advance()
		return DotClass(), nil
	case '^', '$':
		s.advance()
		return nil, s.errAt(start, s.pos, "Anchors are not supported.")
	case '\\':
		return s.parseBackslash(start)
	case '[':
		return s.parseSet(start)
	case '(':
		return s.parseGroup(start)
	default:
		s.advance()
		return CharacterTerminal{Value: c}, nil
	}
}

func (s *regexScanner) parseDigits() (int, bool) {
	start := s.pos
	for !s.atEnd() && isDigit(s.runes[s.pos]) {
		s.advance()
	}
	if s.pos == start {
		return 0, false
	}
	n, _ := strconv.Atoi(string(s.runes[start:s.pos]))
	return n, true
}

func (s *regexScanner) parseNameChars() string {
	start := s.pos
	c, ok := s.current()
	if !ok || !(isAlpha(c) || c == '_') {
		return ""
	}
	s.advance()
	for {
		c, ok := s.current()
		if !ok || !(isAlnum(c) || c == '_') {
			break
		}
		s.advance()
	}
	return string(s.runes[start:s.pos])
}

func (s *regexScanner) parseBackslash(start int) (GrammarNode, error) {
	s.advance() // consume '\'
	c2, ok := s.current()
	if !ok {
		return nil, s.errAt(start, s.pos, "Invalid escape sequence.")
	}

	if c2 == 'k' {
		s.advance() // consume 'k'
		if !s.isAt('<') {
			return nil, s.errAt(start, s.pos, "Expected opening '<' for named backreference.")
		}
		s.advance() // consume '<'
		name := s.parseNameChars()
		if name == "" {
			return nil, s.errAt(start, s.pos, "Invalid named backreference name.")
		}
		if !s.isAt('>') {
			return nil, s.errAt(start, s.pos, "Expected closing '>' in named backreference.")
		}
		s.advance() // consume '>'
		node, err := NewNamedBackreference(name)
		if err != nil {
			return nil, s.errAt(start, s.pos, err.Error())
		}
		return node, nil
	}

	if isDigit(c2) {
		digitsStart := s.pos
		for !s.atEnd() && isDigit(s.runes[s.pos]) {
			s.advance()
		}
		digits := string(s.runes[digitsStart:s.pos])
		if len(digits) > 3 {
			return nil, s.errAt(start, s.pos, "Invalid backreference.")
		}
		num, _ := strconv.Atoi(digits)
		node, err := NewNumberedBackreference(num)
		if err != nil {
			return nil, s.errAt(start, s.pos, err.Error())
		}
		return node, nil
	}

	return s.parseEscapeBody(start)
}

// parseEscapeBody parses the shared "escape" production, used both
// directly after a top-level '\' (once 'k' and digit have been ruled
// out) and for setItem escapes inside a bracket expression.
func (s *regexScanner) parseEscapeBody(start int) (GrammarNode, error) {
	c2, _ := s.current()
	switch c2 {
	case 'a':
		s.advance()
		return CharacterTerminal{Value: '\a'}, nil
	case 'f':
		s.advance()
		return CharacterTerminal{Value: '\f'}, nil
	case 'n':
		s.advance()
		return CharacterTerminal{Value: '\n'}, nil
	case 'r':
		s.advance()
		return CharacterTerminal{Value: '\r'}, nil
	case 't':
		s.advance()
		return CharacterTerminal{Value: '\t'}, nil
	case 'v':
		s.advance()
		return CharacterTerminal{Value: '\v'}, nil
	case '.', '$', '^', '{', '[', '(', '|', ')', '*', '+', '?', '\\', ']', '-':
		s.advance()
		return CharacterTerminal{Value: c2}, nil
	case 'x':
		s.advance() // consume 'x'
		h1, ok1 := s.peekHex(0)
		h2, ok2 := s.peekHex(1)
		if !ok1 || !ok2 {
			return nil, s.errAt(start, s.pos, "Invalid escape sequence.")
		}
		s.advance()
		s.advance()
		return CharacterTerminal{Value: rune(h1*16 + h2)}, nil
	case 'd':
		s.advance()
		return DigitClass(), nil
	case 'D':
		s.advance()
		return NonDigitClass(), nil
	case 'w':
		s.advance()
		return WordClass(), nil
	case 'W':
		s.advance()
		return NonWordClass(), nil
	case 's':
		s.advance()
		return WhitespaceClass(), nil
	case 'S':
		s.advance()
		return NonWhitespaceClass(), nil
	case 'p', 'P':
		negated := c2 == 'P'
		s.advance() // consume p/P
		if !s.isAt('{') {
			return nil, s.errAt(start, s.pos, "Invalid escape sequence.")
		}
		s.advance() // consume '{'
		nameStart := s.pos
		for !s.atEnd() && s.runes[s.pos] != '}' {
			s.advance()
		}
		if s.atEnd() {
			return nil, s.errAt(start, s.pos, "Invalid escape sequence.")
		}
		name := string(s.runes[nameStart:s.pos])
		s.advance() // consume '}'
		cat, ok := LookupUnicodeCategory(name)
		if !ok {
			return nil, s.errAt(start, s.pos, "Invalid unicode class or code block name: "+name+".")
		}
		if negated {
			return NegatedUnicodeCategoryTerminal{Category: cat}, nil
		}
		return UnicodeCategoryTerminal{Category: cat}, nil
	default:
		s.advance()
		return nil, s.errAt(start, s.pos, "Invalid escape sequence.")
	}
}

func (s *regexScanner) peekHex(offset int) (int, bool) {
	r, ok := s.peek(offset)
	if !ok {
		return 0, false
	}
	return hexDigitValue(r)
}

func (s *regexScanner) parseSet(start int) (GrammarNode, error) {
	s.advance() // consume '['
	negated := false
	if s.isAt('^') {
		negated = true
		s.advance()
	}
	var chars []rune
	var nodes []GrammarNode
	first := true
	for {
		if s.atEnd() {
			return nil, s.errAt(start, s.pos, "Unfinished set.")
		}
		if s.isAt(']') && !first {
			s.advance()
			break
		}
		if err := s.parseSetItem(&chars, &nodes, first); err != nil {
			return nil, err
		}
		first = false
	}
	if negated {
		return NewNegatedCharacterSet(chars, nodes), nil
	}
	return NewCharacterSet(chars, nodes), nil
}

func (s *regexScanner) parseSetItem(chars *[]rune, nodes *[]GrammarNode, first bool) error {
	start := s.pos
	c, _ := s.current()

	if c == ']' && first {
		s.advance()
		*chars = append(*chars, ']')
		return nil
	}

	if c == '\\' {
		s.advance() // consume '\'
		node, err := s.parseEscapeBody(start)
		if err != nil {
			return err
		}
		ct, isChar := node.(CharacterTerminal)
		if !isChar {
			*nodes = append(*nodes, node)
			return nil
		}
		return s.finishSetItem(chars, nodes, start, ct.Value)
	}

	s.advance()
	return s.finishSetItem(chars, nodes, start, c)
}

// finishSetItem handles the optional "-endChar" suffix of a setItem
// whose left side resolved to the literal rune lo.
func (s *regexScanner) finishSetItem(chars *[]rune, nodes *[]GrammarNode, start int, lo rune) error {
	if s.isAt('-') {
		if next, ok := s.peek(1); ok && next != ']' {
			s.advance() // consume '-'
			hi, err := s.parseRangeEndChar()
			if err != nil {
				return err
			}
			if hi < lo {
				return s.errAt(start, s.pos, "Invalid character range: start must not exceed end.")
			}
			*nodes = append(*nodes, CharacterRange{Lo: lo, Hi: hi})
			return nil
		}
	}
	*chars = append(*chars, lo)
	return nil
}

func (s *regexScanner) parseRangeEndChar() (rune, error) {
	start := s.pos
	if s.atEnd() {
		return 0, s.errAt(start, start+1, "Unfinished set.")
	}
	c := s.runes[s.pos]
	if c == '\\' {
		s.advance()
		node, err := s.parseEscapeBody(start)
		if err != nil {
			return 0, err
		}
		ct, ok := node.(CharacterTerminal)
		if !ok {
			return 0, s.errAt(start, s.pos, "Invalid escape sequence.")
		}
		return ct.Value, nil
	}
	s.advance()
	return c, nil
}

func (s *regexScanner) parseGroup(start int) (GrammarNode, error) {
	s.advance() // consume '('
	if s.isAt('?') {
		s.advance() // consume '?'
		c, ok := s.current()
		if !ok {
			return nil, s.errAt(start, s.pos, "Unrecognized group type.")
		}
		switch c {
		case ':':
			s.advance()
			inner, err := s.parseAlt()
			if err != nil {
				return nil, err
			}
			if !s.isAt(')') {
				return nil, s.errAt(start, start+3, "Unfinished non-capturing group.")
			}
			s.advance()
			return inner, nil
		case '=':
			s.advance()
			inner, err := s.parseAlt()
			if err != nil {
				return nil, err
			}
			if !s.isAt(')') {
				return nil, s.errAt(start, start+3, "Unfinished lookahead.")
			}
			s.advance()
			return Lookahead{Inner: inner}, nil
		case '!':
			s.advance()
			inner, err := s.parseAlt()
			if err != nil {
				return nil, err
			}
			if !s.isAt(')') {
				return nil, s.errAt(start, start+3, "Unfinished lookahead.")
			}
			s.advance()
			return NegativeLookahead{Inner: inner}, nil
		case '<':
			s.advance()
			name := s.parseNameChars()
			if name == "" {
				return nil, s.errAt(start, s.pos, "Invalid named capture group name.")
			}
			if !s.isAt('>') {
				return nil, s.errAt(start, s.pos, "Expected closing '>' for named capture group name.")
			}
			s.advance()
			inner, err := s.parseAlt()
			if err != nil {
				return nil, err
			}
			if !s.isAt(')') {
				return nil, s.errAt(start, s.pos, "Expected closing ')' for named capture group.")
			}
			s.advance()
			node, err := NewNamedCapture(name, inner)
			if err != nil {
				return nil, s.errAt(start, s.pos, err.Error())
			}
			return node, nil
		default:
			return nil, s.errAt(start, s.pos, "Unrecognized group type.")
		}
	}

	s.captureCounter++
	position := s.captureCounter
	inner, err := s.parseAlt()
	if err != nil {
		return nil, err
	}
	if !s.isAt(')') {
		return nil, s.errAt(start, s.pos, "Expected closing ')' for capture group.")
	}
	s.advance()
	node, err := NewNumberedCapture(position, inner)
	if err != nil {
		return nil, s.errAt(start, s.pos, err.Error())
	}
	return node, nil
}
