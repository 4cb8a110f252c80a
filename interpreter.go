package gramtree

// Interpreter walks a grammar tree against a CodeReader's buffer. It is
// stateless: the same value can be reused (or left as a zero value)
// across any number of independent Match calls.
type Interpreter struct{}

// cont is what a node matches against once it has committed to a
// tentative length: "does the rest of the tree succeed from here". A
// node with more than one way to match (Repetition, Alternation) tries
// cont after each candidate and only reports failure once every
// candidate's continuation has failed too — this is what lets an
// earlier greedy repetition give back characters to a later sibling in
// a Sequence, matching how established backtracking engines behave.
type cont func(pos int, caps *CaptureTable) (bool, error)

// Match evaluates node against reader's buffer starting at the absolute
// offset given, using captures as the starting capture table (a fresh
// one is used if captures is nil). The reader itself is never advanced:
// that is the Match Façade's job on a successful top-level call.
func (in Interpreter) Match(node GrammarNode, reader *CodeReader, offset int, captures *CaptureTable) (SimpleMatch, error) {
	if captures == nil {
		captures = NewCaptureTable()
	}
	start := captures.Clone()
	endPos := offset
	matched, err := in.eval(node, reader, offset, start, func(pos int, caps *CaptureTable) (bool, error) {
		endPos = pos
		captures.Merge(caps)
		return true, nil
	})
	if err != nil {
		return SimpleMatch{}, err
	}
	if !matched {
		return SimpleMatch{IsMatch: false}, nil
	}
	return SimpleMatch{IsMatch: true, Length: endPos - offset}, nil
}

func absPeek(r *CodeReader, pos int) (rune, bool) {
	if pos < 0 || pos >= len(r.buf) {
		return 0, false
	}
	return r.buf[pos], true
}

func absHasString(r *CodeReader, pos int, s string) bool {
	runes := []rune(s)
	if pos < 0 || pos+len(runes) > len(r.buf) {
		return false
	}
	for i, c := range runes {
		if r.buf[pos+i] != c {
			return false
		}
	}
	return true
}

func absText(r *CodeReader, start, length int) string {
	return string(r.buf[start : start+length])
}

// tryOnce runs node at pos purely to test whether it can match at all,
// discarding any captures and ignoring how it would continue past
// itself. Used by the zero-width/throwaway-scope variants (lookaround,
// NegatedAlternation, CharacterSet membership) that only ever need a
// yes/no answer, never backtracking cooperation with what comes after.
func (in Interpreter) tryOnce(node GrammarNode, reader *CodeReader, pos int, caps *CaptureTable) (int, bool, error) {
	matchedPos := pos
	matched := false
	_, err := in.eval(node, reader, pos, caps, func(p int, _ *CaptureTable) (bool, error) {
		matchedPos = p
		matched = true
		return true, nil
	})
	if err != nil {
		return 0, false, err
	}
	return matchedPos - pos, matched, nil
}

// eval is the core recursive matcher, in continuation-passing style: it
// tries to match node at pos and, for each way it can do so, calls k
// with the resulting position and capture table. eval reports success
// only once some candidate's k call itself reports success, so a
// failure deep in k unwinds back here and the next candidate (fewer
// repetitions, the next alternative) is tried before giving up.
func (in Interpreter) eval(node GrammarNode, reader *CodeReader, pos int, caps *CaptureTable, k cont) (bool, error) {
	switch n := node.(type) {
	case Any:
		if _, ok := absPeek(reader, pos); !ok {
			return false, nil
		}
		return k(pos+1, caps)

	case CharacterTerminal:
		c, ok := absPeek(reader, pos)
		if !ok || c != n.Value {
			return false, nil
		}
		return k(pos+1, caps)

	case NegatedCharacterTerminal:
		c, ok := absPeek(reader, pos)
		if !ok || c == n.Value {
			return false, nil
		}
		return k(pos, caps)

	case StringTerminal:
		if !absHasString(reader, pos, n.Text) {
			return false, nil
		}
		return k(pos+len([]rune(n.Text)), caps)

	case CharacterRange:
		c, ok := absPeek(reader, pos)
		if !ok || c < n.Lo || c > n.Hi {
			return false, nil
		}
		return k(pos+1, caps)

	case NegatedCharacterRange:
		c, ok := absPeek(reader, pos)
		if !ok || (c >= n.Lo && c <= n.Hi) {
			return false, nil
		}
		return k(pos+1, caps)

	case CharacterSet:
		return in.evalCharacterSet(n.Chars, n.Nodes, reader, pos, caps, false, k)

	case NegatedCharacterSet:
		return in.evalCharacterSet(n.Chars, n.Nodes, reader, pos, caps, true, k)

	case UnicodeCategoryTerminal:
		c, ok := absPeek(reader, pos)
		if !ok || !n.Category.Contains(c) {
			return false, nil
		}
		return k(pos+1, caps)

	case NegatedUnicodeCategoryTerminal:
		c, ok := absPeek(reader, pos)
		if !ok || n.Category.Contains(c) {
			return false, nil
		}
		return k(pos, caps)

	case Sequence:
		return in.evalSequenceFrom(n.Nodes, 0, reader, pos, caps, k)

	case Alternation:
		return in.evalAlternation(n, reader, pos, caps, k)

	case NegatedAlternation:
		for _, child := range n.Nodes {
			_, ok, err := in.tryOnce(child, reader, pos, caps.Clone())
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		return k(pos, caps)

	case Repetition:
		if n.Lazy {
			return false, &EngineError{Message: "Lazy repetitions aren't supported yet."}
		}
		return in.evalRepetition(n.Inner, n.Min, n.Max, 0, reader, pos, caps, k)

	case Lookahead:
		_, ok, err := in.tryOnce(n.Inner, reader, pos, caps.Clone())
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		return k(pos, caps)

	case NegativeLookahead:
		_, ok, err := in.tryOnce(n.Inner, reader, pos, caps.Clone())
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
		return k(pos, caps)

	case NumberedCapture:
		branch := caps.Clone()
		return in.eval(n.Inner, reader, pos, branch, func(pos2 int, caps2 *CaptureTable) (bool, error) {
			withCapture := caps2.Clone()
			withCapture.setNumbered(n.Position, Capture{Start: pos, Length: pos2 - pos})
			return k(pos2, withCapture)
		})

	case NamedCapture:
		branch := caps.Clone()
		return in.eval(n.Inner, reader, pos, branch, func(pos2 int, caps2 *CaptureTable) (bool, error) {
			withCapture := caps2.Clone()
			withCapture.setNamed(n.Name, Capture{Start: pos, Length: pos2 - pos})
			return k(pos2, withCapture)
		})

	case NumberedBackreference:
		c, ok := caps.Numbered(n.Position)
		if !ok || c.Length == 0 {
			return false, nil
		}
		return in.matchBackreference(reader, pos, c, caps, k)

	case NamedBackreference:
		c, ok := caps.Named(n.Name)
		if !ok || c.Length == 0 {
			return false, nil
		}
		return in.matchBackreference(reader, pos, c, caps, k)

	default:
		return false, &EngineError{Message: "unhandled grammar node variant: " + node.Kind().String()}
	}
}

func (in Interpreter) matchBackreference(reader *CodeReader, pos int, c Capture, caps *CaptureTable, k cont) (bool, error) {
	text := absText(reader, c.Start, c.Length)
	if !absHasString(reader, pos, text) {
		return false, nil
	}
	return k(pos+c.Length, caps)
}

func (in Interpreter) evalCharacterSet(chars []rune, nodes []GrammarNode, reader *CodeReader, pos int, caps *CaptureTable, negated bool, k cont) (bool, error) {
	c, ok := absPeek(reader, pos)
	if !ok {
		return false, nil
	}
	member := false
	for _, r := range chars {
		if r == c {
			member = true
			break
		}
	}
	if !member {
		for _, child := range nodes {
			length, matched, err := in.tryOnce(child, reader, pos, caps.Clone())
			if err != nil {
				return false, err
			}
			if matched && length >= 1 {
				member = true
				break
			}
		}
	}
	if negated {
		member = !member
	}
	if !member {
		return false, nil
	}
	return k(pos+1, caps)
}

func (in Interpreter) evalSequenceFrom(nodes []GrammarNode, i int, reader *CodeReader, pos int, caps *CaptureTable, k cont) (bool, error) {
	if i == len(nodes) {
		return k(pos, caps)
	}
	return in.eval(nodes[i], reader, pos, caps, func(pos2 int, caps2 *CaptureTable) (bool, error) {
		return in.evalSequenceFrom(nodes, i+1, reader, pos2, caps2, k)
	})
}

func (in Interpreter) evalAlternation(alt Alternation, reader *CodeReader, pos int, caps *CaptureTable, k cont) (bool, error) {
	for _, node := range alt.Nodes {
		branch := caps.Clone()
		matched, err := in.eval(node, reader, pos, branch, k)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// evalRepetition implements the greedy quantifier as a depth-first
// search that always tries one more repetition before trying to stop:
// consume, recurse; if that path (all the way through k) never pans
// out, unwind and let k try the rest of the pattern with the reps
// consumed so far. That backtrack-by-one-on-failure is what makes
// something like Sequence(Repetition('a', 0, nil), Terminal('a'))
// against "aaa" succeed by giving back the last 'a'.
func (in Interpreter) evalRepetition(inner GrammarNode, min int, max *int, count int, reader *CodeReader, pos int, caps *CaptureTable, k cont) (bool, error) {
	if max == nil || count < *max {
		branch := caps.Clone()
		matched, err := in.eval(inner, reader, pos, branch, func(pos2 int, caps2 *CaptureTable) (bool, error) {
			if pos2 == pos {
				// A zero-length repetition never advances and must
				// never be pumped indefinitely; it is accepted only
				// while the count is still below min.
				if count < min {
					return in.evalRepetition(inner, min, max, count+1, reader, pos2, caps2, k)
				}
				return false, nil
			}
			return in.evalRepetition(inner, min, max, count+1, reader, pos2, caps2, k)
		})
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	if count >= min {
		return k(pos, caps)
	}
	return false, nil
}
