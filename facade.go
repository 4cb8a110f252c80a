package gramtree

// SimpleMatch is the outcome of a match attempt reduced to a length: no
// span or captured text, just whether it matched and how many
// characters it consumed.
type SimpleMatch struct {
	IsMatch bool
	Length  int
}

// SpanMatch is the outcome of a match attempt as an absolute span plus
// whatever captures were recorded along the way.
type SpanMatch struct {
	IsMatch  bool
	Span     Span
	Captures *CaptureTable
}

// StringMatch is the outcome of a match attempt as the literal consumed
// text plus whatever captures were recorded along the way.
type StringMatch struct {
	IsMatch  bool
	String   string
	Captures *CaptureTable
}

// Matcher is the top-level entry point tying a CodeReader to the
// Interpreter: it starts matching at the reader's current position and,
// on success, advances the reader past the consumed text. The zero
// value is ready to use.
type Matcher struct {
	Interp Interpreter
}

// SimpleMatch runs node against reader starting at its current
// position, advancing the reader on success.
func (m Matcher) SimpleMatch(reader *CodeReader, node GrammarNode) (SimpleMatch, *CaptureTable, error) {
	start := reader.pos
	captures := NewCaptureTable()
	result, err := m.Interp.Match(node, reader, start, captures)
	if err != nil {
		return SimpleMatch{}, nil, err
	}
	if !result.IsMatch {
		return SimpleMatch{IsMatch: false}, captures, nil
	}
	if err := reader.Advance(result.Length); err != nil {
		return SimpleMatch{}, nil, err
	}
	return result, captures, nil
}

// SpanMatch runs node against reader starting at its current position,
// returning the consumed span and advancing the reader on success.
func (m Matcher) SpanMatch(reader *CodeReader, node GrammarNode) (SpanMatch, *CaptureTable, error) {
	start := reader.pos
	simple, captures, err := m.SimpleMatch(reader, node)
	if err != nil {
		return SpanMatch{}, nil, err
	}
	if !simple.IsMatch {
		return SpanMatch{IsMatch: false}, captures, nil
	}
	return SpanMatch{IsMatch: true, Span: Span{Start: start, Length: simple.Length}, Captures: captures}, captures, nil
}

// StringMatch runs node against reader starting at its current
// position, returning the consumed text and advancing the reader on
// success.
func (m Matcher) StringMatch(reader *CodeReader, node GrammarNode) (StringMatch, *CaptureTable, error) {
	start := reader.pos
	simple, captures, err := m.SimpleMatch(reader, node)
	if err != nil {
		return StringMatch{}, nil, err
	}
	if !simple.IsMatch {
		return StringMatch{IsMatch: false}, captures, nil
	}
	text := string(reader.buf[start : start+simple.Length])
	return StringMatch{IsMatch: true, String: text, Captures: captures}, captures, nil
}
