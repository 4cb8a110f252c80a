package gramtree

import (
	"testing"

	"gotest.tools/v3/assert"
)

func mustNode(t *testing.T, n GrammarNode, err error) GrammarNode {
	t.Helper()
	assert.NilError(t, err)
	return n
}

func TestInterpreterScenarios(t *testing.T) {
	t.Run("sequenceOfTerminals", func(t *testing.T) {
		reader := NewCodeReader("abc")
		treeNode, treeErr := NewSequence(CharacterTerminal{Value: 'a'}, CharacterTerminal{Value: 'b'})
		tree := mustNode(t, treeNode, treeErr)
		var in Interpreter
		m, err := in.Match(tree, reader, 0, nil)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
		assert.Equal(t, m.Length, 2)
	})

	t.Run("unboundedRepetition", func(t *testing.T) {
		reader := NewCodeReader("aaa")
		treeNode, treeErr := NewRepetition(CharacterTerminal{Value: 'a'}, 1, nil, false)
		tree := mustNode(t, treeNode, treeErr)
		var in Interpreter
		m, err := in.Match(tree, reader, 0, nil)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
		assert.Equal(t, m.Length, 3)
	})

	t.Run("namedCaptureAndBackreference", func(t *testing.T) {
		reader := NewCodeReader("abab")
		xCaptureNode, xCaptureErr := NewNamedCapture("x", CharacterTerminal{Value: 'a'})
		xCapture := mustNode(t, xCaptureNode, xCaptureErr)
		backNode, backErr := NewNamedBackreference("x")
		back := mustNode(t, backNode, backErr)
		treeNode, treeErr := NewSequence(xCapture, CharacterTerminal{Value: 'b'}, back, CharacterTerminal{Value: 'b'})
		tree := mustNode(t, treeNode, treeErr)
		var in Interpreter
		caps := NewCaptureTable()
		m, err := in.Match(tree, reader, 0, caps)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
		assert.Equal(t, m.Length, 4)
		c, ok := caps.Named("x")
		assert.Equal(t, ok, true)
		assert.Equal(t, c, Capture{Start: 0, Length: 1})
	})

	t.Run("alternationSecondBranchWins", func(t *testing.T) {
		reader := NewCodeReader("12")
		firstNode, firstErr := NewStringTerminal("1a")
		first := mustNode(t, firstNode, firstErr)
		secondNode, secondErr := NewStringTerminal("12")
		second := mustNode(t, secondNode, secondErr)
		treeNode, treeErr := NewAlternation(first, second)
		tree := mustNode(t, treeNode, treeErr)
		var in Interpreter
		m, err := in.Match(tree, reader, 0, nil)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
		assert.Equal(t, m.Length, 2)
	})

	t.Run("lookaheadDoesNotConsume", func(t *testing.T) {
		reader := NewCodeReader("x")
		treeNode, treeErr := NewSequence(Lookahead{Inner: CharacterTerminal{Value: 'x'}}, CharacterTerminal{Value: 'x'})
		tree := mustNode(t, treeNode, treeErr)
		var in Interpreter
		m, err := in.Match(tree, reader, 0, nil)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
		assert.Equal(t, m.Length, 1)
	})

	t.Run("negativeLookaheadDoesNotConsume", func(t *testing.T) {
		reader := NewCodeReader("y")
		treeNode, treeErr := NewSequence(NegativeLookahead{Inner: CharacterTerminal{Value: 'x'}}, CharacterTerminal{Value: 'y'})
		tree := mustNode(t, treeNode, treeErr)
		var in Interpreter
		m, err := in.Match(tree, reader, 0, nil)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
		assert.Equal(t, m.Length, 1)
	})
}

func TestInterpreterNegatedTerminalHasZeroLength(t *testing.T) {
	reader := NewCodeReader("b")
	var in Interpreter
	m, err := in.Match(NegatedCharacterTerminal{Value: 'a'}, reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)
	assert.Equal(t, m.Length, 0)
}

func TestInterpreterNegatedTerminalFailsOnMatchingChar(t *testing.T) {
	reader := NewCodeReader("a")
	var in Interpreter
	m, err := in.Match(NegatedCharacterTerminal{Value: 'a'}, reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, false)
}

func TestInterpreterFailsCleanlyPastEndOfInput(t *testing.T) {
	reader := NewCodeReader("")
	var in Interpreter
	m, err := in.Match(Any{}, reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, false)
}

func TestInterpreterRejectsLazyRepetition(t *testing.T) {
	reader := NewCodeReader("aaa")
	tree, err := NewRepetition(CharacterTerminal{Value: 'a'}, 0, nil, true)
	assert.NilError(t, err)
	var in Interpreter
	_, err = in.Match(tree, reader, 0, nil)
	assert.ErrorContains(t, err, "Lazy repetitions aren't supported yet.")
}

func TestInterpreterBackreferenceFailsOnEmptyCapture(t *testing.T) {
	// The captured text is empty because NegatedCharacterTerminal is a
	// zero-length assertion, not because nothing was captured: an empty
	// capture must still fail the backreference per the interpreter's
	// per-variant rule for NumberedBackreference/NamedBackreference.
	reader := NewCodeReader("ab")
	captureNode, captureErr := NewNamedCapture("x", NegatedCharacterTerminal{Value: 'z'})
	capture := mustNode(t, captureNode, captureErr)
	backNode, backErr := NewNamedBackreference("x")
	back := mustNode(t, backNode, backErr)
	treeNode, treeErr := NewSequence(capture, back)
	tree := mustNode(t, treeNode, treeErr)
	var in Interpreter
	m, err := in.Match(tree, reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, false)
}

func TestGreedyRepetitionBacktracksForTrailingAtom(t *testing.T) {
	// "a*a" against "aaa": the star first commits to all three a's, but
	// that leaves nothing for the trailing literal, so it must give back
	// one repetition and let the literal consume the last 'a'.
	reader := NewCodeReader("aaa")
	starNode, starErr := NewRepetition(CharacterTerminal{Value: 'a'}, 0, nil, false)
	star := mustNode(t, starNode, starErr)
	treeNode, treeErr := NewSequence(star, CharacterTerminal{Value: 'a'})
	tree := mustNode(t, treeNode, treeErr)
	var in Interpreter
	m, err := in.Match(tree, reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)
	assert.Equal(t, m.Length, 3)
}

func TestAlternationBacktracksIntoLaterSequenceMember(t *testing.T) {
	// Alternation("ab"|"a") followed by "b" against "ab": the first
	// alternative wins on its own but leaves nothing for the trailing
	// 'b', so the second alternative must be tried instead.
	reader := NewCodeReader("ab")
	abNode, abErr := NewStringTerminal("ab")
	ab := mustNode(t, abNode, abErr)
	aNode, aErr := NewStringTerminal("a")
	a := mustNode(t, aNode, aErr)
	altNode, altErr := NewAlternation(ab, a)
	alt := mustNode(t, altNode, altErr)
	treeNode, treeErr := NewSequence(alt, CharacterTerminal{Value: 'b'})
	tree := mustNode(t, treeNode, treeErr)
	var in Interpreter
	m, err := in.Match(tree, reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)
	assert.Equal(t, m.Length, 2)
}

func TestRepetitionBacktracksAcrossCaptureGroup(t *testing.T) {
	// (a+)(a) against "aaa": the outer repetition must give back a
	// repetition so the second capture group has an 'a' left to consume,
	// and the first group's recorded span must reflect the smaller count.
	reader := NewCodeReader("aaa")
	repNode, repErr := NewRepetition(CharacterTerminal{Value: 'a'}, 1, nil, false)
	rep := mustNode(t, repNode, repErr)
	firstNode, firstErr := NewNumberedCapture(1, rep)
	first := mustNode(t, firstNode, firstErr)
	secondNode, secondErr := NewNumberedCapture(2, CharacterTerminal{Value: 'a'})
	second := mustNode(t, secondNode, secondErr)
	treeNode, treeErr := NewSequence(first, second)
	tree := mustNode(t, treeNode, treeErr)
	var in Interpreter
	caps := NewCaptureTable()
	m, err := in.Match(tree, reader, 0, caps)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)
	assert.Equal(t, m.Length, 3)
	c1, ok := caps.Numbered(1)
	assert.Equal(t, ok, true)
	assert.Equal(t, c1, Capture{Start: 0, Length: 2})
	c2, ok := caps.Numbered(2)
	assert.Equal(t, ok, true)
	assert.Equal(t, c2, Capture{Start: 2, Length: 1})
}
