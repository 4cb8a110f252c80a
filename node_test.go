package gramtree

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestConstructorValidation(t *testing.T) {
	cases := []struct {
		name    string
		build   func() error
		wantErr bool
	}{
		{"stringTerminalEmpty", func() error {
			_, err := NewStringTerminal("")
			return err
		}, true},
		{"stringTerminalOk", func() error {
			_, err := NewStringTerminal("ok")
			return err
		}, false},
		{"characterRangeBackwards", func() error {
			_, err := NewCharacterRange('z', 'a')
			return err
		}, true},
		{"characterRangeOk", func() error {
			_, err := NewCharacterRange('a', 'z')
			return err
		}, false},
		{"sequenceEmpty", func() error {
			_, err := NewSequence()
			return err
		}, true},
		{"alternationEmpty", func() error {
			_, err := NewAlternation()
			return err
		}, true},
		{"repetitionNegativeMin", func() error {
			_, err := NewRepetition(Any{}, -1, nil, false)
			return err
		}, true},
		{"repetitionMaxBelowOne", func() error {
			zero := 0
			_, err := NewRepetition(Any{}, 0, &zero, false)
			return err
		}, true},
		{"repetitionMaxBelowMin", func() error {
			one := 1
			_, err := NewRepetition(Any{}, 2, &one, false)
			return err
		}, true},
		{"numberedCaptureInvalidPosition", func() error {
			_, err := NewNumberedCapture(0, Any{})
			return err
		}, true},
		{"namedCaptureEmptyName", func() error {
			_, err := NewNamedCapture("", Any{})
			return err
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			if tc.wantErr {
				assert.Assert(t, err != nil)
			} else {
				assert.NilError(t, err)
			}
		})
	}
}

func TestRepetitionMaxIsDefensivelyCopied(t *testing.T) {
	max := 3
	node, err := NewRepetition(Any{}, 0, &max, false)
	assert.NilError(t, err)
	max = 99
	rep := node.(Repetition)
	assert.Equal(t, *rep.Max, 3)
}

func TestNegateRoundTrips(t *testing.T) {
	n, err := Negate(CharacterTerminal{Value: 'a'})
	assert.NilError(t, err)
	assert.Equal(t, n, GrammarNode(NegatedCharacterTerminal{Value: 'a'}))

	back, err := Negate(n)
	assert.NilError(t, err)
	assert.Equal(t, back, GrammarNode(CharacterTerminal{Value: 'a'}))
}

func TestNegateFailsOnNonNegatable(t *testing.T) {
	_, err := Negate(Any{})
	assert.Assert(t, err != nil)
	var notNegatable *ErrNotNegatable
	assert.Assert(t, errors.As(err, &notNegatable))
}

func TestThenAndOrFlattenSequences(t *testing.T) {
	a := CharacterTerminal{Value: 'a'}
	b := CharacterTerminal{Value: 'b'}
	c := CharacterTerminal{Value: 'c'}

	seq := Then(Then(a, b), c).(Sequence)
	assert.Equal(t, len(seq.Nodes), 3)

	alt := Or(Or(a, b), c).(Alternation)
	assert.Equal(t, len(alt.Nodes), 3)
}
