package gramtree

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestLookupUnicodeCategory(t *testing.T) {
	cat, ok := LookupUnicodeCategory("Lu")
	assert.Equal(t, ok, true)
	assert.Equal(t, cat.String(), "Lu")
	assert.Equal(t, cat.Contains('A'), true)
	assert.Equal(t, cat.Contains('a'), false)

	_, ok = LookupUnicodeCategory("Unexistent")
	assert.Equal(t, ok, false)
}

func TestUnicodeCategoryAggregate(t *testing.T) {
	cat, ok := LookupUnicodeCategory("L")
	assert.Equal(t, ok, true)
	assert.Equal(t, cat.Contains('A'), true)
	assert.Equal(t, cat.Contains('a'), true)
	assert.Equal(t, cat.Contains('5'), false)
}

func TestDigitAndWordClasses(t *testing.T) {
	var in Interpreter
	reader := NewCodeReader("5")
	m, err := in.Match(DigitClass(), reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)

	reader = NewCodeReader("_")
	m, err = in.Match(WordClass(), reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)

	reader = NewCodeReader("!")
	m, err = in.Match(WordClass(), reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, false)
}

func TestWhitespaceClass(t *testing.T) {
	var in Interpreter
	for _, c := range []rune{' ', '\t', '\n', '\r', '\f', '\v'} {
		reader := NewCodeReader(string(c))
		m, err := in.Match(WhitespaceClass(), reader, 0, nil)
		assert.NilError(t, err)
		assert.Equal(t, m.IsMatch, true)
	}
	reader := NewCodeReader("x")
	m, err := in.Match(NonWhitespaceClass(), reader, 0, nil)
	assert.NilError(t, err)
	assert.Equal(t, m.IsMatch, true)
}

func TestIntervalContains(t *testing.T) {
	iv := Interval[int]{Start: 1, End: 5}
	assert.Equal(t, iv.Contains(1), true)
	assert.Equal(t, iv.Contains(5), true)
	assert.Equal(t, iv.Contains(0), false)
	assert.Equal(t, iv.Contains(6), false)
}
