// Package gramtree implements a composable grammar engine: an algebraic
// tree of grammar nodes, a regex-like front end that compiles a pattern
// string into such a tree, and a backtracking interpreter that matches a
// tree against a seekable character reader.
package gramtree

// NodeKind identifies which of the closed set of grammar node variants a
// GrammarNode value is.
type NodeKind int

const (
	KindAny NodeKind = iota
	KindCharacterTerminal
	KindNegatedCharacterTerminal
	KindStringTerminal
	KindCharacterRange
	KindNegatedCharacterRange
	KindCharacterSet
	KindNegatedCharacterSet
	KindUnicodeCategoryTerminal
	KindNegatedUnicodeCategoryTerminal
	KindSequence
	KindAlternation
	KindNegatedAlternation
	KindRepetition
	KindLookahead
	KindNegativeLookahead
	KindNumberedCapture
	KindNamedCapture
	KindNumberedBackreference
	KindNamedBackreference
)

func (k NodeKind) String() string {
	switch k {
	case KindAny:
		return "Any"
	case KindCharacterTerminal:
		return "CharacterTerminal"
	case KindNegatedCharacterTerminal:
		return "NegatedCharacterTerminal"
	case KindStringTerminal:
		return "StringTerminal"
	case KindCharacterRange:
		return "CharacterRange"
	case KindNegatedCharacterRange:
		return "NegatedCharacterRange"
	case KindCharacterSet:
		return "CharacterSet"
	case KindNegatedCharacterSet:
		return "NegatedCharacterSet"
	case KindUnicodeCategoryTerminal:
		return "UnicodeCategoryTerminal"
	case KindNegatedUnicodeCategoryTerminal:
		return "NegatedUnicodeCategoryTerminal"
	case KindSequence:
		return "Sequence"
	case KindAlternation:
		return "Alternation"
	case KindNegatedAlternation:
		return "NegatedAlternation"
	case KindRepetition:
		return "Repetition"
	case KindLookahead:
		return "Lookahead"
	case KindNegativeLookahead:
		return "NegativeLookahead"
	case KindNumberedCapture:
		return "NumberedCapture"
	case KindNamedCapture:
		return "NamedCapture"
	case KindNumberedBackreference:
		return "NumberedBackreference"
	case KindNamedBackreference:
		return "NamedBackreference"
	default:
		return "Unknown"
	}
}

// GrammarNode is any node of the closed grammar-tree algebra described in
// the package's specification. Trees are immutable once constructed and
// may be shared freely across goroutines and readers.
type GrammarNode interface {
	Kind() NodeKind
}

// Any consumes any single character.
type Any struct{}

func (Any) Kind() NodeKind { return KindAny }

// NewAny returns a node that matches any single character.
func NewAny() GrammarNode { return Any{} }

// CharacterTerminal matches a single given character.
type CharacterTerminal struct {
	Value rune
}

func (CharacterTerminal) Kind() NodeKind { return KindCharacterTerminal }

// NewCharacterTerminal returns a node matching exactly r.
func NewCharacterTerminal(r rune) GrammarNode {
	return CharacterTerminal{Value: r}
}

// NegatedCharacterTerminal matches any character other than Value.
//
// Per the package specification's documented quirk, a successful match
// of this node has length 0, not 1 — it is a zero-width assertion that
// the next character exists and differs from Value, mirroring the
// reference engine this design was preserved from.
type NegatedCharacterTerminal struct {
	Value rune
}

func (NegatedCharacterTerminal) Kind() NodeKind { return KindNegatedCharacterTerminal }

// NewNegatedCharacterTerminal returns a zero-width assertion node
// succeeding iff the current character exists and differs from r.
func NewNegatedCharacterTerminal(r rune) GrammarNode {
	return NegatedCharacterTerminal{Value: r}
}

// StringTerminal matches an exact, non-empty sequence of characters.
type StringTerminal struct {
	Text string
}

func (StringTerminal) Kind() NodeKind { return KindStringTerminal }

// NewStringTerminal returns a node matching s verbatim. s must be
// non-empty.
func NewStringTerminal(s string) (GrammarNode, error) {
	if s == "" {
		return nil, newArgumentError("StringTerminal text must not be empty")
	}
	return StringTerminal{Text: s}, nil
}

// CharacterRange matches any character within an inclusive range.
type CharacterRange struct {
	Lo, Hi rune
}

func (CharacterRange) Kind() NodeKind { return KindCharacterRange }

// NewCharacterRange returns a node matching any character in [lo, hi].
// lo must be <= hi.
func NewCharacterRange(lo, hi rune) (GrammarNode, error) {
	if lo > hi {
		return nil, newArgumentError("CharacterRange start must not exceed end")
	}
	return CharacterRange{Lo: lo, Hi: hi}, nil
}

// NegatedCharacterRange matches the complement of a CharacterRange.
type NegatedCharacterRange struct {
	Lo, Hi rune
}

func (NegatedCharacterRange) Kind() NodeKind { return KindNegatedCharacterRange }

// NewNegatedCharacterRange returns a node matching any character not in
// [lo, hi]. lo must be <= hi.
func NewNegatedCharacterRange(lo, hi rune) (GrammarNode, error) {
	if lo > hi {
		return nil, newArgumentError("NegatedCharacterRange start must not exceed end")
	}
	return NegatedCharacterRange{Lo: lo, Hi: hi}, nil
}

// CharacterSet matches a character that is either a member of Chars or
// matched by any of Nodes at length 1.
type CharacterSet struct {
	Chars []rune
	Nodes []GrammarNode
}

func (CharacterSet) Kind() NodeKind { return KindCharacterSet }

// NewCharacterSet returns a node matching any character in chars, or any
// character matched (with length 1) by one of nodes.
func NewCharacterSet(chars []rune, nodes []GrammarNode) GrammarNode {
	return CharacterSet{Chars: cloneRunes(chars), Nodes: cloneNodes(nodes)}
}

// NegatedCharacterSet matches the complement of a CharacterSet.
type NegatedCharacterSet struct {
	Chars []rune
	Nodes []GrammarNode
}

func (NegatedCharacterSet) Kind() NodeKind { return KindNegatedCharacterSet }

// NewNegatedCharacterSet returns the complement of NewCharacterSet.
func NewNegatedCharacterSet(chars []rune, nodes []GrammarNode) GrammarNode {
	return NegatedCharacterSet{Chars: cloneRunes(chars), Nodes: cloneNodes(nodes)}
}

// UnicodeCategoryTerminal matches a character whose Unicode general
// category equals Category.
type UnicodeCategoryTerminal struct {
	Category UnicodeCategory
}

func (UnicodeCategoryTerminal) Kind() NodeKind { return KindUnicodeCategoryTerminal }

// NewUnicodeCategoryTerminal returns a node matching any character in cat.
func NewUnicodeCategoryTerminal(cat UnicodeCategory) GrammarNode {
	return UnicodeCategoryTerminal{Category: cat}
}

// NegatedUnicodeCategoryTerminal matches the complement of a
// UnicodeCategoryTerminal.
//
// As with NegatedCharacterTerminal, a successful match has length 0 by
// specification.
type NegatedUnicodeCategoryTerminal struct {
	Category UnicodeCategory
}

func (NegatedUnicodeCategoryTerminal) Kind() NodeKind { return KindNegatedUnicodeCategoryTerminal }

// NewNegatedUnicodeCategoryTerminal returns the complement of
// NewUnicodeCategoryTerminal.
func NewNegatedUnicodeCategoryTerminal(cat UnicodeCategory) GrammarNode {
	return NegatedUnicodeCategoryTerminal{Category: cat}
}

// Sequence matches each of Nodes in order, concatenating their lengths.
type Sequence struct {
	Nodes []GrammarNode
}

func (Sequence) Kind() NodeKind { return KindSequence }

// NewSequence returns a node matching nodes in order. At least one node
// is required.
func NewSequence(nodes ...GrammarNode) (GrammarNode, error) {
	if len(nodes) == 0 {
		return nil, newArgumentError("Sequence requires at least one node")
	}
	return Sequence{Nodes: cloneNodes(nodes)}, nil
}

// Alternation matches the first of Nodes that matches, left-biased.
type Alternation struct {
	Nodes []GrammarNode
}

func (Alternation) Kind() NodeKind { return KindAlternation }

// NewAlternation returns a node matching the first alternative in nodes
// that matches. At least one node is required.
func NewAlternation(nodes ...GrammarNode) (GrammarNode, error) {
	if len(nodes) == 0 {
		return nil, newArgumentError("Alternation requires at least one node")
	}
	return Alternation{Nodes: cloneNodes(nodes)}, nil
}

// NegatedAlternation is a zero-length assertion succeeding iff none of
// Nodes match at the current position.
type NegatedAlternation struct {
	Nodes []GrammarNode
}

func (NegatedAlternation) Kind() NodeKind { return KindNegatedAlternation }

// NewNegatedAlternation returns a zero-width node succeeding iff none of
// nodes match. Zero nodes are permitted (always succeeds).
func NewNegatedAlternation(nodes ...GrammarNode) GrammarNode {
	return NegatedAlternation{Nodes: cloneNodes(nodes)}
}

// Repetition repeats Inner greedily within [Min, Max] (Max nil means
// unbounded).
type Repetition struct {
	Inner GrammarNode
	Min   int
	Max   *int
	Lazy  bool
}

func (Repetition) Kind() NodeKind { return KindRepetition }

// NewRepetition returns a node repeating inner between min and max times
// (max == nil means unbounded). min must be >= 0; if max is given it
// must be >= 1 and >= min. lazy repetitions are constructible (the
// surface grammar can produce them) but are rejected by the interpreter
// at evaluation time; see the package's design notes.
func NewRepetition(inner GrammarNode, min int, max *int, lazy bool) (GrammarNode, error) {
	if min < 0 {
		return nil, newArgumentError("Repetition min must not be negative")
	}
	if max != nil {
		if *max < 1 {
			return nil, newArgumentError("Repetition max must be at least 1")
		}
		if *max < min {
			return nil, newArgumentError("Repetition max must not be less than min")
		}
	}
	var maxCopy *int
	if max != nil {
		m := *max
		maxCopy = &m
	}
	return Repetition{Inner: inner, Min: min, Max: maxCopy, Lazy: lazy}, nil
}

// Lookahead is a zero-length assertion succeeding iff Inner matches here.
type Lookahead struct {
	Inner GrammarNode
}

func (Lookahead) Kind() NodeKind { return KindLookahead }

// NewLookahead returns a zero-width assertion succeeding iff inner
// matches at the current position.
func NewLookahead(inner GrammarNode) GrammarNode {
	return Lookahead{Inner: inner}
}

// NegativeLookahead is the complement of Lookahead.
type NegativeLookahead struct {
	Inner GrammarNode
}

func (NegativeLookahead) Kind() NodeKind { return KindNegativeLookahead }

// NewNegativeLookahead returns the complement of NewLookahead.
func NewNegativeLookahead(inner GrammarNode) GrammarNode {
	return NegativeLookahead{Inner: inner}
}

// NumberedCapture records Inner's matched span under the reserved key
// for position.
type NumberedCapture struct {
	Position int
	Inner    GrammarNode
}

func (NumberedCapture) Kind() NodeKind { return KindNumberedCapture }

// NewNumberedCapture returns a node delegating to inner and, on success,
// recording the match under the numbered-capture key for position.
// position must be >= 1.
func NewNumberedCapture(position int, inner GrammarNode) (GrammarNode, error) {
	if position < 1 {
		return nil, newArgumentError("NumberedCapture position must be at least 1")
	}
	return NumberedCapture{Position: position, Inner: inner}, nil
}

// NamedCapture records Inner's matched span under Name.
type NamedCapture struct {
	Name  string
	Inner GrammarNode
}

func (NamedCapture) Kind() NodeKind { return KindNamedCapture }

// NewNamedCapture returns a node delegating to inner and, on success,
// recording the match under name. name must be non-empty.
func NewNamedCapture(name string, inner GrammarNode) (GrammarNode, error) {
	if name == "" {
		return nil, newArgumentError("NamedCapture name must not be empty")
	}
	return NamedCapture{Name: name, Inner: inner}, nil
}

// NumberedBackreference matches the text previously captured under
// Position's numbered key.
type NumberedBackreference struct {
	Position int
}

func (NumberedBackreference) Kind() NodeKind { return KindNumberedBackreference }

// NewNumberedBackreference returns a node matching whatever text was
// captured under the numbered-capture key for position. position must
// be >= 1.
func NewNumberedBackreference(position int) (GrammarNode, error) {
	if position < 1 {
		return nil, newArgumentError("NumberedBackreference position must be at least 1")
	}
	return NumberedBackreference{Position: position}, nil
}

// NamedBackreference matches the text previously captured under Name.
type NamedBackreference struct {
	Name string
}

func (NamedBackreference) Kind() NodeKind { return KindNamedBackreference }

// NewNamedBackreference returns a node matching whatever text was
// captured under name. name must be non-empty.
func NewNamedBackreference(name string) (GrammarNode, error) {
	if name == "" {
		return nil, newArgumentError("NamedBackreference name must not be empty")
	}
	return NamedBackreference{Name: name}, nil
}

func cloneRunes(rs []rune) []rune {
	if rs == nil {
		return nil
	}
	out := make([]rune, len(rs))
	copy(out, rs)
	return out
}

func cloneNodes(ns []GrammarNode) []GrammarNode {
	if ns == nil {
		return nil
	}
	out := make([]GrammarNode, len(ns))
	copy(out, ns)
	return out
}
