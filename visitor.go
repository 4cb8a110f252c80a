package gramtree

// ErrUnhandledVariant is returned by Visit when the visitor supplied has
// no function registered for the node variant encountered.
type ErrUnhandledVariant struct {
	Kind NodeKind
}

func (e *ErrUnhandledVariant) Error() string {
	return "gramtree: visitor has no handler for " + e.Kind.String()
}

// Visitor is a dispatch table with one function field per grammar node
// variant. A nil field means "this visitor does not handle that
// variant"; Visit reports ErrUnhandledVariant if it is reached.
type Visitor[A, R any] struct {
	VisitAny                            func(A) (R, error)
	VisitCharacterTerminal               func(CharacterTerminal, A) (R, error)
	VisitNegatedCharacterTerminal        func(NegatedCharacterTerminal, A) (R, error)
	VisitStringTerminal                  func(StringTerminal, A) (R, error)
	VisitCharacterRange                  func(CharacterRange, A) (R, error)
	VisitNegatedCharacterRange           func(NegatedCharacterRange, A) (R, error)
	VisitCharacterSet                    func(CharacterSet, A) (R, error)
	VisitNegatedCharacterSet             func(NegatedCharacterSet, A) (R, error)
	VisitUnicodeCategoryTerminal         func(UnicodeCategoryTerminal, A) (R, error)
	VisitNegatedUnicodeCategoryTerminal  func(NegatedUnicodeCategoryTerminal, A) (R, error)
	VisitSequence                        func(Sequence, A) (R, error)
	VisitAlternation                     func(Alternation, A) (R, error)
	VisitNegatedAlternation              func(NegatedAlternation, A) (R, error)
	VisitRepetition                      func(Repetition, A) (R, error)
	VisitLookahead                       func(Lookahead, A) (R, error)
	VisitNegativeLookahead               func(NegativeLookahead, A) (R, error)
	VisitNumberedCapture                 func(NumberedCapture, A) (R, error)
	VisitNamedCapture                    func(NamedCapture, A) (R, error)
	VisitNumberedBackreference           func(NumberedBackreference, A) (R, error)
	VisitNamedBackreference              func(NamedBackreference, A) (R, error)
}

// Visit dispatches node to the matching function field of v, passing
// acc through. It returns ErrUnhandledVariant if the corresponding field
// is nil.
func Visit[A, R any](node GrammarNode, v *Visitor[A, R], acc A) (R, error) {
	var zero R
	switch n := node.(type) {
	case Any:
		if v.VisitAny == nil {
			break
		}
		return v.VisitAny(acc)
	case CharacterTerminal:
		if v.VisitCharacterTerminal == nil {
			break
		}
		return v.VisitCharacterTerminal(n, acc)
	case NegatedCharacterTerminal:
		if v.VisitNegatedCharacterTerminal == nil {
			break
		}
		return v.VisitNegatedCharacterTerminal(n, acc)
	case StringTerminal:
		if v.VisitStringTerminal == nil {
			break
		}
		return v.VisitStringTerminal(n, acc)
	case CharacterRange:
		if v.VisitCharacterRange == nil {
			break
		}
		return v.VisitCharacterRange(n, acc)
	case NegatedCharacterRange:
		if v.VisitNegatedCharacterRange == nil {
			break
		}
		return v.VisitNegatedCharacterRange(n, acc)
	case CharacterSet:
		if v.VisitCharacterSet == nil {
			break
		}
		return v.VisitCharacterSet(n, acc)
	case NegatedCharacterSet:
		if v.VisitNegatedCharacterSet == nil {
			break
		}
		return v.VisitNegatedCharacterSet(n, acc)
	case UnicodeCategoryTerminal:
		if v.VisitUnicodeCategoryTerminal == nil {
			break
		}
		return v.VisitUnicodeCategoryTerminal(n, acc)
	case NegatedUnicodeCategoryTerminal:
		if v.VisitNegatedUnicodeCategoryTerminal == nil {
			break
		}
		return v.VisitNegatedUnicodeCategoryTerminal(n, acc)
	case Sequence:
		if v.VisitSequence == nil {
			break
		}
		return v.VisitSequence(n, acc)
	case Alternation:
		if v.VisitAlternation == nil {
			break
		}
		return v.VisitAlternation(n, acc)
	case NegatedAlternation:
		if v.VisitNegatedAlternation == nil {
			break
		}
		return v.VisitNegatedAlternation(n, acc)
	case Repetition:
		if v.VisitRepetition == nil {
			break
		}
		return v.VisitRepetition(n, acc)
	case Lookahead:
		if v.VisitLookahead == nil {
			break
		}
		return v.VisitLookahead(n, acc)
	case NegativeLookahead:
		if v.VisitNegativeLookahead == nil {
			break
		}
		return v.VisitNegativeLookahead(n, acc)
	case NumberedCapture:
		if v.VisitNumberedCapture == nil {
			break
		}
		return v.VisitNumberedCapture(n, acc)
	case NamedCapture:
		if v.VisitNamedCapture == nil {
			break
		}
		return v.VisitNamedCapture(n, acc)
	case NumberedBackreference:
		if v.VisitNumberedBackreference == nil {
			break
		}
		return v.VisitNumberedBackreference(n, acc)
	case NamedBackreference:
		if v.VisitNamedBackreference == nil {
			break
		}
		return v.VisitNamedBackreference(n, acc)
	}
	return zero, &ErrUnhandledVariant{Kind: node.Kind()}
}

// ErrNotNegatable is returned by Negate for variants with no canonical
// negation (Any, StringTerminal, Sequence, Repetition, capture and
// backreference nodes, and a NegatedAlternation with no children).
type ErrNotNegatable struct {
	Kind NodeKind
}

func (e *ErrNotNegatable) Error() string {
	return "gramtree: " + e.Kind.String() + " has no canonical negation"
}

// Then concatenates a and b: if a is already a Sequence, b is appended
// to it, otherwise a two-element Sequence is built.
func Then(a, b GrammarNode) GrammarNode {
	if seq, ok := a.(Sequence); ok {
		return Sequence{Nodes: append(cloneNodes(seq.Nodes), b)}
	}
	return Sequence{Nodes: []GrammarNode{a, b}}
}

// Or builds an alternation of a and b: if a is already an Alternation, b
// is appended to it, otherwise a two-element Alternation is built.
func Or(a, b GrammarNode) GrammarNode {
	if alt, ok := a.(Alternation); ok {
		return Alternation{Nodes: append(cloneNodes(alt.Nodes), b)}
	}
	return Alternation{Nodes: []GrammarNode{a, b}}
}

// Negate returns the canonical negation of n, or ErrNotNegatable if n's
// variant has none.
func Negate(n GrammarNode) (GrammarNode, error) {
	switch v := n.(type) {
	case Any:
		return nil, &ErrNotNegatable{Kind: KindAny}
	case CharacterTerminal:
		return NegatedCharacterTerminal{Value: v.Value}, nil
	case NegatedCharacterTerminal:
		return CharacterTerminal{Value: v.Value}, nil
	case StringTerminal:
		return nil, &ErrNotNegatable{Kind: KindStringTerminal}
	case CharacterRange:
		return NegatedCharacterRange{Lo: v.Lo, Hi: v.Hi}, nil
	case NegatedCharacterRange:
		return CharacterRange{Lo: v.Lo, Hi: v.Hi}, nil
	case CharacterSet:
		return NegatedCharacterSet{Chars: cloneRunes(v.Chars), Nodes: cloneNodes(v.Nodes)}, nil
	case NegatedCharacterSet:
		return CharacterSet{Chars: cloneRunes(v.Chars), Nodes: cloneNodes(v.Nodes)}, nil
	case UnicodeCategoryTerminal:
		return NegatedUnicodeCategoryTerminal{Category: v.Category}, nil
	case NegatedUnicodeCategoryTerminal:
		return UnicodeCategoryTerminal{Category: v.Category}, nil
	case Alternation:
		return NegatedAlternation{Nodes: cloneNodes(v.Nodes)}, nil
	case NegatedAlternation:
		if len(v.Nodes) == 0 {
			return nil, &ErrNotNegatable{Kind: KindNegatedAlternation}
		}
		return Alternation{Nodes: cloneNodes(v.Nodes)}, nil
	case Lookahead:
		return NegativeLookahead{Inner: v.Inner}, nil
	case NegativeLookahead:
		return Lookahead{Inner: v.Inner}, nil
	default:
		return nil, &ErrNotNegatable{Kind: n.Kind()}
	}
}

// Repeat builds a Repetition of node between min and max times (max ==
// nil means unbounded), greedy.
func Repeat(node GrammarNode, min int, max *int) (GrammarNode, error) {
	return NewRepetition(node, min, max, false)
}

// Optional builds a Repetition matching node zero or one times.
func Optional(node GrammarNode) GrammarNode {
	one := 1
	n, _ := NewRepetition(node, 0, &one, false)
	return n
}

// Infinite builds a Repetition matching node zero or more times.
func Infinite(node GrammarNode) GrammarNode {
	n, _ := NewRepetition(node, 0, nil, false)
	return n
}
