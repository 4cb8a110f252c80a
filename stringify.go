package gramtree

import (
	"fmt"
	"strconv"
	"strings"
)

// GrammarNodeToStringConverter renders a grammar tree back into the
// regex-like surface syntax accepted by Parse. It exists for
// diagnostics and to exercise the round-trip property: parsing the
// output of ToString reproduces a structurally equal tree, modulo a
// few documented normalizations (a NegatedCharacterTerminal round-trips
// through the bracket-expression form "[^c]" rather than itself, since
// the surface grammar has no single-character negation token; a bare
// CharacterRange or NegatedCharacterRange, such as \d or \D, renders as
// "[0-9]" or "[^0-9]" and reparses as a set holding that range; the
// prebuilt classes \w and \s expand to their literal bracket-expression
// form rather than the shorthand escape).
type GrammarNodeToStringConverter struct{}

// ToString renders node as regex-like surface syntax.
func (GrammarNodeToStringConverter) ToString(node GrammarNode) string {
	return nodeToString(node)
}

func nodeToString(node GrammarNode) string {
	s, err := Visit(node, stringifyVisitor, struct{}{})
	if err != nil {
		return "?"
	}
	return s
}

var stringifyVisitor *Visitor[struct{}, string]

func init() {
	stringifyVisitor = &Visitor[struct{}, string]{
		VisitAny: func(struct{}) (string, error) { return ".", nil },
		VisitCharacterTerminal: func(n CharacterTerminal, _ struct{}) (string, error) {
			return escapeLiteral(n.Value), nil
		},
		VisitNegatedCharacterTerminal: func(n NegatedCharacterTerminal, _ struct{}) (string, error) {
			return "[^" + escapeSetChar(n.Value) + "]", nil
		},
		VisitStringTerminal: func(n StringTerminal, _ struct{}) (string, error) {
			var b strings.Builder
			for _, r := range n.Text {
				b.WriteString(escapeLiteral(r))
			}
			return b.String(), nil
		},
		VisitCharacterRange: func(n CharacterRange, _ struct{}) (string, error) {
			return fmt.Sprintf("[%s-%s]", escapeSetChar(n.Lo), escapeSetChar(n.Hi)), nil
		},
		VisitNegatedCharacterRange: func(n NegatedCharacterRange, _ struct{}) (string, error) {
			return fmt.Sprintf("[^%s-%s]", escapeSetChar(n.Lo), escapeSetChar(n.Hi)), nil
		},
		VisitCharacterSet: func(n CharacterSet, _ struct{}) (string, error) {
			return "[" + setBody(n.Chars, n.Nodes) + "]", nil
		},
		VisitNegatedCharacterSet: func(n NegatedCharacterSet, _ struct{}) (string, error) {
			return "[^" + setBody(n.Chars, n.Nodes) + "]", nil
		},
		VisitUnicodeCategoryTerminal: func(n UnicodeCategoryTerminal, _ struct{}) (string, error) {
			return "\\p{" + n.Category.String() + "}", nil
		},
		VisitNegatedUnicodeCategoryTerminal: func(n NegatedUnicodeCategoryTerminal, _ struct{}) (string, error) {
			return "\\P{" + n.Category.String() + "}", nil
		},
		VisitSequence: func(n Sequence, _ struct{}) (string, error) {
			var b strings.Builder
			for _, c := range n.Nodes {
				b.WriteString(operandString(c, KindSequence))
			}
			return b.String(), nil
		},
		VisitAlternation: func(n Alternation, _ struct{}) (string, error) {
			parts := make([]string, len(n.Nodes))
			for i, c := range n.Nodes {
				parts[i] = operandString(c, KindAlternation)
			}
			return strings.Join(parts, "|"), nil
		},
		VisitNegatedAlternation: func(n NegatedAlternation, _ struct{}) (string, error) {
			if len(n.Nodes) == 0 {
				return "", nil
			}
			parts := make([]string, len(n.Nodes))
			for i, c := range n.Nodes {
				parts[i] = nodeToString(c)
			}
			return "(?!" + strings.Join(parts, "|") + ")", nil
		},
		VisitRepetition: func(n Repetition, _ struct{}) (string, error) {
			return operandString(n.Inner, KindRepetition) + quantifierString(n), nil
		},
		VisitLookahead: func(n Lookahead, _ struct{}) (string, error) {
			return "(?=" + nodeToString(n.Inner) + ")", nil
		},
		VisitNegativeLookahead: func(n NegativeLookahead, _ struct{}) (string, error) {
			return "(?!" + nodeToString(n.Inner) + ")", nil
		},
		VisitNumberedCapture: func(n NumberedCapture, _ struct{}) (string, error) {
			return "(" + nodeToString(n.Inner) + ")", nil
		},
		VisitNamedCapture: func(n NamedCapture, _ struct{}) (string, error) {
			return "(?<" + n.Name + ">" + nodeToString(n.Inner) + ")", nil
		},
		VisitNumberedBackreference: func(n NumberedBackreference, _ struct{}) (string, error) {
			return "\\" + strconv.Itoa(n.Position), nil
		},
		VisitNamedBackreference: func(n NamedBackreference, _ struct{}) (string, error) {
			return "\\k<" + n.Name + ">", nil
		},
	}
}

// operandString renders n as a child of a node of kind parent, wrapped in
// a non-capturing group wherever its bare form would not reparse as one
// child there: an Alternation anywhere, a Sequence or NegatedAlternation
// unless the parent is an Alternation, and a Repetition under a quantifier.
func operandString(n GrammarNode, parent NodeKind) string {
	s := nodeToString(n)
	k := n.Kind()
	if k == KindAlternation ||
		((k == KindSequence || k == KindNegatedAlternation) && parent != KindAlternation) ||
		(k == KindRepetition && parent == KindRepetition) {
		return "(?:" + s + ")"
	}
	return s
}

func escapeLiteral(r rune) string {
	switch r {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case '\r':
		return "\\r"
	case '\f':
		return "\\f"
	case '\v':
		return "\\v"
	case '\a':
		return "\\a"
	case '.', '$', '^', '{', '[', '(', '|', ')', '*', '+', '?', '\\':
		return "\\" + string(r)
	default:
		return string(r)
	}
}

func escapeSetChar(r rune) string {
	switch r {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case '\r':
		return "\\r"
	case '\f':
		return "\\f"
	case '\v':
		return "\\v"
	case '\a':
		return "\\a"
	case ']', '^', '-', '\\':
		return "\\" + string(r)
	default:
		return string(r)
	}
}

func setBody(chars []rune, nodes []GrammarNode) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(escapeSetChar(c))
	}
	for _, n := range nodes {
		b.WriteString(setFragment(n))
	}
	return b.String()
}

func setFragment(n GrammarNode) string {
	switch v := n.(type) {
	case CharacterRange:
		return fmt.Sprintf("%s-%s", escapeSetChar(v.Lo), escapeSetChar(v.Hi))
	case NegatedCharacterRange:
		return fmt.Sprintf("%s-%s", escapeSetChar(v.Lo), escapeSetChar(v.Hi))
	default:
		return nodeToString(n)
	}
}

func quantifierString(n Repetition) string {
	lazy := ""
	if n.Lazy {
		lazy = "?"
	}
	if n.Max == nil {
		switch n.Min {
		case 0:
			return "*" + lazy
		case 1:
			return "+" + lazy
		default:
			return fmt.Sprintf("{%d,}%s", n.Min, lazy)
		}
	}
	if n.Min == 0 && *n.Max == 1 {
		return "?" + lazy
	}
	if n.Min == *n.Max {
		return fmt.Sprintf("{%d}%s", n.Min, lazy)
	}
	return fmt.Sprintf("{%d,%d}%s", n.Min, *n.Max, lazy)
}
