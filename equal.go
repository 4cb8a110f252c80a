package gramtree

import "github.com/google/go-cmp/cmp"

// captureTableComparer teaches go-cmp how to compare CaptureTable's
// unexported map without exporting it: two tables are equal iff they
// hold the same key/value pairs, order irrelevant.
var captureTableComparer = cmp.Comparer(func(a, b CaptureTable) bool {
	return captureEntriesEqual(a.entries, b.entries)
})

var captureTablePtrComparer = cmp.Comparer(func(a, b *CaptureTable) bool {
	if a == nil || b == nil {
		return a == b
	}
	return captureEntriesEqual(a.entries, b.entries)
})

func captureEntriesEqual(a, b map[string]Capture) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// GrammarTreeStructuralComparer decides structural equality between
// grammar trees (and, incidentally, capture tables): same variant,
// pairwise-equal attributes, order-sensitive for sequences,
// alternations, and repetition bounds. It is a thin wrapper over
// cmp.Equal/cmp.Diff — go-cmp already walks the node interface's
// dynamic type correctly, so the only custom behavior needed is
// teaching it to look inside CaptureTable's unexported map.
type GrammarTreeStructuralComparer struct{}

// Equal reports whether a and b are structurally equal grammar trees.
func (GrammarTreeStructuralComparer) Equal(a, b GrammarNode) bool {
	return cmp.Equal(a, b, captureTableComparer, captureTablePtrComparer)
}

// Diff returns a human-readable diff of a and b, empty if they are
// structurally equal.
func (GrammarTreeStructuralComparer) Diff(a, b GrammarNode) string {
	return cmp.Diff(a, b, captureTableComparer, captureTablePtrComparer)
}

// EqualCaptures reports whether two capture tables hold the same
// entries.
func EqualCaptures(a, b *CaptureTable) bool {
	return cmp.Equal(a, b, captureTablePtrComparer)
}
