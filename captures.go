package gramtree

import (
	"fmt"
	"strings"
)

// Capture records the span text captured by one NumberedCapture or
// NamedCapture node.
type Capture struct {
	Start  int
	Length int
}

// End returns the exclusive end offset of the capture.
func (c Capture) End() int {
	return c.Start + c.Length
}

// numberedCaptureKey returns the reserved internal key under which a
// NumberedCapture's position is stored in a CaptureTable, keeping the
// numbered and named capture namespaces from colliding: a NamedCapture
// named "1" occupies a different key than NumberedCapture position 1.
func numberedCaptureKey(position int) string {
	return fmt.Sprintf("⟨%d⟩", position)
}

// CaptureTable holds the captures recorded so far during a match attempt.
// It implements the interpreter's tentative-scope backtracking discipline:
// a branch clones the table before trying an alternative, and either
// merges the clone back on success or discards it on failure.
type CaptureTable struct {
	entries map[string]Capture
}

// NewCaptureTable returns an empty capture table.
func NewCaptureTable() *CaptureTable {
	return &CaptureTable{entries: make(map[string]Capture)}
}

// Clone returns an independent copy of the table, safe to mutate without
// affecting the receiver.
func (t *CaptureTable) Clone() *CaptureTable {
	out := NewCaptureTable()
	for k, v := range t.entries {
		out.entries[k] = v
	}
	return out
}

// Merge copies every entry of other into t, overwriting entries with the
// same key. Used to commit a successful branch's captures back into its
// parent scope.
func (t *CaptureTable) Merge(other *CaptureTable) {
	for k, v := range other.entries {
		t.entries[k] = v
	}
}

func (t *CaptureTable) setNumbered(position int, c Capture) {
	t.entries[numberedCaptureKey(position)] = c
}

func (t *CaptureTable) setNamed(name string, c Capture) {
	t.entries[name] = c
}

// Numbered looks up the capture recorded under a NumberedCapture's
// position, reporting false if that capture has not fired yet.
func (t *CaptureTable) Numbered(position int) (Capture, bool) {
	c, ok := t.entries[numberedCaptureKey(position)]
	return c, ok
}

// Named looks up the capture recorded under a NamedCapture's name,
// reporting false if that capture has not fired yet.
func (t *CaptureTable) Named(name string) (Capture, bool) {
	c, ok := t.entries[name]
	return c, ok
}

// Names returns the names of every NamedCapture recorded so far.
func (t *CaptureTable) Names() []string {
	var names []string
	for k := range t.entries {
		if !strings.HasPrefix(k, "⟨") {
			names = append(names, k)
		}
	}
	return names
}
