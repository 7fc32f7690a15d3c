// Package overlay implements the OverlayStack (spec §3, §4.3): a LIFO stack
// of lifecycled modal/shared layers with focus snapshot/restore.
package overlay

import (
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/widget"
)

// Lifecycle names the deterministic sequence a push/pop emits (spec §4.3).
type Lifecycle int

const (
	BeforeOpen Lifecycle = iota
	Opened
	BeforeClose
	Closed
	AfterClose
)

func (l Lifecycle) String() string {
	switch l {
	case BeforeOpen:
		return "BeforeOpen"
	case Opened:
		return "Opened"
	case BeforeClose:
		return "BeforeClose"
	case Closed:
		return "Closed"
	case AfterClose:
		return "AfterClose"
	default:
		return "Unknown"
	}
}

// Entry is one pushed overlay layer.
type Entry struct {
	ID            nodeid.ID
	Root          node.Node // the overlay's root Node; its children are the active scope
	Mode          widget.Mode
	FocusBehavior widget.FocusBehavior
	// FocusSnapshot is the focus-target identifier in effect just before
	// this overlay opened, used to restore focus on close.
	FocusSnapshot nodeid.ID
}

// Stack is the LIFO overlay stack. At most one entry is the "top" / active
// overlay at a time (spec §3 invariant).
type Stack struct {
	entries []Entry
}

// New returns an empty Stack.
func New() *Stack { return &Stack{} }

// Empty reports whether the stack has no entries.
func (s *Stack) Empty() bool { return len(s.entries) == 0 }

// Top returns the active (topmost) overlay entry and true, or the zero
// Entry and false if the stack is empty.
func (s *Stack) Top() (Entry, bool) {
	if s.Empty() {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Push adds a new entry, capturing focusSnapshot as its restore point.
// Returns the lifecycle events in order: BeforeOpen, Opened (the caller is
// expected to have already resolved focusSnapshot; Push does not read focus
// state itself, keeping this package dependency-free of the focus engine).
func (s *Stack) Push(root node.Node, mode widget.Mode, fb widget.FocusBehavior, focusSnapshot nodeid.ID) []Lifecycle {
	s.entries = append(s.entries, Entry{ID: root.ID(), Root: root, Mode: mode, FocusBehavior: fb, FocusSnapshot: focusSnapshot})
	return []Lifecycle{BeforeOpen, Opened}
}

// Pop removes the topmost entry and returns it along with the lifecycle
// events in order: BeforeClose, Closed, AfterClose. ok is false if the
// stack was already empty.
func (s *Stack) Pop() (Entry, []Lifecycle, bool) {
	if s.Empty() {
		return Entry{}, nil, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, []Lifecycle{BeforeClose, Closed, AfterClose}, true
}

// Len returns the number of open overlays.
func (s *Stack) Len() int { return len(s.entries) }

// Entries returns every open overlay, bottom to top, for traversal
// (e.g. ticking hidden overlay layers).
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
