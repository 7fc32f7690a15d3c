// Package focus implements the focus target list, Tab/Shift+Tab traversal,
// and the completion session state machine described in spec §4.2.
package focus

import (
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/widget"
)

// Engine holds the precomputed focus-target list over the active scope and
// the active index into it.
type Engine struct {
	targets []nodeid.ID
	active  int
}

// New returns an empty Engine; call Rebuild before use.
func New() *Engine { return &Engine{active: -1} }

// Rebuild walks roots' render tree in document order, collecting every Leaf
// and every Group as a focus target (Containers and Outputs are skipped).
// It is called on scope change, overlay open/close, step advance, and
// explicit rebuild requests (spec §4.2).
func (e *Engine) Rebuild(roots []node.Node) {
	var targets []nodeid.ID
	for _, r := range roots {
		node.VisitRender(r, func(n node.Node) {
			switch n.FocusBehavior() {
			case widget.Leaf, widget.Group:
				targets = append(targets, n.ID())
			}
		})
	}
	e.targets = targets
	if len(e.targets) == 0 {
		e.active = -1
		return
	}
	if e.active < 0 || e.active >= len(e.targets) {
		e.active = 0
	}
}

// Targets returns the current focus-target list, in document order.
func (e *Engine) Targets() []nodeid.ID {
	out := make([]nodeid.ID, len(e.targets))
	copy(out, e.targets)
	return out
}

// Current returns the currently focused target and true, or the zero ID and
// false if there are no targets.
func (e *Engine) Current() (nodeid.ID, bool) {
	if e.active < 0 || e.active >= len(e.targets) {
		return nodeid.Empty, false
	}
	return e.targets[e.active], true
}

// Next advances the active index modulo the target list length (Tab).
func (e *Engine) Next() {
	if len(e.targets) == 0 {
		return
	}
	e.active = (e.active + 1) % len(e.targets)
}

// Prev decrements the active index with wrap (Shift+Tab).
func (e *Engine) Prev() {
	if len(e.targets) == 0 {
		return
	}
	e.active = (e.active - 1 + len(e.targets)) % len(e.targets)
}

// FocusID sets the active index to the target matching id, if present, and
// reports whether it was; a missing id leaves the active index unchanged.
// Used to restore focus from an overlay's snapshot (spec §4.3).
func (e *Engine) FocusID(id nodeid.ID) bool {
	for i, t := range e.targets {
		if t == id {
			e.active = i
			return true
		}
	}
	return false
}

// FocusFirst sets the active index to the first target, if any.
func (e *Engine) FocusFirst() bool {
	if len(e.targets) == 0 {
		e.active = -1
		return false
	}
	e.active = 0
	return true
}
