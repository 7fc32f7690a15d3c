// Package flow holds the Step/Flow data model (spec §3): an ordered
// sequence of steps, each owning root nodes and step-level validators, with
// the enclosing Flow tracking which step is active.
package flow

import (
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/validation"
	"tform/internal/value"
)

// Status is a Step's lifecycle state, owned by the enclosing Flow.
type Status int

const (
	Pending Status = iota
	Active
	Done
	Cancelled
)

// StepValidator is a step-level rule evaluated over the step's computed
// value map at Submit time (spec §4.6).
type StepValidator func(values map[nodeid.ID]value.Value) []validation.Issue

// Step contains an identifier, a prompt, an optional hint, its root nodes,
// and step-level validators.
type Step struct {
	ID         string
	Prompt     string
	Hint       string
	Roots      []node.Node
	Validators []StepValidator
	// Overlays lists this step's declared overlay root nodes, in
	// declaration order. OpenOverlayAtIndex and the Ctrl/Alt+1..9 shortcuts
	// (spec §4.3) index into this slice; OpenOverlay(id) searches it by ID.
	Overlays []node.Node
}

// FindOverlay returns the declared overlay with the given id.
func (s *Step) FindOverlay(id nodeid.ID) (node.Node, bool) {
	for _, o := range s.Overlays {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

// OverlayAt returns the nth declared overlay (0-based), or false if the
// step has fewer overlays than that (spec §4.3: "silently ignored").
func (s *Step) OverlayAt(i int) (node.Node, bool) {
	if i < 0 || i >= len(s.Overlays) {
		return nil, false
	}
	return s.Overlays[i], true
}

// Flow holds an ordered sequence of Steps, the current index, and the
// status vector. Invariant: exactly one Step has status Active unless the
// flow has terminated (every step Done or Cancelled).
type Flow struct {
	Steps   []*Step
	Current int
	status  []Status
}

// New builds a Flow over steps, activating the first one.
func New(steps []*Step) *Flow {
	f := &Flow{Steps: steps, status: make([]Status, len(steps))}
	for i := range f.status {
		f.status[i] = Pending
	}
	if len(steps) > 0 {
		f.status[0] = Active
	}
	return f
}

// StatusOf returns the status of the step at index i.
func (f *Flow) StatusOf(i int) Status {
	if i < 0 || i >= len(f.status) {
		return Cancelled
	}
	return f.status[i]
}

// ActiveStep returns the current Step, or nil if the flow has terminated.
func (f *Flow) ActiveStep() *Step {
	if f.Current < 0 || f.Current >= len(f.Steps) {
		return nil
	}
	return f.Steps[f.Current]
}

// Terminated reports whether every step is Done or Cancelled.
func (f *Flow) Terminated() bool {
	for _, s := range f.status {
		if s != Done && s != Cancelled {
			return false
		}
	}
	return true
}

// Advance marks the current step Done and activates the next Pending step,
// if any. It and Cancel are the only places the "exactly one Active"
// invariant is enforced across a transition.
func (f *Flow) Advance() {
	if f.Current < 0 || f.Current >= len(f.Steps) {
		return
	}
	f.status[f.Current] = Done
	for i := f.Current + 1; i < len(f.Steps); i++ {
		if f.status[i] == Pending {
			f.Current = i
			f.status[i] = Active
			return
		}
	}
	f.Current = len(f.Steps) // terminated: no active step
}

// Cancel marks the current step Cancelled and activates the next Pending
// step the same way Advance does.
func (f *Flow) Cancel() {
	if f.Current < 0 || f.Current >= len(f.Steps) {
		return
	}
	f.status[f.Current] = Cancelled
	for i := f.Current + 1; i < len(f.Steps); i++ {
		if f.status[i] == Pending {
			f.Current = i
			f.status[i] = Active
			return
		}
	}
	f.Current = len(f.Steps)
}
