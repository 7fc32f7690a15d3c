// Package appstate defines the single State struct that owns every piece of
// process-wide state the engine needs (spec §9's "Global state" design
// note): the Flow, the ValueStore, the ValidationState, the OverlayStack,
// the Scheduler, and the FocusState.
package appstate

import (
	"tform/internal/binding"
	"tform/internal/flow"
	"tform/internal/focus"
	"tform/internal/node"
	"tform/internal/overlay"
	"tform/internal/scheduler"
	"tform/internal/validation"
	"tform/internal/valuestore"
	"tform/internal/widget"
)

// State is the one process-wide struct constructed at startup and dropped
// on exit (spec §9).
type State struct {
	Flow       *flow.Flow
	Store      *valuestore.Store
	Validation *validation.State
	Overlays   *overlay.Stack
	Scheduler  *scheduler.Scheduler
	Focus      *focus.Engine
	Bindings   *binding.Graph
	Completion *focus.Session // nil when no completion session is active

	ShouldExit bool
	Dirty      bool // set by RequestRender, cleared by the runtime after a render
}

// New constructs a State over the given flow and binding graph, with an
// otherwise-empty ValueStore/Validation/Overlay/Scheduler/Focus, and
// computes the initial focus target list for the flow's active step.
func New(f *flow.Flow, bindings *binding.Graph) *State {
	s := &State{
		Flow:       f,
		Store:      valuestore.New(),
		Validation: validation.NewState(),
		Overlays:   overlay.New(),
		Scheduler:  scheduler.New(),
		Focus:      focus.New(),
		Bindings:   bindings,
	}
	s.RebuildFocus()
	return s
}

// ActiveScope returns the node forest that should receive input routing
// right now (spec §4.1's routing contract): the current step's roots if the
// overlay stack is empty; for a non-Group top overlay, that overlay's
// render children; for a Group-behavior top overlay, the step's own roots
// (the Group routes its own internal focus, so the engine still treats the
// step as the scope for the purpose of the focus-target list). A Shared-mode
// overlay (spec §4.3) takes priority on its own keys but still has to let
// Tab/Submit reach the step, so its scope is the overlay's children followed
// by the step's own roots rather than the overlay alone.
func (s *State) ActiveScope() []node.Node {
	step := s.Flow.ActiveStep()
	var stepRoots []node.Node
	if step != nil {
		stepRoots = step.Roots
	}

	top, ok := s.Overlays.Top()
	if !ok {
		return stepRoots
	}
	if top.FocusBehavior == widget.Group {
		return stepRoots
	}
	if top.Root == nil {
		return nil
	}
	overlayScope := top.Root.RenderChildren()
	if top.Mode == widget.Shared {
		scope := make([]node.Node, 0, len(overlayScope)+len(stepRoots))
		scope = append(scope, overlayScope...)
		scope = append(scope, stepRoots...)
		return scope
	}
	return overlayScope
}

// RebuildFocus recomputes the focus target list for the current active
// scope (spec §4.2: rebuilt on scope change, overlay open/close, step
// advance, and explicit rebuild requests).
func (s *State) RebuildFocus() {
	s.Focus.Rebuild(s.ActiveScope())
}
