package reducer

import (
	"tform/internal/appstate"
	"tform/internal/event"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/overlay"
)

// overlayRoots returns the root node of every currently open overlay, outer
// to inner, for tick traversal and node lookups.
func overlayRoots(s *appstate.State) []node.Node {
	entries := s.Overlays.Entries()
	roots := make([]node.Node, 0, len(entries))
	for _, e := range entries {
		roots = append(roots, e.Root)
	}
	return roots
}

// openOverlay pushes root (if non-nil) onto the overlay stack, captures the
// current focus as the restore snapshot, and rebuilds focus into the new
// scope. A nil root silently does nothing, matching spec §4.3's rule that
// an unresolved overlay reference is ignored.
func openOverlay(s *appstate.State, root node.Node) []Effect {
	if root == nil {
		return nil
	}
	meta, _ := root.Overlay()
	snapshot, _ := s.Focus.Current()
	lifecycle := s.Overlays.Push(root, meta.Mode, root.FocusBehavior(), snapshot)
	s.Completion = nil
	s.RebuildFocus()
	s.Focus.FocusFirst()
	effects := lifecycleEffects(root.ID(), lifecycle)
	return append(effects, requestRender())
}

// closeOverlay pops the top overlay and restores focus to its snapshot if
// still valid in the new scope, else to the new scope's first target
// (spec §4.3 AfterClose).
func closeOverlay(s *appstate.State) []Effect {
	entry, lifecycle, ok := s.Overlays.Pop()
	if !ok {
		return nil
	}
	s.Completion = nil
	s.RebuildFocus()
	if !s.Focus.FocusID(entry.FocusSnapshot) {
		s.Focus.FocusFirst()
	}
	effects := lifecycleEffects(entry.ID, lifecycle)
	return append(effects, requestRender())
}

// lifecycleEffects converts an overlay's push/pop lifecycle sequence into
// EmitWidget effects, in order, so an Observer can see BeforeOpen/Opened or
// BeforeClose/Closed/AfterClose as they occur (spec §8 scenario 3).
func lifecycleEffects(id nodeid.ID, phases []overlay.Lifecycle) []Effect {
	effects := make([]Effect, len(phases))
	for i, phase := range phases {
		effects[i] = emitWidget(event.WidgetEvent{
			Kind:   event.EventOverlayLifecycle,
			Source: id,
			Name:   phase.String(),
		})
	}
	return effects
}

// findOverlay resolves an OpenOverlay(id) command against the active step's
// declared overlays.
func findOverlay(s *appstate.State, id nodeid.ID) node.Node {
	step := s.Flow.ActiveStep()
	if step == nil {
		return nil
	}
	n, _ := step.FindOverlay(id)
	return n
}

// findOverlayAtIndex resolves an OpenOverlayAtIndex(i) command.
func findOverlayAtIndex(s *appstate.State, i int) node.Node {
	step := s.Flow.ActiveStep()
	if step == nil {
		return nil
	}
	n, _ := step.OverlayAt(i)
	return n
}

// buildShortcutPicker constructs a fresh fuzzy picker listing the active
// step's declared overlays by id (spec §6's Ctrl+O).
func buildShortcutPicker(s *appstate.State) node.Node {
	step := s.Flow.ActiveStep()
	if step == nil || len(step.Overlays) == 0 {
		return nil
	}
	options := make([]overlay.PickerOption, 0, len(step.Overlays))
	for _, o := range step.Overlays {
		options = append(options, overlay.PickerOption{ID: o.ID(), Label: string(o.ID())})
	}
	return overlay.NewPicker("shortcut-picker", options)
}
