package appstate

import (
	"testing"

	"tform/internal/binding"
	"tform/internal/flow"
	"tform/internal/node"
	"tform/internal/value"
	"tform/internal/widget"
)

func TestActiveScopeDefaultsToStepRoots(t *testing.T) {
	a := node.NewInput("a", value.None)
	step := &flow.Step{ID: "s", Roots: []node.Node{a}}
	f := flow.New([]*flow.Step{step})
	s := New(f, binding.NewGraph(binding.NewRegistry()))

	scope := s.ActiveScope()
	if len(scope) != 1 || scope[0].ID() != "a" {
		t.Fatalf("expected active scope to be the step's roots, got %v", scope)
	}
	if id, ok := s.Focus.Current(); !ok || id != "a" {
		t.Fatalf("expected initial focus on a, got %q ok=%v", id, ok)
	}
}

func TestActiveScopeUsesOverlayChildrenWhenNonGroup(t *testing.T) {
	inner := node.NewInput("inner", value.None)
	modal := node.NewComponent("modal", inner)
	modal.MarkOverlayRoot(widget.OverlayMeta{Mode: widget.Exclusive})

	step := &flow.Step{ID: "s", Roots: []node.Node{node.NewInput("a", value.None)}}
	f := flow.New([]*flow.Step{step})
	s := New(f, binding.NewGraph(binding.NewRegistry()))

	s.Overlays.Push(modal, widget.Exclusive, widget.Container, "a")
	s.RebuildFocus()

	scope := s.ActiveScope()
	if len(scope) != 1 || scope[0].ID() != "inner" {
		t.Fatalf("expected active scope to be the overlay's children, got %v", scope)
	}
}

func TestActiveScopeSharedOverlayStillExposesStepRoots(t *testing.T) {
	inner := node.NewInput("inner", value.None)
	sidebar := node.NewComponent("sidebar", inner)
	sidebar.MarkOverlayRoot(widget.OverlayMeta{Mode: widget.Shared})

	a := node.NewInput("a", value.None)
	step := &flow.Step{ID: "s", Roots: []node.Node{a}}
	f := flow.New([]*flow.Step{step})
	s := New(f, binding.NewGraph(binding.NewRegistry()))

	s.Overlays.Push(sidebar, widget.Shared, widget.Container, "a")
	s.RebuildFocus()

	scope := s.ActiveScope()
	if len(scope) != 2 || scope[0].ID() != "inner" || scope[1].ID() != "a" {
		t.Fatalf("expected scope to be [inner, a] for a Shared overlay, got %v", scope)
	}

	// Tab from the overlay's own (first-priority) target reaches the step's
	// field (spec §4.3).
	if id, ok := s.Focus.Current(); !ok || id != "inner" {
		t.Fatalf("expected focus to start on the overlay's own target, got %q ok=%v", id, ok)
	}
	s.Focus.Next()
	if id, ok := s.Focus.Current(); !ok || id != "a" {
		t.Fatalf("expected Tab to reach the step's field under a Shared overlay, got %q ok=%v", id, ok)
	}
}

func TestActiveScopeStaysOnStepWhenOverlayIsGroup(t *testing.T) {
	picker := node.NewComponent("picker", node.NewInput("query", value.None))
	picker.SetFocusBehavior(widget.Group)
	picker.MarkOverlayRoot(widget.OverlayMeta{Mode: widget.Exclusive})

	a := node.NewInput("a", value.None)
	step := &flow.Step{ID: "s", Roots: []node.Node{a}}
	f := flow.New([]*flow.Step{step})
	s := New(f, binding.NewGraph(binding.NewRegistry()))

	s.Overlays.Push(picker, widget.Exclusive, widget.Group, "a")
	s.RebuildFocus()

	scope := s.ActiveScope()
	if len(scope) != 1 || scope[0].ID() != "a" {
		t.Fatalf("expected a Group overlay to leave the step as active scope, got %v", scope)
	}
}
