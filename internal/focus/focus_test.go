package focus

import (
	"testing"

	"tform/internal/node"
	"tform/internal/value"
	"tform/internal/widget"
)

func TestRebuildCollectsLeavesAndGroupsOnly(t *testing.T) {
	leaf1 := node.NewInput("leaf1", value.None)
	leaf2 := node.NewInput("leaf2", value.None)
	group := node.NewComponent("group")
	group.SetFocusBehavior(widget.Group)
	container := node.NewComponent("container", node.Node(leaf2), node.Node(group))

	e := New()
	e.Rebuild([]node.Node{node.Node(leaf1), node.Node(container)})

	targets := e.Targets()
	want := []string{"leaf1", "leaf2", "group"}
	if len(targets) != len(want) {
		t.Fatalf("targets = %v, want %v", targets, want)
	}
	for i, id := range targets {
		if string(id) != want[i] {
			t.Fatalf("targets = %v, want %v", targets, want)
		}
	}
}

func TestNextAndPrevWrapAround(t *testing.T) {
	e := New()
	e.Rebuild([]node.Node{
		node.Node(node.NewInput("a", value.None)),
		node.Node(node.NewInput("b", value.None)),
	})

	cur, _ := e.Current()
	if cur != "a" {
		t.Fatalf("expected initial focus a, got %s", cur)
	}
	e.Next()
	if cur, _ = e.Current(); cur != "b" {
		t.Fatalf("expected focus b after Next, got %s", cur)
	}
	e.Next()
	if cur, _ = e.Current(); cur != "a" {
		t.Fatalf("expected Next to wrap to a, got %s", cur)
	}
	e.Prev()
	if cur, _ = e.Current(); cur != "b" {
		t.Fatalf("expected Prev to wrap to b, got %s", cur)
	}
}

func TestFocusIDReportsMissingTarget(t *testing.T) {
	e := New()
	e.Rebuild([]node.Node{node.Node(node.NewInput("a", value.None))})

	if e.FocusID("nonexistent") {
		t.Fatalf("expected FocusID to fail for an id outside the target list")
	}
	if !e.FocusID("a") {
		t.Fatalf("expected FocusID to succeed for a known id")
	}
}

func TestCurrentIsEmptyWithNoTargets(t *testing.T) {
	e := New()
	e.Rebuild(nil)
	if _, ok := e.Current(); ok {
		t.Fatalf("expected no current target with an empty scope")
	}
}
