package node

import (
	"testing"

	"tform/internal/nodeid"
	"tform/internal/value"
	"tform/internal/widget"
)

func TestVisitRenderSkipsHiddenChildren(t *testing.T) {
	child := NewInput("child", value.None)
	parent := NewComponent("parent", Node(child))
	parent.SetHidden(true)

	var visited []nodeid.ID
	VisitRender(Node(parent), func(n Node) { visited = append(visited, n.ID()) })
	if len(visited) != 1 || visited[0] != "parent" {
		t.Fatalf("expected RenderChildren to exclude the hidden child, got %v", visited)
	}
}

func TestVisitStateIncludesHiddenChildren(t *testing.T) {
	child := NewInput("child", value.None)
	parent := NewComponent("parent", Node(child))
	parent.SetHidden(true)

	var visited []nodeid.ID
	VisitState(Node(parent), func(n Node) { visited = append(visited, n.ID()) })
	if len(visited) != 2 {
		t.Fatalf("expected StateChildren to still include the hidden child, got %v", visited)
	}
}

func TestFindAllSearchesEveryRoot(t *testing.T) {
	a := NewInput("a", value.None)
	b := NewInput("b", value.None)
	roots := []Node{Node(a), Node(b)}

	n, ok := FindAll(roots, "b")
	if !ok || n.ID() != "b" {
		t.Fatalf("expected to find node b, got %v ok=%v", n, ok)
	}

	if _, ok := FindAll(roots, "missing"); ok {
		t.Fatalf("expected FindAll to report false for an absent id")
	}
}

func TestInputSetBufferUpdatesValue(t *testing.T) {
	in := NewInput("field", value.Text(""))
	in.SetBuffer("hello", 5)

	if in.Buffer() != "hello" || in.CursorIndex() != 5 {
		t.Fatalf("got buffer=%q cursor=%d, want buffer=hello cursor=5", in.Buffer(), in.CursorIndex())
	}
	if got, _ := in.Value().AsText(); got != "hello" {
		t.Fatalf("expected SetBuffer to also update the node's Value, got %q", got)
	}
}

func TestComponentGroupFocusBehaviorIsFocusable(t *testing.T) {
	c := NewComponent("group")
	if c.Focusable() {
		t.Fatalf("expected a fresh Container-behavior Component not to be focusable")
	}
	c.SetFocusBehavior(widget.Group)
	if !c.Focusable() {
		t.Fatalf("expected a Group-behavior Component to be focusable")
	}
}

func TestOutputIsNeverFocusable(t *testing.T) {
	o := NewOutput("out")
	if o.Focusable() {
		t.Fatalf("expected Output to never be focusable")
	}
}
