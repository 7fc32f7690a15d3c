package overlay

import (
	"testing"

	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/widget"
)

func TestPushPopLifecycleOrder(t *testing.T) {
	root := node.NewComponent("modal")
	stack := New()

	events := stack.Push(root, widget.Exclusive, widget.Container, "origin")
	want := []Lifecycle{BeforeOpen, Opened}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, events)
		}
	}

	top, ok := stack.Top()
	if !ok || top.ID != nodeid.ID("modal") {
		t.Fatalf("expected top entry modal, got %+v ok=%v", top, ok)
	}

	popped, closeEvents, ok := stack.Pop()
	if !ok {
		t.Fatalf("expected Pop to succeed")
	}
	if popped.FocusSnapshot != "origin" {
		t.Fatalf("expected focus snapshot origin, got %q", popped.FocusSnapshot)
	}
	wantClose := []Lifecycle{BeforeClose, Closed, AfterClose}
	if len(closeEvents) != len(wantClose) {
		t.Fatalf("expected %v, got %v", wantClose, closeEvents)
	}
	for i := range wantClose {
		if closeEvents[i] != wantClose[i] {
			t.Fatalf("expected %v, got %v", wantClose, closeEvents)
		}
	}
	if !stack.Empty() {
		t.Fatalf("expected stack empty after pop")
	}
}

func TestPopOnEmptyStack(t *testing.T) {
	stack := New()
	if _, _, ok := stack.Pop(); ok {
		t.Fatalf("expected Pop on empty stack to fail")
	}
}
