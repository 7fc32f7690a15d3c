package runtime

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tform/internal/appstate"
	"tform/internal/binding"
	"tform/internal/flow"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/value"
	"tform/internal/widget"
)

func newField(id nodeid.ID) *node.Input {
	in := node.NewInput(id, value.Text(""))
	return in
}

func TestUpdateCtrlCRequestsExit(t *testing.T) {
	step := &flow.Step{ID: "A", Roots: []node.Node{newField("a")}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	m := New(s, widget.DefaultTheme, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !s.ShouldExit {
		t.Fatalf("expected ShouldExit to be set after Ctrl+C")
	}
	if cmd == nil {
		t.Fatalf("expected a tea.Quit command")
	}
}

func TestUpdateWindowSizeResizesViewport(t *testing.T) {
	step := &flow.Step{ID: "A", Roots: []node.Node{newField("a")}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	m := New(s, widget.DefaultTheme, nil)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.width != 100 || m.height != 40 {
		t.Fatalf("expected viewport 100x40, got %dx%d", m.width, m.height)
	}
}

func TestViewDoesNotPanicOnEmptyStep(t *testing.T) {
	step := &flow.Step{ID: "A", Roots: []node.Node{newField("a")}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	m := New(s, widget.DefaultTheme, nil)
	m.width, m.height = 40, 10

	_ = m.View()
}
