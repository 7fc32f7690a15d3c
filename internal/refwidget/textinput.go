// Package refwidget holds the concrete reference widgets built on top of the
// core node/widget contracts (spec §9's "widget catalog extension point"):
// a text field backed by bubbles/textinput and a non-interactive sysinfo
// output backed by gopsutil. Neither is part of the engine core; both are
// ordinary consumers of node.NewInput/node.NewOutput.
package refwidget

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tform/internal/event"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/value"
	"tform/internal/widget"
)

// NewTextInput builds a single-line Input node backed by
// github.com/charmbracelet/bubbles/textinput, reusing that widget's own
// cursor/edit semantics instead of hand-rolling one. The bubbles model
// renders its own cursor glyph, so the node's RenderOutput never claims a
// CursorOffset of its own (spec §4.8 stage 6 still works: a frame with no
// cursor simply yields none, and the topmost frame that does have one wins).
func NewTextInput(id nodeid.ID, placeholder string) *node.Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	in := node.NewInput(id, value.Text(""))
	in.WithKeyHandler(func(n *node.Input, k event.Key) event.InteractionResult {
		msg, ok := toTeaKeyMsg(k)
		if !ok {
			return event.Unhandled
		}
		updated, _ := ti.Update(msg)
		ti = updated
		n.SetBuffer(ti.Value(), ti.Position())
		return event.InteractionResult{
			Handled:         true,
			RenderRequested: true,
			Events: []event.WidgetEvent{
				{Kind: event.EventValueProduced, Source: id, Value: value.Text(ti.Value())},
			},
		}
	})
	in.WithDraw(func(n *node.Input, ctx widget.RenderContext) widget.RenderOutput {
		return widget.RenderOutput{
			Spans:        []style.Span{{Text: ti.View(), Wrap: style.NoWrap, CursorOffset: style.NoCursor}},
			CursorOffset: style.NoCursor,
		}
	})
	return in
}

// toTeaKeyMsg converts an engine Key back into the tea.KeyMsg the bubbles
// component expects. Keys bubbles/textinput has no use for (function keys,
// the engine's own navigation codes it doesn't consume) report ok=false so
// the caller can leave the key unhandled.
func toTeaKeyMsg(k event.Key) (tea.KeyMsg, bool) {
	switch k.Code {
	case event.CodeRune:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{k.Rune}, Alt: k.Mods.Has(event.ModAlt)}, true
	case event.CodeBackspace:
		if k.Mods.Has(event.ModCtrl) {
			return tea.KeyMsg{Type: tea.KeyCtrlH}, true
		}
		return tea.KeyMsg{Type: tea.KeyBackspace}, true
	case event.CodeDelete:
		return tea.KeyMsg{Type: tea.KeyDelete}, true
	case event.CodeLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}, true
	case event.CodeRight:
		return tea.KeyMsg{Type: tea.KeyRight}, true
	case event.CodeHome:
		return tea.KeyMsg{Type: tea.KeyHome}, true
	case event.CodeEnd:
		return tea.KeyMsg{Type: tea.KeyEnd}, true
	}
	return tea.KeyMsg{}, false
}
