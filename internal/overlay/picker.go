package overlay

import (
	"github.com/sahilm/fuzzy"

	"tform/internal/event"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/value"
	"tform/internal/widget"
)

// PickerOption is one selectable entry in a shortcut overlay picker
// (spec §4.3's Ctrl+O, "OpenOverlayShortcut").
type PickerOption struct {
	ID    nodeid.ID
	Label string
}

// SelectEventName is the custom WidgetEvent.Name a picker emits when the
// user commits a selection.
const SelectEventName = "overlay-picker-select"

type pickerState struct {
	options  []PickerOption
	filtered []PickerOption
	selected int
}

func (p *pickerState) refilter(query string) {
	if query == "" {
		p.filtered = p.options
		p.selected = 0
		return
	}
	labels := make([]string, len(p.options))
	for i, o := range p.options {
		labels[i] = o.Label
	}
	matches := fuzzy.Find(query, labels)
	filtered := make([]PickerOption, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, p.options[m.Index])
	}
	p.filtered = filtered
	p.selected = 0
}

func (p *pickerState) move(delta int) {
	if len(p.filtered) == 0 {
		return
	}
	p.selected = ((p.selected+delta)%len(p.filtered) + len(p.filtered)) % len(p.filtered)
}

func (p *pickerState) current() (PickerOption, bool) {
	if p.selected < 0 || p.selected >= len(p.filtered) {
		return PickerOption{}, false
	}
	return p.filtered[p.selected], true
}

// NewPicker builds a fuzzy-searchable overlay picker (spec §9 extension
// point: a concrete widget exercising the shortcut surface), grounded on
// sahilm/fuzzy for ranking. Its root is a Group-behavior Component so the
// query Input and result list act as one focus target, routing Up/Down/
// Enter/typing internally.
func NewPicker(id nodeid.ID, options []PickerOption) *node.Component {
	state := &pickerState{options: options, filtered: options}

	query := node.NewInput(nodeid.ID(string(id)+"-query"), value.Text(""))
	results := node.NewOutput(nodeid.ID(string(id) + "-results"))

	query.WithKeyHandler(func(in *node.Input, k event.Key) event.InteractionResult {
		switch {
		case k.Code == event.CodeDown:
			state.move(1)
			return event.InteractionResult{Handled: true, RenderRequested: true}
		case k.Code == event.CodeUp:
			state.move(-1)
			return event.InteractionResult{Handled: true, RenderRequested: true}
		case k.Code == event.CodeEnter:
			opt, ok := state.current()
			if !ok {
				return event.Handle()
			}
			return event.InteractionResult{
				Handled: true,
				Events: []event.WidgetEvent{{
					Kind:   event.EventCustom,
					Source: id,
					Name:   SelectEventName,
					Value:  value.Text(string(opt.ID)),
				}},
			}
		case k.Code == event.CodeBackspace:
			runes := []rune(in.Buffer())
			if len(runes) > 0 {
				runes = runes[:len(runes)-1]
			}
			in.SetBuffer(string(runes), len(runes))
			state.refilter(string(runes))
			return event.InteractionResult{Handled: true, RenderRequested: true}
		case k.Code == event.CodeRune:
			newBuf := in.Buffer() + string(k.Rune)
			in.SetBuffer(newBuf, len([]rune(newBuf)))
			state.refilter(newBuf)
			return event.InteractionResult{Handled: true, RenderRequested: true}
		}
		return event.Unhandled
	})

	results.WithDraw(func(o *node.Output, ctx widget.RenderContext) widget.RenderOutput {
		spans := make([]style.Span, 0, len(state.filtered))
		for i, opt := range state.filtered {
			st := ctx.Theme.Muted
			if i == state.selected {
				st = ctx.Theme.Highlight
			}
			spans = append(spans, style.Span{
				Text: opt.Label + "\n", Style: st, Wrap: style.Wrap, CursorOffset: style.NoCursor,
			})
		}
		return widget.RenderOutput{Spans: spans, CursorOffset: style.NoCursor}
	})

	root := node.NewComponent(id, query, results)
	root.WithKeyHandler(func(_ *node.Component, k event.Key) event.InteractionResult {
		return query.HandleKey(k)
	})
	root.SetFocusBehavior(widget.Group)
	root.MarkOverlayRoot(widget.OverlayMeta{Placement: widget.PlacementAnchored, Mode: widget.Exclusive})
	return root
}
