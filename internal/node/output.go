package node

import (
	"tform/internal/event"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/value"
	"tform/internal/widget"
)

// Output is a non-interactive render-only node (spec §3). It is never a
// focus target, never receives key events, and carries no validators.
type Output struct {
	base

	tickHandler func(*Output) event.InteractionResult
	drawFunc    func(*Output, widget.RenderContext) widget.RenderOutput
}

// NewOutput constructs an Output node.
func NewOutput(id nodeid.ID) *Output {
	return &Output{base: base{id: id, val: value.None}}
}

func (o *Output) isNode()                            {}
func (o *Output) Kind() Kind                         { return KindOutput }
func (o *Output) Focusable() bool                    { return false }
func (o *Output) FocusBehavior() widget.FocusBehavior { return widget.Container }

func (o *Output) RenderChildren() []Node { return nil }
func (o *Output) StateChildren() []Node  { return nil }

func (o *Output) WithTickHandler(fn func(*Output) event.InteractionResult) *Output {
	o.tickHandler = fn
	return o
}

func (o *Output) WithDraw(fn func(*Output, widget.RenderContext) widget.RenderOutput) *Output {
	o.drawFunc = fn
	return o
}

// HandleKey is a no-op: Output nodes are never focus targets and never
// receive key events through normal routing.
func (o *Output) HandleKey(event.Key) event.InteractionResult { return defaultInteraction }

func (o *Output) Tick() event.InteractionResult {
	if o.tickHandler == nil {
		return defaultInteraction
	}
	return o.tickHandler(o)
}

func (o *Output) Draw(ctx widget.RenderContext) widget.RenderOutput {
	if o.drawFunc == nil {
		return widget.RenderOutput{CursorOffset: style.NoCursor}
	}
	return o.drawFunc(o, ctx)
}
