package node

import (
	"tform/internal/event"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/validation"
	"tform/internal/value"
	"tform/internal/widget"
)

// Input is a focusable leaf holding an edit state and a value (spec §3).
// Its FocusBehavior is normally Leaf but is configurable so a text-like
// widget that manages its own internal sub-focus (e.g. a date input with
// three segments) can declare itself a Group instead.
type Input struct {
	base

	focusBehavior widget.FocusBehavior
	buffer        string
	cursor        int // rune index into buffer

	keyHandler  func(*Input, event.Key) event.InteractionResult
	tickHandler func(*Input) event.InteractionResult
	drawFunc    func(*Input, widget.RenderContext) widget.RenderOutput

	// children is almost always empty for Input; it exists because spec §3
	// requires Input to expose the same two child visitors Component does
	// (a completion dropdown or inline sub-editor could, in principle, be
	// modeled as a hidden state-tree-only child).
	children []Node
}

// NewInput constructs an Input with Leaf focus behavior.
func NewInput(id nodeid.ID, initial value.Value) *Input {
	return &Input{
		base:          base{id: id, val: initial},
		focusBehavior: widget.Leaf,
	}
}

func (i *Input) isNode()                         {}
func (i *Input) Kind() Kind                      { return KindInput }
func (i *Input) Focusable() bool                 { return true }
func (i *Input) FocusBehavior() widget.FocusBehavior { return i.focusBehavior }
func (i *Input) SetFocusBehavior(b widget.FocusBehavior) { i.focusBehavior = b }

func (i *Input) RenderChildren() []Node { return i.children }
func (i *Input) StateChildren() []Node  { return i.children }

// SetChildren installs the state-tree-only children an Input-as-Group may
// route sub-focus into.
func (i *Input) SetChildren(children []Node) { i.children = children }

// WithKeyHandler installs the node's key handling logic.
func (i *Input) WithKeyHandler(fn func(*Input, event.Key) event.InteractionResult) *Input {
	i.keyHandler = fn
	return i
}

// WithTickHandler installs the node's tick logic (e.g. a sysinfo refresh).
func (i *Input) WithTickHandler(fn func(*Input) event.InteractionResult) *Input {
	i.tickHandler = fn
	return i
}

// WithDraw installs the node's render function.
func (i *Input) WithDraw(fn func(*Input, widget.RenderContext) widget.RenderOutput) *Input {
	i.drawFunc = fn
	return i
}

// WithValidators installs the node's validator chain.
func (i *Input) WithValidators(rules ...validation.Rule) *Input {
	i.validators = rules
	return i
}

// WithCandidates installs the node's completion-candidate producer.
func (i *Input) WithCandidates(fn widget.CompletionCandidates) *Input {
	i.candidates = fn
	return i
}

func (i *Input) HandleKey(k event.Key) event.InteractionResult {
	if i.keyHandler == nil {
		return defaultInteraction
	}
	return i.keyHandler(i, k)
}

func (i *Input) Tick() event.InteractionResult {
	if i.tickHandler == nil {
		return defaultInteraction
	}
	return i.tickHandler(i)
}

func (i *Input) Draw(ctx widget.RenderContext) widget.RenderOutput {
	if i.drawFunc == nil {
		return widget.RenderOutput{CursorOffset: style.NoCursor}
	}
	return i.drawFunc(i, ctx)
}

// --- widget.TextEditable, for the completion token rule (spec §4.2) ---

func (i *Input) Buffer() string      { return i.buffer }
func (i *Input) CursorIndex() int    { return i.cursor }
func (i *Input) SetBuffer(buf string, cursor int) {
	i.buffer = buf
	i.cursor = cursor
	i.val = value.Text(buf)
}
