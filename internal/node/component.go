package node

import (
	"tform/internal/event"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/validation"
	"tform/internal/widget"
)

// Component is a recursive container that owns an ordered sequence of child
// Nodes and may itself be focusable depending on its FocusBehavior
// (spec §3). Container: focus passes through to children. Group: the
// component is a single focus target and routes sub-focus internally — the
// focus engine never descends into a Group's children for Tab traversal.
type Component struct {
	base

	focusBehavior widget.FocusBehavior
	children      []Node
	hidden        bool // when true, RenderChildren excludes children

	keyHandler  func(*Component, event.Key) event.InteractionResult
	tickHandler func(*Component) event.InteractionResult
	drawFunc    func(*Component, widget.RenderContext) widget.RenderOutput
}

// NewComponent constructs a Component with Container focus behavior (pure
// grouping, not itself a focus target).
func NewComponent(id nodeid.ID, children ...Node) *Component {
	return &Component{
		base:          base{id: id},
		focusBehavior: widget.Container,
		children:      children,
	}
}

func (c *Component) isNode()                             {}
func (c *Component) Kind() Kind                           { return KindComponent }
func (c *Component) Focusable() bool                      { return c.focusBehavior == widget.Group }
func (c *Component) FocusBehavior() widget.FocusBehavior  { return c.focusBehavior }
func (c *Component) SetFocusBehavior(b widget.FocusBehavior) { c.focusBehavior = b }

// SetHidden controls whether this component's children are part of the
// render tree. Its children remain part of the state tree regardless (they
// keep ticking and syncing values), matching spec §3's note that "a hidden
// modal's children still receive ticks and value sync."
func (c *Component) SetHidden(hidden bool) { c.hidden = hidden }
func (c *Component) Hidden() bool          { return c.hidden }

func (c *Component) RenderChildren() []Node {
	if c.hidden {
		return nil
	}
	return c.children
}

func (c *Component) StateChildren() []Node { return c.children }

func (c *Component) SetChildren(children []Node) { c.children = children }

// WithKeyHandler installs the node's own key handling, used when
// FocusBehavior is Group to implement the internal routing the engine
// defers to (spec §4.2: "If the focused target is a Group, Tab is first
// offered to the Group's own routing; only if the Group declines does the
// engine advance to the next target").
func (c *Component) WithKeyHandler(fn func(*Component, event.Key) event.InteractionResult) *Component {
	c.keyHandler = fn
	return c
}

func (c *Component) WithTickHandler(fn func(*Component) event.InteractionResult) *Component {
	c.tickHandler = fn
	return c
}

func (c *Component) WithDraw(fn func(*Component, widget.RenderContext) widget.RenderOutput) *Component {
	c.drawFunc = fn
	return c
}

func (c *Component) WithValidators(rules ...validation.Rule) *Component {
	c.validators = rules
	return c
}

func (c *Component) WithCandidates(fn widget.CompletionCandidates) *Component {
	c.candidates = fn
	return c
}

// MarkOverlayRoot tags this component as the root node of an overlay entry,
// recording its placement/mode metadata.
func (c *Component) MarkOverlayRoot(meta widget.OverlayMeta) *Component {
	c.overlayMeta = meta
	c.isOverlay = true
	return c
}

func (c *Component) HandleKey(k event.Key) event.InteractionResult {
	if c.keyHandler == nil {
		return defaultInteraction
	}
	return c.keyHandler(c, k)
}

func (c *Component) Tick() event.InteractionResult {
	if c.tickHandler == nil {
		return defaultInteraction
	}
	return c.tickHandler(c)
}

func (c *Component) Draw(ctx widget.RenderContext) widget.RenderOutput {
	if c.drawFunc == nil {
		return widget.RenderOutput{CursorOffset: style.NoCursor}
	}
	return c.drawFunc(c, ctx)
}
