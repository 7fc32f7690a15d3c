// Package node implements the Node sum type (spec §3): Input, Component, and
// Output, each implementing the shared widget.Widget contract, with uniform
// traversal and the render-tree/state-tree child visitor distinction a
// hidden overlay's children need (they keep ticking and syncing values while
// invisible).
//
// The sealed Node interface follows the teacher's dsl.Node pattern
// (cmd/devshell/dsl/model.go): an unexported marker method prevents external
// implementations, keeping the variant set closed at the core while still
// allowing a widget catalog to be built as separate, swappable construction
// helpers (spec §9's "widget catalog extension is a separate interface").
package node

import (
	"tform/internal/event"
	"tform/internal/nodeid"
	"tform/internal/validation"
	"tform/internal/value"
	"tform/internal/widget"
)

// Kind identifies which of the three closed variants a Node is.
type Kind int

const (
	KindInput Kind = iota
	KindComponent
	KindOutput
)

// Node is the sealed interface implemented by Input, Component, and Output.
type Node interface {
	widget.Widget
	isNode()
	Kind() Kind

	// RenderChildren returns the children visible to layout: the render
	// tree. For a hidden modal this excludes its children even though they
	// still appear in StateChildren.
	RenderChildren() []Node

	// StateChildren returns every child included in traversal regardless of
	// current visibility — hidden nodes still receive ticks and value sync.
	StateChildren() []Node
}

// VisitRender walks n's render tree in document order, calling fn on n and
// every descendant reachable via RenderChildren.
func VisitRender(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.RenderChildren() {
		VisitRender(c, fn)
	}
}

// VisitState walks n's state tree in document order, calling fn on n and
// every descendant reachable via StateChildren.
func VisitState(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.StateChildren() {
		VisitState(c, fn)
	}
}

// Find searches n's state tree (so it can locate hidden nodes too) for the
// first node with the given id.
func Find(n Node, id nodeid.ID) (Node, bool) {
	var found Node
	var ok bool
	VisitState(n, func(cur Node) {
		if ok {
			return
		}
		if cur.ID() == id {
			found, ok = cur, true
		}
	})
	return found, ok
}

// FindAll searches a forest (e.g. a Step's root nodes) for id.
func FindAll(roots []Node, id nodeid.ID) (Node, bool) {
	for _, r := range roots {
		if n, ok := Find(r, id); ok {
			return n, true
		}
	}
	return nil, false
}

// --- shared plumbing embedded by all three variants ---

type base struct {
	id          nodeid.ID
	val         value.Value
	validators  []validation.Rule
	candidates  widget.CompletionCandidates
	overlayMeta widget.OverlayMeta
	isOverlay   bool
}

func (b *base) ID() nodeid.ID                          { return b.id }
func (b *base) Value() value.Value                     { return b.val }
func (b *base) SetValue(v value.Value)                 { b.val = v }
func (b *base) Validators() []validation.Rule          { return b.validators }
func (b *base) Candidates() widget.CompletionCandidates { return b.candidates }
func (b *base) Overlay() (widget.OverlayMeta, bool)     { return b.overlayMeta, b.isOverlay }

// defaultInteraction is what Tick/HandleKey return when a variant was built
// without a custom handler.
var defaultInteraction = event.Unhandled
