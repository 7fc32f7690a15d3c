// Package widget defines the shared contract every node in the tree
// implements (spec §3's "every node exposes..."), independent of the
// concrete widget catalog, which is explicitly out of scope for the core.
package widget

import (
	"tform/internal/event"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/validation"
	"tform/internal/value"
)

// FocusBehavior is exactly one of Leaf, Container, or Group per node
// (spec §3).
type FocusBehavior int

const (
	// Leaf: the node is itself a focus target.
	Leaf FocusBehavior = iota
	// Container: focus passes through to children; the container itself is
	// never a target.
	Container
	// Group: the container is a single focus target and routes sub-focus
	// internally; the engine never traverses into its children for Tab
	// navigation.
	Group
)

// RenderContext exposes only theme and stateless helpers to a node's Draw
// method — no business logic, per spec §4.8 stage 1.
type RenderContext struct {
	Theme Theme
	Width int
}

// Theme names the handful of colors/attrs the render pipeline and nodes
// share. The exact palette is an intentional extension point (spec §9 open
// questions); this is the minimal shape the core depends on.
type Theme struct {
	Accent    style.Style
	Muted     style.Style
	ErrorTint style.Style
	Highlight style.Style
}

// DefaultTheme is a reasonable baseline theme using 24-bit colors.
var DefaultTheme = Theme{
	Accent:    style.Style{Foreground: "#7aa2f7"},
	Muted:     style.Style{Foreground: "#565f89"},
	ErrorTint: style.Style{Foreground: "#f7768e", Attrs: style.Bold},
	Highlight: style.Style{Foreground: "#9ece6a", Attrs: style.Bold},
}

// RenderOutput is what a node's Draw produces: spans plus an optional
// cursor offset within them (spec §4.8 stage 1).
type RenderOutput struct {
	Spans        []style.Span
	CursorOffset int // style.NoCursor if this node has no cursor to place
}

// OverlayMeta describes how a node behaves when it is the root of an overlay
// layer (spec §3's "overlay metadata (placement, mode, focus behavior)").
// Nodes that are never opened as overlays leave this at its zero value.
type OverlayMeta struct {
	Placement Placement
	Mode      Mode
}

// Placement is an extension point for where an overlay's region is anchored
// relative to the base step region (spec §9 open question: exact visual
// styling is a theme concern). The core only needs Anchored to exist so the
// region tracker has somewhere to put every overlay.
type Placement int

const (
	PlacementAnchored Placement = iota
)

// Mode is Exclusive or Shared, per spec §4.3.
type Mode int

const (
	Exclusive Mode = iota
	Shared
)

// CompletionCandidates is a node's completion-candidate producer: given the
// current token at the cursor, it returns matching candidates (possibly
// none). A nil CompletionCandidates is equivalent to one that always
// returns nothing.
type CompletionCandidates func(token string) []string

// TextEditable is an optional capability a Widget may additionally
// implement: an Input with a plain text edit buffer and cursor. The
// completion engine (spec §4.2) type-asserts for this to apply the token
// rule; widgets without a text buffer (checkboxes, selects) simply don't
// implement it and never produce a completion session.
type TextEditable interface {
	Buffer() string
	CursorIndex() int
	SetBuffer(buf string, cursor int)
}

// Widget is the capability surface every Node implements (spec §3). Not
// every method is meaningful for every variant (an Output's KeyHandler is
// never called, a Container's Value is never read) but the surface is
// uniform so the engine can treat any Node polymorphically.
type Widget interface {
	ID() nodeid.ID
	Focusable() bool
	FocusBehavior() FocusBehavior

	Value() value.Value
	SetValue(value.Value)

	HandleKey(k event.Key) event.InteractionResult
	Tick() event.InteractionResult

	Draw(ctx RenderContext) RenderOutput

	Validators() []validation.Rule
	Candidates() CompletionCandidates

	Overlay() (OverlayMeta, bool)
}
