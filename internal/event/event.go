// Package event defines the small vocabulary shared across the engine for
// terminal input, key dispatch results, and widget-to-engine notifications:
// Key, TerminalEvent, InteractionResult, and WidgetEvent (spec §6, §4.1).
package event

import (
	"tform/internal/nodeid"
	"tform/internal/value"
)

// Modifier is a bit in the modifier bitset carried by a Key.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

func (m Modifier) Has(want Modifier) bool { return m&want == want }

// Code names a key: either a printable rune (CodeRune) or one of the named
// keys spec §6 lists.
type Code int

const (
	CodeRune Code = iota
	CodeEnter
	CodeEsc
	CodeTab
	CodeBackTab
	CodeBackspace
	CodeDelete
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodeFunction // Rune carries the function number (F1 = 1, ...)
)

// Key is one terminal key press: a code, the rune payload for CodeRune and
// CodeFunction, and the active modifier bitset.
type Key struct {
	Code  Code
	Rune  rune
	Mods  Modifier
}

// TerminalEvent is the closed set of inputs the runtime loop consumes from
// the terminal backend (spec §6): a key press, a resize, or a Tick.
type TerminalEvent struct {
	Key    *Key // nil unless this event is a key press
	Resize *ResizeInfo
	Tick   bool
}

// ResizeInfo carries the new terminal dimensions.
type ResizeInfo struct {
	Width, Height int
}

// InteractionResult is what a node's key handler returns: no ambient mutable
// context, just an explicit structured outcome (spec §9's "Hidden mutation
// through an event context" redesign note).
type InteractionResult struct {
	Handled         bool
	RenderRequested bool
	Events          []WidgetEvent
}

// Unhandled is the zero-value "I did nothing with this key" result.
var Unhandled = InteractionResult{}

// Handle returns a minimal "I consumed this key" result.
func Handle() InteractionResult { return InteractionResult{Handled: true} }

// WidgetEventKind names the closed set of notifications a node can emit.
type WidgetEventKind int

const (
	EventValueProduced WidgetEventKind = iota
	EventSubmitRequested
	// EventOverlayLifecycle reports one phase (BeforeOpen, Opened,
	// BeforeClose, Closed, or AfterClose) of an overlay push/pop (spec §4.3,
	// §8 scenario 3). Source is the overlay's root node id; Name carries the
	// phase's name so an Observer can see the exact sequence without this
	// package depending on the overlay package.
	EventOverlayLifecycle
	EventCustom
)

// WidgetEvent is a notification emitted by a node's key/tick handler and
// drained FIFO by the runtime before the next terminal event is polled
// (spec §5's ordering guarantee). ValueProduced{source, port, value} is the
// trigger the binding graph (§4.4) reacts to.
type WidgetEvent struct {
	Kind   WidgetEventKind
	Source nodeid.ID
	Port   nodeid.Port
	Value  value.Value // meaningful for EventValueProduced
	Name   string      // identifies a custom event, or an overlay lifecycle phase
}
