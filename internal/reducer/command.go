// Package reducer implements the sole writer of domain state (spec §4.1):
// reduce(state, command) -> []Effect. It is pure with respect to I/O: no
// terminal reads, no file or network access, no spawned work — every
// deferral is expressed as a returned Effect for the runtime to execute.
package reducer

import (
	"time"

	"tform/internal/event"
	"tform/internal/nodeid"
	"tform/internal/scheduler"
)

// CommandKind is the closed set of commands the reducer accepts (spec §4.1).
type CommandKind int

const (
	CmdExit CommandKind = iota
	CmdSubmit
	CmdNextFocus
	CmdPrevFocus
	CmdInputKey
	CmdTextAction
	CmdOpenOverlay
	CmdOpenOverlayAtIndex
	CmdOpenOverlayShortcut
	CmdCloseOverlay
	CmdTick
)

// TextActionKind is the closed set of TextAction payloads.
type TextActionKind int

const (
	WordDeleteBackward TextActionKind = iota
	WordDeleteForward
)

// Command is a tagged union over CommandKind; only the fields relevant to
// Kind are meaningful.
type Command struct {
	Kind CommandKind

	Key          event.Key      // CmdInputKey
	TextAction   TextActionKind // CmdTextAction
	OverlayID    nodeid.ID      // CmdOpenOverlay
	OverlayIndex int            // CmdOpenOverlayAtIndex
}

// EffectKind is the closed set of effects the reducer can return (spec
// §4.1).
type EffectKind int

const (
	EffEmitWidget EffectKind = iota
	EffSchedule
	EffRequestRender
	EffCancelScheduled
)

// ScheduleKind names which scheduler operation an EffSchedule effect wants
// executed (spec §4.5).
type ScheduleKind int

const (
	SchedEmitNow ScheduleKind = iota
	SchedEmitAfter
	SchedDebounce
	SchedThrottle
)

// ScheduleOp is the payload of an EffSchedule effect.
type ScheduleOp struct {
	Kind  ScheduleKind
	Key   string // scheduler key; "" for EmitNow/EmitAfter
	Event scheduler.Event
	Delay time.Duration
}

// Effect is a value the reducer returns representing deferred work; the
// runtime loop executes each one against the scheduler or the widget-event
// handler (spec §4.9).
type Effect struct {
	Kind EffectKind

	WidgetEvent event.WidgetEvent // EffEmitWidget
	Schedule    ScheduleOp        // EffSchedule
	CancelKey   string            // EffCancelScheduled
}

func emitWidget(e event.WidgetEvent) Effect { return Effect{Kind: EffEmitWidget, WidgetEvent: e} }
func requestRender() Effect                 { return Effect{Kind: EffRequestRender} }
func cancelScheduled(key string) Effect     { return Effect{Kind: EffCancelScheduled, CancelKey: key} }

func debounce(_ time.Time, key string, ev scheduler.Event, delay time.Duration) Effect {
	return Effect{Kind: EffSchedule, Schedule: ScheduleOp{Kind: SchedDebounce, Key: key, Event: ev, Delay: delay}}
}

// ClearErrorEvent is the scheduler payload for the 2s inline-error decay
// timer (spec §4.1, §4.6).
type ClearErrorEvent struct {
	NodeID nodeid.ID
}

// ErrorDebounceKeyFor returns the scheduler key used to debounce a node's
// inline error clear timer.
func ErrorDebounceKeyFor(id nodeid.ID) string { return "clear-error:" + string(id) }

// DefaultErrorDecay is the spec's default inline-error visibility duration.
const DefaultErrorDecay = 2 * time.Second
