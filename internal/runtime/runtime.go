// Package runtime wires the reducer, scheduler, and render pipeline into a
// bubbletea program (spec §4.9's runtime loop): enter raw mode, render once,
// then loop draining ready timers and dispatching terminal events until
// ShouldExit, re-rendering whenever State.Dirty is set.
package runtime

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tform/internal/appstate"
	"tform/internal/event"
	"tform/internal/reducer"
	"tform/internal/render"
	"tform/internal/widget"
)

// tickInterval is how often the runtime wakes up on its own to drain
// scheduled timers and tick every node, independent of terminal input.
const tickInterval = 50 * time.Millisecond

// tickMsg carries the wall-clock time a scheduler poll should use.
type tickMsg time.Time

// Observer receives every widget event the reducer emits (EventSubmitRequested,
// EventCustom, and ValueProduced) so the host application can react to
// domain events without reaching into AppState directly.
type Observer func(event.WidgetEvent)

// Model is the bubbletea program wrapping the engine's AppState.
type Model struct {
	state    *appstate.State
	theme    widget.Theme
	width    int
	height   int
	observer Observer
}

// New constructs a Model over state. observer may be nil.
func New(state *appstate.State, theme widget.Theme, observer Observer) *Model {
	return &Model{state: state, theme: theme, width: 80, height: 24, observer: observer}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		now := time.Now()
		effects := reducer.Dispatch(m.state, translateKey(msg), now)
		m.runEffects(effects, now)
		if m.state.ShouldExit {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		effects := reducer.Reduce(m.state, reducer.Command{Kind: reducer.CmdTick}, now)
		m.runEffects(effects, now)
		if m.state.ShouldExit {
			return m, tea.Quit
		}
		return m, tickCmd()
	}
	return m, nil
}

// runEffects executes a batch of reducer Effects against the scheduler and
// the observer, then drains whatever became ready as a result (spec §4.9:
// "drain ready" happens on every pass through the loop, not just on ticks).
func (m *Model) runEffects(effects []reducer.Effect, now time.Time) {
	for _, eff := range effects {
		switch eff.Kind {
		case reducer.EffEmitWidget:
			if m.observer != nil {
				m.observer(eff.WidgetEvent)
			}
		case reducer.EffSchedule:
			m.runSchedule(eff.Schedule, now)
		case reducer.EffCancelScheduled:
			m.state.Scheduler.Cancel(eff.CancelKey)
		case reducer.EffRequestRender:
			m.state.Dirty = true
		}
	}
	for _, ready := range m.state.Scheduler.DrainReady(now) {
		m.handleScheduled(ready, now)
	}
}

func (m *Model) runSchedule(op reducer.ScheduleOp, now time.Time) {
	switch op.Kind {
	case reducer.SchedEmitNow:
		m.state.Scheduler.EmitNow(op.Event)
	case reducer.SchedEmitAfter:
		m.state.Scheduler.EmitAfter(now, op.Event, op.Delay)
	case reducer.SchedDebounce:
		m.state.Scheduler.Debounce(now, op.Key, op.Event, op.Delay)
	case reducer.SchedThrottle:
		m.state.Scheduler.Throttle(now, op.Key, op.Event, op.Delay)
	}
}

// handleScheduled applies a fired scheduler event back into the engine. The
// only scheduler payload the core itself understands is the inline-error
// decay timer; anything else is forwarded to the observer for the host
// application to interpret.
func (m *Model) handleScheduled(ev interface{}, now time.Time) {
	switch payload := ev.(type) {
	case reducer.ClearErrorEvent:
		m.state.Validation.ClearNode(payload.NodeID)
		m.state.Dirty = true
	default:
		if m.observer != nil {
			m.observer(event.WidgetEvent{Kind: event.EventCustom, Name: "scheduled"})
		}
	}
}

func (m *Model) View() string {
	scene := render.RenderState(m.state, m.theme, m.width, m.height)
	m.state.Dirty = false
	return scene.Text
}

// translateKey maps a bubbletea KeyMsg onto the engine's closed event.Key
// vocabulary (spec §6). Ctrl+Backspace has no portable terminal encoding
// distinct from Ctrl+H, so it is folded into the same word-delete-backward
// binding as Ctrl+W rather than invented outright; Ctrl+Delete has no
// reliable encoding at all across terminals and is left unmapped (spec §9
// treats exact terminal capability gaps as a presentation-layer concern).
func translateKey(msg tea.KeyMsg) event.Key {
	switch msg.Type {
	case tea.KeyCtrlC:
		return event.Key{Code: event.CodeRune, Rune: 'c', Mods: event.ModCtrl}
	case tea.KeyEsc:
		return event.Key{Code: event.CodeEsc}
	case tea.KeyTab:
		return event.Key{Code: event.CodeTab}
	case tea.KeyShiftTab:
		return event.Key{Code: event.CodeBackTab}
	case tea.KeyEnter:
		return event.Key{Code: event.CodeEnter}
	case tea.KeyBackspace:
		return event.Key{Code: event.CodeBackspace}
	case tea.KeyCtrlH:
		return event.Key{Code: event.CodeBackspace, Mods: event.ModCtrl}
	case tea.KeyCtrlW:
		return event.Key{Code: event.CodeRune, Rune: 'w', Mods: event.ModCtrl}
	case tea.KeyDelete:
		return event.Key{Code: event.CodeDelete}
	case tea.KeyCtrlO:
		return event.Key{Code: event.CodeRune, Rune: 'o', Mods: event.ModCtrl}
	case tea.KeyUp:
		return event.Key{Code: event.CodeUp}
	case tea.KeyDown:
		return event.Key{Code: event.CodeDown}
	case tea.KeyLeft:
		return event.Key{Code: event.CodeLeft}
	case tea.KeyRight:
		return event.Key{Code: event.CodeRight}
	case tea.KeyHome:
		return event.Key{Code: event.CodeHome}
	case tea.KeyEnd:
		return event.Key{Code: event.CodeEnd}
	case tea.KeyRunes:
		r := msg.Runes[0]
		var mods event.Modifier
		if msg.Alt {
			mods |= event.ModAlt
		}
		return event.Key{Code: event.CodeRune, Rune: r, Mods: mods}
	}
	return event.Key{Code: event.CodeRune, Rune: 0}
}
