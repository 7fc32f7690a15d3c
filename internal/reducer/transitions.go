package reducer

import (
	"time"
	"unicode"

	"tform/internal/appstate"
	"tform/internal/event"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/validation"
	"tform/internal/value"
	"tform/internal/widget"
)

// advanceFocus implements the blocking-validation-gated focus transition
// (spec §4.6 "Blocking"): the focused node's validator chain runs first; any
// issue blocks the move and is recorded Inline with a debounce-clear timer.
func advanceFocus(s *appstate.State, forward bool, now time.Time) []Effect {
	n := focusedNode(s)
	if n != nil {
		if effects, blocked := blockOnValidation(s, n, now); blocked {
			return effects
		}
	}
	s.Completion = nil
	if forward {
		s.Focus.Next()
	} else {
		s.Focus.Prev()
	}
	return []Effect{requestRender()}
}

// reduceSubmit runs the focused node's chain, then, if that passes, the
// step-level chain over the step's computed value map (spec §4.6). Either
// failing blocks the transition; passing both advances the flow.
func reduceSubmit(s *appstate.State, now time.Time) []Effect {
	n := focusedNode(s)
	if n != nil {
		if effects, blocked := blockOnValidation(s, n, now); blocked {
			return effects
		}
	}
	step := s.Flow.ActiveStep()
	if step == nil {
		return nil
	}
	values := s.Store.Snapshot()
	var issues []validation.Issue
	for _, v := range step.Validators {
		issues = append(issues, v(values)...)
	}
	if len(issues) > 0 {
		s.Validation.SetStepErrors(issues)
		return []Effect{requestRender()}
	}
	s.Validation.ClearStepErrors()
	s.Completion = nil
	s.Flow.Advance()
	s.RebuildFocus()
	return []Effect{requestRender()}
}

// blockOnValidation runs n's validator chain and, on failure, records the
// first issue Inline with a 2s debounce-clear. It reports whether the
// transition should be blocked.
func blockOnValidation(s *appstate.State, n interface {
	ID() nodeid.ID
	Value() value.Value
	Validators() []validation.Rule
}, now time.Time) ([]Effect, bool) {
	issues := runValidators(n.Validators(), n.Value(), s)
	if len(issues) == 0 {
		return nil, false
	}
	s.Validation.SetNodeIssues(n.ID(), issues[:1], validation.Inline)
	return []Effect{
		debounce(now, ErrorDebounceKeyFor(n.ID()), ClearErrorEvent{NodeID: n.ID()}, DefaultErrorDecay),
		requestRender(),
	}, true
}

// reduceTick ticks every node reachable from the active step's state tree
// and every open overlay's root (hidden nodes still tick, per spec §3).
func reduceTick(s *appstate.State) []Effect {
	var effects []Effect
	now := time.Time{}

	for _, root := range allRoots(s) {
		node.VisitState(root, func(n node.Node) {
			result := n.Tick()
			effects = append(effects, applyInteraction(s, n, result, now)...)
		})
	}
	return effects
}

// reduceTextAction applies a word-boundary edit directly to the focused
// TextEditable node's buffer (spec §6's Ctrl+Backspace/Ctrl+W/Ctrl+Delete).
func reduceTextAction(s *appstate.State, kind TextActionKind) []Effect {
	n := focusedNode(s)
	if n == nil {
		return nil
	}
	te, ok := n.(widget.TextEditable)
	if !ok {
		return nil
	}
	buf, cursor := te.Buffer(), te.CursorIndex()
	var newBuf string
	var newCursor int
	switch kind {
	case WordDeleteBackward:
		newBuf, newCursor = wordDeleteBackward(buf, cursor)
	case WordDeleteForward:
		newBuf, newCursor = wordDeleteForward(buf, cursor)
	}
	te.SetBuffer(newBuf, newCursor)

	effects := []Effect{emitWidget(event.WidgetEvent{
		Kind: event.EventValueProduced, Source: n.ID(), Value: value.Text(newBuf),
	})}
	effects = append(effects, runLiveValidation(s, n.ID(), value.Text(newBuf), time.Time{})...)
	effects = append(effects, requestRender())
	return effects
}

func wordDeleteBackward(buf string, cursor int) (string, int) {
	runes := []rune(buf)
	end := clampIndex(cursor, len(runes))
	i := end
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return string(runes[:i]) + string(runes[end:]), i
}

func wordDeleteForward(buf string, cursor int) (string, int) {
	runes := []rune(buf)
	start := clampIndex(cursor, len(runes))
	j := start
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	for j < len(runes) && !unicode.IsSpace(runes[j]) {
		j++
	}
	return string(runes[:start]) + string(runes[j:]), start
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
