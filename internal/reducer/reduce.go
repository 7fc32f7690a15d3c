package reducer

import (
	"time"

	"tform/internal/appstate"
	"tform/internal/event"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/validation"
	"tform/internal/value"
	"tform/internal/widget"
)

// Dispatch is the runtime's entry point for a raw terminal key press. It
// implements the key-handling tie-break order of spec §4.1:
//
//  1. a completion session active on the focused node, with Tab/BackTab, cycles it
//  2. a key matching the default global binding table (spec §6) applies that command
//  3. otherwise the key is dispatched to the focused node
//  4. if unhandled and the key is Tab/BackTab, focus traversal is performed
//  5. else the key is ignored
func Dispatch(s *appstate.State, k event.Key, now time.Time) []Effect {
	if isTab(k) || isBackTab(k) {
		if s.Completion != nil {
			return cycleCompletion(s, k)
		}
		if effects := tryCreateCompletion(s); effects != nil {
			return effects
		}
		// No session could be created: fall through to ordinary dispatch,
		// which offers the key to the focused node before traversal.
		return Reduce(s, Command{Kind: CmdInputKey, Key: k}, now)
	}
	if cmd, ok := globalBinding(k, !s.Overlays.Empty()); ok {
		return Reduce(s, cmd, now)
	}
	return Reduce(s, Command{Kind: CmdInputKey, Key: k}, now)
}

// Reduce is the sole writer of domain state (spec §4.1): given the current
// State and a Command, it mutates State and returns the Effects the runtime
// must carry out.
func Reduce(s *appstate.State, cmd Command, now time.Time) []Effect {
	switch cmd.Kind {
	case CmdExit:
		s.ShouldExit = true
		return nil
	case CmdTick:
		return reduceTick(s)
	case CmdInputKey:
		return reduceInputKey(s, cmd.Key, now)
	case CmdTextAction:
		return reduceTextAction(s, cmd.TextAction)
	case CmdNextFocus:
		return advanceFocus(s, true, now)
	case CmdPrevFocus:
		return advanceFocus(s, false, now)
	case CmdSubmit:
		return reduceSubmit(s, now)
	case CmdOpenOverlay:
		return openOverlay(s, findOverlay(s, cmd.OverlayID))
	case CmdOpenOverlayAtIndex:
		return openOverlay(s, findOverlayAtIndex(s, cmd.OverlayIndex))
	case CmdOpenOverlayShortcut:
		return openOverlay(s, buildShortcutPicker(s))
	case CmdCloseOverlay:
		return closeOverlay(s)
	default:
		return nil
	}
}

// reduceInputKey implements tie-break steps (3) and (4): dispatch to the
// focused node, falling back to focus traversal for an unhandled Tab or
// BackTab.
func reduceInputKey(s *appstate.State, k event.Key, now time.Time) []Effect {
	if s.Completion != nil {
		destroyCompletion(s)
	}
	n := focusedNode(s)
	var effects []Effect
	if n != nil {
		result := n.HandleKey(k)
		effects = append(effects, applyInteraction(s, n, result, now)...)
		if result.Handled {
			return effects
		}
	}
	if isTab(k) {
		return append(effects, advanceFocus(s, true, now)...)
	}
	if isBackTab(k) {
		return append(effects, advanceFocus(s, false, now)...)
	}
	return effects
}

// focusedNode resolves the current focus target to its Node, searching the
// active scope's state tree (so a Group's internal focus still resolves).
func focusedNode(s *appstate.State) node.Node {
	id, ok := s.Focus.Current()
	if !ok {
		return nil
	}
	n, ok := node.FindAll(s.ActiveScope(), id)
	if !ok {
		return nil
	}
	return n
}

// applyInteraction translates a node's InteractionResult into Effects,
// applying the widget events it carries: ValueProduced writes the value
// into the store, runs live validation, and propagates the binding graph
// (spec §4.4, §4.6); SubmitRequested and custom events simply pass through
// as EmitWidget effects for the runtime/application layer to observe.
func applyInteraction(s *appstate.State, n node.Node, result event.InteractionResult, now time.Time) []Effect {
	var effects []Effect
	for _, we := range result.Events {
		switch we.Kind {
		case event.EventValueProduced:
			effects = append(effects, onValueProduced(s, we, now)...)
		default:
			effects = append(effects, emitWidget(we))
		}
	}
	if result.RenderRequested {
		effects = append(effects, requestRender())
	}
	return effects
}

// onValueProduced records a ValueProduced event's value, runs live
// validation on the source node, and propagates the binding graph.
func onValueProduced(s *appstate.State, we event.WidgetEvent, now time.Time) []Effect {
	s.Store.Set(we.Source, we.Value)
	effects := []Effect{emitWidget(we)}

	effects = append(effects, runLiveValidation(s, we.Source, we.Value, now)...)

	for _, res := range s.Bindings.Propagate(we.Source, we.Port, we.Value) {
		if res.Err != nil {
			s.Validation.SetNodeIssues(res.Target, []validation.Issue{{
				Rule:    "binding",
				Message: res.Err.Error(),
			}}, validation.Hidden)
			continue
		}
		target, ok := node.FindAll(allRoots(s), res.Target)
		if !ok {
			continue
		}
		target.SetValue(res.Value)
		s.Store.Set(res.Target, res.Value)
		effects = append(effects, requestRender())
	}
	return effects
}

// allRoots returns every node forest the engine currently knows about: the
// active step's roots plus every open overlay's root, so binding targets
// and focus lookups can resolve nodes regardless of where they live.
func allRoots(s *appstate.State) []node.Node {
	var roots []node.Node
	if step := s.Flow.ActiveStep(); step != nil {
		roots = append(roots, step.Roots...)
	}
	roots = append(roots, overlayRoots(s)...)
	return roots
}

// storeCtx adapts a valuestore.Store to validation.Ctx.
type storeCtx struct {
	store interface {
		Get(nodeid.ID) value.Value
		Has(nodeid.ID) bool
	}
}

func (c storeCtx) Sibling(id nodeid.ID) (value.Value, bool) {
	if !c.store.Has(id) {
		return value.None, false
	}
	return c.store.Get(id), true
}

// runLiveValidation runs a node's validator chain on value change (spec
// §4.6 "Live"), annotating the first issue as Inline and scheduling its
// debounce-clear.
func runLiveValidation(s *appstate.State, id nodeid.ID, v value.Value, now time.Time) []Effect {
	n, ok := node.FindAll(allRoots(s), id)
	if !ok {
		return nil
	}
	issues := runValidators(n.Validators(), v, s)
	if len(issues) == 0 {
		s.Validation.ClearNode(id)
		return []Effect{cancelScheduled(ErrorDebounceKeyFor(id))}
	}
	s.Validation.SetNodeIssues(id, issues[:1], validation.Inline)
	return []Effect{debounce(now, ErrorDebounceKeyFor(id), ClearErrorEvent{NodeID: id}, DefaultErrorDecay), requestRender()}
}

func runValidators(rules []validation.Rule, v value.Value, s *appstate.State) []validation.Issue {
	var issues []validation.Issue
	ctx := storeCtx{store: s.Store}
	for _, rule := range rules {
		issues = append(issues, rule(v, ctx)...)
	}
	return issues
}

// --- focus behavior lookup ---

func focusBehaviorOf(n node.Node) widget.FocusBehavior {
	if n == nil {
		return widget.Container
	}
	return n.FocusBehavior()
}
