package reducer

import (
	"tform/internal/appstate"
	"tform/internal/event"
	"tform/internal/focus"
	"tform/internal/node"
	"tform/internal/widget"
)

// tryCreateCompletion attempts to create a completion session for the
// focused node's current token (spec §4.2: "Create if candidates exist for
// current token"). It returns nil if the focused node isn't text-editable,
// declares no candidate source, or the token has no matches.
//
// A session that is created immediately commits its first candidate to the
// buffer — the very first Tab already narrows the input, not merely later
// cycles — matching the engine's "create" transition being itself a kind of
// commit-to-best-match rather than a no-op placeholder state.
func tryCreateCompletion(s *appstate.State) []Effect {
	n := focusedNode(s)
	if n == nil {
		return nil
	}
	te, ok := n.(widget.TextEditable)
	if !ok {
		return nil
	}
	candFn := n.Candidates()
	if candFn == nil {
		return nil
	}
	buf, cursor := te.Buffer(), te.CursorIndex()
	token, _, _ := focus.Token(buf, cursor)
	matches := candFn(token)
	sess := focus.NewSession(n.ID(), buf, cursor, matches)
	if sess == nil {
		return nil
	}
	s.Completion = sess
	newBuf, newCursor := sess.Apply(buf, sess.Current())
	te.SetBuffer(newBuf, newCursor)
	return []Effect{requestRender()}
}

// cycleCompletion advances or retreats the active completion session and
// re-applies its current candidate to the owner's buffer.
func cycleCompletion(s *appstate.State, k event.Key) []Effect {
	if isBackTab(k) {
		s.Completion.CycleBackward()
	} else {
		s.Completion.CycleForward()
	}
	owner, ok := node.FindAll(allRoots(s), s.Completion.OwnerID)
	if !ok {
		return []Effect{requestRender()}
	}
	te, ok := owner.(widget.TextEditable)
	if !ok {
		return []Effect{requestRender()}
	}
	newBuf, newCursor := s.Completion.Apply(te.Buffer(), s.Completion.Current())
	te.SetBuffer(newBuf, newCursor)
	return []Effect{requestRender()}
}

// destroyCompletion clears the active session, retaining whatever value the
// buffer currently holds (spec §4.2: "Destroy (value retained)").
func destroyCompletion(s *appstate.State) { s.Completion = nil }
