package focus

import (
	"strings"
	"unicode"

	"tform/internal/nodeid"
)

// Session is the transient completion-cycling state attached to a focused
// input (spec §3, §4.2). At most one exists at a time.
type Session struct {
	OwnerID        nodeid.ID
	OriginalPrefix string
	Candidates     []string
	CursorIndex    int

	tokenStart int // rune index in the owner's buffer where the token begins
	tokenEnd   int // rune index where the token ends (cursor at creation, then the end of the last applied candidate)
}

// Token identifies the contiguous run of non-whitespace ending at cursor in
// buf (spec §4.2's token rule), returning the token text and its [start,end)
// rune-index bounds.
func Token(buf string, cursor int) (text string, start, end int) {
	runes := []rune(buf)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	end = cursor
	start = cursor
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return string(runes[start:end]), start, end
}

// Match returns the candidates from all whose lowercased form starts with
// the lowercased token, preserving all's order.
func Match(token string, all []string) []string {
	lowered := strings.ToLower(token)
	var out []string
	for _, c := range all {
		if strings.HasPrefix(strings.ToLower(c), lowered) {
			out = append(out, c)
		}
	}
	return out
}

// NewSession creates a completion session for ownerID over buf at cursor,
// given the full candidate list. Returns nil if no candidates match the
// current token (spec §4.2: "Create if candidates exist for current token").
func NewSession(ownerID nodeid.ID, buf string, cursor int, all []string) *Session {
	token, start, end := Token(buf, cursor)
	matches := Match(token, all)
	if len(matches) == 0 {
		return nil
	}
	return &Session{
		OwnerID:        ownerID,
		OriginalPrefix: token,
		Candidates:     matches,
		CursorIndex:    0,
		tokenStart:     start,
		tokenEnd:       end,
	}
}

// Current returns the candidate currently selected by the cursor.
func (s *Session) Current() string { return s.Candidates[s.CursorIndex] }

// CycleForward advances to the next candidate, wrapping (Tab while active).
func (s *Session) CycleForward() {
	s.CursorIndex = (s.CursorIndex + 1) % len(s.Candidates)
}

// CycleBackward moves to the previous candidate, wrapping (Shift+Tab/BackTab
// while active).
func (s *Session) CycleBackward() {
	s.CursorIndex = (s.CursorIndex - 1 + len(s.Candidates)) % len(s.Candidates)
}

// Apply substitutes the session's token in buf with replacement, returning
// the new buffer and the cursor index immediately after the substituted text
// (spec §4.2: "Cycling replaces only that token"). The token's end moves to
// the end of replacement, so the next Apply replaces the candidate applied
// last rather than only the original prefix's length.
func (s *Session) Apply(buf, replacement string) (string, int) {
	runes := []rune(buf)
	var b strings.Builder
	b.WriteString(string(runes[:s.tokenStart]))
	b.WriteString(replacement)
	newCursor := s.tokenStart + len([]rune(replacement))
	b.WriteString(string(runes[s.tokenEnd:]))
	s.tokenEnd = newCursor
	return b.String(), newCursor
}
