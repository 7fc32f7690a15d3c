// Package style holds the styled text primitives shared by the layout engine
// and the render pipeline: Style, Span, and the 2D Frame they compose into.
package style

import "github.com/charmbracelet/lipgloss"

// Attr is a single bit in a Style's attribute bitset.
type Attr uint8

const (
	Bold Attr = 1 << iota
	Italic
	Underline
	Dim
	Reverse
)

// Has reports whether all bits in want are set.
func (a Attr) Has(want Attr) bool { return a&want == want }

// Style carries foreground, background, and an attribute bitset. The zero
// Style is "unset" (transparent): no foreground, no background, no
// attributes. Unset is the overlay-blend signal described in spec §4.8.
type Style struct {
	Foreground string // empty means unset
	Background string // empty means unset
	Attrs      Attr
}

// IsTransparent reports whether this Style carries no visual information at
// all, making a cell painted with it pass the base cell through unchanged
// during overlay blending.
func (s Style) IsTransparent() bool {
	return s.Foreground == "" && s.Background == "" && s.Attrs == 0
}

// Merge layers o atop s: any field o sets overrides the corresponding field
// in s, unset fields in o are left as s had them. This is the "cheap to
// merge" value-typed style the design notes call for.
func (s Style) Merge(o Style) Style {
	out := s
	if o.Foreground != "" {
		out.Foreground = o.Foreground
	}
	if o.Background != "" {
		out.Background = o.Background
	}
	out.Attrs |= o.Attrs
	return out
}

// Lipgloss renders s as a lipgloss.Style for terminal emission.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		ls = ls.Background(lipgloss.Color(s.Background))
	}
	if s.Attrs.Has(Bold) {
		ls = ls.Bold(true)
	}
	if s.Attrs.Has(Italic) {
		ls = ls.Italic(true)
	}
	if s.Attrs.Has(Underline) {
		ls = ls.Underline(true)
	}
	if s.Attrs.Has(Dim) {
		ls = ls.Faint(true)
	}
	if s.Attrs.Has(Reverse) {
		ls = ls.Reverse(true)
	}
	return ls
}

// WrapPolicy controls how a Span behaves when it would overflow the current
// line, per spec §4.7.
type WrapPolicy int

const (
	// Wrap breaks at the next grapheme boundary and continues on a new line
	// that inherits the span's style.
	Wrap WrapPolicy = iota
	// NoWrap clips at the line boundary and discards the overflow.
	NoWrap
)

// Span is a run of text sharing one Style and one WrapPolicy. CursorOffset,
// when non-negative, marks this span as the cursor owner and gives the
// offset (in Unicode column widths from the start of the span) the cursor
// sits at.
type Span struct {
	Text         string
	Style        Style
	Wrap         WrapPolicy
	CursorOffset int // -1 if this span does not own the cursor
}

// NoCursor is the sentinel CursorOffset meaning "this span has no cursor".
const NoCursor = -1
