// Package layout implements the single-pass wrap-aware layout engine
// described in spec §4.7: it turns a sequence of styled spans into a Frame,
// mapping a logical cursor offset into frame coordinates as it goes.
package layout

import (
	"github.com/rivo/uniseg"

	"tform/internal/style"
)

// Wrap lays spans out into a Frame of the given width, starting at the
// logical origin (row 0, col 0). It honors each span's WrapPolicy and
// East-Asian display width, and — in the same pass — records the mapped
// cursor position the instant the accumulated column count for the
// cursor-owning span equals its CursorOffset (spec §4.7's "single-pass
// contract"). CursorOffset on a Span is local: column-width units measured
// from the start of that span.
func Wrap(spans []style.Span, width int) style.Frame {
	if width <= 0 {
		width = 1
	}

	var rows [][]style.Cell
	row := make([]style.Cell, 0, width)
	col := 0
	var cursor *style.CursorPos

	newLine := func() {
		rows = append(rows, row)
		row = make([]style.Cell, 0, width)
		col = 0
	}

	// captureCursor records the cursor the moment a span's accumulated
	// column count equals its CursorOffset. If the cursor lands exactly on
	// the right edge of the current line (col == width) and whatever comes
	// next wraps, the cursor is reported at column 0 of the following line
	// instead of one-past-the-edge of the current one (spec §4.7's trailing
	// cursor rule).
	captureCursor := func(nextWraps bool) {
		if cursor != nil {
			return
		}
		if col == width && nextWraps {
			cursor = &style.CursorPos{Row: len(rows) + 1, Col: 0}
		} else {
			cursor = &style.CursorPos{Row: len(rows), Col: col}
		}
	}

	for i, span := range spans {
		spanCol := 0
		wantsCursor := span.CursorOffset != style.NoCursor

		graphemes := splitGraphemes(span.Text)
		for gi, cluster := range graphemes {
			if wantsCursor && spanCol == span.CursorOffset {
				captureCursor(span.Wrap == style.Wrap)
			}

			w := clusterWidth(cluster)
			if col+w > width {
				switch span.Wrap {
				case style.Wrap:
					newLine()
				case style.NoWrap:
					spanCol += w
					_ = gi
					continue
				}
			}

			row = append(row, style.Cell{Grapheme: cluster, Style: span.Style, Width: w})
			col += w
			spanCol += w
		}

		// Trailing cursor: offset equal to this span's own total width.
		if wantsCursor && spanCol == span.CursorOffset {
			nextWraps := false
			if i+1 < len(spans) {
				nextWraps = spans[i+1].Wrap == style.Wrap
			}
			captureCursor(nextWraps)
		}
	}

	rows = append(rows, row)

	// Pad every row to a uniform width for blitting.
	for i, r := range rows {
		for len(r) < width {
			r = append(r, style.Cell{Grapheme: " ", Width: 1})
		}
		rows[i] = r
	}

	return style.Frame{Rows: rows, Cursor: cursor}
}

// splitGraphemes splits s into its grapheme clusters, with zero-width
// joiners collapsed into the preceding cluster (uniseg's default behavior).
func splitGraphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// clusterWidth reports the East-Asian display width of a single grapheme
// cluster.
func clusterWidth(cluster string) int {
	return uniseg.StringWidth(cluster)
}

// TextWidth returns s's East-Asian display width, summed over its grapheme
// clusters. Exposed so callers that need to measure a span's width without
// performing a full Wrap — e.g. the render pipeline locating which span in
// a multi-span RenderOutput owns a combined cursor offset — use the same
// width accounting Wrap itself uses.
func TextWidth(s string) int {
	w := 0
	for _, cluster := range splitGraphemes(s) {
		w += clusterWidth(cluster)
	}
	return w
}
