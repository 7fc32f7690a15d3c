package render

import (
	"strings"

	"tform/internal/appstate"
	"tform/internal/flow"
	"tform/internal/layout"
	"tform/internal/node"
	"tform/internal/overlay"
	"tform/internal/style"
	"tform/internal/validation"
	"tform/internal/widget"
)

// statusGlyph returns the gutter glyph and style prepended to a step's first
// rendered line (spec §4.8 stage 2: "prepend status glyphs ... per step
// status").
func statusGlyph(status flow.Status, theme widget.Theme) style.Span {
	switch status {
	case flow.Active:
		return style.Span{Text: "▶ ", Style: theme.Highlight, Wrap: style.NoWrap, CursorOffset: style.NoCursor}
	case flow.Done:
		return style.Span{Text: "✓ ", Style: theme.Muted, Wrap: style.NoWrap, CursorOffset: style.NoCursor}
	case flow.Cancelled:
		return style.Span{Text: "✗ ", Style: theme.ErrorTint, Wrap: style.NoWrap, CursorOffset: style.NoCursor}
	default:
		return style.Span{Text: "· ", Style: theme.Muted, Wrap: style.NoWrap, CursorOffset: style.NoCursor}
	}
}

// issueSpans renders a node's recorded inline issues as a single line under
// it (spec §4.6 "Failure surfacing").
func issueSpans(issues []validation.Issue, theme widget.Theme) []style.Span {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, iss := range issues {
		msgs[i] = iss.Message
	}
	return []style.Span{{Text: "  " + strings.Join(msgs, "; "), Style: theme.ErrorTint, Wrap: style.Wrap, CursorOffset: style.NoCursor}}
}

// buildBlock lays out a single node's own Draw output into a Frame. Nodes
// that draw nothing (typical of a bare Component wrapper) are reported via
// the second return value so the caller can skip the empty region.
func buildBlock(n node.Node, theme widget.Theme, width int) (style.Frame, bool) {
	out := n.Draw(widget.RenderContext{Theme: theme, Width: width})
	if len(out.Spans) == 0 && out.CursorOffset == style.NoCursor {
		return style.Frame{}, false
	}
	spans := make([]style.Span, len(out.Spans))
	copy(spans, out.Spans)
	assignCursor(spans, out.CursorOffset)
	return layout.Wrap(spans, width), true
}

// assignCursor locates which span owns a RenderOutput's combined cursor
// offset — measured in display-width units across the whole span sequence
// — and sets that span's own CursorOffset to the offset local to it (spec
// §4.7: "CursorOffset on a Span is local ... measured from the start of
// that span"). Preceding spans' widths are subtracted off in display-width
// units, the same accounting the layout engine itself uses, so this is
// correct for any number of spans, not just a single trailing one.
func assignCursor(spans []style.Span, combined int) {
	if combined == style.NoCursor {
		return
	}
	remaining := combined
	for i := range spans {
		w := layout.TextWidth(spans[i].Text)
		if remaining <= w || i == len(spans)-1 {
			spans[i].CursorOffset = remaining
			return
		}
		remaining -= w
	}
}

// appendFrame vertically stacks add onto the growing rows slice, translating
// add's cursor (if any) by the current row offset.
func appendFrame(rows [][]style.Cell, add style.Frame, cursor *style.CursorPos) ([][]style.Cell, *style.CursorPos) {
	offset := len(rows)
	rows = append(rows, add.Rows...)
	if add.Cursor != nil {
		cursor = &style.CursorPos{Row: offset + add.Cursor.Row, Col: add.Cursor.Col}
	}
	return rows, cursor
}

// RenderStep builds the base layer Frame for a step: its status gutter, each
// root node's own block in document order (spec §4.8 stages 1-3), inline
// issues rendered directly under the node that owns them, and any step-level
// errors rendered under the final block.
func RenderStep(step *flow.Step, status flow.Status, vstate *validation.State, theme widget.Theme, width int) (style.Frame, *style.CursorPos) {
	var rows [][]style.Cell
	var cursor *style.CursorPos
	first := true

	for _, root := range step.Roots {
		node.VisitRender(root, func(n node.Node) {
			frame, ok := buildBlock(n, theme, width)
			if !ok {
				return
			}
			if first {
				gutter := statusGlyph(status, theme)
				gutterFrame, _ := gutterLine(frame, gutter, width)
				rows, cursor = appendFrame(rows, gutterFrame, cursor)
				first = false
			} else {
				rows, cursor = appendFrame(rows, frame, cursor)
			}

			if issues, vis := vstate.NodeIssues(n.ID()); vis == validation.Inline && len(issues) > 0 {
				issueFrame := layout.Wrap(issueSpans(issues, theme), width)
				rows, _ = appendFrame(rows, issueFrame, cursor)
			}
		})
	}

	if errs := vstate.StepErrors(); len(errs) > 0 {
		errFrame := layout.Wrap(issueSpans(errs, theme), width)
		rows, _ = appendFrame(rows, errFrame, cursor)
	}

	if len(rows) == 0 {
		rows = [][]style.Cell{{}}
	}
	return style.Frame{Rows: rows, Cursor: cursor}, cursor
}

// gutterLine prepends the status glyph to a block's first line only and
// indents every subsequent line by the gutter's width so the block's lines
// stay aligned; the block is not re-wrapped.
func gutterLine(block style.Frame, gutter style.Span, width int) (style.Frame, *style.CursorPos) {
	if len(block.Rows) == 0 {
		return block, block.Cursor
	}
	gw := cellsWidth(gutter.Text)
	out := make([][]style.Cell, len(block.Rows))
	for i, row := range block.Rows {
		if i == 0 {
			prefix := layout.Wrap([]style.Span{{Text: gutter.Text, Style: gutter.Style, Wrap: style.NoWrap, CursorOffset: style.NoCursor}}, gw)
			merged := append(append([]style.Cell{}, prefix.Rows[0]...), row...)
			out[i] = merged
		} else {
			pad := make([]style.Cell, gw)
			for c := range pad {
				pad[c] = style.Cell{Grapheme: " ", Width: 1}
			}
			out[i] = append(pad, row...)
		}
	}
	var cursor *style.CursorPos
	if block.Cursor != nil {
		cursor = &style.CursorPos{Row: block.Cursor.Row, Col: block.Cursor.Col + gw}
	}
	return style.Frame{Rows: out, Cursor: cursor}, cursor
}

func cellsWidth(s string) int {
	w := 0
	for _, r := range s {
		_ = r
		w++
	}
	return w
}

// buildTree stacks every node's own block in an overlay's render tree, in
// document order, with no step gutter or inline-issue decoration — overlays
// are a separate content block from the base step (spec §4.8 stage 3).
func buildTree(root node.Node, theme widget.Theme, width int) style.Frame {
	var rows [][]style.Cell
	var cursor *style.CursorPos
	node.VisitRender(root, func(n node.Node) {
		frame, ok := buildBlock(n, theme, width)
		if !ok {
			return
		}
		rows, cursor = appendFrame(rows, frame, cursor)
	})
	if len(rows) == 0 {
		rows = [][]style.Cell{{}}
	}
	return style.Frame{Rows: rows, Cursor: cursor}
}

// RenderOverlay builds an overlay layer's Frame, bordered with a box drawn
// from the theme's accent style (spec §4.8 stage 3: overlay frames get their
// own Layout pass, then are boxed before blitting).
func RenderOverlay(entry overlay.Entry, theme widget.Theme, width int) style.Frame {
	inner := buildTree(entry.Root, theme, width-2)
	if inner.Height() == 0 {
		inner = style.NewFrame(width-2, 1)
	}
	return box(inner, theme)
}

// box draws a one-cell border of ┌ ┐ │ └ ┘ ─ around inner.
func box(inner style.Frame, theme widget.Theme) style.Frame {
	w := inner.Width()
	h := inner.Height()
	out := style.NewFrame(w+2, h+2)
	border := theme.Accent

	out.Rows[0][0] = style.Cell{Grapheme: "┌", Style: border, Width: 1}
	out.Rows[0][w+1] = style.Cell{Grapheme: "┐", Style: border, Width: 1}
	out.Rows[h+1][0] = style.Cell{Grapheme: "└", Style: border, Width: 1}
	out.Rows[h+1][w+1] = style.Cell{Grapheme: "┘", Style: border, Width: 1}
	for c := 1; c <= w; c++ {
		out.Rows[0][c] = style.Cell{Grapheme: "─", Style: border, Width: 1}
		out.Rows[h+1][c] = style.Cell{Grapheme: "─", Style: border, Width: 1}
	}
	for r := 1; r <= h; r++ {
		out.Rows[r][0] = style.Cell{Grapheme: "│", Style: border, Width: 1}
		out.Rows[r][w+1] = style.Cell{Grapheme: "│", Style: border, Width: 1}
		copy(out.Rows[r][1:w+1], inner.Rows[r-1])
	}

	var cursor *style.CursorPos
	if inner.Cursor != nil {
		cursor = &style.CursorPos{Row: inner.Cursor.Row + 1, Col: inner.Cursor.Col + 1}
	}
	out.Cursor = cursor
	return out
}

// Scene is the fully composed output of one render pass: the final
// terminal text and the cursor position to place (nil hides the cursor).
type Scene struct {
	Text   string
	Cursor *style.CursorPos
}

// overlayOrigin anchors an overlay roughly centered under the base frame,
// per spec §9's note that exact overlay placement is a theme/extension
// concern — centering is the one concrete policy the core commits to.
func overlayOrigin(base, ov style.Frame) (int, int) {
	row := (base.Height() - ov.Height()) / 2
	col := (base.Width() - ov.Width()) / 2
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return row, col
}

// RenderState runs the full pipeline (spec §4.8) over the current AppState:
// build+decorate+layout the active step, build+box+layout every open
// overlay, blit them bottom-to-top onto the step frame, and resolve the
// final cursor as the topmost frame's cursor.
func RenderState(s *appstate.State, theme widget.Theme, width, height int) Scene {
	step := s.Flow.ActiveStep()
	if step == nil {
		return Scene{Text: "", Cursor: nil}
	}

	base, baseCursor := RenderStep(step, s.Flow.StatusOf(s.Flow.Current), s.Validation, theme, width)
	if base.Height() < height {
		grown := style.NewFrame(width, height)
		copy(grown.Rows, base.Rows)
		grown.Cursor = base.Cursor
		base = grown
	}

	tracker := NewRegionTracker()
	tracker.Reserve(base.Height())

	cursor := baseCursor
	current := base
	for _, entry := range s.Overlays.Entries() {
		ov := RenderOverlay(entry, theme, width/2)
		row, col := overlayOrigin(current, ov)
		blended, ovCursor := ov.BlendOnto(current, row, col)
		current = blended
		if ovCursor != nil {
			cursor = ovCursor
		}
	}

	return Scene{Text: Emit(current), Cursor: cursor}
}

// Emit flattens a Frame into terminal text, grouping horizontally adjacent
// cells that share a Style into a single lipgloss-rendered run per line to
// keep escape-sequence output compact.
func Emit(f style.Frame) string {
	var b strings.Builder
	for r, row := range f.Rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(emitRow(row))
	}
	return b.String()
}

func emitRow(row []style.Cell) string {
	var b strings.Builder
	i := 0
	for i < len(row) {
		j := i + 1
		for j < len(row) && row[j].Style == row[i].Style {
			j++
		}
		var text strings.Builder
		for _, cell := range row[i:j] {
			text.WriteString(cell.Grapheme)
		}
		if row[i].Style.IsTransparent() {
			b.WriteString(text.String())
		} else {
			b.WriteString(row[i].Style.Lipgloss().Render(text.String()))
		}
		i = j
	}
	return b.String()
}
