package refwidget

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"tform/internal/event"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/style"
	"tform/internal/widget"
)

// sysinfoRefresh is how often NewSysInfo re-queries the host (it ticks on
// every engine Tick, per spec §3, but re-querying the OS on every tick would
// be wasteful, so it throttles itself against wall-clock time).
const sysinfoRefresh = 2 * time.Second

// NewSysInfo builds a non-interactive Output node that displays host
// uptime and platform, refreshed periodically from its Tick handler
// (github.com/shirou/gopsutil/v4/host — the same library family the
// original network-tool commands use for process/connection lookups).
func NewSysInfo(id nodeid.ID) *node.Output {
	var (
		summary string
		last    time.Time
	)
	refresh := func() {
		info, err := host.Info()
		if err != nil {
			summary = fmt.Sprintf("sysinfo unavailable: %v", err)
			return
		}
		uptime := time.Duration(info.Uptime) * time.Second
		summary = fmt.Sprintf("%s %s  uptime %s", info.Platform, info.PlatformVersion, uptime)
	}
	refresh()

	out := node.NewOutput(id)
	out.WithTickHandler(func(o *node.Output) event.InteractionResult {
		now := time.Now()
		if now.Sub(last) < sysinfoRefresh {
			return event.Unhandled
		}
		last = now
		refresh()
		return event.InteractionResult{RenderRequested: true}
	})
	out.WithDraw(func(o *node.Output, ctx widget.RenderContext) widget.RenderOutput {
		return widget.RenderOutput{
			Spans:        []style.Span{{Text: summary, Style: ctx.Theme.Muted, Wrap: style.Wrap, CursorOffset: style.NoCursor}},
			CursorOffset: style.NoCursor,
		}
	})
	return out
}
