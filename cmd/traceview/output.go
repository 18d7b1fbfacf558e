package main

import (
	"bytes"
	"io"

	"github.com/ilkoid/poncho-trace/pkg/app"
	"github.com/ilkoid/poncho-trace/pkg/render"
	"github.com/ilkoid/poncho-trace/pkg/trace"
	"github.com/ilkoid/poncho-trace/pkg/tui"
	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// printReport печатает отчёт в w.
func printReport(w io.Writer, comps *app.Components, rec *trace.Record) {
	render.New(w, comps.RenderOptions).Render(rec, comps.Config.Display.ShowRaw)
}

// showInPager рендерит отчёт в буфер и открывает его в пейджере.
//
// Буфер не терминал, поэтому режим auto здесь означает "с цветом":
// пейджер сам работает в терминале.
func showInPager(comps *app.Components, rec *trace.Record, name string) error {
	opts := comps.RenderOptions
	if opts.Color == render.ColorAuto {
		opts.Color = render.ColorAlways
	}

	var buf bytes.Buffer
	render.New(&buf, opts).Render(rec, comps.Config.Display.ShowRaw)

	ctx, shutdown := utils.SetupGracefulShutdown()
	defer shutdown()

	return tui.Run(ctx, buf.String(),
		tui.WithTitle("traceview: "+name),
		tui.WithColorScheme(comps.Config.Display.ColorScheme),
		tui.WithSaveDir("."),
	)
}
