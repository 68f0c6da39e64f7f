package macros

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/funit"
	"github.com/npillmayer/fontmacros/core/parameters"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/runenames"
)

const catView = "View"

func viewMacros() []*Macro {
	var ms []*Macro
	for _, p := range parameters.Parameters() {
		if p == parameters.P_REDRAW {
			continue
		}
		ms = append(ms, toggle(p))
	}
	return append(ms,
		&Macro{
			Title:    "Report Selection Bounds",
			Category: catView,
			Help:     "bounding box of the selected points",
			Run:      reportBounds,
		},
		&Macro{
			Title:    "Report Master Metrics",
			Category: catView,
			Help:     "metric lines of the active master",
			Run:      reportMetrics,
		},
		&Macro{
			Title:    "Report Glyph Info",
			Category: catView,
			Help:     "names, code points and sidebearings of the selected glyphs",
			Run:      reportGlyphs,
		},
	)
}

func toggle(p parameters.EditorParameter) *Macro {
	title := "Toggle " + cases.Title(language.English).String(p.String())
	return &Macro{
		Title:    title,
		Category: catView,
		Help:     "show or hide " + p.String(),
		NoFont:   true,
		Run: func(ctx *Context) error {
			on := ctx.Session.Settings.Toggle(p)
			state := "off"
			if on {
				state = "on"
			}
			ctx.Logf("%s: %s", p, state)
			ctx.Session.Display.Redraw()
			return nil
		},
	}
}

func reportBounds(ctx *Context) error {
	layers, err := layersWithSelection(ctx)
	if err != nil {
		return err
	}
	for _, l := range layers {
		var pts []funit.Point
		for _, p := range l.Selection() {
			pts = append(pts, *p)
		}
		r, _ := funit.Bounds(pts...)
		ctx.Logf("%s: %s, %s × %s", l.Name(), r, funit.Format(r.Width()), funit.Format(r.Height()))
	}
	return nil
}

func reportMetrics(ctx *Context) error {
	if ctx.Master == nil {
		return core.Error(core.EMISSING, "no master")
	}
	ctx.Logf("%s of %s (UPM %d)", ctx.Master, ctx.Font.Family, ctx.Font.UPM)
	lines := ctx.Master.MetricLines()
	for i := len(lines) - 1; i >= 0; i-- {
		ctx.Logf("%12s %s", lines[i].Name, funit.Format(lines[i].Y))
	}
	return nil
}

func reportGlyphs(ctx *Context) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	for _, g := range ctx.Glyphs {
		ctx.Logf("%s", glyphInfo(ctx, g))
	}
	return nil
}

func glyphInfo(ctx *Context, g *font.Glyph) string {
	var sb strings.Builder
	sb.WriteString(g.Name)
	for _, r := range g.Runes() {
		fmt.Fprintf(&sb, " U+%04X %s", r, runenames.Name(r))
	}
	if l := ctx.Layer(g); l != nil {
		fmt.Fprintf(&sb, " [%s width=%s", l.Master, funit.Format(l.Width))
		if lsb, ok := l.LSB(); ok {
			rsb, _ := l.RSB()
			fmt.Fprintf(&sb, " lsb=%s rsb=%s", funit.Format(lsb), funit.Format(rsb))
		}
		if n := len(l.Components); n > 0 {
			fmt.Fprintf(&sb, " components=%d", n)
		}
		sb.WriteString("]")
	}
	return sb.String()
}
