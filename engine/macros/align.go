package macros

import (
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/funit"
	"github.com/npillmayer/fontmacros/engine/align"
)

const catAlign = "Align"

// reference computes the target value of an alignment for a layer.
type reference func(m *font.Master, l *font.Layer) float64

func alignMacros() []*Macro {
	return []*Macro{
		alignTo("Align Selection to Ascender", funit.Vertical, align.Max,
			func(m *font.Master, _ *font.Layer) float64 { return m.Ascender }),
		alignTo("Align Selection to Cap Height", funit.Vertical, align.Max,
			func(m *font.Master, _ *font.Layer) float64 { return m.CapHeight }),
		alignTo("Align Selection to x-Height", funit.Vertical, align.Max,
			func(m *font.Master, _ *font.Layer) float64 { return m.XHeight }),
		alignTo("Align Selection to Baseline", funit.Vertical, align.Min,
			func(*font.Master, *font.Layer) float64 { return 0 }),
		alignTo("Align Selection to Descender", funit.Vertical, align.Min,
			func(m *font.Master, _ *font.Layer) float64 { return m.Descender }),
		alignTo("Align Selection to LSB", funit.Horizontal, align.Min,
			func(*font.Master, *font.Layer) float64 { return 0 }),
		alignTo("Align Selection to RSB", funit.Horizontal, align.Max,
			func(_ *font.Master, l *font.Layer) float64 { return l.Width }),
		alignTo("Center Selection in Width", funit.Horizontal, align.Mid,
			func(_ *font.Master, l *font.Layer) float64 { return align.WidthCenter(l.Width) }),
		bump("Bump Selection Up", align.Up),
		bump("Bump Selection Down", align.Down),
		distribute("Distribute Nodes Horizontally", funit.Horizontal),
		distribute("Distribute Nodes Vertically", funit.Vertical),
		{
			Title:    "Center Glyph in Width",
			Category: catAlign,
			Help:     "balance the sidebearings of the selected glyphs, keeping their widths",
			Run:      centerGlyphs,
		},
		{
			Title:    "Shift Selection",
			Category: catAlign,
			Help:     "args: dx dy; values in units or % of UPM",
			Run:      shiftSelection,
		},
		{
			Title:    "Align Anchor to Metrics",
			Category: catAlign,
			Help:     "arg: anchor name; moves it to cap height (uppercase) or x-height",
			Run:      alignAnchor,
		},
	}
}

// layersWithSelection returns the target layers having selected points.
// If there are none, the empty selection error is returned.
func layersWithSelection(ctx *Context) ([]*font.Layer, error) {
	var layers []*font.Layer
	for _, l := range ctx.Layers() {
		if len(l.Selection()) > 0 {
			layers = append(layers, l)
		}
	}
	if len(layers) == 0 {
		return nil, align.ErrEmptySelection
	}
	return layers, nil
}

func alignTo(title string, axis funit.Axis, e align.Extreme, ref reference) *Macro {
	return &Macro{
		Title:    title,
		Category: catAlign,
		Help:     "align the " + e.String() + " " + axis.String() + " of the selection",
		Run: func(ctx *Context) error {
			layers, err := layersWithSelection(ctx)
			if err != nil {
				return err
			}
			b := ctx.Begin(title, glyphsOf(layers)...)
			defer b.End()
			for _, l := range layers {
				sel := l.Selection()
				d, err := align.Align(sel, axis, e, ref(ctx.MasterOf(l), l))
				if err != nil {
					return err
				}
				if d != 0 {
					b.Changed()
				}
				ctx.Logf("%s: moved %d points by %s", l.Name(), len(sel), funit.Format(d))
			}
			return nil
		},
	}
}

func bump(title string, dir align.Direction) *Macro {
	return &Macro{
		Title:    title,
		Category: catAlign,
		Help:     "move the selection to the next metric line " + dir.String(),
		Run: func(ctx *Context) error {
			layers, err := layersWithSelection(ctx)
			if err != nil {
				return err
			}
			b := ctx.Begin(title, glyphsOf(layers)...)
			defer b.End()
			for _, l := range layers {
				line, d, err := align.Bump(l.Selection(), ctx.MasterOf(l).MetricLines(), dir)
				if err != nil {
					return err
				}
				if d != 0 {
					b.Changed()
				}
				ctx.Logf("%s: selection at %s (%s)", l.Name(), line.Name, funit.Format(line.Y))
			}
			return nil
		},
	}
}

func distribute(title string, axis funit.Axis) *Macro {
	return &Macro{
		Title:    title,
		Category: catAlign,
		Help:     "space selected nodes evenly along " + axis.String() + "; anchors stay",
		Run: func(ctx *Context) error {
			layers, err := layersWithSelection(ctx)
			if err != nil {
				return err
			}
			b := ctx.Begin(title, glyphsOf(layers)...)
			defer b.End()
			for _, l := range layers {
				sel := nodePoints(l)
				if len(sel) < 2 {
					ctx.Logf("%s: fewer than two nodes selected, nothing to distribute", l.Name())
					continue
				}
				if err := align.Distribute(sel, axis); err != nil {
					return err
				}
				b.Changed()
				ctx.Logf("%s: distributed %d nodes", l.Name(), len(sel))
			}
			return nil
		},
	}
}

// nodePoints returns the positions of the selected nodes of l, without anchors.
func nodePoints(l *font.Layer) []*funit.Point {
	var pts []*funit.Point
	for _, n := range l.SelectedNodes() {
		pts = append(pts, &n.Point)
	}
	return pts
}

func centerGlyphs(ctx *Context) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	b := ctx.Begin("Center Glyph in Width", ctx.Glyphs...)
	defer b.End()
	for _, g := range ctx.Glyphs {
		l := ctx.Layer(g)
		if l == nil {
			ctx.Logf("%s: no layer, skipped", g.Name)
			continue
		}
		lsb, ok := l.LSB()
		if !ok {
			ctx.Logf("%s: no outline, skipped", l.Name())
			continue
		}
		rsb, _ := l.RSB()
		dx := align.CenterInWidth(lsb, rsb)
		if dx != 0 {
			l.Shift(dx, 0)
			b.Changed()
		}
		ctx.Logf("%s: LSB %s -> %s", l.Name(), funit.Format(lsb), funit.Format(lsb+dx))
	}
	return nil
}

func shiftSelection(ctx *Context) error {
	dx, err := parseAmount(ctx.Arg(0, "0"), ctx.Font.UPM)
	if err != nil {
		return err
	}
	dy, err := parseAmount(ctx.Arg(1, "0"), ctx.Font.UPM)
	if err != nil {
		return err
	}
	layers, err := layersWithSelection(ctx)
	if err != nil {
		return err
	}
	if dx == 0 && dy == 0 {
		return core.Error(core.EUNCHANGED, "shift by zero")
	}
	b := ctx.Begin("Shift Selection", glyphsOf(layers)...)
	defer b.End()
	for _, l := range layers {
		sel := l.Selection()
		align.Translate(sel, funit.Horizontal, dx)
		align.Translate(sel, funit.Vertical, dy)
		ctx.Logf("%s: shifted %d points by %s", l.Name(), len(sel), funit.Point{X: dx, Y: dy})
	}
	b.Changed()
	return nil
}

// parseAmount parses a console argument. Percentages are relative to upm.
func parseAmount(s string, upm int) (float64, error) {
	v, percent, err := funit.ParseValue(s)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "not a valid amount: %q", s)
	}
	if percent {
		v = v * float64(upm) / 100
	}
	return v, nil
}

func alignAnchor(ctx *Context) error {
	name := ctx.Arg(0, ctx.Session.ConfigString("macros.anchor", "top"))
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	b := ctx.Begin("Align Anchor to Metrics", ctx.Glyphs...)
	defer b.End()
	for _, g := range ctx.Glyphs {
		l := ctx.Layer(g)
		if l == nil {
			continue
		}
		a, err := l.Anchor(name)
		if err != nil {
			ctx.Logf("%s: no anchor %s, skipped", l.Name(), name)
			continue
		}
		m := ctx.MasterOf(l)
		y, line := m.XHeight, "x-height"
		if g.IsUppercase() {
			y, line = m.CapHeight, "cap height"
		}
		if a.Y != y {
			a.Y = y
			b.Changed()
		}
		ctx.Logf("%s: anchor %s at %s", l.Name(), name, line)
	}
	return nil
}
