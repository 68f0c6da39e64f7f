package macros

import (
	"strings"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/font/fontquery"
	"github.com/npillmayer/fontmacros/engine/tabs"
)

const catTabs = "Tabs"

func tabMacros() []*Macro {
	return []*Macro{
		{
			Title:    "Open Tab with Pair Combinations",
			Category: catTabs,
			Help:     "all pairs of the selected glyphs",
			Run:      pairTab,
		},
		{
			Title:    "Open Tab with Spacing Strings",
			Category: catTabs,
			Help:     "spacing strings for the selected glyphs",
			Run:      spacingTab,
		},
		{
			Title:    "Open Tab with Glyphs Missing Anchor",
			Category: catTabs,
			Help:     "arg: anchor name (default from config, else top)",
			Run:      missingAnchorTab,
		},
		{
			Title:    "Open Tab with Composite Glyphs",
			Category: catTabs,
			Help:     "glyphs built from components",
			Run:      compositeTab,
		},
		{
			Title:    "Open Tab from Query",
			Category: catTabs,
			Help:     "arg: XPath expression, e.g. //glyph[@category='Mark']",
			Run:      queryTab,
		},
		{
			Title:    "Open Tab from Text",
			Category: catTabs,
			Help:     `args: tab text, e.g. HO/A.sc OH\nnon`,
			Run:      textTab,
		},
	}
}

func openTab(ctx *Context, title string, items []tabs.Item) error {
	if len(items) == 0 {
		return core.Error(core.EMISSING, "nothing to show in tab %q", title)
	}
	t := tabs.NewBuilder().Add(items...).Tab(title)
	i := ctx.Session.OpenTab(t)
	ctx.Logf("opened tab #%d %q: %s", i, title, t.Text())
	return nil
}

func selectedNames(ctx *Context) []string {
	names := make([]string, len(ctx.Glyphs))
	for i, g := range ctx.Glyphs {
		names[i] = g.Name
	}
	return names
}

func pairTab(ctx *Context) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	return openTab(ctx, "Pairs", tabs.Pairs(selectedNames(ctx)))
}

func spacingTab(ctx *Context) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	upper := ctx.Session.ConfigString("macros.spacing.upper", "HH{g}HOHO{g}OO")
	lower := ctx.Session.ConfigString("macros.spacing.lower", "nn{g}nono{g}oo")
	var items []tabs.Item
	for i, g := range ctx.Glyphs {
		if i > 0 {
			items = append(items, tabs.NewlineItem())
		}
		pattern := lower
		if g.IsUppercase() {
			pattern = upper
		}
		items = append(items, tabs.Spacing(pattern, g.Name, ctx.Font)...)
	}
	return openTab(ctx, "Spacing", items)
}

// glyphTab opens a tab with all glyphs of the font satisfying a predicate.
func glyphTab(ctx *Context, title string, pred func(*font.Glyph) bool) error {
	var items []tabs.Item
	for _, g := range ctx.Font.Glyphs {
		if pred(g) {
			items = append(items, tabs.GlyphItem(g.Name))
		}
	}
	return openTab(ctx, title, items)
}

func missingAnchorTab(ctx *Context) error {
	name := ctx.Arg(0, ctx.Session.ConfigString("macros.anchor", "top"))
	return glyphTab(ctx, "Missing "+name, func(g *font.Glyph) bool {
		l := ctx.Layer(g)
		if l == nil {
			return false
		}
		_, err := l.Anchor(name)
		return err != nil
	})
}

func compositeTab(ctx *Context) error {
	return glyphTab(ctx, "Composites", func(g *font.Glyph) bool {
		l := ctx.Layer(g)
		return l != nil && len(l.Components) > 0
	})
}

func queryTab(ctx *Context) error {
	expr := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if expr == "" {
		return core.Error(core.EINVALID, "query missing")
	}
	glyphs, err := fontquery.Glyphs(ctx.Font, expr)
	if err != nil {
		return err
	}
	items := make([]tabs.Item, len(glyphs))
	for i, g := range glyphs {
		items[i] = tabs.GlyphItem(g.Name)
	}
	return openTab(ctx, expr, items)
}

func textTab(ctx *Context) error {
	text := strings.Join(ctx.Args, " ")
	if text == "" {
		return core.Error(core.EINVALID, "tab text missing")
	}
	return openTab(ctx, "Text", tabs.Parse(text, ctx.Font))
}
