package macros

import (
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
)

const catDelete = "Delete"

func deleteMacros() []*Macro {
	return []*Macro{
		deleteAnchors("Delete All Anchors", "", func(*Context) (font.AnchorPredicate, error) {
			return font.AnyAnchor, nil
		}),
		deleteAnchors("Delete Mark Anchors", "anchors with the mark prefix (default _)",
			func(ctx *Context) (font.AnchorPredicate, error) {
				prefix := ctx.Session.ConfigString("macros.markprefix", "_")
				return font.AnchorPrefixed(prefix), nil
			}),
		deleteAnchors("Delete Anchors Named", "arg: anchor name",
			func(ctx *Context) (font.AnchorPredicate, error) {
				name := ctx.Arg(0, "")
				if name == "" {
					return nil, core.Error(core.EINVALID, "anchor name missing")
				}
				return font.AnchorNamed(name), nil
			}),
		deleteHints("Delete All Hints", font.AnyHint),
		deleteHints("Delete Horizontal Stem Hints", font.StemHints(true)),
		deleteHints("Delete Vertical Stem Hints", font.StemHints(false)),
		deleteHints("Delete Corner Components",
			font.HintOfType(font.Corner, font.Cap, font.Brush, font.Segment)),
		deleteHints("Delete TrueType Instructions",
			font.HintOfType(font.TTStem, font.TTAlign, font.TTInterpolate, font.TTDelta)),
		{
			Title:    "Delete Local Guides",
			Category: catDelete,
			Help:     "remove guides of the selected glyphs",
			Run: func(ctx *Context) error {
				return deleteGuides(ctx, "Delete Local Guides", true, false, font.AnyGuide)
			},
		},
		{
			Title:    "Delete Global Guides",
			Category: catDelete,
			Help:     "remove unlocked guides of the active master",
			Run: func(ctx *Context) error {
				return deleteGuides(ctx, "Delete Global Guides", false, true, font.UnlockedGuide)
			},
		},
		{
			Title:    "Delete All Guides",
			Category: catDelete,
			Help:     "remove local guides and unlocked guides of the active master",
			Run: func(ctx *Context) error {
				return deleteGuides(ctx, "Delete All Guides", true, true, font.UnlockedGuide)
			},
		},
	}
}

func deleteAnchors(title, help string, pred func(*Context) (font.AnchorPredicate, error)) *Macro {
	if help == "" {
		help = "remove anchors from the selected glyphs"
	}
	return &Macro{
		Title:    title,
		Category: catDelete,
		Help:     help,
		Run: func(ctx *Context) error {
			p, err := pred(ctx)
			if err != nil {
				return err
			}
			return deleteFromLayers(ctx, title, "anchors", func(l *font.Layer) int {
				return l.DeleteAnchors(p)
			})
		},
	}
}

func deleteHints(title string, pred font.HintPredicate) *Macro {
	return &Macro{
		Title:    title,
		Category: catDelete,
		Help:     "remove hints from the selected glyphs",
		Run: func(ctx *Context) error {
			return deleteFromLayers(ctx, title, "hints", func(l *font.Layer) int {
				return l.DeleteHints(pred)
			})
		},
	}
}

// deleteFromLayers applies a deletion to the layers of all selected glyphs
// and logs the count per glyph.
func deleteFromLayers(ctx *Context, title, what string, del func(*font.Layer) int) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	b := ctx.Begin(title, ctx.Glyphs...)
	defer b.End()
	total := 0
	for _, g := range ctx.Glyphs {
		l := ctx.Layer(g)
		if l == nil {
			continue
		}
		if n := del(l); n > 0 {
			total += n
			ctx.Logf("%s: deleted %d %s", l.Name(), n, what)
		}
	}
	if total == 0 {
		ctx.Logf("no %s deleted", what)
		return nil
	}
	b.Changed()
	return nil
}

func deleteGuides(ctx *Context, title string, local, global bool, pred font.GuidePredicate) error {
	if local {
		if err := ctx.requireGlyphs(); err != nil {
			return err
		}
	}
	b := ctx.Begin(title)
	defer b.End()
	total := 0
	if local {
		b.Include(ctx.Glyphs...)
		for _, g := range ctx.Glyphs {
			if l := ctx.Layer(g); l != nil {
				if n := l.DeleteGuides(font.AnyGuide); n > 0 {
					total += n
					ctx.Logf("%s: deleted %d guides", l.Name(), n)
				}
			}
		}
	}
	if global && ctx.Master != nil {
		b.IncludeMasters(ctx.Master)
		if n := ctx.Master.DeleteGuides(pred); n > 0 {
			total += n
			ctx.Logf("%s: deleted %d guides", ctx.Master, n)
		}
	}
	if total > 0 {
		b.Changed()
	} else {
		ctx.Logf("no guides deleted")
	}
	return nil
}
