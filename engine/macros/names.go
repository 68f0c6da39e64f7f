package macros

import (
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/engine/edit"
)

const catNames = "Glyph Names"

func nameMacros() []*Macro {
	return []*Macro{
		{
			Title:    "Lowercase Glyph Names",
			Category: catNames,
			Help:     "lowercase the base names of the selected glyphs, keeping suffixes",
			Run:      lowercaseNames,
		},
		{
			Title:    "Rename Glyph",
			Category: catNames,
			Help:     "arg: new name; renames the single selected glyph",
			Run:      renameGlyph,
		},
		{
			Title:    "Validate Glyph Names",
			Category: catNames,
			Help:     "report invalid names of the selected glyphs, or of all glyphs",
			Run:      validateNames,
		},
	}
}

func lowercaseNames(ctx *Context) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	b := ctx.Begin("Lowercase Glyph Names")
	defer b.End()
	for _, g := range ctx.Glyphs {
		newName := font.LowercaseBaseName(g.Name)
		if err := rename(ctx, b, g, newName); err != nil {
			if !core.IsRecoverable(err) && core.Code(err) != core.EINVALID {
				return err
			}
			ctx.Logf("%s: %s", g.Name, core.UserMessage(err))
		}
	}
	return nil
}

func renameGlyph(ctx *Context) error {
	if err := ctx.requireGlyphs(); err != nil {
		return err
	}
	if len(ctx.Glyphs) > 1 {
		return core.Error(core.EINVALID, "select a single glyph to rename")
	}
	newName := ctx.Arg(0, "")
	if newName == "" {
		return core.Error(core.EINVALID, "new glyph name missing")
	}
	b := ctx.Begin("Rename Glyph")
	defer b.End()
	return rename(ctx, b, ctx.Glyphs[0], newName)
}

// rename renames a glyph within a batch. Glyphs referencing g as a component
// are included in the batch, as renaming updates them.
func rename(ctx *Context, b *edit.Batch, g *font.Glyph, newName string) error {
	if g.Name == newName {
		return core.Error(core.EUNCHANGED, "unchanged")
	}
	b.Include(g)
	b.Include(ctx.Font.GlyphsUsing(g.Name)...)
	oldName := g.Name
	if err := ctx.Font.RenameGlyph(g, newName); err != nil {
		return err
	}
	b.Changed()
	ctx.Logf("%s -> %s", oldName, newName)
	return nil
}

func validateNames(ctx *Context) error {
	glyphs := ctx.Glyphs
	if len(glyphs) == 0 {
		glyphs = ctx.Font.Glyphs
	}
	invalid := 0
	for _, g := range glyphs {
		if err := font.ValidateGlyphName(g.Name); err != nil {
			invalid++
			ctx.Logf("%s: %s", g.Name, core.UserMessage(err))
		}
	}
	ctx.Logf("%d of %d glyph names invalid", invalid, len(glyphs))
	return nil
}
