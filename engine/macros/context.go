package macros

import (
	"strings"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/engine/edit"
)

// Context holds everything a macro operates on. Macros do not access any
// global state.
type Context struct {
	Session *edit.Session
	Font    *font.Font
	Master  *font.Master
	Glyphs  []*font.Glyph // selected glyphs
	Console edit.Console
	Args    []string
}

// NewContext creates a context for the current state of a session. If the
// session has no open font, a context without font is returned together
// with an error.
func NewContext(sess *edit.Session, args ...string) (*Context, error) {
	ctx := &Context{
		Session: sess,
		Console: sess.Console,
		Args:    args,
	}
	f, err := sess.RequireFont()
	if err != nil {
		return ctx, err
	}
	ctx.Font = f
	ctx.Master = sess.Master()
	ctx.Glyphs = sess.Selected()
	return ctx, nil
}

// Logf writes to the macro console.
func (ctx *Context) Logf(format string, v ...interface{}) {
	ctx.Console.Logf(format, v...)
}

// Arg returns argument number i, or def if there is no such argument.
func (ctx *Context) Arg(i int, def string) string {
	if i < len(ctx.Args) && strings.TrimSpace(ctx.Args[i]) != "" {
		return ctx.Args[i]
	}
	return def
}

// Layer returns the layer of g macros should operate on.
func (ctx *Context) Layer(g *font.Glyph) *font.Layer {
	return ctx.Session.Layer(g)
}

// Layers returns the layers of the selected glyphs.
func (ctx *Context) Layers() []*font.Layer {
	return ctx.Session.Layers()
}

// MasterOf returns the master of layer l. This may differ from the active
// master if l is a fallback layer.
func (ctx *Context) MasterOf(l *font.Layer) *font.Master {
	if ctx.Master != nil && l.Master == ctx.Master.ID {
		return ctx.Master
	}
	if m, err := ctx.Font.Master(l.Master); err == nil {
		return m
	}
	return ctx.Master
}

// Begin opens a batch on the session.
func (ctx *Context) Begin(title string, glyphs ...*font.Glyph) *edit.Batch {
	return ctx.Session.Begin(title, glyphs...)
}

// requireGlyphs checks for a non-empty glyph selection.
func (ctx *Context) requireGlyphs() error {
	if len(ctx.Glyphs) == 0 {
		return core.Error(core.ENOSELECTION, "no glyphs selected")
	}
	return nil
}

func glyphsOf(layers []*font.Layer) []*font.Glyph {
	glyphs := make([]*font.Glyph, 0, len(layers))
	for _, l := range layers {
		if g := l.Glyph(); g != nil {
			glyphs = append(glyphs, g)
		}
	}
	return glyphs
}
