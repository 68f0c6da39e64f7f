package fontquery

import (
	"strconv"
	"strings"

	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/funit"
)

// element is a node of the query tree. Elements are created from a font
// document for each query and are never modified afterwards.
type element struct {
	name     string // empty for the document root
	attrs    []attr
	parent   *element
	children []*element
	index    int         // position within parent's children
	glyph    *font.Glyph // owning glyph, nil outside of glyphs
}

type attr struct {
	key, val string
}

func (e *element) set(key, val string) *element {
	e.attrs = append(e.attrs, attr{key, val})
	return e
}

func (e *element) setNum(key string, v float64) *element {
	return e.set(key, funit.Format(v))
}

func (e *element) setBool(key string, b bool) *element {
	return e.set(key, strconv.FormatBool(b))
}

func (e *element) add(name string) *element {
	c := &element{name: name, parent: e, index: len(e.children), glyph: e.glyph}
	e.children = append(e.children, c)
	return c
}

// buildTree creates the query tree for a font. The root of the tree is the
// document node, having the font element as its only child.
func buildTree(f *font.Font) *element {
	root := &element{}
	fe := root.add("font").set("family", f.Family).set("upm", strconv.Itoa(f.UPM))
	if f.Version != "" {
		fe.set("version", f.Version)
	}
	for _, m := range f.Masters {
		me := fe.add("master").set("id", m.ID).set("name", m.Name).
			setNum("ascender", m.Ascender).setNum("capHeight", m.CapHeight).
			setNum("xHeight", m.XHeight).setNum("descender", m.Descender)
		for _, g := range m.Guides {
			guideElement(me, g)
		}
	}
	for _, g := range f.Glyphs {
		ge := fe.add("glyph")
		ge.glyph = g
		ge.set("name", g.Name)
		if len(g.Unicodes) > 0 {
			ge.set("unicode", strings.ToUpper(g.Unicodes[0]))
		}
		if g.Category != "" {
			ge.set("category", g.Category)
		}
		ge.setBool("export", !g.NoExport)
		for _, l := range g.Layers {
			layerElement(ge, l)
		}
	}
	return root
}

func layerElement(parent *element, l *font.Layer) {
	le := parent.add("layer").set("master", l.Master).setNum("width", l.Width)
	if lsb, ok := l.LSB(); ok {
		rsb, _ := l.RSB()
		le.setNum("lsb", lsb).setNum("rsb", rsb)
	}
	for _, p := range l.Paths {
		pe := le.add("path").setBool("closed", p.Closed).set("nodes", strconv.Itoa(len(p.Nodes)))
		for _, n := range p.Nodes {
			pe.add("node").setNum("x", n.X).setNum("y", n.Y).set("type", string(n.Type)).
				setBool("selected", n.Selected)
		}
	}
	for _, a := range l.Anchors {
		le.add("anchor").set("name", a.Name).setNum("x", a.X).setNum("y", a.Y)
	}
	for _, h := range l.Hints {
		he := le.add("hint").set("type", string(h.Type)).setBool("horizontal", h.Horizontal)
		if h.Name != "" {
			he.set("name", h.Name)
		}
	}
	for _, g := range l.Guides {
		guideElement(le, g)
	}
	for _, c := range l.Components {
		le.add("component").set("glyph", c.Glyph).setNum("x", c.Offset.X).setNum("y", c.Offset.Y)
	}
}

func guideElement(parent *element, g *font.Guide) {
	ge := parent.add("guide").setNum("x", g.X).setNum("y", g.Y).setNum("angle", g.Angle).
		setBool("locked", g.Locked)
	if g.Name != "" {
		ge.set("name", g.Name)
	}
}
