package font

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/funit"
)

// Font is an editable font document.
type Font struct {
	Family     string            `yaml:"family"`
	UPM        int               `yaml:"upm"`
	Version    string            `yaml:"version,omitempty"`
	Masters    []*Master         `yaml:"masters"`
	Glyphs     []*Glyph          `yaml:"glyphs"`
	Parameters map[string]string `yaml:"parameters,omitempty"`
	Filepath   string            `yaml:"-"` // file the document has been loaded from
}

// Master is a named design extreme, defining vertical metrics.
type Master struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Ascender    float64  `yaml:"ascender"`
	CapHeight   float64  `yaml:"capHeight"`
	XHeight     float64  `yaml:"xHeight"`
	Descender   float64  `yaml:"descender"`
	ItalicAngle float64  `yaml:"italicAngle,omitempty"`
	Guides      []*Guide `yaml:"guides,omitempty"`
}

// Glyph is a named drawing, with one layer per master.
type Glyph struct {
	Name     string   `yaml:"name"`
	Unicodes []string `yaml:"unicodes,omitempty"` // hex code points, e.g. "00C4"
	Category string   `yaml:"category,omitempty"`
	NoExport bool     `yaml:"noExport,omitempty"`
	Layers   []*Layer `yaml:"layers"`
}

// Layer is the master-specific outline of a glyph.
type Layer struct {
	Master     string       `yaml:"master"`
	Width      float64      `yaml:"width"`
	Paths      []*Path      `yaml:"paths,omitempty"`
	Anchors    []*Anchor    `yaml:"anchors,omitempty"`
	Hints      []*Hint      `yaml:"hints,omitempty"`
	Guides     []*Guide     `yaml:"guides,omitempty"`
	Components []*Component `yaml:"components,omitempty"`
	glyph      *Glyph
}

// --- Font ------------------------------------------------------------------

// Glyph returns the glyph with a given name.
func (f *Font) Glyph(name string) (*Glyph, bool) {
	for _, g := range f.Glyphs {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// LookupGlyph is like Glyph, but returns an application error with code EMISSING
// if no glyph named name exists.
func (f *Font) LookupGlyph(name string) (*Glyph, error) {
	if g, ok := f.Glyph(name); ok {
		return g, nil
	}
	return nil, core.Error(core.EMISSING, "no glyph named %q", name)
}

// GlyphForRune returns the glyph carrying code point r, if any.
func (f *Font) GlyphForRune(r rune) (*Glyph, bool) {
	for _, g := range f.Glyphs {
		for _, u := range g.Runes() {
			if u == r {
				return g, true
			}
		}
	}
	return nil, false
}

// Master finds a master by ID or by name (case-insensitive).
func (f *Font) Master(idOrName string) (*Master, error) {
	for _, m := range f.Masters {
		if m.ID == idOrName {
			return m, nil
		}
	}
	for _, m := range f.Masters {
		if strings.EqualFold(m.Name, idOrName) {
			return m, nil
		}
	}
	return nil, core.Error(core.EMISSING, "no master %q in font %s", idOrName, f.Family)
}

// AddGlyph appends a glyph to the font. Glyph names have to be valid and
// unique within a font.
func (f *Font) AddGlyph(g *Glyph) error {
	if err := ValidateGlyphName(g.Name); err != nil {
		return err
	}
	if _, exists := f.Glyph(g.Name); exists {
		return core.Error(core.EINVALID, "glyph %q already exists", g.Name)
	}
	g.link()
	f.Glyphs = append(f.Glyphs, g)
	return nil
}

// RenameGlyph renames glyph g to newName. Components referencing the glyph
// are updated. If newName equals the current name, an error with code EUNCHANGED
// is returned; if another glyph is named newName, the error code is EINVALID.
func (f *Font) RenameGlyph(g *Glyph, newName string) error {
	if g.Name == newName {
		return core.Error(core.EUNCHANGED, "%s unchanged", g.Name)
	}
	if err := ValidateGlyphName(newName); err != nil {
		return err
	}
	if _, exists := f.Glyph(newName); exists {
		return core.Error(core.EINVALID, "cannot rename %s: glyph %s already exists", g.Name, newName)
	}
	tracer().Debugf("rename glyph %s -> %s", g.Name, newName)
	for _, other := range f.Glyphs {
		for _, l := range other.Layers {
			for _, c := range l.Components {
				if c.Glyph == g.Name {
					c.Glyph = newName
				}
			}
		}
	}
	g.Name = newName
	return nil
}

// GlyphsUsing returns all glyphs having a component referencing name.
func (f *Font) GlyphsUsing(name string) []*Glyph {
	var users []*Glyph
	for _, g := range f.Glyphs {
		if g.usesComponent(name) {
			users = append(users, g)
		}
	}
	return users
}

func (f *Font) link() {
	for _, g := range f.Glyphs {
		g.link()
	}
}

// --- Master ----------------------------------------------------------------

// MetricLine is a horizontal reference line of a master.
type MetricLine struct {
	Name string
	Y    float64
}

// MetricLines returns the metric lines of a master, sorted from bottom to top.
func (m *Master) MetricLines() []MetricLine {
	lines := []MetricLine{
		{"descender", m.Descender},
		{"baseline", 0},
		{"x-height", m.XHeight},
		{"cap height", m.CapHeight},
		{"ascender", m.Ascender},
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Y < lines[j].Y
	})
	return lines
}

func (m *Master) String() string {
	return fmt.Sprintf("master %s(%s)", m.Name, m.ID)
}

// --- Glyph -----------------------------------------------------------------

// Layer returns the layer of g for master ID masterID.
func (g *Glyph) Layer(masterID string) (*Layer, bool) {
	for _, l := range g.Layers {
		if l.Master == masterID {
			return l, true
		}
	}
	return nil, false
}

// LayerOrFirst returns the layer of g for master ID masterID. If g does not have
// a layer for this master, LayerOrFirst falls back to the first layer of g and
// flags this with fallback=true. If g has no layers at all, nil is returned.
func (g *Glyph) LayerOrFirst(masterID string) (l *Layer, fallback bool) {
	if l, ok := g.Layer(masterID); ok {
		return l, false
	}
	if len(g.Layers) == 0 {
		return nil, true
	}
	tracer().Infof("glyph %s has no layer for master %s, using %s", g.Name, masterID, g.Layers[0].Master)
	return g.Layers[0], true
}

// Runes returns the Unicode code points of g. Malformed entries are skipped.
func (g *Glyph) Runes() []rune {
	var runes []rune
	for _, u := range g.Unicodes {
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(u), "U+"), 16, 32)
		if err != nil {
			tracer().Errorf("glyph %s has malformed unicode value %q", g.Name, u)
			continue
		}
		runes = append(runes, rune(n))
	}
	return runes
}

// IsUppercase is a heuristic predicate: is g an uppercase letter?
// It checks the glyph's code points first, then the first letter of its name.
func (g *Glyph) IsUppercase() bool {
	if runes := g.Runes(); len(runes) > 0 {
		return isUpper(runes[0])
	}
	for _, r := range g.Name {
		return isUpper(r)
	}
	return false
}

func (g *Glyph) usesComponent(name string) bool {
	for _, l := range g.Layers {
		for _, c := range l.Components {
			if c.Glyph == name {
				return true
			}
		}
	}
	return false
}

func (g *Glyph) link() {
	for _, l := range g.Layers {
		l.glyph = g
	}
}

func (g *Glyph) String() string {
	return "/" + g.Name
}

// --- Layer -----------------------------------------------------------------

// Glyph returns the glyph a layer belongs to.
func (l *Layer) Glyph() *Glyph {
	return l.glyph
}

// Name returns a descriptive name for a layer.
func (l *Layer) Name() string {
	if l.glyph == nil {
		return "<unlinked>@" + l.Master
	}
	return l.glyph.Name + "@" + l.Master
}

// Bounds returns the bounding box of the outline of a layer, i.e. of all nodes
// of all paths, including off-curve points. Components are not resolved.
func (l *Layer) Bounds() (funit.Rect, bool) {
	var pts []funit.Point
	for _, p := range l.Paths {
		for _, n := range p.Nodes {
			pts = append(pts, n.Point)
		}
	}
	return funit.Bounds(pts...)
}

// LSB returns the left sidebearing of a layer. Layers without an outline
// do not have sidebearings.
func (l *Layer) LSB() (float64, bool) {
	b, ok := l.Bounds()
	return b.Min.X, ok
}

// RSB returns the right sidebearing of a layer.
func (l *Layer) RSB() (float64, bool) {
	b, ok := l.Bounds()
	return l.Width - b.Max.X, ok
}

// Shift moves everything positioned in a layer: nodes, anchors, components and
// hint origins. The advance width is unchanged.
func (l *Layer) Shift(dx, dy float64) {
	v := funit.Point{X: dx, Y: dy}
	for _, p := range l.Paths {
		for _, n := range p.Nodes {
			n.Shift(v)
		}
	}
	for _, a := range l.Anchors {
		a.Shift(v)
	}
	for _, c := range l.Components {
		c.Offset.Shift(v)
	}
	for _, h := range l.Hints {
		h.Origin.Shift(v)
	}
}

// Anchor returns the anchor named name. If it does not exist, an error with
// code EMISSING is returned.
func (l *Layer) Anchor(name string) (*Anchor, error) {
	for _, a := range l.Anchors {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, core.Error(core.EMISSING, "%s has no anchor %q", l.Name(), name)
}
