package sfntimport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/funit"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// MasterID is the ID of the single master of an imported font.
const MasterID = "m01"

// ImportFile reads a binary font file and converts it to a font document.
func ImportFile(path string) (*font.Font, error) {
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", path)
	}
	f, err := Import(bytez)
	if err != nil {
		return nil, err
	}
	if f.Family == "" {
		f.Family = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Import converts a binary OpenType/TrueType font to a font document.
// Coordinates are in font units of the binary font.
func Import(binary []byte) (*font.Font, error) {
	otf, err := sfnt.Parse(binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font: %v", err)
	}
	imp := &importer{otf: otf, upm: otf.UnitsPerEm()}
	return imp.document()
}

type importer struct {
	otf *sfnt.Font
	buf sfnt.Buffer
	upm sfnt.Units
}

// ppem selects a scale of 1 pixel per font unit.
func (imp *importer) ppem() fixed.Int26_6 {
	return fixed.Int26_6(imp.upm) << 6
}

func units(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func (imp *importer) document() (*font.Font, error) {
	f := &font.Font{UPM: int(imp.upm)}
	f.Family, _ = imp.otf.Name(&imp.buf, sfnt.NameIDFamily)
	f.Version, _ = imp.otf.Name(&imp.buf, sfnt.NameIDVersion)
	m, err := imp.master()
	if err != nil {
		return nil, err
	}
	f.Masters = []*font.Master{m}
	runes := imp.codepoints()
	names := make(map[string]bool)
	for i := 0; i < imp.otf.NumGlyphs(); i++ {
		gid := sfnt.GlyphIndex(i)
		g := &font.Glyph{Name: imp.glyphName(gid, names)}
		names[g.Name] = true
		for _, r := range runes[gid] {
			g.Unicodes = append(g.Unicodes, fmt.Sprintf("%04X", r))
		}
		if len(runes[gid]) > 0 {
			g.Category = category(runes[gid][0])
		}
		l, err := imp.layer(gid)
		if err != nil {
			tracer().Errorf("glyph %s: %v", g.Name, err)
			l = &font.Layer{Master: MasterID}
		}
		g.Layers = []*font.Layer{l}
		if err := f.AddGlyph(g); err != nil {
			return nil, err
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	tracer().Infof("imported font %s: UPM %d, %d glyphs", f.Family, f.UPM, len(f.Glyphs))
	return f, nil
}

func (imp *importer) master() (*font.Master, error) {
	metrics, err := imp.otf.Metrics(&imp.buf, imp.ppem(), xfont.HintingNone)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read font metrics: %v", err)
	}
	name, _ := imp.otf.Name(&imp.buf, sfnt.NameIDSubfamily)
	if name == "" {
		name = "Regular"
	}
	return &font.Master{
		ID:        MasterID,
		Name:      name,
		Ascender:  units(metrics.Ascent),
		CapHeight: units(metrics.CapHeight),
		XHeight:   units(metrics.XHeight),
		Descender: -units(metrics.Descent),
	}, nil
}

// codepoints maps glyph indices to the code points of the BMP mapped to them.
func (imp *importer) codepoints() map[sfnt.GlyphIndex][]rune {
	cmap := make(map[sfnt.GlyphIndex][]rune)
	for r := rune(0x20); r <= 0xFFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		gid, err := imp.otf.GlyphIndex(&imp.buf, r)
		if err != nil || gid == 0 {
			continue
		}
		cmap[gid] = append(cmap[gid], r)
	}
	return cmap
}

// glyphName returns the name of a glyph from the post table. Missing, invalid
// or duplicate names are replaced by a name derived from the glyph index.
func (imp *importer) glyphName(gid sfnt.GlyphIndex, taken map[string]bool) string {
	name, err := imp.otf.GlyphName(&imp.buf, gid)
	if err == nil && name != "" && !taken[name] && font.ValidateGlyphName(name) == nil {
		return name
	}
	return fmt.Sprintf("gid%d", gid)
}

func (imp *importer) layer(gid sfnt.GlyphIndex) (*font.Layer, error) {
	adv, err := imp.otf.GlyphAdvance(&imp.buf, gid, imp.ppem(), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	l := &font.Layer{Master: MasterID, Width: units(adv)}
	segs, err := imp.otf.LoadGlyph(&imp.buf, gid, imp.ppem(), nil)
	if err != nil {
		return l, err
	}
	l.Paths = paths(segs)
	return l, nil
}

// paths converts sfnt segments to closed paths. sfnt's y-axis points down.
func paths(segs sfnt.Segments) []*font.Path {
	var result []*font.Path
	var p *font.Path
	node := func(pt fixed.Point26_6, t font.NodeType) *font.Node {
		return &font.Node{Point: funit.Point{X: units(pt.X), Y: -units(pt.Y)}, Type: t}
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if p != nil {
				result = append(result, closePath(p))
			}
			p = &font.Path{Closed: true}
			p.Nodes = append(p.Nodes, node(s.Args[0], font.Line))
		case sfnt.SegmentOpLineTo:
			p.Nodes = append(p.Nodes, node(s.Args[0], font.Line))
		case sfnt.SegmentOpQuadTo:
			p.Nodes = append(p.Nodes, node(s.Args[0], font.OffCurve), node(s.Args[1], font.QCurve))
		case sfnt.SegmentOpCubeTo:
			p.Nodes = append(p.Nodes, node(s.Args[0], font.OffCurve), node(s.Args[1], font.OffCurve),
				node(s.Args[2], font.Curve))
		}
	}
	if p != nil {
		result = append(result, closePath(p))
	}
	return result
}

// closePath merges the final on-curve node into the start node if they
// coincide.
func closePath(p *font.Path) *font.Path {
	n := len(p.Nodes)
	if n < 2 {
		return p
	}
	first, last := p.Nodes[0], p.Nodes[n-1]
	if last.IsOnCurve() && last.Point == first.Point {
		first.Type = last.Type
		p.Nodes = p.Nodes[:n-1]
	}
	return p
}

func category(r rune) string {
	switch {
	case unicode.Is(unicode.Mn, r):
		return "Mark"
	case unicode.IsLetter(r):
		return "Letter"
	case unicode.IsNumber(r):
		return "Number"
	case unicode.IsPunct(r):
		return "Punctuation"
	case unicode.IsSpace(r):
		return "Separator"
	case unicode.IsSymbol(r):
		return "Symbol"
	}
	return ""
}

// --- Fallback font ---------------------------------------------------------

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else fails.
var fallbackFont *font.Font

// FallbackFont returns a document for Go Sans Regular, which is always present.
// Clients must not modify it; use Import(goregular.TTF) for an editable copy.
func FallbackFont() *font.Font {
	fallbackFontLoading.Do(func() {
		f, err := Import(goregular.TTF)
		if err != nil {
			panic("cannot load default font") // this cannot happen
		}
		f.Family = "Go Sans"
		fallbackFont = f
	})
	return fallbackFont
}
