package font

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type DocumentTestEnviron struct {
	suite.Suite
	demo *Font
}

// listen for 'go test' command --> run test methods
func TestDocumentFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.font")
	defer teardown()
	suite.Run(t, new(DocumentTestEnviron))
}

// run before each test method, as tests mutate the document
func (env *DocumentTestEnviron) SetupTest() {
	tracing.Select("fontmacros.font").SetTraceLevel(tracing.LevelError)
	env.demo = loadDemoFont(env.T())
	tracing.Select("fontmacros.font").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *DocumentTestEnviron) TestLoad() {
	env.Equal("Demo Sans", env.demo.Family)
	env.Len(env.demo.Masters, 2)
	g, ok := env.demo.Glyph("A")
	env.Require().True(ok, "expected glyph A in demo font")
	l, ok := g.Layer("m01")
	env.Require().True(ok)
	env.Same(g, l.Glyph(), "layer should be linked to its glyph")
	env.Equal("A@m01", l.Name())
	env.Equal([]rune{'A'}, g.Runes())
	_, err := env.demo.LookupGlyph("B")
	env.Equal(core.EMISSING, core.Code(err))
}

func (env *DocumentTestEnviron) TestMasterLookup() {
	m, err := env.demo.Master("bold")
	env.Require().NoError(err)
	env.Equal("m02", m.ID)
	m, err = env.demo.Master("m01")
	env.Require().NoError(err)
	env.Equal("Regular", m.Name)
	_, err = env.demo.Master("Black")
	env.Equal(core.EMISSING, core.Code(err))
}

func (env *DocumentTestEnviron) TestMetricLines() {
	m, _ := env.demo.Master("m01")
	lines := m.MetricLines()
	env.Require().Len(lines, 5)
	want := []float64{-250, 0, 500, 700, 750}
	for i, l := range lines {
		env.Equal(want[i], l.Y, "metric line %s out of order", l.Name)
	}
}

func (env *DocumentTestEnviron) TestSidebearings() {
	g, _ := env.demo.Glyph("A")
	l, _ := g.Layer("m01")
	lsb, ok := l.LSB()
	env.True(ok)
	env.Equal(10.0, lsb)
	rsb, _ := l.RSB()
	env.Equal(10.0, rsb)
	p, _ := env.demo.Glyph("period")
	_, ok = p.Layers[0].LSB()
	env.False(ok, "empty layer should not have sidebearings")
}

func (env *DocumentTestEnviron) TestSelection() {
	g, _ := env.demo.Glyph("A")
	l, _ := g.Layer("m01")
	sel := l.Selection()
	env.Len(sel, 2, "expected two selected nodes in demo A")
	sel[0].Y = 42
	env.Equal(42.0, l.Paths[0].Nodes[0].Y, "selection should reference nodes")
	l.DeselectAll()
	env.Empty(l.Selection())
	env.Equal(1, l.SelectAnchors("top", "nonexisting"))
	env.NoError(l.SelectNode(0, 1))
	env.Len(l.Selection(), 2)
	env.Len(l.SelectedNodes(), 1)
	env.Equal(core.EMISSING, core.Code(l.SelectNode(3, 0)))
}

func (env *DocumentTestEnviron) TestLayerFallback() {
	g, _ := env.demo.Glyph("n")
	l, fallback := g.LayerOrFirst("m02")
	env.True(fallback)
	env.Equal("m01", l.Master)
	l, fallback = g.LayerOrFirst("m01")
	env.False(fallback)
	env.Equal("m01", l.Master)
}

func (env *DocumentTestEnviron) TestDeleteKeepsOrder() {
	g, _ := env.demo.Glyph("A")
	l, _ := g.Layer("m01")
	n := l.DeleteAnchors(AnchorPrefixed("_"))
	env.Equal(1, n)
	env.Equal([]string{"top", "bottom"}, anchorNames(l))
	n = l.DeleteHints(StemHints(true))
	env.Equal(2, n, "expected PS and TT horizontal stems to be deleted")
	env.Require().Len(l.Hints, 2)
	env.Equal(Stem, l.Hints[0].Type)
	env.Equal(Corner, l.Hints[1].Type)
	env.Equal(1, l.DeleteHints(HintOfType(Corner, Cap, Brush, Segment)))
	env.Equal(0, l.DeleteAnchors(AnchorNamed("nonexisting")))
	env.Equal(2, l.DeleteAnchors(AnyAnchor))
	env.Nil(l.Anchors)
	m, _ := env.demo.Master("m01")
	env.Equal(1, m.DeleteGuides(UnlockedGuide))
	env.Require().Len(m.Guides, 1)
	env.Equal("locked", m.Guides[0].Name)
}

func (env *DocumentTestEnviron) TestDeleteAdjacentMatches() {
	l := &Layer{Anchors: []*Anchor{
		{Name: "_a"}, {Name: "_b"}, {Name: "keep1"}, {Name: "_c"}, {Name: "keep2"}, {Name: "_d"},
	}}
	n := l.DeleteAnchors(AnchorPrefixed("_"))
	env.Equal(4, n, "adjacent matches must not be skipped")
	env.Equal([]string{"keep1", "keep2"}, anchorNames(l))
}

func (env *DocumentTestEnviron) TestRename() {
	g, _ := env.demo.Glyph("A")
	err := env.demo.RenameGlyph(g, "A")
	env.Equal(core.EUNCHANGED, core.Code(err))
	err = env.demo.RenameGlyph(g, "n")
	env.Equal(core.EINVALID, core.Code(err), "rename to existing glyph must fail")
	err = env.demo.RenameGlyph(g, "1A")
	env.Equal(core.EINVALID, core.Code(err))
	env.NoError(env.demo.RenameGlyph(g, "a"))
	adieresis, _ := env.demo.Glyph("Adieresis")
	env.Equal("a", adieresis.Layers[0].Components[0].Glyph, "component reference should follow rename")
	env.Len(env.demo.GlyphsUsing("a"), 1)
}

func (env *DocumentTestEnviron) TestCloneRestore() {
	g, _ := env.demo.Glyph("A")
	snap := g.Clone()
	l, _ := g.Layer("m01")
	l.Shift(5, 0)
	l.DeleteAnchors(AnyAnchor)
	g.Name = "Changed"
	env.NotEqual(snap.Name, g.Name)
	g.Restore(snap)
	env.Equal("A", g.Name)
	l, _ = g.Layer("m01")
	env.Same(g, l.Glyph())
	env.Len(l.Anchors, 3)
	env.Equal(10.0, l.Paths[0].Nodes[0].X)
	snapNode := snap.Layers[0].Paths[0].Nodes[0]
	l.Paths[0].Nodes[0].X = 99
	env.Equal(10.0, snapNode.X, "restore must not alias the snapshot")
}

func (env *DocumentTestEnviron) TestRoundTrip() {
	var buf bytes.Buffer
	env.Require().NoError(env.demo.Encode(&buf))
	f, err := Decode(&buf)
	env.Require().NoError(err)
	opts := []cmp.Option{
		cmpopts.IgnoreUnexported(Layer{}),
		cmpopts.IgnoreFields(Font{}, "Filepath"),
	}
	if d := cmp.Diff(env.demo, f, opts...); d != "" {
		env.T().Errorf("round trip changed document (-want +got):\n%s", d)
	}
}

func (env *DocumentTestEnviron) TestSave() {
	path := filepath.Join(env.T().TempDir(), "saved.yaml")
	env.Require().NoError(env.demo.Save(path))
	f, err := Load(path)
	env.Require().NoError(err)
	env.Equal(len(env.demo.Glyphs), len(f.Glyphs))
	env.Equal(path, f.Filepath)
	empty := &Font{Family: "Unsaved"}
	env.Equal(core.EINVALID, core.Code(empty.Save("")))
}

// --- Validation ------------------------------------------------------------

func TestValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.font")
	defer teardown()
	//
	for i, doc := range []string{
		"family: X\nupm: 1000\nmasters: []\n",
		"family: X\nupm: 0\nmasters: [{id: m}]\n",
		"family: X\nupm: 1000\nmasters: [{id: m}]\nglyphs: [{name: a}, {name: a}]\n",
		"family: X\nupm: 1000\nmasters: [{id: m}]\nglyphs: [{name: a, layers: [{master: q}]}]\n",
		"family: X\nupm: 1000\nmasters: [{id: m}]\nglyphs: [{name: 9a}]\n",
		"family: X\nupm: 1000\nmasters: [{id: m}]\nbogus: 1\n",
	} {
		_, err := Decode(bytes.NewBufferString(doc))
		if err == nil {
			t.Errorf("(%d) expected document to be rejected", i)
		} else if core.Code(err) != core.EINVALID {
			t.Errorf("(%d) expected EINVALID, have %v", i, err)
		}
	}
}

// --- Helpers ---------------------------------------------------------------

func loadDemoFont(t *testing.T) *Font {
	f, err := Load(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatalf("cannot load demo font: %v", err)
	}
	return f
}

func anchorNames(l *Layer) []string {
	var names []string
	for _, a := range l.Anchors {
		names = append(names, a.Name)
	}
	return names
}
