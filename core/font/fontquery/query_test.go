package fontquery

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDemo(t *testing.T) *font.Font {
	f, err := font.Load(filepath.Join("..", "testdata", "demo.yaml"))
	require.NoError(t, err)
	return f
}

func names(glyphs []*font.Glyph) []string {
	var n []string
	for _, g := range glyphs {
		n = append(n, g.Name)
	}
	return n
}

func TestGlyphQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.query")
	defer teardown()
	//
	demo := loadDemo(t)
	for _, c := range []struct {
		expr string
		want []string
	}{
		{"//glyph[@category='Mark']", []string{"dieresiscomb"}},
		{"//anchor[starts-with(@name,'_')]", []string{"A", "dieresiscomb"}},
		{"//layer[component]", []string{"Adieresis"}},
		{"//glyph[not(layer/anchor[@name='top'])]", []string{"A.sc", "Adieresis", "o", "dieresiscomb", "period"}},
		{"//layer[@width > 590]", []string{"A", "Adieresis"}},
		{"//node[@selected='true']", []string{"A"}},
		{"//master", nil},
	} {
		glyphs, err := Glyphs(demo, c.expr)
		require.NoError(t, err, c.expr)
		assert.Equal(t, c.want, names(glyphs), c.expr)
	}
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.query")
	defer teardown()
	//
	demo := loadDemo(t)
	v, err := Evaluate(demo, "count(//glyph)")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
	v, err = Evaluate(demo, "//master")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	v, err = Evaluate(demo, "string(/font/@family)")
	require.NoError(t, err)
	assert.Equal(t, "Demo Sans", v)
}

func TestInvalidQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.query")
	defer teardown()
	//
	_, err := Glyphs(loadDemo(t), "//glyph[")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestNavigator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.query")
	defer teardown()
	//
	nav := NewNavigator(loadDemo(t))
	require.True(t, nav.MoveToChild())
	assert.Equal(t, "font", nav.LocalName())
	require.True(t, nav.MoveToChild())
	assert.Equal(t, "master", nav.LocalName())
	assert.False(t, nav.MoveToPrevious())
	require.True(t, nav.MoveToNext())
	require.True(t, nav.MoveToNext())
	assert.Equal(t, "glyph", nav.LocalName())
	cp := nav.Copy()
	require.True(t, nav.MoveToNextAttribute())
	assert.Equal(t, "name", nav.LocalName())
	assert.Equal(t, "A", nav.Value())
	g, err := CurrentGlyph(nav)
	require.NoError(t, err)
	assert.Equal(t, "A", g.Name)
	require.True(t, nav.MoveToParent())
	assert.Equal(t, "glyph", nav.LocalName())
	require.True(t, nav.MoveToFirst())
	assert.Equal(t, "master", nav.LocalName())
	require.True(t, nav.MoveTo(cp))
	assert.Equal(t, "glyph", nav.LocalName())
	nav.MoveToRoot()
	assert.False(t, nav.MoveToParent())
}
