package tabs

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoFont(t *testing.T) *font.Font {
	f, err := font.Load(filepath.Join("..", "..", "core", "font", "testdata", "demo.yaml"))
	require.NoError(t, err)
	return f
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.edit")
	defer teardown()
	//
	tab := NewBuilder().Glyph("A").Glyph("V").Newline().Placeholder().Char("/").Char("x").Tab("demo")
	assert.Equal(t, 6, tab.Len())
	assert.Equal(t, `/A /V \n/Placeholder //x`, tab.Text())
	want := []Item{
		GlyphItem("A"), GlyphItem("V"), NewlineItem(), PlaceholderItem(), CharItem("/"), CharItem("x"),
	}
	if d := cmp.Diff(want, tab.Items()); d != "" {
		t.Errorf("unexpected tab items (-want +got):\n%s", d)
	}
	assert.Equal(t, []string{"/A /V ", "/Placeholder //x"}, tab.Lines())
	assert.Equal(t, []string{"A", "V"}, tab.GlyphNames())
	empty := NewBuilder().Tab("empty")
	assert.Equal(t, "", empty.Text())
	assert.Empty(t, empty.Items())
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.edit")
	defer teardown()
	//
	demo := demoFont(t)
	items := Parse("no\\nHx/A.sc /Placeholder a\u0308/", demo)
	want := []Item{
		GlyphItem("n"), GlyphItem("o"), NewlineItem(),
		CharItem("H"), CharItem("x"), GlyphItem("A.sc"), PlaceholderItem(),
		CharItem("a\u0308"), CharItem("/"),
	}
	if d := cmp.Diff(want, items); d != "" {
		t.Errorf("unexpected parse result (-want +got):\n%s", d)
	}
	assert.Equal(t, []Item{CharItem("n"), CharItem("o")}, Parse("no", nil),
		"without a font no glyphs can be mapped")
}

func TestTextRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.edit")
	defer teardown()
	//
	demo := demoFont(t)
	for _, text := range []string{
		"nono/A oo",
		`/A  /n \n\\x//y`,
		"/Placeholder /Placeholder \n.",
		"",
	} {
		items := Parse(text, demo)
		again := Parse(Text(items), demo)
		if d := cmp.Diff(items, again); d != "" {
			t.Errorf("round trip of %q changed items (-want +got):\n%s", text, d)
		}
	}
	tab := FromText("t", "/A o", demo)
	assert.Equal(t, "/A /o ", tab.Text())
}

func TestSamples(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.edit")
	defer teardown()
	//
	demo := demoFont(t)
	items := Spacing("nn{g}no", "A.sc", demo)
	assert.Equal(t, "/n /n /A.sc /n /o ", Text(items))
	items = Pairs([]string{"A", "n"})
	assert.Equal(t, `/A /A /A /n \n/n /A /n /n `, Text(items))
	assert.Empty(t, Pairs(nil))
}
