package tabs

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/uax/grapheme"
)

var setupGraphemes sync.Once

// Parse reads tab text and returns the items it denotes. If f is given,
// single code point graphemes are mapped to glyph references for glyphs
// carrying that code point.
func Parse(text string, f *font.Font) []Item {
	var items []Item
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			items = append(items, segment(literal.String(), f)...)
			literal.Reset()
		}
	}
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\n':
			flush()
			items = append(items, NewlineItem())
			i++
		case c == '\\' && i+1 < len(text) && text[i+1] == 'n':
			flush()
			items = append(items, NewlineItem())
			i += 2
		case c == '\\' && i+1 < len(text) && text[i+1] == '\\':
			flush()
			items = append(items, CharItem(`\`))
			i += 2
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			flush()
			items = append(items, CharItem("/"))
			i += 2
		case c == '/':
			name, n := glyphName(text[i+1:])
			if name == "" {
				literal.WriteByte(c)
				i++
				continue
			}
			flush()
			if name == PlaceholderName {
				items = append(items, PlaceholderItem())
			} else {
				if f != nil {
					if _, ok := f.Glyph(name); !ok {
						tracer().Infof("tab references unknown glyph %s", name)
					}
				}
				items = append(items, GlyphItem(name))
			}
			i += 1 + n
		default:
			literal.WriteByte(c)
			i++
		}
	}
	flush()
	return items
}

// glyphName scans a glyph name up to the next space, slash, backslash or line
// end. It returns the name and the number of bytes consumed, including a
// terminating space.
func glyphName(s string) (string, int) {
	end := strings.IndexAny(s, " /\\\n")
	if end < 0 {
		return s, len(s)
	}
	if s[end] == ' ' {
		return s[:end], end + 1
	}
	return s[:end], end
}

func segment(s string, f *font.Font) []Item {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	items := make([]Item, 0, gstr.Len())
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		if f != nil && utf8.RuneCountInString(g) == 1 {
			r, _ := utf8.DecodeRuneInString(g)
			if glyph, ok := f.GlyphForRune(r); ok {
				items = append(items, GlyphItem(glyph.Name))
				continue
			}
		}
		items = append(items, CharItem(g))
	}
	return items
}

// Text renders items as tab text.
func Text(items []Item) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.String())
	}
	return sb.String()
}

// FromText creates a tab from tab text.
func FromText(title, text string, f *font.Font) *Tab {
	return NewBuilder().Add(Parse(text, f)...).Tab(title)
}

// --- Sample strings --------------------------------------------------------

// GlyphMarker is the marker for the glyph in spacing patterns.
const GlyphMarker = "{g}"

// Spacing expands a spacing pattern like "HH{g}HOHO{g}OO" for a glyph.
// The marker is replaced by a reference to glyph; all other text is parsed.
func Spacing(pattern, glyph string, f *font.Font) []Item {
	var items []Item
	parts := strings.Split(pattern, GlyphMarker)
	for i, part := range parts {
		if i > 0 {
			items = append(items, GlyphItem(glyph))
		}
		items = append(items, Parse(part, f)...)
	}
	return items
}

// Pairs creates all ordered pairs of glyphs, one line per left glyph.
func Pairs(glyphs []string) []Item {
	var items []Item
	for i, left := range glyphs {
		if i > 0 {
			items = append(items, NewlineItem())
		}
		for _, right := range glyphs {
			items = append(items, GlyphItem(left), GlyphItem(right))
		}
	}
	return items
}
