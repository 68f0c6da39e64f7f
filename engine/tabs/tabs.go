package tabs

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cords"
)

// Kind is the type of a tab item.
type Kind int8

// Item kinds
const (
	GlyphRef    Kind = iota // reference to a glyph by name
	Char                    // literal grapheme without a glyph
	Newline                 // line break control
	Placeholder             // stands for the glyph being edited
)

func (k Kind) String() string {
	switch k {
	case GlyphRef:
		return "glyph"
	case Char:
		return "char"
	case Newline:
		return "newline"
	case Placeholder:
		return "placeholder"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// PlaceholderName is the name used for placeholders in tab text.
const PlaceholderName = "Placeholder"

// Item is an element of a tab's content. Glyph is set for items of kind
// GlyphRef, Text for items of kind Char.
type Item struct {
	Kind  Kind
	Glyph string
	Text  string
}

// GlyphItem creates a reference to the glyph named name.
func GlyphItem(name string) Item {
	return Item{Kind: GlyphRef, Glyph: name}
}

// CharItem creates a literal character item.
func CharItem(s string) Item {
	return Item{Kind: Char, Text: s}
}

// NewlineItem creates a line break.
func NewlineItem() Item {
	return Item{Kind: Newline}
}

// PlaceholderItem creates a placeholder.
func PlaceholderItem() Item {
	return Item{Kind: Placeholder}
}

// String returns the tab text representation of an item.
func (it Item) String() string {
	switch it.Kind {
	case GlyphRef:
		return "/" + it.Glyph + " "
	case Newline:
		return `\n`
	case Placeholder:
		return "/" + PlaceholderName + " "
	}
	switch it.Text {
	case "/":
		return "//"
	case `\`:
		return `\\`
	}
	return it.Text
}

// --- Tabs ------------------------------------------------------------------

// Tab is a titled sequence of items.
type Tab struct {
	Title   string
	content cords.Cord
	count   int
}

// Len returns the number of items of a tab.
func (t *Tab) Len() int {
	return t.count
}

// Text returns the content of a tab as text.
func (t *Tab) Text() string {
	if t.content.IsVoid() {
		return ""
	}
	return t.content.String()
}

// Items returns the items of a tab, in order.
func (t *Tab) Items() []Item {
	if t.content.IsVoid() {
		return nil
	}
	items := make([]Item, 0, t.count)
	t.content.EachLeaf(func(l cords.Leaf, pos uint64) error {
		if leaf, ok := l.(*itemLeaf); ok {
			items = append(items, leaf.item)
		} else {
			tracer().Errorf("tab %q contains foreign leaf at position %d", t.Title, pos)
		}
		return nil
	})
	return items
}

// GlyphNames returns the names of all glyphs referenced in a tab, in order of
// first appearance.
func (t *Tab) GlyphNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, it := range t.Items() {
		if it.Kind == GlyphRef && !seen[it.Glyph] {
			seen[it.Glyph] = true
			names = append(names, it.Glyph)
		}
	}
	return names
}

// Lines returns the text of a tab split at line breaks.
func (t *Tab) Lines() []string {
	var lines []string
	var sb strings.Builder
	for _, it := range t.Items() {
		if it.Kind == Newline {
			lines = append(lines, sb.String())
			sb.Reset()
			continue
		}
		sb.WriteString(it.String())
	}
	return append(lines, sb.String())
}

func (t *Tab) String() string {
	return fmt.Sprintf("tab %q (%d items)", t.Title, t.count)
}

// --- Builder ---------------------------------------------------------------

// Builder assembles the content of a tab.
type Builder struct {
	b     *cords.Builder
	count int
}

// NewBuilder creates an empty tab builder.
func NewBuilder() *Builder {
	return &Builder{b: cords.NewBuilder()}
}

// Add appends items.
func (b *Builder) Add(items ...Item) *Builder {
	for _, it := range items {
		b.b.Append(&itemLeaf{item: it, text: it.String()})
		b.count++
	}
	return b
}

// Glyph appends a glyph reference.
func (b *Builder) Glyph(name string) *Builder {
	return b.Add(GlyphItem(name))
}

// Char appends literal characters.
func (b *Builder) Char(s string) *Builder {
	return b.Add(CharItem(s))
}

// Newline appends a line break.
func (b *Builder) Newline() *Builder {
	return b.Add(NewlineItem())
}

// Placeholder appends a placeholder.
func (b *Builder) Placeholder() *Builder {
	return b.Add(PlaceholderItem())
}

// Len returns the number of items added so far.
func (b *Builder) Len() int {
	return b.count
}

// Tab creates a tab from the items added so far. The builder should not be
// used afterwards.
func (b *Builder) Tab(title string) *Tab {
	return &Tab{Title: title, content: b.b.Cord(), count: b.count}
}

// --- Cord leafs ------------------------------------------------------------

// itemLeaf is the leaf type of tab content cords. Items are atomic.
type itemLeaf struct {
	item Item
	text string
}

// Weight is part of interface cords.Leaf.
func (l *itemLeaf) Weight() uint64 {
	return uint64(len(l.text))
}

// String is part of interface cords.Leaf.
func (l *itemLeaf) String() string {
	return l.text
}

// Split is part of interface cords.Leaf.
// Items cannot be split.
func (l *itemLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return l, nil
}

// Substring is part of interface cords.Leaf.
func (l *itemLeaf) Substring(i, j uint64) []byte {
	return []byte(l.text)[i:j]
}

var _ cords.Leaf = &itemLeaf{}
