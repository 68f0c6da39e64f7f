package fontquery

import (
	"github.com/antchfx/xpath"
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
)

// Compile compiles an XPath expression. Syntax errors are reported as
// application errors with code EINVALID.
func Compile(expr string) (*xpath.Expr, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid query %q: %v", expr, err)
	}
	return x, nil
}

// Glyphs selects nodes of a font with an XPath expression and returns the
// glyphs containing them, in font order. Every glyph is returned once.
func Glyphs(f *font.Font, expr string) ([]*font.Glyph, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	matched := make(map[*font.Glyph]bool)
	iter := x.Select(NewNavigator(f))
	cnt := 0
	for iter.MoveNext() {
		cnt++
		g, err := CurrentGlyph(iter.Current())
		if err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "query failed")
		}
		if g != nil {
			matched[g] = true
		}
	}
	tracer().Debugf("query %q matched %d nodes in %d glyphs", expr, cnt, len(matched))
	glyphs := make([]*font.Glyph, 0, len(matched))
	for _, g := range f.Glyphs {
		if matched[g] {
			glyphs = append(glyphs, g)
		}
	}
	return glyphs, nil
}

// Evaluate evaluates an XPath expression on a font. The result is a
// float64, string or bool. For node sets, the number of nodes selected is
// returned as a float64.
func Evaluate(f *font.Font, expr string) (interface{}, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	result := x.Evaluate(NewNavigator(f))
	if iter, ok := result.(*xpath.NodeIterator); ok {
		n := 0
		for iter.MoveNext() {
			n++
		}
		return float64(n), nil
	}
	return result, nil
}
