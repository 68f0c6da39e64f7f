package font

import (
	"strings"
	"unicode"

	"github.com/npillmayer/fontmacros/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxGlyphNameLength is the longest glyph name accepted.
const MaxGlyphNameLength = 63

// LowercaseBaseName lowercases the base part of a glyph name, i.e. the part
// before the first '.'. A suffix (e.g., ".sc", ".ss01", ".liga") is left
// untouched. If there is no '.', the whole name is lowercased.
//
//	A.sc  → a.sc
//	FOO   → foo
func LowercaseBaseName(name string) string {
	base, suffix := name, ""
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		base, suffix = name[:dot], name[dot:]
	}
	return cases.Lower(language.Und).String(base) + suffix
}

// ValidateGlyphName checks a glyph name for length and allowed characters.
// Glyph names consist of A–Z, a–z, 0–9, '.', '_' and '-' only. They must not
// start with a digit or a period, with the exception of ".notdef" and ".null".
func ValidateGlyphName(name string) error {
	if len(name) == 0 {
		return core.Error(core.EINVALID, "glyph name can't be empty")
	}
	if name == ".notdef" || name == ".null" {
		return nil
	}
	if len(name) > MaxGlyphNameLength {
		return core.Error(core.EINVALID, "glyph name %q exceeds %d characters", name, MaxGlyphNameLength)
	}
	if name[0] == '.' || isDigit(name[0]) {
		return core.Error(core.EINVALID, "glyph name %q can't start with %q", name, name[0])
	}
	for i := 0; i < len(name); i++ {
		if !isGlyphNameChar(name[i]) {
			return core.Error(core.EINVALID, "glyph name %q contains invalid character at position %d", name, i)
		}
	}
	return nil
}

func isGlyphNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) ||
		c == '.' || c == '_' || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r)
}
