/*
Package tabs assembles the content of edit tabs.

A tab shows a sequence of items. Each item is one of a small, closed set of
kinds: a reference to a glyph, a literal character, a line break or the
placeholder marking the glyph currently being edited. Items are stored as
leaves of a cord, which allows for cheap concatenation of long sample strings.

Tab contents may be written as text:

	/A /V /Placeholder\nHOH/period

A slash introduces a glyph name, terminated by a space or the end of the text.
"/Placeholder" denotes the placeholder, "\n" (backslash, n) a line break and
"//" a literal slash. All other text is segmented into grapheme clusters; a
grapheme consisting of a single code point maps to the glyph carrying it, if
any.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tabs

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmacros.edit'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.edit")
}
