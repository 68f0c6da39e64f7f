/*
Package sfntimport creates editable font documents from binary OpenType and
TrueType fonts.

Imported documents have a single master. Outlines are taken from the binary
font as they are, i.e. composite glyphs are flattened and hints are dropped.
Glyph names are taken from the font's post table if present, otherwise glyphs
are named after their glyph index.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sfntimport

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontmacros.font'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.font")
}
