/*
Package font implements the document model of an editable font.

We stick to the nomenclature of font editors rather than to the one of
OpenType:

* A "font" is a document holding a family of related designs. An example
is "Helvetica" with masters "Light" and "Bold".

* A "master" is a named design extreme. Masters define vertical metrics
(ascender, cap height, x-height, descender) and global guides.

* A "glyph" is a named drawing, possibly mapped to Unicode code points.
Every glyph has one "layer" per master, holding the outline (paths of nodes),
anchors, hints, local guides and components.

Documents are stored as YAML files. Package sfntimport creates documents
from binary OpenType fonts.

Coordinates are font units (see package funit), with the y-axis pointing
upwards and the baseline at y=0.

Selection

Nodes and anchors carry a `selected` flag, which is persisted with the
document. Layer.Selection() collects the positions of all selected nodes and
anchors of a layer; macros operate on this set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontmacros.font'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.font")
}
