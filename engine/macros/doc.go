/*
Package macros implements a catalogue of small editing macros.

Each macro performs one edit on the font of an editing session: aligning
selected points, deleting anchors, hints or guides, normalizing glyph names,
opening tabs or toggling view settings. Macros are registered under a menu
title and may be looked up by any unique prefix of the title:

	reg := macros.Standard()
	err := reg.Run(session, "align selection to x")

Macros operate on an explicit Context, created from a session for each run.
Expected conditions, like an empty selection, are reported to the session's
console and do not count as failure.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package macros

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmacros.macros'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.macros")
}
