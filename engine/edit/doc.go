/*
Package edit implements an editing session on an open font document.

A session owns the font, the active master, the glyph selection, open tabs,
view settings and undo/redo history. Front ends connect to a session through
two small interfaces: a Display, which is asked to redraw after changes, and
a Console receiving log output and notices for the user.

Mutations are grouped into batches:

	b := sess.Begin("Align to x-height", glyphs...)
	defer b.End()
	… modify glyphs …
	b.Changed()

Beginning a batch suspends redraw and takes snapshots of the glyphs
involved. Ending it resumes redraw and, if the batch has been marked as
changed, pushes an undo group.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package edit

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmacros.edit'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.edit")
}
