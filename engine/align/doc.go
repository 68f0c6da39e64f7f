/*
Package align implements selection-relative transforms.

All transforms in this package are pure translations along a single axis:
a reference value is derived from font metrics and the selection is moved
by the delta between the reference and an extreme of the selection
(its minimum, maximum or midpoint on that axis).

	points := layer.Selection()
	d, err := align.Align(points, funit.Vertical, align.Max, master.XHeight)

An empty selection is an expected condition. Operations return ErrEmptySelection
without touching any point.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package align

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmacros.edit'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.edit")
}
