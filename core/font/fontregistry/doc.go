/*
Package fontregistry manages a registry for open font documents.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontmacros.font'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.font")
}
