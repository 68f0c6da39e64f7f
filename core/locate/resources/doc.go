/*
Package resources resolves resources for the macro console, currently font
files to import.

As resource loading may be a time-consuming task, functions in this package
work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed or the context of the call is done.

Font files are searched for in this order:

   - a URL is downloaded to the user's cache directory (once)
   - a path to an existing file is taken as is
   - platform font directories are searched with go-findfont
   - if configured, the output of fontconfig's 'fc-list' is searched

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontmacros.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.resources")
}
