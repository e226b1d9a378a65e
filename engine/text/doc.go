/*
Package text splits the text content of a node into runs and measures them.

Splitting honours the CSS white-space mode of the containing element.
For collapsing modes whitespace sequences shrink to a single space run,
while for preserving modes the runs reproduce the input buffer exactly.
Line breaks which have to be kept are represented by break runs.

Measurement is done with a monospace face scaled to the requested font
size, taking East Asian wide characters into account.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.text'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.text")
}
