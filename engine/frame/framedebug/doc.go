/*
Package framedebug writes box trees in the DOT format of GraphViz, for
debugging.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package framedebug

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.frame'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.frame")
}
