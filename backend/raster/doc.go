/*
Package raster implements a drawing context on an RGBA canvas, using
fogleman/gg for rasterization.

Text is drawn with the 7x13 basic font, which matches the default measurer of
layout. Font sizes other than 13px are not scaled.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.raster'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.raster")
}
