/*
Package frame deals with the geometry of CSS boxes.

A Box carries resolved dimensions following the CSS box model: a content
box surrounded by padding, border and margins. Functions of this package
solve the width constraint equation of block-level boxes, clamp sizes to
min/max values and collapse vertical margins.

Package frame also classifies boxes by the formatting context they establish
and extracts the paint-relevant parts of a computed style.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.frame'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.frame")
}
