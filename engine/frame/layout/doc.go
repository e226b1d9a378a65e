/*
Package layout assigns size and position to the boxes of a box tree.

Overview

Layout walks the box tree top-down. Block-level boxes are stacked vertically,
with adjacent sibling margins collapsing. Inline content is flattened into
items and broken into lines. Tables are laid out in rows of cells, and
absolutely positioned boxes are laid out last, relative to their anchors.

If no width is available, layout shrinks to fit in two passes: the first pass
measures the natural width of the content, the second pass lays out at that
width, rounded up to whole pixels.

All coordinates are absolute, with the top left corner of the root's margin
box at the origin.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.layout'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.layout")
}
