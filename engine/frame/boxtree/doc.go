/*
Package boxtree produces a box tree from a document.

Boxes live in an arena, a Tree, and reference their parents and children by
index. Every element which is displayed gets a principal box. Text is split
into runs and placed into anonymous inline boxes, or directly into the
principal box of an element with a single text child.

Styles are computed while descending the document, with the cascade state of
the build. Elements with display:none generate no boxes, but the styles of
their descendants are computed nevertheless.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package boxtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.boxtree'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.boxtree")
}
