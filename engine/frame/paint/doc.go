/*
Package paint draws laid out box trees onto a drawing context.

Painting walks the box tree in tree order. Every box paints its background,
then its border, then its replaced content or text. Later boxes paint over
earlier ones. Anonymous boxes paint text only.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package paint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.paint'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.paint")
}
