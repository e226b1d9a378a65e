/*
Package cssom implements the style cascade for elements of a document.

Cascade state is explicit: a CascadeState collects the rules of all stylesheets
of one build, from the user-agent stylesheet, from style elements and from
linked stylesheets delivered by a client callback. It is never shared between
builds.

For every element, declarations are applied in stages, later stages overriding
earlier ones property by property:

	1. inherited values of the parent
	2. rules matching by tag name, class or attribute, in stylesheet order
	3. rules with an id selector, in stylesheet order
	4. legacy presentational attributes (bgcolor, width, align, …)
	5. the inline style attribute

There is no specificity scoring beyond this stage ordering.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.cssom")
}
