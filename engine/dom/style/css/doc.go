/*
Package css implements the value layer of CSS properties: lengths,
colors, display modes and keyword enumerations, plus a registry of
known properties with their initial values and shorthand expansions.

Values are tokenized with the CSS lexer of tdewolff/parse. Nothing in
this package knows about elements or cascades.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.css'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.css")
}
