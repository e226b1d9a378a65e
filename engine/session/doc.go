/*
Package session is the entry point for hosts. A Container owns a document,
its styles, its box tree and the results of layout.

Setting new HTML tears down everything of the previous document. Stylesheets
added by the host apply to every document set afterwards, and trigger a new
cascade for the current one.

A Container is not safe for concurrent use.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.session'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.session")
}
