package cssom

import (
	"sync"

	"github.com/npillmayer/cssbox/engine/dom/cssom/douceuradapter"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
)

// UserAgentCSS contains the default styles of HTML elements.
const UserAgentCSS = `
html, body, div, p, pre, blockquote, address, center, form, hr,
article, aside, footer, header, nav, section, main, figure, figcaption,
h1, h2, h3, h4, h5, h6, ul, ol, dl, dt, dd, fieldset, legend {
	display: block;
}
head, style, script, title, meta, link, template, base, noscript {
	display: none;
}
li { display: list-item; }
table { display: table; border-spacing: 2px; }
thead, tbody, tfoot { display: table-row-group; }
tr { display: table-row; }
td, th { display: table-cell; padding: 1px; }
th { font-weight: bold; text-align: center; }
body { margin: 8px; }
p, blockquote, ul, ol, dl, pre { margin-top: 1em; margin-bottom: 1em; }
ul, ol { padding-left: 40px; }
dd { margin-left: 40px; }
blockquote { margin-left: 40px; margin-right: 40px; }
pre { white-space: pre; }
center { text-align: center; }
h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em; font-weight: bold; }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em; font-weight: bold; }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em; font-weight: bold; }
h4, h5, h6 { margin-top: 1.33em; margin-bottom: 1.33em; font-weight: bold; }
b, strong { font-weight: bold; }
i, em, cite, var { font-style: italic; }
code, kbd, samp, tt { font-family: monospace; }
a { color: #0000ee; }
hr { border: 1px inset; margin-top: 0.5em; margin-bottom: 0.5em; }
img { display: inline; }
`

var uaSheet struct {
	once  sync.Once
	sheet css.StyleSheet
}

// userAgentStylesheet parses UserAgentCSS once.
func userAgentStylesheet() css.StyleSheet {
	uaSheet.once.Do(func() {
		sheet, err := douceuradapter.Parse(UserAgentCSS)
		if err != nil {
			tracer().Errorf("cssom: user-agent stylesheet: %v", err)
			return
		}
		uaSheet.sheet = sheet
	})
	return uaSheet.sheet
}
