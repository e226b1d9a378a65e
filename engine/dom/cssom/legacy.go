package cssom

import (
	"strconv"
	"strings"

	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
)

// legacyDeclarations translates presentational HTML attributes into CSS
// declarations.
func legacyDeclarations(el *dom.Node) []css.Declaration {
	var decls []css.Declaration
	add := func(prop, value string) {
		decls = append(decls, css.Declaration{Property: prop, Value: value})
	}
	if _, ok := el.Attr("hidden"); ok {
		add("display", "none")
	}
	if v, ok := el.Attr("bgcolor"); ok {
		add("background-color", v)
	}
	if v, ok := el.Attr("valign"); ok {
		add("vertical-align", v)
	}
	tag := el.Tag()
	switch tag {
	case dom.TagImg, dom.TagTable, dom.TagTd, dom.TagTh:
		if v, ok := htmlLength(el, "width"); ok {
			add("width", v)
		}
		if v, ok := htmlLength(el, "height"); ok {
			add("height", v)
		}
	}
	if v, ok := el.Attr("align"); ok {
		v = strings.ToLower(strings.TrimSpace(v))
		switch {
		case tag == dom.TagTable && v == "center":
			add("margin-left", "auto")
			add("margin-right", "auto")
		case tag == dom.TagImg || tag == dom.TagTable:
			// floating is not supported
		default:
			add("text-align", v)
		}
	}
	switch tag {
	case dom.TagImg, dom.TagTable:
		if v, ok := htmlLength(el, "border"); ok && v != "0px" {
			add("border-width", v)
			add("border-style", "solid")
		}
	case dom.TagTd, dom.TagTh:
		if _, ok := el.Attr("nowrap"); ok {
			add("white-space", "nowrap")
		}
		if table := enclosingTable(el); table != nil {
			if v, ok := htmlLength(table, "cellpadding"); ok {
				add("padding", v)
			}
		}
	case dom.TagFont:
		if v, ok := el.Attr("color"); ok {
			add("color", v)
		}
		if v, ok := el.Attr("face"); ok {
			add("font-family", v)
		}
		if v, ok := el.Attr("size"); ok {
			if size, ok := fontSize(v); ok {
				add("font-size", size)
			}
		}
	case dom.TagBody:
		if v, ok := el.Attr("text"); ok {
			add("color", v)
		}
	}
	return decls
}

// htmlLength reads a length attribute: a plain number of pixels or a percentage.
func htmlLength(el *dom.Node, attr string) (string, bool) {
	v, ok := el.Attr(attr)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		if _, err := strconv.ParseFloat(v[:len(v)-1], 64); err == nil {
			return v, true
		}
		return "", false
	}
	v = strings.TrimSuffix(v, "px")
	if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
		return strconv.FormatFloat(n, 'f', -1, 64) + "px", true
	}
	return "", false
}

var fontSizes = [...]string{"x-small", "small", "medium", "large", "x-large", "xx-large", "xx-large"}

// fontSize maps the size attribute of font elements, 1…7 or relative to 3.
func fontSize(v string) (string, bool) {
	v = strings.TrimSpace(v)
	n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
	if err != nil {
		return "", false
	}
	if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		n += 3
	}
	if n < 1 {
		n = 1
	} else if n > 7 {
		n = 7
	}
	return fontSizes[n-1], true
}

func enclosingTable(el *dom.Node) *dom.Node {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag() == dom.TagTable {
			return p
		}
	}
	return nil
}
