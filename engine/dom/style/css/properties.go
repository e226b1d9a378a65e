package css

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"
	tcss "github.com/tdewolff/parse/v2/css"
)

// Declaration is a single CSS property declaration.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Property describes a known CSS longhand property.
type Property struct {
	Name      string
	Inherited bool   // inherited by default from the parent element
	Initial   string // initial value as CSS text
}

var knownProperties = []Property{
	{"display", false, "inline"},
	{"position", false, "static"},
	{"top", false, "auto"},
	{"right", false, "auto"},
	{"bottom", false, "auto"},
	{"left", false, "auto"},
	{"width", false, "auto"},
	{"height", false, "auto"},
	{"min-width", false, "0"},
	{"max-width", false, "none"},
	{"min-height", false, "0"},
	{"max-height", false, "none"},
	{"box-sizing", false, "content-box"},
	{"margin-top", false, "0"},
	{"margin-right", false, "0"},
	{"margin-bottom", false, "0"},
	{"margin-left", false, "0"},
	{"padding-top", false, "0"},
	{"padding-right", false, "0"},
	{"padding-bottom", false, "0"},
	{"padding-left", false, "0"},
	{"border-top-width", false, "medium"},
	{"border-right-width", false, "medium"},
	{"border-bottom-width", false, "medium"},
	{"border-left-width", false, "medium"},
	{"border-top-style", false, "none"},
	{"border-right-style", false, "none"},
	{"border-bottom-style", false, "none"},
	{"border-left-style", false, "none"},
	{"border-top-color", false, "currentcolor"},
	{"border-right-color", false, "currentcolor"},
	{"border-bottom-color", false, "currentcolor"},
	{"border-left-color", false, "currentcolor"},
	{"background-color", false, "transparent"},
	{"background-image", false, "none"},
	{"vertical-align", false, "baseline"},
	{"color", true, "black"},
	{"direction", true, "ltr"},
	{"white-space", true, "normal"},
	{"text-align", true, "start"},
	{"text-indent", true, "0"},
	{"font-family", true, "monospace"},
	{"font-size", true, "medium"},
	{"font-weight", true, "normal"},
	{"font-style", true, "normal"},
	{"line-height", true, "normal"},
	{"visibility", true, "visible"},
	{"list-style-type", true, "disc"},
}

var registry = newRegistry()

func newRegistry() *trie.Trie {
	t := trie.New()
	for i := range knownProperties {
		t.Add(knownProperties[i].Name, &knownProperties[i])
	}
	return t
}

// LookupProperty returns the description of a known longhand property.
func LookupProperty(name string) (*Property, bool) {
	node, ok := registry.Find(strings.ToLower(name))
	if !ok {
		return nil, false
	}
	p, ok := node.Meta().(*Property)
	return p, ok
}

// InheritedProperties returns the names of all inherited properties.
func InheritedProperties() []string {
	var names []string
	for _, p := range knownProperties {
		if p.Inherited {
			names = append(names, p.Name)
		}
	}
	return names
}

// Longhands returns the longhand properties covered by a shorthand,
// in top-right-bottom-left order where applicable.
func Longhands(shorthand string) []string {
	switch shorthand {
	case "margin", "padding":
		return sides(shorthand, "")
	case "border-width", "border-style", "border-color":
		return sides("border", strings.TrimPrefix(shorthand, "border"))
	case "border-top", "border-right", "border-bottom", "border-left":
		return []string{shorthand + "-width", shorthand + "-style", shorthand + "-color"}
	case "border", "background", "font":
		names := registry.PrefixSearch(shorthand + "-")
		sort.Strings(names)
		return names
	}
	return nil
}

func sides(prefix, suffix string) []string {
	return []string{
		prefix + "-top" + suffix, prefix + "-right" + suffix,
		prefix + "-bottom" + suffix, prefix + "-left" + suffix,
	}
}

// IsShorthand returns true if prop is a shorthand property this package can expand.
func IsShorthand(prop string) bool {
	return Longhands(prop) != nil
}

// ExpandShorthand expands a shorthand declaration into longhand declarations.
// For properties which are not shorthands, the declaration is returned as is.
// The second return value is false if the value could not be expanded.
func ExpandShorthand(d Declaration) ([]Declaration, bool) {
	prop := strings.ToLower(strings.TrimSpace(d.Property))
	d.Property = prop
	longhands := Longhands(prop)
	if longhands == nil {
		return []Declaration{d}, true
	}
	v := strings.ToLower(strings.TrimSpace(d.Value))
	if v == "inherit" || v == "initial" {
		return fill(longhands, v, d.Important), true
	}
	values := SplitValues(d.Value)
	if len(values) == 0 {
		return nil, false
	}
	switch prop {
	case "margin", "padding", "border-width", "border-style", "border-color":
		return boxValues(longhands, values, d.Important)
	case "border-top", "border-right", "border-bottom", "border-left":
		return borderSide(prop, values, d.Important)
	case "border":
		var decls []Declaration
		for _, side := range sides("border", "") {
			ds, ok := borderSide(side, values, d.Important)
			if !ok {
				return nil, false
			}
			decls = append(decls, ds...)
		}
		return decls, true
	case "background":
		return background(values, d.Important)
	case "font":
		return font(d.Value, d.Important)
	}
	return nil, false
}

func fill(props []string, value string, important bool) []Declaration {
	decls := make([]Declaration, len(props))
	for i, p := range props {
		decls[i] = Declaration{Property: p, Value: value, Important: important}
	}
	return decls
}

// boxValues applies the CSS 1-to-4 value rule for box sides.
func boxValues(longhands []string, values []string, important bool) ([]Declaration, bool) {
	var t, r, b, l string
	switch len(values) {
	case 1:
		t, r, b, l = values[0], values[0], values[0], values[0]
	case 2:
		t, r, b, l = values[0], values[1], values[0], values[1]
	case 3:
		t, r, b, l = values[0], values[1], values[2], values[1]
	case 4:
		t, r, b, l = values[0], values[1], values[2], values[3]
	default:
		return nil, false
	}
	return []Declaration{
		{Property: longhands[0], Value: t, Important: important},
		{Property: longhands[1], Value: r, Important: important},
		{Property: longhands[2], Value: b, Important: important},
		{Property: longhands[3], Value: l, Important: important},
	}, true
}

// borderSide classifies the components of `border-<side>: 1px solid red`.
// Components not given are reset to their initial values.
func borderSide(side string, values []string, important bool) ([]Declaration, bool) {
	w, s, c := "medium", "none", "currentcolor"
	for _, v := range values {
		if _, ok := ParseBorderStyle(v); ok {
			s = v
		} else if IsBorderWidth(v) {
			w = v
		} else if _, err := ParseColor(v); err == nil || strings.EqualFold(v, "currentcolor") {
			c = v
		} else {
			return nil, false
		}
	}
	return []Declaration{
		{Property: side + "-width", Value: w, Important: important},
		{Property: side + "-style", Value: s, Important: important},
		{Property: side + "-color", Value: c, Important: important},
	}, true
}

// IsBorderWidth returns true for lengths and the keywords thin, medium, thick.
func IsBorderWidth(v string) bool {
	if _, ok := BorderWidthKeyword(v); ok {
		return true
	}
	d, err := ParseDimen(v)
	return err == nil && (d.IsAbsolute() || d.IsFontRelative())
}

func background(values []string, important bool) ([]Declaration, bool) {
	var decls []Declaration
	for _, v := range values {
		if _, err := ParseColor(v); err == nil {
			decls = append(decls, Declaration{Property: "background-color", Value: v, Important: important})
		} else if strings.HasPrefix(strings.ToLower(v), "url(") || strings.EqualFold(v, "none") {
			decls = append(decls, Declaration{Property: "background-image", Value: v, Important: important})
		}
	}
	return decls, len(decls) > 0
}

// font expands `font: [style] [weight] size[/line-height] family`.
func font(value string, important bool) ([]Declaration, bool) {
	toks := Tokenize(value)
	var decls []Declaration
	i := 0
	for ; i < len(toks); i++ {
		tok := toks[i]
		if _, err := dimenFromToken(tok); err == nil && tok.Type != tcss.IdentToken {
			break
		}
		if _, ok := FontSizeKeyword(tok.Data); ok {
			break
		}
		if _, ok := ParseFontStyle(tok.Data); ok && tok.Type == tcss.IdentToken {
			decls = append(decls, Declaration{Property: "font-style", Value: tok.Data, Important: important})
		} else if _, ok := ParseFontWeight(tok.Data, 400); ok {
			decls = append(decls, Declaration{Property: "font-weight", Value: tok.Data, Important: important})
		}
	}
	if i >= len(toks) {
		return nil, false
	}
	decls = append(decls, Declaration{Property: "font-size", Value: toks[i].String(), Important: important})
	i++
	if i+1 < len(toks) && toks[i].Type == tcss.DelimToken && toks[i].Data == "/" {
		decls = append(decls, Declaration{Property: "line-height", Value: toks[i+1].String(), Important: important})
		i += 2
	}
	if i < len(toks) {
		var family []string
		for _, tok := range toks[i:] {
			if tok.Type == tcss.CommaToken && len(family) > 0 {
				family[len(family)-1] += ","
				continue
			}
			family = append(family, strings.Trim(tok.Data, `"'`))
		}
		decls = append(decls, Declaration{Property: "font-family", Value: strings.Join(family, " "), Important: important})
	}
	return decls, true
}

// BorderWidthKeyword resolves the keywords thin, medium and thick to pixels.
func BorderWidthKeyword(v string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "thin":
		return 1, true
	case "medium":
		return 3, true
	case "thick":
		return 5, true
	}
	return 0, false
}

// FontSizeKeyword resolves absolute font-size keywords to a factor relative
// to the default font size (`medium`).
func FontSizeKeyword(v string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "xx-small":
		return 0.6, true
	case "x-small":
		return 0.75, true
	case "small":
		return 8.0 / 9.0, true
	case "medium":
		return 1, true
	case "large":
		return 1.2, true
	case "x-large":
		return 1.5, true
	case "xx-large":
		return 2, true
	}
	return 0, false
}
