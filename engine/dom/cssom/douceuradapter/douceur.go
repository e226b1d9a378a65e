/*
Package douceuradapter implements stylesheets on top of the douceur CSS parser.

Rules of @media blocks are kept only if the media query applies to screen
media. Other at-rules are dropped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package douceuradapter

import (
	"strings"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.cssom")
}

// CSSStyles is a type wrapper around a douceur stylesheet.
type CSSStyles struct {
	sheet *douceur.Stylesheet
	rules []css.Rule
}

// Wrap creates a css.StyleSheet from a douceur stylesheet.
func Wrap(s *douceur.Stylesheet) *CSSStyles {
	if s == nil {
		s = douceur.NewStylesheet()
	}
	styles := &CSSStyles{sheet: s}
	styles.collect(s.Rules)
	return styles
}

// Parse parses raw CSS text. Errors are coded EINVALID.
func Parse(raw string) (*CSSStyles, error) {
	s, err := parser.Parse(raw)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
	}
	return Wrap(s), nil
}

// ParseDeclarations parses the content of a style attribute.
func ParseDeclarations(text string) ([]css.Declaration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !strings.HasSuffix(text, ";") {
		text += ";" // douceur drops the value of an unterminated last declaration
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse style declarations %q", text)
	}
	return convert(decls), nil
}

func (styles *CSSStyles) collect(rules []*douceur.Rule) {
	for _, r := range rules {
		switch r.Kind {
		case douceur.QualifiedRule:
			if len(r.Selectors) > 0 {
				styles.rules = append(styles.rules, rule{r})
			}
		case douceur.AtRule:
			if r.Name == "@media" && appliesToScreen(r.Prelude) {
				styles.collect(r.Rules)
				continue
			}
			tracer().Debugf("douceur: ignoring at-rule %s %s", r.Name, r.Prelude)
		}
	}
}

func appliesToScreen(query string) bool {
	for _, q := range strings.Split(strings.ToLower(query), ",") {
		q = strings.TrimSpace(q)
		if q == "" || strings.HasPrefix(q, "all") || strings.HasPrefix(q, "screen") {
			return true
		}
	}
	return false
}

// Stylesheet returns the wrapped douceur stylesheet.
func (styles *CSSStyles) Stylesheet() *douceur.Stylesheet {
	return styles.sheet
}

// AppendRules appends the rules of another stylesheet.
func (styles *CSSStyles) AppendRules(other css.StyleSheet) {
	if other == nil {
		return
	}
	if o, ok := other.(*CSSStyles); ok {
		styles.sheet.Rules = append(styles.sheet.Rules, o.sheet.Rules...)
	}
	styles.rules = append(styles.rules, other.Rules()...)
}

// Empty returns true if the stylesheet has no style rules.
func (styles *CSSStyles) Empty() bool {
	return len(styles.rules) == 0
}

// Rules returns the style rules in source order.
func (styles *CSSStyles) Rules() []css.Rule {
	return styles.rules
}

var _ css.StyleSheet = &CSSStyles{}

type rule struct {
	r *douceur.Rule
}

func (r rule) Selectors() []string {
	return r.r.Selectors
}

func (r rule) Declarations() []css.Declaration {
	return convert(r.r.Declarations)
}

func convert(decls []*douceur.Declaration) []css.Declaration {
	d := make([]css.Declaration, 0, len(decls))
	for _, decl := range decls {
		d = append(d, css.Declaration{
			Property:  strings.ToLower(decl.Property),
			Value:     decl.Value,
			Important: decl.Important,
		})
	}
	return d
}
