package cssom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/cssom/douceuradapter"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"golang.org/x/net/html"
)

// StylesheetRequest is a client callback for linked stylesheets. It returns
// either the raw CSS text or an already parsed stylesheet for href. Returning
// neither means that there is no stylesheet at that reference.
type StylesheetRequest func(href string) (raw string, sheet css.StyleSheet)

// CascadeState accumulates the rules of all stylesheets of one build.
// The zero value is not usable, use NewCascadeState.
type CascadeState struct {
	defaults  style.Defaults
	useragent bool
	request   StylesheetRequest
	rules     []compiledRule
	sheets    int
	seen      map[*dom.Node]bool // intercepted metadata elements
}

// Option configures a CascadeState.
type Option func(*CascadeState)

// WithUserAgentStylesheet switches the built-in user-agent stylesheet on or off.
// It is on by default.
func WithUserAgentStylesheet(on bool) Option {
	return func(cs *CascadeState) {
		cs.useragent = on
	}
}

// WithStylesheetRequest sets the callback for linked stylesheets.
func WithStylesheetRequest(req StylesheetRequest) Option {
	return func(cs *CascadeState) {
		cs.request = req
	}
}

// WithDefaults sets the font defaults for style builders of elements.
func WithDefaults(dflt style.Defaults) Option {
	return func(cs *CascadeState) {
		cs.defaults = dflt
	}
}

// NewCascadeState creates a cascade state for a single build.
func NewCascadeState(opts ...Option) *CascadeState {
	cs := &CascadeState{
		defaults:  style.StandardDefaults,
		useragent: true,
		seen:      make(map[*dom.Node]bool),
	}
	for _, opt := range opts {
		opt(cs)
	}
	if cs.useragent {
		cs.AddStylesheet(userAgentStylesheet())
	}
	return cs
}

// Defaults returns the font defaults for style builders.
func (cs *CascadeState) Defaults() style.Defaults {
	return cs.defaults
}

// RuleCount returns the number of rules with at least one usable selector.
func (cs *CascadeState) RuleCount() int {
	return len(cs.rules)
}

// compiledRule is a stylesheet rule with compiled selectors.
type compiledRule struct {
	selectors []cascadia.Sel
	decls     []css.Declaration
}

// match returns whether the rule matches h and whether the match is
// by a selector with an id component.
func (r compiledRule) match(h *html.Node) (matched, byID bool) {
	for _, sel := range r.selectors {
		if sel.Match(h) {
			matched = true
			if sel.Specificity()[0] > 0 {
				return true, true
			}
		}
	}
	return
}

// AddStylesheet merges the rules of a stylesheet into the cascade state.
// Rules keep their order. Selectors which cannot be compiled are skipped.
func (cs *CascadeState) AddStylesheet(sheet css.StyleSheet) {
	if sheet == nil || sheet.Empty() {
		return
	}
	for _, r := range sheet.Rules() {
		cr := compiledRule{decls: r.Declarations()}
		for _, s := range r.Selectors() {
			sel, err := cascadia.Parse(strings.TrimSpace(s))
			if err != nil {
				tracer().Infof("cssom: skipping selector %q: %v", s, err)
				continue
			}
			cr.selectors = append(cr.selectors, sel)
		}
		if len(cr.selectors) > 0 {
			cs.rules = append(cs.rules, cr)
		}
	}
	cs.sheets++
	tracer().Debugf("cssom: %d stylesheets with %d rules", cs.sheets, len(cs.rules))
}

// AddCSS parses raw CSS and merges its rules.
func (cs *CascadeState) AddCSS(raw string) error {
	sheet, err := douceuradapter.Parse(raw)
	if err != nil {
		return err
	}
	cs.AddStylesheet(sheet)
	return nil
}

// Intercept handles metadata carriers. The content of style elements and
// stylesheets linked with rel=stylesheet are merged into the cascade state.
// Intercept returns true for style and link elements, which never generate
// a box. Each element is merged at most once.
func (cs *CascadeState) Intercept(el *dom.Node) bool {
	switch el.Tag() {
	case dom.TagStyle:
		if !cs.seen[el] {
			cs.seen[el] = true
			if err := cs.AddCSS(el.Text()); err != nil {
				tracer().Errorf("cssom: ignoring style element: %v", err)
			}
		}
		return true
	case dom.TagLink:
		if !cs.seen[el] {
			cs.seen[el] = true
			cs.requestLinked(el)
		}
		return true
	}
	return false
}

func (cs *CascadeState) requestLinked(el *dom.Node) {
	rel, _ := el.Attr("rel")
	if !hasToken(rel, "stylesheet") {
		return
	}
	href, _ := el.Attr("href")
	if href == "" {
		return
	}
	if cs.request == nil {
		tracer().Infof("cssom: no handler to request stylesheet %q", href)
		return
	}
	raw, sheet := cs.request(href)
	switch {
	case sheet != nil:
		cs.AddStylesheet(sheet)
	case raw != "":
		if err := cs.AddCSS(raw); err != nil {
			tracer().Errorf("cssom: ignoring stylesheet %q: %v", href, err)
		}
	default:
		tracer().Infof("cssom: no stylesheet at %q", href)
	}
}

// CollectStylesheets intercepts all metadata carriers of a document in
// document order, before any element is styled. Rules of style elements thus
// apply to every element of the document, regardless of position.
func (cs *CascadeState) CollectStylesheets(doc *dom.Document) {
	doc.Walk(func(n *dom.Node) bool {
		if n.IsElement() {
			cs.Intercept(n)
		}
		return n.IsElement()
	})
}

// ApplyForElement runs the cascade for an element and freezes its style.
// parent is the computed style of the parent element, nil for the root.
//
// A malformed inline style attribute is skipped and reported as a recoverable
// error (see IsRecoverable) together with the frozen style. All other errors
// are fatal. If the style of el has already been frozen, it is returned
// unchanged.
func ApplyForElement(el *dom.Node, parent *style.Spec, cs *CascadeState) (*style.Spec, error) {
	if el == nil || !el.IsElement() {
		return nil, core.Error(core.EINTERNAL, "cascade called for non-element %v", el)
	}
	b := el.StyleBuilder(cs.defaults)
	if b.IsFrozen() {
		return b.Freeze(), nil
	}
	if err := b.InheritFrom(parent); err != nil {
		return nil, err
	}
	h := el.HTMLNode()
	var idBlocks [][]css.Declaration
	for _, r := range cs.rules {
		matched, byID := r.match(h)
		if !matched {
			continue
		}
		if byID {
			idBlocks = append(idBlocks, r.decls)
			continue
		}
		if err := b.ApplyBlock(r.decls, parent); err != nil {
			return nil, err
		}
	}
	for _, block := range idBlocks {
		if err := b.ApplyBlock(block, parent); err != nil {
			return nil, err
		}
	}
	if legacy := legacyDeclarations(el); len(legacy) > 0 {
		if err := b.ApplyBlock(legacy, parent); err != nil {
			return nil, err
		}
	}
	var recoverable error
	if inline, ok := el.Attr("style"); ok {
		decls, err := douceuradapter.ParseDeclarations(inline)
		if err != nil {
			tracer().Infof("cssom: skipping inline style of %v: %v", el, err)
			recoverable = err
		} else if len(decls) > 0 {
			if err := b.ApplyBlock(decls, parent); err != nil {
				return nil, err
			}
		}
	}
	spec := b.Freeze()
	tracer().Debugf("cssom: %v styled with %d blocks", el, spec.Version())
	return spec, recoverable
}

// IsRecoverable is true for errors after which the cascade continues,
// i.e. malformed style declarations.
func IsRecoverable(err error) bool {
	return err != nil && core.Code(err) == core.EINVALID
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
