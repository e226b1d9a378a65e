package style

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"golang.org/x/text/unicode/bidi"
)

// ErrFrozen is returned for attempts to change a style after Freeze.
var ErrFrozen = errors.New("attempted mutation of frozen style")

// Declaration is an alias for css.Declaration.
type Declaration = css.Declaration

// Builder collects the style of an element during the cascade.
// The zero value is not usable, use NewBuilder.
type Builder struct {
	spec     Spec
	defaults Defaults
	frozen   *Spec
}

// NewBuilder creates a builder with initial values. If no defaults are given,
// StandardDefaults are used.
func NewBuilder(defaults ...Defaults) *Builder {
	dflt := StandardDefaults
	if len(defaults) > 0 {
		dflt = defaults[0]
	}
	return &Builder{
		spec:     initialSpec(dflt),
		defaults: dflt,
	}
}

func (b *Builder) checkFrozen(op string) error {
	if b.frozen != nil {
		return core.WrapError(ErrFrozen, core.EINTERNAL, "%s on frozen style", op)
	}
	return nil
}

// Version returns the number of declaration blocks applied so far.
func (b *Builder) Version() uint32 {
	return b.spec.version
}

// IsFrozen returns true after Freeze has been called.
func (b *Builder) IsFrozen() bool {
	return b.frozen != nil
}

// InheritFrom resets the style to initial values and copies inheritable
// properties from parent. parent may be nil for the root element.
// Calling InheritFrom repeatedly with the same parent yields the same state.
func (b *Builder) InheritFrom(parent *Spec) error {
	if err := b.checkFrozen("InheritFrom"); err != nil {
		return err
	}
	version := b.spec.version
	b.spec = initialSpec(b.defaults)
	b.spec.version = version
	if parent == nil {
		return nil
	}
	for _, name := range css.InheritedProperties() {
		if h, ok := handlers[name]; ok && h.inherit != nil {
			h.inherit(&b.spec, parent)
		}
	}
	b.spec.rootFontSize = parent.rootFontSize
	return nil
}

// ApplyBlock applies a declaration block in order and increments the version
// counter once.
func (b *Builder) ApplyBlock(decls []Declaration, parent *Spec) error {
	if err := b.checkFrozen("ApplyBlock"); err != nil {
		return err
	}
	b.spec.version++
	for _, d := range decls {
		if err := b.ApplyDeclaration(d.Property, d.Value, parent); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDeclaration sets a single property. Shorthands are expanded.
// Invalid values reset the property to its initial value; unknown properties
// are recorded but otherwise ignored. Values relative to the parent, like
// percentage font sizes, are resolved here.
func (b *Builder) ApplyDeclaration(property, value string, parent *Spec) error {
	if err := b.checkFrozen("ApplyDeclaration"); err != nil {
		return err
	}
	decl := Declaration{Property: property, Value: strings.TrimSpace(value)}
	longhands, ok := css.ExpandShorthand(decl)
	if !ok {
		tracer().Debugf("style: cannot expand %s: %q, resetting to initial values", property, value)
		longhands = nil
		for _, name := range css.Longhands(strings.ToLower(property)) {
			longhands = append(longhands, Declaration{Property: name, Value: "initial"})
		}
	}
	for _, d := range longhands {
		b.apply(d.Property, d.Value, parent)
	}
	return nil
}

func (b *Builder) apply(name, value string, parent *Spec) {
	if b.spec.declared == nil {
		b.spec.declared = make(map[string]string)
	}
	b.spec.declared[name] = value
	h, ok := handlers[name]
	if !ok {
		tracer().Debugf("style: property %s not interpreted", name)
		return
	}
	switch strings.ToLower(value) {
	case "inherit":
		if parent == nil {
			b.setInitial(name, h, parent)
		} else {
			h.inherit(&b.spec, parent)
		}
		return
	case "initial":
		b.setInitial(name, h, parent)
		return
	}
	if !h.set(&b.spec, value, parent, b.defaults) {
		tracer().Debugf("style: illegal value %q for %s, using initial value", value, name)
		b.setInitial(name, h, parent)
	}
}

func (b *Builder) setInitial(name string, h handler, parent *Spec) {
	if name == "font-family" {
		b.spec.FontFamily = b.defaults.FontFamily
		return
	}
	p, ok := css.LookupProperty(name)
	if !ok {
		return
	}
	if !h.set(&b.spec, p.Initial, parent, b.defaults) {
		tracer().Errorf("style: initial value of %s not accepted", name)
	}
}

// Freeze ends the cascade for an element and returns the immutable spec.
// Subsequent writes to the builder fail with ErrFrozen. Calling Freeze again
// returns the same spec.
func (b *Builder) Freeze() *Spec {
	if b.frozen != nil {
		return b.frozen
	}
	s := b.spec
	if b.spec.declared != nil {
		s.declared = make(map[string]string, len(b.spec.declared))
		for k, v := range b.spec.declared {
			s.declared[k] = v
		}
	}
	s.freeze()
	b.frozen = &s
	return b.frozen
}

// --- Property handlers -----------------------------------------------------

type handler struct {
	set     func(s *Spec, v string, parent *Spec, dflt Defaults) bool
	inherit func(dst, src *Spec)
}

var handlers = map[string]handler{}

func init() {
	handlers["display"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			d, err := css.ParseDisplay(v)
			if err != nil {
				return false
			}
			s.Display = d
			return true
		},
		inherit: func(dst, src *Spec) { dst.Display = src.Display },
	}
	handlers["position"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			p, ok := css.ParsePosition(v)
			s.Position = p
			return ok
		},
		inherit: func(dst, src *Spec) { dst.Position = src.Position },
	}
	handlers["box-sizing"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			switch strings.ToLower(v) {
			case "border-box":
				s.BorderBox = true
			case "content-box":
				s.BorderBox = false
			default:
				return false
			}
			return true
		},
		inherit: func(dst, src *Spec) { dst.BorderBox = src.BorderBox },
	}
	sideNames := [4]string{"top", "right", "bottom", "left"}
	for i, side := range sideNames {
		side, i := side, i
		handlers[side] = dimenHandler(func(s *Spec) *css.DimenT { return &s.Offsets[i] }, true, true)
		handlers["margin-"+side] = dimenHandler(func(s *Spec) *css.DimenT { return &s.Margins[i] }, true, true)
		handlers["padding-"+side] = dimenHandler(func(s *Spec) *css.DimenT { return &s.Padding[i] }, false, false)
		handlers["border-"+side+"-width"] = handler{
			set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
				if px, ok := css.BorderWidthKeyword(v); ok {
					s.BorderWidth[i] = css.SomeDimen(dimen.FromPx(px))
					return true
				}
				d, err := css.ParseDimen(v)
				if err != nil || d.IsPercent() || d.IsAuto() || d.Unwrap() < 0 {
					return false
				}
				s.BorderWidth[i] = d
				return true
			},
			inherit: func(dst, src *Spec) { dst.BorderWidth[i] = src.BorderWidth[i] },
		}
		handlers["border-"+side+"-style"] = handler{
			set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
				bs, ok := css.ParseBorderStyle(v)
				s.BorderStyle[i] = bs
				return ok
			},
			inherit: func(dst, src *Spec) { dst.BorderStyle[i] = src.BorderStyle[i] },
		}
		handlers["border-"+side+"-color"] = handler{
			set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
				if strings.EqualFold(v, "currentcolor") {
					s.borderColorIsSet[i] = false
					return true
				}
				c, err := css.ParseColor(v)
				if err != nil {
					return false
				}
				s.BorderColor[i], s.borderColorIsSet[i] = c, true
				return true
			},
			inherit: func(dst, src *Spec) {
				dst.BorderColor[i], dst.borderColorIsSet[i] = src.BorderColor[i], true
			},
		}
	}
	handlers["width"] = dimenHandler(func(s *Spec) *css.DimenT { return &s.Width }, true, false)
	handlers["height"] = dimenHandler(func(s *Spec) *css.DimenT { return &s.Height }, true, false)
	handlers["min-width"] = dimenHandler(func(s *Spec) *css.DimenT { return &s.MinWidth }, false, false)
	handlers["min-height"] = dimenHandler(func(s *Spec) *css.DimenT { return &s.MinHeight }, false, false)
	handlers["max-width"] = noneDimenHandler(func(s *Spec) *css.DimenT { return &s.MaxWidth })
	handlers["max-height"] = noneDimenHandler(func(s *Spec) *css.DimenT { return &s.MaxHeight })
	handlers["text-indent"] = dimenHandler(func(s *Spec) *css.DimenT { return &s.TextIndent }, false, true)
	handlers["color"] = colorHandler(func(s *Spec) *color.RGBA { return &s.Color })
	handlers["background-color"] = colorHandler(func(s *Spec) *color.RGBA { return &s.Background })
	handlers["background-image"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			if strings.EqualFold(v, "none") {
				s.BackgroundImage = ""
				return true
			}
			if !strings.HasPrefix(strings.ToLower(v), "url(") || !strings.HasSuffix(v, ")") {
				return false
			}
			s.BackgroundImage = strings.Trim(v[4:len(v)-1], ` "'`)
			return true
		},
		inherit: func(dst, src *Spec) { dst.BackgroundImage = src.BackgroundImage },
	}
	handlers["vertical-align"] = keywordHandler(func(s *Spec) *string { return &s.VerticalAlign })
	handlers["list-style-type"] = keywordHandler(func(s *Spec) *string { return &s.ListStyleType })
	handlers["direction"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			switch strings.ToLower(v) {
			case "ltr":
				s.Direction = bidi.LeftToRight
			case "rtl":
				s.Direction = bidi.RightToLeft
			default:
				return false
			}
			return true
		},
		inherit: func(dst, src *Spec) { dst.Direction = src.Direction },
	}
	handlers["white-space"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			ws, ok := css.ParseWhiteSpace(v)
			s.WhiteSpace = ws
			return ok
		},
		inherit: func(dst, src *Spec) { dst.WhiteSpace = src.WhiteSpace },
	}
	handlers["text-align"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			ta, ok := css.ParseTextAlign(v)
			s.TextAlign = ta
			return ok
		},
		inherit: func(dst, src *Spec) { dst.TextAlign = src.TextAlign },
	}
	handlers["visibility"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			vis, ok := css.ParseVisibility(v)
			s.Visibility = vis
			return ok
		},
		inherit: func(dst, src *Spec) { dst.Visibility = src.Visibility },
	}
	handlers["font-family"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			v = strings.TrimSpace(v)
			if v == "" {
				return false
			}
			s.FontFamily = v
			return true
		},
		inherit: func(dst, src *Spec) { dst.FontFamily = src.FontFamily },
	}
	handlers["font-style"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			fs, ok := css.ParseFontStyle(v)
			s.FontStyle = fs
			return ok
		},
		inherit: func(dst, src *Spec) { dst.FontStyle = src.FontStyle },
	}
	handlers["font-weight"] = handler{
		set: func(s *Spec, v string, parent *Spec, _ Defaults) bool {
			pw := 400
			if parent != nil {
				pw = parent.FontWeight
			}
			w, ok := css.ParseFontWeight(v, pw)
			s.FontWeight = w
			return ok
		},
		inherit: func(dst, src *Spec) { dst.FontWeight = src.FontWeight },
	}
	handlers["font-size"] = handler{
		set:     setFontSize,
		inherit: func(dst, src *Spec) { dst.FontSize = src.FontSize },
	}
	handlers["line-height"] = handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			if strings.EqualFold(v, "normal") {
				s.LineHeight = css.Auto()
				return true
			}
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
				s.LineHeight = css.EM(f) // unitless factor of the font size
				return true
			}
			d, err := css.ParseDimen(v)
			if err != nil || d.IsAuto() || d.Unwrap() < 0 {
				return false
			}
			if d.IsPercent() {
				d = css.EM(float64(d.Unwrap()) / 65536 / 100)
			}
			s.LineHeight = d
			return true
		},
		inherit: func(dst, src *Spec) { dst.LineHeight = src.LineHeight },
	}
}

// setFontSize resolves relative font sizes against the parent's font size.
func setFontSize(s *Spec, v string, parent *Spec, dflt Defaults) bool {
	ref := dflt.FontSize
	if parent != nil {
		ref = parent.FontSize
	}
	switch strings.ToLower(v) {
	case "smaller":
		s.FontSize = ref.Scale(1 / 1.2)
		return true
	case "larger":
		s.FontSize = ref.Scale(1.2)
		return true
	}
	if f, ok := css.FontSizeKeyword(v); ok {
		s.FontSize = dflt.FontSize.Scale(f)
		return true
	}
	d, err := css.ParseDimen(v)
	if err != nil || d.IsAuto() || d.IsKeyword() || d.Unwrap() < 0 {
		return false
	}
	if d.IsPercent() {
		s.FontSize, _ = d.Resolve(ref)
		return true
	}
	if d.IsFontRelative() {
		root := s.rootFontSize
		if parent != nil {
			root = parent.rootFontSize
		}
		d = d.FixFont(ref, root)
	}
	s.FontSize = d.Unwrap()
	return true
}

func dimenHandler(field func(*Spec) *css.DimenT, allowAuto, allowNegative bool) handler {
	return handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			d, err := css.ParseDimen(v)
			if err != nil || d.IsKeyword() {
				return false
			}
			if d.IsAuto() && !allowAuto {
				return false
			}
			if d.Unwrap() < 0 && !allowNegative {
				return false
			}
			*field(s) = d
			return true
		},
		inherit: func(dst, src *Spec) { *field(dst) = *field(src) },
	}
}

func noneDimenHandler(field func(*Spec) *css.DimenT) handler {
	h := dimenHandler(field, false, false)
	set := h.set
	h.set = func(s *Spec, v string, parent *Spec, dflt Defaults) bool {
		if strings.EqualFold(v, "none") {
			*field(s) = css.Dimen()
			return true
		}
		return set(s, v, parent, dflt)
	}
	return h
}

func colorHandler(field func(*Spec) *color.RGBA) handler {
	return handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			if strings.EqualFold(v, "currentcolor") {
				*field(s) = s.Color
				return true
			}
			c, err := css.ParseColor(v)
			if err != nil {
				return false
			}
			*field(s) = c
			return true
		},
		inherit: func(dst, src *Spec) { *field(dst) = *field(src) },
	}
}

func keywordHandler(field func(*Spec) *string) handler {
	return handler{
		set: func(s *Spec, v string, _ *Spec, _ Defaults) bool {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				return false
			}
			*field(s) = v
			return true
		},
		inherit: func(dst, src *Spec) { *field(dst) = *field(src) },
	}
}
