/*
Package style holds the resolved style of a single element.

A Builder collects properties during the cascade: inherited values first,
followed by declaration blocks in cascade order. Freeze ends the cascade
for an element and returns an immutable Spec. Writes to a frozen builder
fail with ErrFrozen.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"image/color"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'cssbox.style'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.style")
}

// Spec is the resolved, immutable style of an element. Lengths relative
// to the element's font are resolved; percentages stay relative until layout
// knows the containing block.
type Spec struct {
	Display         css.DisplayMode
	Position        css.Position
	Offsets         [4]css.DimenT // top, right, bottom, left for positioned boxes
	Width, Height   css.DimenT
	MinWidth        css.DimenT
	MaxWidth        css.DimenT
	MinHeight       css.DimenT
	MaxHeight       css.DimenT
	BorderBox       bool // box-sizing: border-box
	Margins         [4]css.DimenT
	Padding         [4]css.DimenT
	BorderWidth     [4]css.DimenT
	BorderStyle     [4]css.BorderStyle
	BorderColor     [4]color.RGBA
	Color           color.RGBA
	Background      color.RGBA
	BackgroundImage string
	VerticalAlign   string
	Direction       bidi.Direction
	WhiteSpace      css.WhiteSpace
	TextAlign       css.TextAlign
	TextIndent      css.DimenT
	FontFamily      string
	FontSize        dimen.Dimen
	FontWeight      int
	FontStyle       css.FontStyle
	LineHeight      css.DimenT // auto for `normal`
	Visibility      css.Visibility
	ListStyleType   string

	rootFontSize     dimen.Dimen
	borderColorIsSet [4]bool
	declared         map[string]string
	version          uint32
}

// Version returns the number of declaration blocks applied during the cascade.
func (s *Spec) Version() uint32 {
	return s.version
}

// Get returns the declared value of a property after the cascade, or ""
// if no declaration for it has been applied. This works for properties
// without a typed field as well.
func (s *Spec) Get(property string) string {
	if s == nil || s.declared == nil {
		return ""
	}
	return s.declared[property]
}

// IsDisplayNone is true if the element generates no box.
func (s *Spec) IsDisplayNone() bool {
	return s.Display.Contains(css.DisplayNone)
}

// EffectiveTextAlign resolves start and end against the text direction.
func (s *Spec) EffectiveTextAlign() css.TextAlign {
	switch s.TextAlign {
	case css.TextAlignStart:
		if s.Direction == bidi.RightToLeft {
			return css.TextAlignRight
		}
		return css.TextAlignLeft
	case css.TextAlignEnd:
		if s.Direction == bidi.RightToLeft {
			return css.TextAlignLeft
		}
		return css.TextAlignRight
	}
	return s.TextAlign
}

// Defaults parameterizes the initial values of font properties.
type Defaults struct {
	FontSize   dimen.Dimen
	FontFamily string
}

// StandardDefaults are used by NewBuilder if no other defaults are given.
var StandardDefaults = Defaults{
	FontSize:   13 * dimen.PX,
	FontFamily: "monospace",
}

func initialSpec(dflt Defaults) Spec {
	s := Spec{
		Display:       css.InlineMode | css.FlowMode,
		Width:         css.Auto(),
		Height:        css.Auto(),
		MinWidth:      css.SomeDimen(0),
		MinHeight:     css.SomeDimen(0),
		Color:         color.RGBA{A: 0xff},
		Background:    css.Transparent,
		Direction:     bidi.LeftToRight,
		FontFamily:    dflt.FontFamily,
		FontSize:      dflt.FontSize,
		FontWeight:    400,
		LineHeight:    css.Auto(),
		TextIndent:    css.SomeDimen(0),
		VerticalAlign: "baseline",
		ListStyleType: "disc",
		rootFontSize:  dflt.FontSize,
	}
	for side := css.Top; side <= css.Left; side++ {
		s.Offsets[side] = css.Auto()
		s.Margins[side] = css.SomeDimen(0)
		s.Padding[side] = css.SomeDimen(0)
		s.BorderWidth[side] = css.SomeDimen(3 * dimen.PX)
	}
	return s
}

// Default returns a frozen spec with initial values only.
func Default() *Spec {
	s := initialSpec(StandardDefaults)
	s.freeze()
	return &s
}

// freeze resolves values which depend on other properties of the same element.
func (s *Spec) freeze() {
	fix := func(d css.DimenT) css.DimenT {
		return d.FixFont(s.FontSize, s.rootFontSize)
	}
	for side := css.Top; side <= css.Left; side++ {
		s.Offsets[side] = fix(s.Offsets[side])
		s.Margins[side] = fix(s.Margins[side])
		s.Padding[side] = fix(s.Padding[side])
		s.BorderWidth[side] = fix(s.BorderWidth[side])
		if !s.BorderStyle[side].Visible() {
			s.BorderWidth[side] = css.SomeDimen(0)
		}
		if !s.borderColorIsSet[side] {
			s.BorderColor[side] = s.Color
		}
	}
	s.Width, s.Height = fix(s.Width), fix(s.Height)
	s.MinWidth, s.MaxWidth = fix(s.MinWidth), fix(s.MaxWidth)
	s.MinHeight, s.MaxHeight = fix(s.MinHeight), fix(s.MaxHeight)
	s.TextIndent = fix(s.TextIndent)
	s.LineHeight = fix(s.LineHeight)
}
