package frame

import (
	"image/color"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
)

// ColorStyle is a type for styling with color.
type ColorStyle struct {
	Foreground color.RGBA
	Background color.RGBA // may be (semi-)transparent
}

// TextStyle is a type for styling text.
type TextStyle struct {
	Family string
	Size   dimen.Dimen
	Weight int
	Italic bool
}

// BorderStyle is a type for simple borders, one per side.
type BorderStyle struct {
	LineColor [4]color.RGBA
	LineStyle [4]LineStyle
}

// LineStyle is a type for border line styles.
type LineStyle int8

// We support these line styles only. Other visible CSS border styles are
// painted solid.
const (
	LSNone   LineStyle = -1
	LSSolid  LineStyle = 0
	LSDashed LineStyle = 1
	LSDotted LineStyle = 2
)

// Styling rolls all styling options into one type.
type Styling struct {
	TextStyle TextStyle
	Colors    ColorStyle
	Border    BorderStyle
	Visible   bool
}

// StylingFrom extracts paint-relevant properties from a computed style.
func StylingFrom(spec *style.Spec) Styling {
	if spec == nil {
		spec = style.Default()
	}
	st := Styling{
		TextStyle: TextStyle{
			Family: spec.FontFamily,
			Size:   spec.FontSize,
			Weight: spec.FontWeight,
			Italic: spec.FontStyle != css.FontStyleNormal,
		},
		Colors: ColorStyle{
			Foreground: spec.Color,
			Background: spec.Background,
		},
		Visible: spec.Visibility == css.Visible,
	}
	for side := Top; side <= Left; side++ {
		st.Border.LineColor[side] = spec.BorderColor[side]
		st.Border.LineStyle[side] = lineStyle(spec.BorderStyle[side])
	}
	return st
}

func lineStyle(bs css.BorderStyle) LineStyle {
	switch bs {
	case css.BorderNone, css.BorderHidden:
		return LSNone
	case css.BorderDashed:
		return LSDashed
	case css.BorderDotted:
		return LSDotted
	}
	return LSSolid
}
