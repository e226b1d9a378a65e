package css

import (
	"strconv"
	"strings"
)

// WhiteSpace is a type for CSS property "white-space".
type WhiteSpace uint8

// White-space modes. Normal is the initial value.
const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpaceNowrap
	WhiteSpacePre
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

var whiteSpaceNames = [...]string{"normal", "nowrap", "pre", "pre-wrap", "pre-line"}

func (ws WhiteSpace) String() string {
	if int(ws) < len(whiteSpaceNames) {
		return whiteSpaceNames[ws]
	}
	return "WhiteSpace(" + strconv.Itoa(int(ws)) + ")"
}

// Collapses is true for modes which collapse sequences of spaces.
func (ws WhiteSpace) Collapses() bool {
	return ws == WhiteSpaceNormal || ws == WhiteSpaceNowrap || ws == WhiteSpacePreLine
}

// Wraps is true for modes which allow soft line wrapping.
func (ws WhiteSpace) Wraps() bool {
	return ws != WhiteSpaceNowrap && ws != WhiteSpacePre
}

// Preserves is true for modes which keep every whitespace character.
func (ws WhiteSpace) Preserves() bool {
	return ws == WhiteSpacePre || ws == WhiteSpacePreWrap
}

// Position is a type for CSS property "position".
type Position uint8

// CSS positioning schemes.
const (
	PositionStatic   Position = iota // CSS static (default)
	PositionRelative                 // CSS relative
	PositionAbsolute                 // CSS absolute
	PositionFixed                    // CSS fixed
	PositionSticky                   // CSS sticky, currently mapped to relative
)

var positionNames = [...]string{"static", "relative", "absolute", "fixed", "sticky"}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "Position(" + strconv.Itoa(int(p)) + ")"
}

// IsOutOfFlow is true for absolute and fixed positioning.
func (p Position) IsOutOfFlow() bool {
	return p == PositionAbsolute || p == PositionFixed
}

// IsPositioned is true for every scheme but static.
func (p Position) IsPositioned() bool {
	return p != PositionStatic
}

// TextAlign is a type for CSS property "text-align".
type TextAlign uint8

// Horizontal alignment of line content. Start is the initial value and
// resolves to left or right depending on text direction.
const (
	TextAlignStart TextAlign = iota
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
	TextAlignEnd
)

var textAlignNames = [...]string{"start", "left", "right", "center", "justify", "end"}

func (ta TextAlign) String() string {
	if int(ta) < len(textAlignNames) {
		return textAlignNames[ta]
	}
	return "TextAlign(" + strconv.Itoa(int(ta)) + ")"
}

// BorderStyle is a type for CSS property "border-style". Only `none` and
// `hidden` suppress a border.
type BorderStyle uint8

// Border styles.
const (
	BorderNone BorderStyle = iota
	BorderHidden
	BorderSolid
	BorderDotted
	BorderDashed
	BorderDouble
	BorderGroove
	BorderRidge
	BorderInset
	BorderOutset
)

var borderStyleNames = [...]string{"none", "hidden", "solid", "dotted", "dashed", "double",
	"groove", "ridge", "inset", "outset"}

func (bs BorderStyle) String() string {
	if int(bs) < len(borderStyleNames) {
		return borderStyleNames[bs]
	}
	return "BorderStyle(" + strconv.Itoa(int(bs)) + ")"
}

// Visible is false for styles which suppress the border.
func (bs BorderStyle) Visible() bool {
	return bs > BorderHidden
}

// FontStyle is a type for CSS property "font-style".
type FontStyle uint8

// Font styles.
const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

var fontStyleNames = [...]string{"normal", "italic", "oblique"}

func (fs FontStyle) String() string {
	if int(fs) < len(fontStyleNames) {
		return fontStyleNames[fs]
	}
	return "FontStyle(" + strconv.Itoa(int(fs)) + ")"
}

// Visibility is a type for CSS property "visibility".
type Visibility uint8

// Visibility values.
const (
	Visible Visibility = iota
	Hidden
	Collapse
)

var visibilityNames = [...]string{"visible", "hidden", "collapse"}

func (v Visibility) String() string {
	if int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return "Visibility(" + strconv.Itoa(int(v)) + ")"
}

// keyword looks up s in a list of keyword names. It returns the index of
// the keyword or -1.
func keyword(s string, names []string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i
		}
	}
	return -1
}

// ParseWhiteSpace parses a value of property "white-space".
func ParseWhiteSpace(s string) (WhiteSpace, bool) {
	i := keyword(s, whiteSpaceNames[:])
	return WhiteSpace(max0(i)), i >= 0
}

// ParsePosition parses a value of property "position".
func ParsePosition(s string) (Position, bool) {
	i := keyword(s, positionNames[:])
	return Position(max0(i)), i >= 0
}

// ParseTextAlign parses a value of property "text-align".
func ParseTextAlign(s string) (TextAlign, bool) {
	i := keyword(s, textAlignNames[:])
	return TextAlign(max0(i)), i >= 0
}

// ParseBorderStyle parses a value of property "border-style".
func ParseBorderStyle(s string) (BorderStyle, bool) {
	i := keyword(s, borderStyleNames[:])
	return BorderStyle(max0(i)), i >= 0
}

// ParseFontStyle parses a value of property "font-style".
func ParseFontStyle(s string) (FontStyle, bool) {
	i := keyword(s, fontStyleNames[:])
	return FontStyle(max0(i)), i >= 0
}

// ParseVisibility parses a value of property "visibility".
func ParseVisibility(s string) (Visibility, bool) {
	i := keyword(s, visibilityNames[:])
	return Visibility(max0(i)), i >= 0
}

// ParseFontWeight parses a value of property "font-weight" into a numeric
// weight. `bolder` and `lighter` are relative to the parent weight.
func ParseFontWeight(s string, parent int) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return 400, true
	case "bold":
		return 700, true
	case "bolder":
		if parent < 400 {
			return 400, true
		}
		return 700, true
	case "lighter":
		if parent > 600 {
			return 400, true
		}
		return 100, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 1000 {
		return 400, false
	}
	return n, true
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

// Indices into per-side arrays of margins, paddings and borders.
const (
	Top int = iota
	Right
	Bottom
	Left
)
