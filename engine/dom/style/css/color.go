package css

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	tcss "github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
)

// ErrIllegalColor is returned for strings which do not denote a CSS color.
var ErrIllegalColor = errors.New("format error parsing color")

// Transparent is the CSS color `transparent`.
var Transparent = color.RGBA{}

// ParseColor parses a CSS color: a color name, `transparent`, a hex color
// (#rgb, #rgba, #rrggbb, #rrggbbaa) or an rgb()/rgba() function.
func ParseColor(s string) (color.RGBA, error) {
	toks := Tokenize(s)
	if len(toks) != 1 {
		return color.RGBA{}, ErrIllegalColor
	}
	return colorFromToken(toks[0])
}

func colorFromToken(tok Token) (color.RGBA, error) {
	switch tok.Type {
	case tcss.IdentToken:
		name := strings.ToLower(tok.Data)
		if name == "transparent" {
			return Transparent, nil
		}
		if c, ok := colornames.Map[name]; ok {
			return c, nil
		}
	case tcss.HashToken:
		return hexColor(strings.TrimPrefix(tok.Data, "#"))
	case tcss.FunctionToken:
		if tok.Data == "rgb" || tok.Data == "rgba" {
			return rgbFunction(tok.Args)
		}
	}
	return color.RGBA{}, ErrIllegalColor
}

func hexColor(h string) (color.RGBA, error) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return color.RGBA{}, ErrIllegalColor
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, ErrIllegalColor
	}
	return premultiply(color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}), nil
}

func rgbFunction(args []Token) (color.RGBA, error) {
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, ErrIllegalColor
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i, a := range args {
		var f float64
		var err error
		switch a.Type {
		case tcss.NumberToken:
			f, err = strconv.ParseFloat(a.Data, 64)
			if i == 3 {
				f *= 255
			}
		case tcss.PercentageToken:
			f, err = strconv.ParseFloat(strings.TrimSuffix(a.Data, "%"), 64)
			f = f * 255 / 100
		default:
			return color.RGBA{}, ErrIllegalColor
		}
		if err != nil {
			return color.RGBA{}, ErrIllegalColor
		}
		ch[i] = clamp8(f)
	}
	return premultiply(color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}), nil
}

// color.RGBA is alpha-premultiplied, CSS colors are not.
func premultiply(c color.RGBA) color.RGBA {
	if c.A < 0xff {
		c.R = uint8(uint16(c.R) * uint16(c.A) / 0xff)
		c.G = uint8(uint16(c.G) * uint16(c.A) / 0xff)
		c.B = uint8(uint16(c.B) * uint16(c.A) / 0xff)
	}
	return c
}

func clamp8(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f + 0.5)
}
