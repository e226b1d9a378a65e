package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/paint"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Canvas is a drawing context for painting box trees into an image.
type Canvas struct {
	dc   *gg.Context
	face font.Face
}

var _ paint.DrawingContext = &Canvas{}

// New creates a canvas of w x h pixels with a white background.
func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{dc: gg.NewContext(w, h), face: basicfont.Face7x13}
	c.dc.SetColor(color.White)
	c.dc.Clear()
	c.dc.SetFontFace(c.face)
	tracer().Debugf("canvas of %d x %d px", w, h)
	return c
}

// ForSize creates a canvas large enough for a layout size.
func ForSize(size dimen.Point) *Canvas {
	return New(int(size.X.CeilPx().Px()), int(size.Y.CeilPx().Px()))
}

func px(d dimen.Dimen) float64 {
	return d.Px()
}

// FillRect fills a rectangle.
func (c *Canvas) FillRect(r dimen.Rect, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(px(r.TopL.X), px(r.TopL.Y), px(r.Width()), px(r.Height()))
	c.dc.Fill()
}

// StrokeRect draws the sides of a border. Solid sides are filled, dashed and
// dotted sides are stroked along their center line.
func (c *Canvas) StrokeRect(r dimen.Rect, widths [4]dimen.Dimen, border frame.BorderStyle) {
	x0, y0, x1, y1 := px(r.TopL.X), px(r.TopL.Y), px(r.BotR.X), px(r.BotR.Y)
	sides := [4][4]float64{
		frame.Top:    {x0, y0, x1, y0 + px(widths[frame.Top])},
		frame.Right:  {x1 - px(widths[frame.Right]), y0, x1, y1},
		frame.Bottom: {x0, y1 - px(widths[frame.Bottom]), x1, y1},
		frame.Left:   {x0, y0, x0 + px(widths[frame.Left]), y1},
	}
	for side, s := range sides {
		w := widths[side]
		ls := border.LineStyle[side]
		if w <= 0 || ls == frame.LSNone {
			continue
		}
		c.dc.SetColor(border.LineColor[side])
		if ls == frame.LSSolid {
			c.dc.DrawRectangle(s[0], s[1], s[2]-s[0], s[3]-s[1])
			c.dc.Fill()
			continue
		}
		lw := px(w)
		c.dc.SetLineWidth(lw)
		if ls == frame.LSDotted {
			c.dc.SetDash(lw, lw)
		} else {
			c.dc.SetDash(3*lw, 3*lw)
		}
		if side == frame.Top || side == frame.Bottom {
			y := (s[1] + s[3]) / 2
			c.dc.DrawLine(s[0], y, s[2], y)
		} else {
			x := (s[0] + s[2]) / 2
			c.dc.DrawLine(x, s[1], x, s[3])
		}
		c.dc.Stroke()
		c.dc.SetDash()
	}
}

// DrawText draws a word on a baseline.
func (c *Canvas) DrawText(s string, p dimen.Point, _ frame.TextStyle, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawString(s, px(p.X), px(p.Y))
}

// DrawImage draws an image resampled to the size of a rectangle.
func (c *Canvas) DrawImage(img image.Image, r dimen.Rect) {
	w, h := int(math.Round(px(r.Width()))), int(math.Round(px(r.Height())))
	if b := img.Bounds(); b.Empty() || w <= 0 || h <= 0 {
		return
	} else if b.Dx() != w || b.Dy() != h {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	c.dc.DrawImage(img, int(math.Round(px(r.TopL.X))), int(math.Round(px(r.TopL.Y))))
}

// Image returns the canvas image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.dc.Image())
}
