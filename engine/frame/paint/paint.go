package paint

import (
	"image"
	"image/color"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// DrawingContext is the capability a host provides for painting.
// Coordinates are the absolute coordinates of layout.
type DrawingContext interface {
	FillRect(r dimen.Rect, c color.Color)
	// StrokeRect draws the border of a border box, with widths given per side.
	StrokeRect(r dimen.Rect, widths [4]dimen.Dimen, border frame.BorderStyle)
	// DrawText draws a word with the left end of its baseline at p.
	DrawText(s string, p dimen.Point, st frame.TextStyle, c color.Color)
	DrawImage(img image.Image, r dimen.Rect)
}

// Paint draws all boxes of a laid out tree onto dc.
func Paint(tree *boxtree.Tree, dc DrawingContext) {
	if tree == nil || dc == nil {
		return
	}
	n := 0
	tree.Walk(tree.Root(), func(i boxtree.Index, _ int) bool {
		paintBox(tree.Box(i), dc)
		n++
		return true
	})
	tracer().Debugf("painted %d boxes", n)
}

func paintBox(b *boxtree.CssBox, dc DrawingContext) {
	sty := frame.StylingFrom(b.Spec)
	if !sty.Visible {
		return
	}
	if b.IsPrincipal() {
		bb := b.Box.BorderBox()
		if sty.Colors.Background.A > 0 && bb.Width() > 0 && bb.Height() > 0 {
			dc.FillRect(bb, sty.Colors.Background)
		}
		if b.Box.BorderWidth != [4]dimen.Dimen{} {
			dc.StrokeRect(bb, b.Box.BorderWidth, sty.Border)
		}
		if b.IsReplaced() && b.Image != nil {
			dc.DrawImage(b.Image, b.Box.ContentBox())
		}
	}
	for _, w := range b.Words {
		dc.DrawText(w.Text, dimen.Point{X: w.Rect.TopL.X, Y: w.Baseline}, sty.TextStyle, sty.Colors.Foreground)
	}
}
