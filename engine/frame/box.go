package frame

/*
BSD License

Copyright (c) 2017–2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"fmt"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
)

// Box type, following the CSS box model. All values are resolved.
// W and H always denote the content box.
type Box struct {
	TopL        dimen.Point    // top left corner of the border box
	W, H        dimen.Dimen    // size of the content box
	Padding     [4]dimen.Dimen // inside of border
	BorderWidth [4]dimen.Dimen // thickness of border
	Margins     [4]dimen.Dimen // outside of border, may be negative
}

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// --- Handling of box dimensions --------------------------------------------

// DebugString returns a textual representation of a box's dimensions.
// Intended for debugging.
func (box *Box) DebugString() string {
	s := fmt.Sprintf("box{\n   x=%v, y=%v, w=%v, h=%v\n", box.TopL.X, box.TopL.Y, box.W, box.H)
	s += fmt.Sprintf("   p.top=%v, p.right=%v, p.bottom=%v, p.left=%v\n",
		box.Padding[Top], box.Padding[Right],
		box.Padding[Bottom], box.Padding[Left])
	s += fmt.Sprintf("   b.top=%v, b.right=%v, b.bottom=%v, b.left=%v\n",
		box.BorderWidth[Top], box.BorderWidth[Right],
		box.BorderWidth[Bottom], box.BorderWidth[Left])
	s += fmt.Sprintf("   m.top=%v, m.right=%v, m.bottom=%v, m.left=%v\n",
		box.Margins[Top], box.Margins[Right],
		box.Margins[Bottom], box.Margins[Left])
	s += "}"
	return s
}

// DecorationWidth returns the cumulated width of padding and borders, and of
// margins if includeMargins is set.
func (box *Box) DecorationWidth(includeMargins bool) dimen.Dimen {
	w := box.Padding[Left] + box.Padding[Right] + box.BorderWidth[Left] + box.BorderWidth[Right]
	if includeMargins {
		w += box.Margins[Left] + box.Margins[Right]
	}
	return w
}

// DecorationHeight returns the cumulated height of padding and borders, and of
// margins if includeMargins is set.
func (box *Box) DecorationHeight(includeMargins bool) dimen.Dimen {
	h := box.Padding[Top] + box.Padding[Bottom] + box.BorderWidth[Top] + box.BorderWidth[Bottom]
	if includeMargins {
		h += box.Margins[Top] + box.Margins[Bottom]
	}
	return h
}

// BorderBoxWidth returns the width of a box, including padding and border.
func (box *Box) BorderBoxWidth() dimen.Dimen {
	return box.W + box.DecorationWidth(false)
}

// BorderBoxHeight returns the height of a box, including padding and border.
func (box *Box) BorderBoxHeight() dimen.Dimen {
	return box.H + box.DecorationHeight(false)
}

// TotalWidth returns the overall width of a box, including margins.
func (box *Box) TotalWidth() dimen.Dimen {
	return box.W + box.DecorationWidth(true)
}

// TotalHeight returns the overall height of a box, including margins.
func (box *Box) TotalHeight() dimen.Dimen {
	return box.H + box.DecorationHeight(true)
}

// BorderBox returns the border box rectangle.
func (box *Box) BorderBox() dimen.Rect {
	return dimen.RectWH(box.TopL.X, box.TopL.Y, box.BorderBoxWidth(), box.BorderBoxHeight())
}

// PaddingBox returns the padding box rectangle.
func (box *Box) PaddingBox() dimen.Rect {
	return dimen.RectWH(box.TopL.X+box.BorderWidth[Left], box.TopL.Y+box.BorderWidth[Top],
		box.W+box.Padding[Left]+box.Padding[Right], box.H+box.Padding[Top]+box.Padding[Bottom])
}

// ContentBox returns the content box rectangle.
func (box *Box) ContentBox() dimen.Rect {
	o := box.ContentOrigin()
	return dimen.RectWH(o.X, o.Y, box.W, box.H)
}

// MarginBox returns the margin box rectangle.
func (box *Box) MarginBox() dimen.Rect {
	return dimen.RectWH(box.TopL.X-box.Margins[Left], box.TopL.Y-box.Margins[Top],
		box.TotalWidth(), box.TotalHeight())
}

// ContentOrigin returns the top left corner of the content box.
func (box *Box) ContentOrigin() dimen.Point {
	return dimen.Point{
		X: box.TopL.X + box.BorderWidth[Left] + box.Padding[Left],
		Y: box.TopL.Y + box.BorderWidth[Top] + box.Padding[Top],
	}
}

// MoveTo places the margin box at p.
func (box *Box) MoveTo(p dimen.Point) {
	box.TopL = dimen.Point{X: p.X + box.Margins[Left], Y: p.Y + box.Margins[Top]}
}

// Shift moves the box by a vector.
func (box *Box) Shift(v dimen.Point) {
	box.TopL.Shift(v)
}

// ----------------------------------------------------------------------------------

// InitFromStyle resolves padding, border widths and margins from a computed
// style. Percentages refer to the width of the containing block, even for
// vertical values. Borders with style none or hidden have zero width. Auto margins are set to 0; they will be re-distributed by
// FixDimensionsFromEnclosingWidth.
func (box *Box) InitFromStyle(spec *style.Spec, enclosingWidth dimen.Dimen) {
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = dimen.Max(0, spec.Padding[dir].ResolveOr(enclosingWidth, 0))
		if spec.BorderStyle[dir].Visible() {
			box.BorderWidth[dir] = dimen.Max(0, spec.BorderWidth[dir].ResolveOr(enclosingWidth, 0))
		} else {
			box.BorderWidth[dir] = 0
		}
		box.Margins[dir] = spec.Margins[dir].ResolveOr(enclosingWidth, 0)
	}
}

// CollapseMargins returns the greater margin between bottom margin of box1 and
// top margin of box2, and the smaller one as the second return value.
// The collapsed margin to use is the sum of both if at least one of them is
// negative, and the greater one otherwise (see CollapsedMargin).
func CollapseMargins(box1, box2 *Box) (dimen.Dimen, dimen.Dimen) {
	if box1 == nil {
		if box2 == nil {
			return 0, 0
		}
		return box2.Margins[Top], 0
	} else if box2 == nil {
		return box1.Margins[Bottom], 0
	}
	return dimen.Max(box1.Margins[Bottom], box2.Margins[Top]),
		dimen.Min(box1.Margins[Bottom], box2.Margins[Top])
}

// CollapsedMargin returns the resulting margin of two adjoining margins.
func CollapsedMargin(m1, m2 dimen.Dimen) dimen.Dimen {
	switch {
	case m1 >= 0 && m2 >= 0:
		return dimen.Max(m1, m2)
	case m1 < 0 && m2 < 0:
		return dimen.Min(m1, m2)
	}
	return m1 + m2
}

// --- API for constraint width solving --------------------------------------

// FixDimensionsFromEnclosingWidth calculates missing/auto dimensions from the
// width of the enclosing box, for block-level boxes in normal flow.
//
// This will distribute space according to the equation (ref. CSS spec):
//
//     margin-left + border-width-left + padding-left + width +
//       padding-right + border-width-right + margin-right = width of containing block
//
// Padding and border widths have to be set before (see InitFromStyle).
// Returns true if the width has been calculated as the rest of the equation,
// i.e. width is `auto`.
func FixDimensionsFromEnclosingWidth(box *Box, spec *style.Spec, enclosingWidth dimen.Dimen) bool {
	w, ok := SpecifiedWidth(box, spec, enclosingWidth)
	if !ok {
		calcWidthAsRest(box, spec, enclosingWidth)
		tracer().Debugf("calculate width as rest to w = %v", box.W)
		return true
	}
	box.W = w
	DistributeHorizontalMargins(box, spec, enclosingWidth)
	return false
}

// SpecifiedWidth returns the content width set by property `width`,
// respecting box-sizing and min/max widths. It returns false for `auto`.
func SpecifiedWidth(box *Box, spec *style.Spec, enclosingWidth dimen.Dimen) (dimen.Dimen, bool) {
	w, ok := spec.Width.Resolve(enclosingWidth)
	if !ok {
		return 0, false
	}
	if spec.BorderBox {
		w -= box.DecorationWidth(false)
	}
	return ClampWidth(box, spec, dimen.Max(0, w), enclosingWidth), true
}

// ClampWidth restricts a content width to min-width and max-width.
func ClampWidth(box *Box, spec *style.Spec, w, enclosingWidth dimen.Dimen) dimen.Dimen {
	dec := dimen.Zero
	if spec.BorderBox {
		dec = box.DecorationWidth(false)
	}
	if max, ok := spec.MaxWidth.Resolve(enclosingWidth); ok && w > max-dec {
		w = max - dec
	}
	if min, ok := spec.MinWidth.Resolve(enclosingWidth); ok && w < min-dec {
		w = min - dec
	}
	return dimen.Max(0, w)
}

// ClampHeight restricts a content height to min-height and max-height.
// Percentages are ignored if the height of the containing block is unknown,
// signalled by a negative value.
func ClampHeight(box *Box, spec *style.Spec, h, enclosingHeight dimen.Dimen) dimen.Dimen {
	dec := dimen.Zero
	if spec.BorderBox {
		dec = box.DecorationHeight(false)
	}
	resolve := func(d css.DimenT) (dimen.Dimen, bool) {
		if d.IsPercent() && enclosingHeight < 0 {
			return 0, false
		}
		return d.Resolve(enclosingHeight)
	}
	if max, ok := resolve(spec.MaxHeight); ok && h > max-dec {
		h = max - dec
	}
	if min, ok := resolve(spec.MinHeight); ok && h < min-dec {
		h = min - dec
	}
	return dimen.Max(0, h)
}

// SpecifiedHeight returns the content height set by property `height`.
// enclosingHeight < 0 means that the height of the containing block depends
// on its content, which makes percentages behave as `auto`.
func SpecifiedHeight(box *Box, spec *style.Spec, enclosingHeight dimen.Dimen) (dimen.Dimen, bool) {
	if spec.Height.IsPercent() && enclosingHeight < 0 {
		return 0, false
	}
	h, ok := spec.Height.Resolve(enclosingHeight)
	if !ok {
		return 0, false
	}
	if spec.BorderBox {
		h -= box.DecorationHeight(false)
	}
	return ClampHeight(box, spec, dimen.Max(0, h), enclosingHeight), true
}

// Spec: If 'width' is set to 'auto', any other 'auto' values become '0'
// and 'width' follows from the resulting equality.
func calcWidthAsRest(box *Box, spec *style.Spec, enclosing dimen.Dimen) {
	if spec.Margins[Left].IsAuto() {
		box.Margins[Left] = 0
	}
	if spec.Margins[Right].IsAuto() {
		box.Margins[Right] = 0
	}
	w := enclosing - box.DecorationWidth(true)
	box.W = ClampWidth(box, spec, w, enclosing)
	if box.W != w {
		DistributeHorizontalMargins(box, spec, enclosing)
	}
}

// DistributeHorizontalMargins distributes space into left and right margins
// after the border-box has been fixed.
func DistributeHorizontalMargins(box *Box, spec *style.Spec, enclosing dimen.Dimen) {
	remaining := enclosing - box.BorderBoxWidth()
	left, right := spec.Margins[Left], spec.Margins[Right]
	switch {
	case left.IsAuto() && right.IsAuto():
		box.Margins[Left] = dimen.Max(0, remaining/2)
		box.Margins[Right] = remaining - box.Margins[Left]
	case left.IsAuto():
		box.Margins[Left] = remaining - box.Margins[Right]
	default: // over-constrained: margin-right gives way
		box.Margins[Right] = remaining - box.Margins[Left]
	}
}
