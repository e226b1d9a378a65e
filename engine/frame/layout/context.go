package layout

import (
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// --- Block Formatting Context ----------------------------------------------

// https://developer.mozilla.org/en-US/docs/Web/Guide/CSS/Block_formatting_context
//
// “Block-level boxes are boxes that participate in a block formatting context.
// Each block-level element generates a principal block-level box that contains
// descendant boxes and generated content and is also the box involved in any
// positioning scheme.”
//
// Margins collapse between adjacent siblings only. Margins of a parent and
// its first or last child do not collapse.

// containingBlock is the reference rectangle for the boxes of a container.
type containingBlock struct {
	x, y dimen.Dimen // origin of the content box
	w    dimen.Dimen
	h    dimen.Dimen // < 0 if the height depends on content
	cell bool        // w is the width of a table column
}

// placement is the result of laying out a block-level box.
type placement struct {
	bottom dimen.Dimen // bottom border edge
	margin dimen.Dimen // bottom margin, collapses with the next sibling
	used   dimen.Dimen // right margin edge if the box were shrink-wrapped around its content
}

func (l *Layouter) spec(i boxtree.Index) *style.Spec {
	if s := l.tree.Box(i).Spec; s != nil {
		return s
	}
	return style.Default()
}

// layoutBlock lays out box i as a block container. The left edge of its
// margin box is at x. y is the bottom border edge of the preceding sibling,
// whose bottom margin collapse will collapse with the top margin of i.
func (l *Layouter) layoutBlock(i boxtree.Index, cb containingBlock, x, y, collapse dimen.Dimen) (placement, error) {
	b := l.tree.Box(i)
	spec := l.spec(i)
	box := &b.Box
	box.InitFromStyle(spec, cb.w)
	establishes := frame.EstablishesContainingBlock(spec)
	if establishes {
		l.pushContainingBlock(box.Margins[frame.Left] + box.Margins[frame.Right])
	}
	l.fixWidth(i, box, spec, cb)
	box.TopL = dimen.Point{
		X: x + box.Margins[frame.Left],
		Y: y + frame.CollapsedMargin(collapse, box.Margins[frame.Top]),
	}
	origin := box.ContentOrigin()
	h, hasHeight := frame.SpecifiedHeight(box, spec, cb.h)
	inner := containingBlock{x: origin.X, y: origin.Y, w: box.W, h: -1}
	if hasHeight {
		inner.h = h
	}
	var contentH, used dimen.Dimen
	var err error
	switch {
	case b.IsReplaced():
		contentH, used = box.H, origin.X+box.W
	case isTableContext(b):
		contentH, used, err = l.layoutTable(i, inner)
	default:
		contentH, used, err = l.layoutContents(i, inner)
	}
	if err != nil {
		return placement{}, err
	}
	if !b.IsReplaced() {
		if hasHeight {
			box.H = h
		} else {
			box.H = frame.ClampHeight(box, spec, contentH, cb.h)
		}
	}
	tracer().Debugf("block %s at %v,%v: %v x %v", b.Name(), box.TopL.X, box.TopL.Y, box.W, box.H)
	p := placement{
		bottom: box.TopL.Y + box.BorderBoxHeight(),
		margin: box.Margins[frame.Bottom],
		used:   x,
	}
	if !l.isEmptyTerminal(i, spec) {
		contentW := used - origin.X + box.DecorationWidth(false)
		if !spec.Width.IsAuto() || frame.ShrinksToFit(spec) || b.IsReplaced() ||
			b.Display.Contains(css.TableCellMode) {
			contentW = dimen.Max(contentW, box.BorderBoxWidth())
		}
		p.used = x + spec.Margins[frame.Left].ResolveOr(cb.w, 0) + contentW +
			spec.Margins[frame.Right].ResolveOr(cb.w, 0)
		l.account(p.used, p.bottom+dimen.Max(0, p.margin))
	}
	if v := relativeOffset(spec, cb); v != (dimen.Point{}) {
		l.shiftSubtree(i, v)
		l.account(p.used+v.X, p.bottom+v.Y)
	}
	if establishes {
		if err := l.popContainingBlock(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// isTableContext is true for boxes laying out their children as table rows.
// Stray row groups and rows are laid out like tables.
func isTableContext(b *boxtree.CssBox) bool {
	switch frame.InnerContext(b.Display, false) {
	case frame.TableFormattingContext, frame.TableRowContext:
		return true
	}
	return false
}

// isStrayTablePart is true for cells, rows and row groups which are not laid
// out by an enclosing table. They shrink to fit like a table.
func isStrayTablePart(b *boxtree.CssBox) bool {
	return b.Display.Overlaps(css.TableCellMode | css.TableRowMode | css.TableRowGroupMode)
}

// isEmptyTerminal is true for boxes without children and without intrinsic
// size. They contribute nothing to the actual size.
func (l *Layouter) isEmptyTerminal(i boxtree.Index, spec *style.Spec) bool {
	b := l.tree.Box(i)
	if len(b.Children) > 0 || !b.Runs.IsEmpty() || b.IsReplaced() {
		return false
	}
	return b.Box.BorderBoxHeight() == 0 && b.Box.DecorationWidth(false) == 0 &&
		(spec.Width.IsAuto() || b.Box.W == 0)
}

// fixWidth resolves the content width of box i.
func (l *Layouter) fixWidth(i boxtree.Index, box *frame.Box, spec *style.Spec, cb containingBlock) {
	b := l.tree.Box(i)
	switch {
	case b.IsReplaced():
		l.replacedSize(i, box, spec, cb)
	case b.Display.Contains(css.TableCellMode) && cb.cell:
		box.W = dimen.Max(0, cb.w-box.DecorationWidth(true))
	case spec.Position.IsOutOfFlow():
		l.absoluteWidth(i, box, spec, cb)
	case frame.ShrinksToFit(spec) || isStrayTablePart(b):
		if w, ok := frame.SpecifiedWidth(box, spec, cb.w); ok {
			box.W = w
		} else {
			avail := dimen.Max(0, cb.w-box.DecorationWidth(true))
			box.W = frame.ClampWidth(box, spec, dimen.Min(l.natural(i), avail), cb.w)
		}
		if b.IsBlockLevel() && (spec.Margins[frame.Left].IsAuto() || spec.Margins[frame.Right].IsAuto()) {
			frame.DistributeHorizontalMargins(box, spec, cb.w)
		}
	default:
		frame.FixDimensionsFromEnclosingWidth(box, spec, cb.w)
	}
}

// layoutContents stacks the children of box i vertically. Consecutive
// inline-level children are flowed into lines. It returns the content height
// and the rightmost edge used by content.
func (l *Layouter) layoutContents(i boxtree.Index, inner containingBlock) (dimen.Dimen, dimen.Dimen, error) {
	b := l.tree.Box(i)
	cursor, collapse, used := inner.y, dimen.Zero, inner.x
	var group []boxtree.Index
	flush := func(ownRuns bool) error {
		if len(group) == 0 && !ownRuns {
			return nil
		}
		h, u, err := l.layoutInline(i, ownRuns, group, inner, cursor+collapse)
		if err != nil {
			return err
		}
		cursor += collapse + h
		collapse = 0
		used = dimen.Max(used, u)
		group = group[:0]
		return nil
	}
	if !b.Runs.IsEmpty() {
		if err := flush(true); err != nil {
			return 0, used, err
		}
	}
	for _, ch := range b.Children {
		c := l.tree.Box(ch)
		if c.IsOutOfFlow() {
			l.deferAbsolute(ch, dimen.Point{X: inner.x, Y: cursor + collapse})
			continue
		}
		if l.isInlineContent(ch) {
			group = append(group, ch)
			continue
		}
		if err := flush(false); err != nil {
			return 0, used, err
		}
		p, err := l.layoutBlock(ch, inner, inner.x, cursor, collapse)
		if err != nil {
			return 0, used, err
		}
		cursor, collapse = p.bottom, p.margin
		used = dimen.Max(used, p.used)
	}
	if err := flush(false); err != nil {
		return 0, used, err
	}
	return dimen.Max(0, cursor+collapse-inner.y), used, nil
}

// isInlineContent is true for boxes which take part in line layout.
func (l *Layouter) isInlineContent(i boxtree.Index) bool {
	c := l.tree.Box(i)
	if !c.IsInlineLevel() {
		return false
	}
	return c.Display.IsAtomicInline() || c.IsReplaced() || !l.containsBlock(i)
}

// containsBlock is true if an inline box has block-level content. Such boxes
// are laid out like blocks.
func (l *Layouter) containsBlock(i boxtree.Index) bool {
	for _, ch := range l.tree.Children(i) {
		c := l.tree.Box(ch)
		if c.IsOutOfFlow() {
			continue
		}
		if c.IsBlockLevel() {
			return true
		}
		if c.IsInlineLevel() && !c.Display.IsAtomicInline() && l.containsBlock(ch) {
			return true
		}
	}
	return false
}

// relativeOffset returns the shift of a relatively positioned box.
func relativeOffset(spec *style.Spec, cb containingBlock) dimen.Point {
	if spec.Position != css.PositionRelative && spec.Position != css.PositionSticky {
		return dimen.Point{}
	}
	var v dimen.Point
	if left, ok := spec.Offsets[css.Left].Resolve(cb.w); ok {
		v.X = left
	} else if right, ok := spec.Offsets[css.Right].Resolve(cb.w); ok {
		v.X = -right
	}
	vertical := func(d css.DimenT) (dimen.Dimen, bool) {
		if d.IsPercent() && cb.h < 0 {
			return 0, false
		}
		return d.Resolve(cb.h)
	}
	if top, ok := vertical(spec.Offsets[css.Top]); ok {
		v.Y = top
	} else if bottom, ok := vertical(spec.Offsets[css.Bottom]); ok {
		v.Y = -bottom
	}
	return v
}

// shiftSubtree moves box i and everything below it, including placed text.
func (l *Layouter) shiftSubtree(i boxtree.Index, v dimen.Point) {
	l.tree.Walk(i, func(j boxtree.Index, _ int) bool {
		b := l.tree.Box(j)
		b.Box.Shift(v)
		for k := range b.Words {
			w := &b.Words[k]
			w.Rect.TopL.Shift(v)
			w.Rect.BotR.Shift(v)
			w.Baseline += v.Y
		}
		return true
	})
}
