package layout

import (
	"sort"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// --- Absolute Positioning --------------------------------------------------

// Boxes with position absolute or fixed are taken out of the flow. They are
// remembered together with their static position, i.e. the position they
// would have had in the flow, and laid out after the flow is complete, when
// the geometry of their anchors is known.

type absolute struct {
	box    boxtree.Index
	static dimen.Point
}

func (l *Layouter) deferAbsolute(i boxtree.Index, static dimen.Point) {
	anchor := l.tree.Anchor(i)
	tracer().Debugf("deferring %s, anchored at %d", l.tree.Box(i).Name(), anchor)
	l.pending[anchor] = append(l.pending[anchor], absolute{box: i, static: static})
}

// layoutPending lays out deferred boxes until none are left. Boxes deferred
// while laying out an out-of-flow box are handled in a subsequent round.
func (l *Layouter) layoutPending(root boxtree.Index) error {
	for len(l.pending) > 0 {
		batch := l.pending
		l.pending = make(map[boxtree.Index][]absolute)
		anchors := make([]boxtree.Index, 0, len(batch))
		for a := range batch {
			anchors = append(anchors, a)
		}
		sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })
		for _, a := range anchors {
			for _, abs := range batch[a] {
				if err := l.layoutAbsolute(a, abs, root); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// initialContainingBlock is the containing block of the root. Without a
// fixed width it is as large as the content laid out so far.
func (l *Layouter) initialContainingBlock() containingBlock {
	w := l.maxRight
	if w >= dimen.Unbounded {
		w = l.size.X
	}
	return containingBlock{w: w, h: l.size.Y}
}

func (l *Layouter) layoutAbsolute(anchor boxtree.Index, abs absolute, root boxtree.Index) error {
	cb := l.initialContainingBlock()
	if anchor != root && l.tree.Valid(anchor) {
		pb := l.tree.Box(anchor).Box.PaddingBox()
		cb = containingBlock{x: pb.TopL.X, y: pb.TopL.Y, w: pb.Width(), h: pb.Height()}
	}
	spec := l.spec(abs.box)
	left, lok := spec.Offsets[css.Left].Resolve(cb.w)
	right, rok := spec.Offsets[css.Right].Resolve(cb.w)
	top, tok := spec.Offsets[css.Top].Resolve(cb.h)
	bottom, bok := spec.Offsets[css.Bottom].Resolve(cb.h)
	at := abs.static
	if lok {
		at.X = cb.x + left
	}
	if tok {
		at.Y = cb.y + top
	}
	l.beginProvisional()
	_, err := l.layoutBlock(abs.box, cb, at.X, at.Y, 0)
	ext := l.endProvisional()
	if err != nil {
		return err
	}
	box := &l.tree.Box(abs.box).Box
	var v dimen.Point
	if !lok && rok {
		v.X = cb.x + cb.w - right - box.TotalWidth() - at.X
	}
	if !tok && bok {
		v.Y = cb.y + cb.h - bottom - box.TotalHeight() - at.Y
	}
	if v != (dimen.Point{}) {
		l.shiftSubtree(abs.box, v)
	}
	l.replay(ext, v)
	mb := box.MarginBox()
	tracer().Debugf("absolute %s at %v", l.tree.Box(abs.box).Name(), mb.TopL)
	l.account(mb.BotR.X, mb.BotR.Y)
	return nil
}

// absoluteWidth resolves the width of an out-of-flow box. With both left and
// right set and width auto, the box fills the space between them. Otherwise
// an auto width shrinks to fit.
func (l *Layouter) absoluteWidth(i boxtree.Index, box *frame.Box, spec *style.Spec, cb containingBlock) {
	if w, ok := frame.SpecifiedWidth(box, spec, cb.w); ok {
		box.W = w
		return
	}
	avail := cb.w - box.DecorationWidth(true)
	left, lok := spec.Offsets[css.Left].Resolve(cb.w)
	right, rok := spec.Offsets[css.Right].Resolve(cb.w)
	if lok {
		avail -= left
	}
	if rok {
		avail -= right
	}
	avail = dimen.Max(0, avail)
	if lok && rok {
		box.W = frame.ClampWidth(box, spec, avail, cb.w)
		return
	}
	box.W = frame.ClampWidth(box, spec, dimen.Min(l.natural(i), avail), cb.w)
}
