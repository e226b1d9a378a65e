package layout

import (
	"errors"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/text"
)

// Invaluable:
// https://developer.mozilla.org/en-US/docs/Web/CSS/Visual_formatting_model

// ErrUnbalancedContainingBlock signals a pop of the containing-block margin
// accumulator without a matching push. It indicates a broken box tree.
var ErrUnbalancedContainingBlock = errors.New("unbalanced containing-block nesting")

// ErrNoTree is returned for layout requests without a box tree.
var ErrNoTree = errors.New("no box tree to lay out")

// Layouter lays out a box tree. It carries the state of a layout pass and is
// not safe for concurrent use. Boxes of the tree receive their geometry in
// absolute coordinates, with the top left corner of the root's margin box
// at the origin.
type Layouter struct {
	tree    *boxtree.Tree
	measure text.Measurer
	// left+right margins of active boxes establishing a different containing block
	margins     *arraystack.Stack
	marginTotal dimen.Dimen
	maxRight    dimen.Dimen                  // hard right edge of the current pass
	size        dimen.Point                  // actual size accumulator
	overflow    dimen.Dimen                  // compensation needed for content exceeding maxRight
	held        [][]extent                   // extents of boxes laid out at a temporary position, innermost last
	pending     map[boxtree.Index][]absolute // out-of-flow boxes per anchor
	naturals    map[boxtree.Index]dimen.Dimen
}

// Option configures a Layouter.
type Option func(*Layouter)

// WithMeasurer sets the text measurer. The default is a monospace measurer
// with the 7x13 basic font.
func WithMeasurer(m text.Measurer) Option {
	return func(l *Layouter) {
		if m != nil {
			l.measure = m
		}
	}
}

// New creates a Layouter for a box tree.
func New(tree *boxtree.Tree, opts ...Option) *Layouter {
	l := &Layouter{
		tree:    tree,
		margins: arraystack.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.measure == nil {
		l.measure = text.NewMonospace(nil)
	}
	return l
}

// Tree returns the box tree of l.
func (l *Layouter) Tree() *boxtree.Tree {
	return l.tree
}

// Layout assigns size and location to the boxes below and including root and
// returns the actual size of the laid out content.
//
// If available is unset or auto, layout shrinks to fit in two passes: the
// first pass lets content reach its natural width; the second pass pins the
// width to the first pass' actual width, rounded up to whole pixels.
// Otherwise available has to be an absolute width.
func (l *Layouter) Layout(root boxtree.Index, available css.DimenT) (dimen.Point, error) {
	if l.tree == nil {
		return dimen.Point{}, core.WrapError(ErrNoTree, core.EMISSING, "layout")
	}
	if root == boxtree.None {
		return dimen.Point{}, nil
	}
	if !l.tree.Valid(root) {
		return dimen.Point{}, core.Error(core.EINVALID, "layout root %d is not a box", root)
	}
	if available.IsAbsolute() {
		return l.pass(root, available.Unwrap())
	}
	if !available.IsNone() && !available.IsAuto() {
		return dimen.Point{}, core.Error(core.EINVALID, "available width has to be absolute, is %v", available)
	}
	natural, err := l.pass(root, dimen.Unbounded)
	if err != nil {
		return natural, err
	}
	w := natural.X.CeilPx()
	tracer().Debugf("shrink-to-fit: natural width %v, pinned to %v", natural.X, w)
	return l.pass(root, w)
}

// Size returns the actual size of the last layout pass.
func (l *Layouter) Size() dimen.Point {
	return l.size
}

// Overflow returns how far content of the last pass exceeded the available
// width, with the margins of enclosing containing blocks added back.
func (l *Layouter) Overflow() dimen.Dimen {
	return l.overflow
}

// pass runs a complete layout of root at a fixed width.
func (l *Layouter) pass(root boxtree.Index, width dimen.Dimen) (dimen.Point, error) {
	tracer().Infof("layout pass at width %v", width)
	l.tree.ResetGeometry()
	l.margins.Clear()
	l.marginTotal = 0
	l.maxRight = width
	l.size = dimen.Point{}
	l.overflow = 0
	l.held = nil
	l.pending = make(map[boxtree.Index][]absolute)
	l.naturals = make(map[boxtree.Index]dimen.Dimen)
	cb := containingBlock{w: width, h: -1}
	if _, err := l.layoutBlock(root, cb, 0, 0, 0); err != nil {
		return l.size, err
	}
	if err := l.layoutPending(root); err != nil {
		return l.size, err
	}
	if !l.margins.Empty() {
		return l.size, core.WrapError(ErrUnbalancedContainingBlock, core.EINTERNAL,
			"%d containing blocks left open", l.margins.Size())
	}
	tracer().Infof("layout pass done, actual size %v x %v", l.size.X, l.size.Y)
	return l.size, nil
}

// --- Containing-block bookkeeping ------------------------------------------

// pushContainingBlock is called on entry of a box establishing a different
// containing block.
func (l *Layouter) pushContainingBlock(margins dimen.Dimen) {
	l.margins.Push(margins)
	l.marginTotal += margins
}

// popContainingBlock is called on exit of a box establishing a different
// containing block.
func (l *Layouter) popContainingBlock() error {
	v, ok := l.margins.Pop()
	if !ok {
		return core.WrapError(ErrUnbalancedContainingBlock, core.EINTERNAL, "pop on empty accumulator")
	}
	l.marginTotal -= v.(dimen.Dimen)
	return nil
}

// extent is the right and bottom edge of laid out content, together with
// the margins of the boxes establishing containing blocks around it.
type extent struct {
	right, bottom, margins dimen.Dimen
}

// beginProvisional starts laying out a box at a temporary position. Extents
// are held back until the matching endProvisional.
func (l *Layouter) beginProvisional() {
	l.held = append(l.held, nil)
}

// endProvisional returns the extents held back since the matching
// beginProvisional. They have to be replayed once the box has been moved.
func (l *Layouter) endProvisional() []extent {
	n := len(l.held) - 1
	ext := l.held[n]
	l.held = l.held[:n]
	return ext
}

// replay accounts held extents, moved by v.
func (l *Layouter) replay(ext []extent, v dimen.Point) {
	for _, e := range ext {
		l.record(extent{right: e.right + v.X, bottom: e.bottom + v.Y, margins: e.margins})
	}
}

// account adds the extent of a box to the actual size accumulator.
func (l *Layouter) account(right, bottom dimen.Dimen) {
	l.record(extent{right: right, bottom: bottom, margins: l.marginTotal})
}

func (l *Layouter) record(e extent) {
	if n := len(l.held); n > 0 {
		l.held[n-1] = append(l.held[n-1], e)
		return
	}
	if e.right > l.size.X {
		l.size.X = e.right
	}
	if e.bottom > l.size.Y {
		l.size.Y = e.bottom
	}
	if e.right > l.maxRight {
		if o := e.right - l.maxRight + e.margins; o > l.overflow {
			tracer().Debugf("content exceeds right edge by %v", o)
			l.overflow = o
		}
	}
}
