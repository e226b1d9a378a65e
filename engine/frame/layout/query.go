package layout

import (
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// Q is a query for laid out boxes.
type Q struct {
	l          *Layouter
	predicates []QueryPredicate
}

// QueryPredicate selects boxes of a tree.
type QueryPredicate func(t *boxtree.Tree, i boxtree.Index) bool

// Query creates a query for the boxes of the last layout matching all
// predicates.
func (l *Layouter) Query(preds ...QueryPredicate) *Q {
	return &Q{l: l, predicates: preds}
}

// All returns the matching boxes in tree order.
func (q *Q) All() []boxtree.Index {
	var r []boxtree.Index
	t := q.l.tree
	t.Walk(t.Root(), func(i boxtree.Index, _ int) bool {
		for _, pred := range q.predicates {
			if !pred(t, i) {
				return true
			}
		}
		r = append(r, i)
		return true
	})
	return r
}

// AllBoxes returns the geometry of the matching boxes in tree order.
func (q *Q) AllBoxes() []frame.Box {
	all := q.All()
	boxes := make([]frame.Box, len(all))
	for n, i := range all {
		boxes[n] = q.l.tree.Box(i).Box
	}
	return boxes
}

// Contains selects boxes whose border box or text contains p.
func Contains(p dimen.Point) QueryPredicate {
	return func(t *boxtree.Tree, i boxtree.Index) bool {
		b := t.Box(i)
		if bb := b.Box.BorderBox(); bb.Width() > 0 && bb.Height() > 0 && bb.Contains(p) {
			return true
		}
		for _, w := range b.Words {
			if w.Rect.Contains(p) {
				return true
			}
		}
		return false
	}
}

// HasElement selects principal boxes of elements with a tag.
func HasElement(tag dom.Tag) QueryPredicate {
	return func(t *boxtree.Tree, i boxtree.Index) bool {
		n := t.Box(i).Node
		return n != nil && n.Tag() == tag
	}
}

// BoxAt returns the innermost box at p. Boxes later in tree order are
// considered to be on top.
func (l *Layouter) BoxAt(p dimen.Point) (boxtree.Index, bool) {
	if l.tree == nil {
		return boxtree.None, false
	}
	hits := l.Query(Contains(p)).All()
	if len(hits) == 0 {
		return boxtree.None, false
	}
	return hits[len(hits)-1], true
}

// AttributeAt returns the value of an attribute of the innermost element at p
// which carries it.
func (l *Layouter) AttributeAt(p dimen.Point, name string) (string, bool) {
	i, ok := l.BoxAt(p)
	if !ok {
		return "", false
	}
	for n := l.elementOf(i); n != nil; n = n.Parent() {
		if v, ok := n.Attr(name); ok {
			return v, true
		}
	}
	return "", false
}

// LinkAt returns the target of the innermost link at p.
func (l *Layouter) LinkAt(p dimen.Point) (string, bool) {
	i, ok := l.BoxAt(p)
	if !ok {
		return "", false
	}
	for n := l.elementOf(i); n != nil; n = n.Parent() {
		if n.Tag() != dom.TagA {
			continue
		}
		if href, ok := n.Attr("href"); ok {
			return href, true
		}
	}
	return "", false
}

// elementOf returns the element of box i, or of its nearest principal
// ancestor for anonymous boxes.
func (l *Layouter) elementOf(i boxtree.Index) *dom.Node {
	for ; i != boxtree.None; i = l.tree.Parent(i) {
		if n := l.tree.Box(i).Node; n != nil {
			return n
		}
	}
	return nil
}
