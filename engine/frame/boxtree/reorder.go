package boxtree

import (
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame"
)

// Anchor returns the box which acts as the containing block of box i if i is
// positioned out of flow.
//
// Boxes with position 'fixed' are anchored at the root box. Boxes with
// position 'absolute' are anchored at the nearest ancestor with non-static
// positioning, or at the root box if there is none.
func (t *Tree) Anchor(i Index) Index {
	if !t.Valid(i) {
		return None
	}
	box := t.Box(i)
	if box.Spec == nil || box.Spec.Position == css.PositionFixed {
		return t.root
	}
	for p := box.Parent; p != None; p = t.boxes[p].Parent {
		if frame.IsAbsolutePositioningAnchor(t.boxes[p].Spec) && t.boxes[p].Kind == PrincipalBox {
			tracer().Debugf("%s anchored at %s", box.Name(), t.boxes[p].Name())
			return p
		}
	}
	return t.root
}

// OutOfFlow returns all boxes positioned absolutely or fixed, in tree order.
func (t *Tree) OutOfFlow() []Index {
	var r []Index
	for i := range t.boxes {
		if t.boxes[i].Kind == PrincipalBox && t.boxes[i].IsOutOfFlow() {
			r = append(r, Index(i))
		}
	}
	return r
}
