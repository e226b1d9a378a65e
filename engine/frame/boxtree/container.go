package boxtree

import (
	"fmt"
	"image"
	"strings"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/text"
)

// Index addresses a box within a Tree.
type Index int32

// None is the index of no box.
const None Index = -1

// Kind distinguishes principal boxes from anonymous ones.
type Kind uint8

// Kinds of boxes.
//
// Some HTML elements create a mini-hierachy of boxes for rendering. The outermost box
// is called the principal box. It will always refer to the element.
// Anonymous boxes are generated to hold inline content which is a sibling of
// boxes for elements.
const (
	PrincipalBox Kind = iota
	AnonymousBox
)

func (k Kind) String() string {
	if k == AnonymousBox {
		return "anonymous"
	}
	return "principal"
}

// Word is a run of text placed by layout. Coordinates are absolute.
type Word struct {
	text.Run
	Rect     dimen.Rect
	Baseline dimen.Dimen
}

// CssBox is a node of the box tree.
type CssBox struct {
	Kind     Kind
	Display  css.DisplayMode
	Parent   Index
	Children []Index
	Node     *dom.Node    // source element, nil for anonymous boxes
	Spec     *style.Spec  // computed style; anonymous boxes share the parent's
	Runs     text.RunList // inline content of this box
	Box      frame.Box    // geometry, valid after layout
	Image    image.Image  // resource of replaced elements
	Src      string       // resource reference of replaced elements
	Words    []Word       // placed runs, valid after layout
}

// IsPrincipal is true for boxes of elements.
func (b *CssBox) IsPrincipal() bool {
	return b.Kind == PrincipalBox
}

// IsAnonymous is true for generated boxes.
func (b *CssBox) IsAnonymous() bool {
	return b.Kind == AnonymousBox
}

// IsReplaced is true for boxes whose content is not laid out by CSS rules,
// i.e. images.
func (b *CssBox) IsReplaced() bool {
	return b.Node != nil && b.Node.Tag() == dom.TagImg
}

// IsBlockLevel is true for boxes which stack vertically.
func (b *CssBox) IsBlockLevel() bool {
	return b.Display.IsBlockLevel() || b.Display.Contains(css.TableCellMode)
}

// IsInlineLevel is true for boxes which flow within lines.
func (b *CssBox) IsInlineLevel() bool {
	return b.Display.IsInlineLevel()
}

// IsOutOfFlow is true for absolutely positioned boxes.
func (b *CssBox) IsOutOfFlow() bool {
	return b.Spec != nil && b.Spec.Position.IsOutOfFlow()
}

// Name returns a short name for debugging.
func (b *CssBox) Name() string {
	if b.Kind == AnonymousBox {
		return "anon"
	}
	if b.Node == nil {
		return "?"
	}
	return b.Node.Name()
}

// --- Tree ------------------------------------------------------------------

// Tree is an arena of boxes. Boxes reference each other by index. A tree is
// exclusively owned by the session that built it.
type Tree struct {
	boxes []CssBox
	root  Index
	doc   *dom.Document
}

func newTree(doc *dom.Document) *Tree {
	return &Tree{root: None, doc: doc}
}

// Root returns the index of the root box, or None for an empty tree.
func (t *Tree) Root() Index {
	if t == nil {
		return None
	}
	return t.root
}

// Len returns the number of boxes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.boxes)
}

// Document returns the document a tree has been built from.
func (t *Tree) Document() *dom.Document {
	return t.doc
}

// Box returns the box at index i. It panics for indices out of range.
func (t *Tree) Box(i Index) *CssBox {
	return &t.boxes[i]
}

// Valid is true if i addresses a box of t.
func (t *Tree) Valid(i Index) bool {
	return t != nil && i >= 0 && int(i) < len(t.boxes)
}

// Parent returns the parent of box i, or None for the root.
func (t *Tree) Parent(i Index) Index {
	return t.boxes[i].Parent
}

// Children returns the child indices of box i.
func (t *Tree) Children(i Index) []Index {
	return t.boxes[i].Children
}

// BoxFor returns the principal box of an element, if any.
func (t *Tree) BoxFor(n *dom.Node) (Index, bool) {
	inx, ok := n.PrincipalBox()
	if !ok || !t.Valid(Index(inx)) || t.boxes[inx].Node != n {
		return None, false
	}
	return Index(inx), true
}

// Walk visits the boxes below and including i in depth-first order. If fn
// returns false, the children of a box are skipped.
func (t *Tree) Walk(i Index, fn func(i Index, depth int) bool) {
	if !t.Valid(i) {
		return
	}
	t.walk(i, 0, fn)
}

func (t *Tree) walk(i Index, depth int, fn func(Index, int) bool) {
	if !fn(i, depth) {
		return
	}
	for _, ch := range t.boxes[i].Children {
		t.walk(ch, depth+1, fn)
	}
}

// Images returns the indices of all replaced boxes referencing src.
func (t *Tree) Images(src string) []Index {
	var r []Index
	for i := range t.boxes {
		if t.boxes[i].IsReplaced() && t.boxes[i].Src == src {
			r = append(r, Index(i))
		}
	}
	return r
}

// ResetGeometry clears all results of a previous layout.
func (t *Tree) ResetGeometry() {
	for i := range t.boxes {
		t.boxes[i].Box = frame.Box{}
		t.boxes[i].Words = t.boxes[i].Words[:0]
	}
}

func (t *Tree) newBox(kind Kind, mode css.DisplayMode, n *dom.Node, spec *style.Spec) Index {
	t.boxes = append(t.boxes, CssBox{
		Kind:    kind,
		Display: mode,
		Parent:  None,
		Node:    n,
		Spec:    spec,
	})
	return Index(len(t.boxes) - 1)
}

func (t *Tree) appendChild(parent, child Index) {
	t.boxes[child].Parent = parent
	t.boxes[parent].Children = append(t.boxes[parent].Children, child)
}

// String returns an indented outline of the tree, for debugging.
func (t *Tree) String() string {
	var b strings.Builder
	t.Walk(t.Root(), func(i Index, depth int) bool {
		box := t.Box(i)
		fmt.Fprintf(&b, "%s%s %s", strings.Repeat("  ", depth), box.Display.Symbol(), box.Name())
		if !box.Runs.IsEmpty() {
			fmt.Fprintf(&b, " %q", box.Runs.String())
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
