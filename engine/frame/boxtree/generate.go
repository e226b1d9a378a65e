package boxtree

// This module should have knowledge about:
// - which boxes to create for each HTML element
// - how text children are distributed into anonymous boxes

import (
	"errors"
	"image"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/cssom"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/text"
)

// ErrNoDocument is returned when building from an empty document.
var ErrNoDocument = errors.New("no document to build box tree from")

// ImageRequest is a client callback for the resources of replaced elements.
// If sync is false, the host may return a nil image and deliver the image
// later. A nil image or an error leaves the box without a resource; the box
// then keeps the size given by its attributes.
type ImageRequest func(src string, sync bool) (image.Image, error)

// Option configures a build.
type Option func(*builder)

// WithImageRequest sets the callback for image resources.
func WithImageRequest(req ImageRequest) Option {
	return func(b *builder) {
		b.images = req
	}
}

// WithSyncImages asks the image callback to return images synchronously.
func WithSyncImages(sync bool) Option {
	return func(b *builder) {
		b.sync = sync
	}
}

type builder struct {
	tree   *Tree
	cs     *cssom.CascadeState
	images ImageRequest
	sync   bool
}

// Build creates a box tree for a document. Styles are computed on the way,
// top-down, with cascade state cs. If cs is nil, a default cascade state with
// the user-agent stylesheet is used.
//
// Malformed inline styles are recovered from and traced. Any other error
// aborts the build.
func Build(doc *dom.Document, cs *cssom.CascadeState, opts ...Option) (*Tree, error) {
	if doc == nil || doc.Root() == nil {
		return nil, core.WrapError(ErrNoDocument, core.EMISSING, "box tree")
	}
	if cs == nil {
		cs = cssom.NewCascadeState()
	}
	b := &builder{tree: newTree(doc), cs: cs}
	for _, opt := range opts {
		opt(b)
	}
	cs.CollectStylesheets(doc)
	doc.Walk(func(n *dom.Node) bool {
		n.SetPrincipalBox(dom.NoBox)
		return true
	})
	tracer().Debugf("creating box tree")
	if err := b.element(doc.Root(), None, nil); err != nil {
		return nil, err
	}
	tracer().Infof("box tree has %d boxes for %d DOM nodes", b.tree.Len(), doc.NodeCount())
	return b.tree, nil
}

// styleFor runs the cascade for an element. Recoverable errors are traced.
func (b *builder) styleFor(n *dom.Node, parent *style.Spec) (*style.Spec, error) {
	spec, err := cssom.ApplyForElement(n, parent, b.cs)
	if err != nil {
		if !cssom.IsRecoverable(err) {
			return nil, err
		}
		tracer().Infof("%v: %v", n, err)
	}
	return spec, nil
}

func (b *builder) element(n *dom.Node, parentBox Index, parent *style.Spec) error {
	intercepted := b.cs.Intercept(n)
	spec, err := b.styleFor(n, parent)
	if err != nil {
		return err
	}
	if intercepted || spec.IsDisplayNone() {
		tracer().Debugf("no box for %v", n)
		return b.styleDescendants(n, spec)
	}
	mode := spec.Display
	if spec.Position.IsOutOfFlow() && mode.IsInlineLevel() && !mode.IsAtomicInline() && n.Tag() != dom.TagImg {
		mode = css.BlockMode | css.FlowMode
	}
	inx := b.tree.newBox(PrincipalBox, mode, n, spec)
	n.SetPrincipalBox(int(inx))
	if parentBox == None {
		b.tree.root = inx
	} else {
		b.tree.appendChild(parentBox, inx)
	}
	switch n.Tag() {
	case dom.TagImg:
		b.requestImage(inx, n)
		return nil
	case dom.TagBr:
		b.tree.Box(inx).Runs = text.NewRunList(text.Run{Kind: text.BreakRun, Text: "\n"})
		return nil
	}
	return b.children(n, inx, spec)
}

// styleDescendants computes the styles below an element without a box. The
// styles stay consistent if the element becomes visible later.
func (b *builder) styleDescendants(n *dom.Node, spec *style.Spec) error {
	for _, ch := range n.Children() {
		if !ch.IsElement() {
			continue
		}
		s, err := b.styleFor(ch, spec)
		if err != nil {
			return err
		}
		if err = b.styleDescendants(ch, s); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) children(n *dom.Node, inx Index, spec *style.Spec) error {
	kids := n.Children()
	ws := spec.WhiteSpace
	switch len(kids) {
	case 0:
		return nil
	case 1:
		ch := kids[0]
		if ch.IsElement() {
			return b.element(ch, inx, spec)
		}
		runs := text.Split(ch.Text(), ws)
		if ws.Collapses() && !b.tree.Box(inx).IsInlineLevel() {
			runs = runs.TrimLeft().TrimRight()
		}
		b.tree.Box(inx).Runs = runs
		return nil
	}
	anon := None
	for i, ch := range kids {
		if ch.IsElement() {
			before := b.tree.Len()
			if err := b.element(ch, inx, spec); err != nil {
				return err
			}
			if b.tree.Len() > before {
				anon = None
			}
			continue
		}
		runs := text.Split(ch.Text(), ws)
		switch {
		case ws.Preserves():
			a := b.anonymous(inx, spec)
			b.tree.Box(a).Runs = runs
			continue
		case ws == css.WhiteSpacePreLine:
			if i == 0 && !runs.HasVisible() {
				continue
			}
		default:
			if !runs.HasVisible() {
				continue
			}
			if anon == None && b.blockBefore(inx) {
				runs = runs.TrimLeft()
			}
			after, err := b.blockAfter(inx, kids[i+1:], spec)
			if err != nil {
				return err
			}
			if after {
				runs = runs.TrimRight()
			}
		}
		if anon == None {
			anon = b.anonymous(inx, spec)
		}
		a := b.tree.Box(anon)
		a.Runs = a.Runs.Append(runs)
	}
	return nil
}

func (b *builder) anonymous(parent Index, spec *style.Spec) Index {
	a := b.tree.newBox(AnonymousBox, css.InlineMode|css.FlowMode, nil, spec)
	b.tree.appendChild(parent, a)
	return a
}

// blockBefore is true if inline content appended to box inx now would
// follow a block-level sibling or start a block container.
func (b *builder) blockBefore(inx Index) bool {
	children := b.tree.Children(inx)
	if len(children) == 0 {
		return !b.tree.Box(inx).IsInlineLevel()
	}
	last := b.tree.Box(children[len(children)-1])
	return last.IsBlockLevel() && !last.IsOutOfFlow()
}

// blockAfter is true if the next sibling generating a box is block-level, or
// if there is none and the container is a block.
func (b *builder) blockAfter(inx Index, rest []*dom.Node, spec *style.Spec) (bool, error) {
	for _, n := range rest {
		if n.IsText() {
			if text.Split(n.Text(), spec.WhiteSpace).HasVisible() {
				return false, nil
			}
			continue
		}
		if n.Tag() == dom.TagStyle || n.Tag() == dom.TagLink {
			continue
		}
		s, err := b.styleFor(n, spec)
		if err != nil {
			return false, err
		}
		if s.IsDisplayNone() || s.Position.IsOutOfFlow() {
			continue
		}
		return s.Display.IsBlockLevel(), nil
	}
	return !b.tree.Box(inx).IsInlineLevel(), nil
}

func (b *builder) requestImage(inx Index, n *dom.Node) {
	src, _ := n.Attr("src")
	box := b.tree.Box(inx)
	box.Src = src
	if src == "" || b.images == nil {
		return
	}
	img, err := b.images(src, b.sync)
	if err != nil {
		tracer().Infof("image %q not available: %v", src, err)
		return
	}
	box.Image = img
}
