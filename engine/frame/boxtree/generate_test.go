package boxtree_test

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/cssom"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/text"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minihtml = `
<html><head>
<style>
  body { border-color: red; }
  .hidden { display: none; }
</style>
</head><body>
  <p>The quick brown fox jumps over the lazy</p><b>dog.</b>
  <p id="world">Hello <b>World</b>!</p>
  <p style="padding-left: 5px; position: fixed;">This is a test.</p>
</body>
`

func build(t *testing.T, h string, opts ...boxtree.Option) (*dom.Document, *boxtree.Tree) {
	doc, err := dom.ParseString(h)
	require.NoError(t, err)
	tree, err := boxtree.Build(doc, cssom.NewCascadeState(), opts...)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return doc, tree
}

// boxOf finds the principal box of an element with a given id.
func boxOf(t *testing.T, doc *dom.Document, tree *boxtree.Tree, id string) *boxtree.CssBox {
	n := doc.ElementByID(id)
	require.NotNil(t, n, "no element with id %q", id)
	inx, ok := tree.BoxFor(n)
	require.True(t, ok, "element %q has no box", id)
	return tree.Box(inx)
}

func TestBuildMiniDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, minihtml)
	root := tree.Box(tree.Root())
	assert.Equal(t, "html", root.Name())
	require.Len(t, root.Children, 1, "head is not displayed")
	body := tree.Box(root.Children[0])
	assert.Equal(t, "body", body.Name())
	assert.Len(t, body.Children, 4)
	world := boxOf(t, doc, tree, "world")
	require.Len(t, world.Children, 3)
	assert.True(t, tree.Box(world.Children[0]).IsAnonymous())
	assert.Equal(t, "Hello ", tree.Box(world.Children[0]).Runs.String())
	assert.Equal(t, "b", tree.Box(world.Children[1]).Name())
	assert.Equal(t, "World", tree.Box(world.Children[1]).Runs.String())
	assert.Equal(t, "!", tree.Box(world.Children[2]).Runs.String())
	t.Logf("\n%s", tree)
}

func TestDisplayNonePruning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<div id="d"><p class="hidden" style="display:none">x<span id="s">y</span></p><p>z</p></div>`)
	div := boxOf(t, doc, tree, "d")
	assert.Len(t, div.Children, 1)
	span := doc.ElementByID("s")
	_, ok := tree.BoxFor(span)
	assert.False(t, ok, "no box below display:none")
	require.NotNil(t, span.ComputedStyle(), "descendant styles are computed")
	assert.True(t, span.ComputedStyle().Display.IsInlineLevel())
}

func TestNormalModeCollapse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<div id="d"><p>A</p>   hello   world   <p>B</p></div>`)
	div := boxOf(t, doc, tree, "d")
	require.Len(t, div.Children, 3)
	anon := tree.Box(div.Children[1])
	assert.True(t, anon.IsAnonymous())
	assert.Equal(t, []string{"hello", "world"}, anon.Runs.Words())
	assert.Equal(t, "hello world", anon.Runs.String(), "spaces next to blocks are trimmed")
}

func TestWhitespaceBetweenBlocksIsDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, "<div id=\"d\">\n  <p>A</p>\n  <p>B</p>\n</div>")
	div := boxOf(t, doc, tree, "d")
	require.Len(t, div.Children, 2)
	for _, ch := range div.Children {
		assert.True(t, tree.Box(ch).IsPrincipal())
	}
}

func TestPreKeepsEveryTextChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, "<pre id=\"p\">a  b\nc<b>x</b>   </pre>")
	pre := boxOf(t, doc, tree, "p")
	require.Len(t, pre.Children, 3)
	first := tree.Box(pre.Children[0])
	assert.True(t, first.IsAnonymous())
	assert.Equal(t, "a  b\nc", first.Runs.String(), "verbatim")
	last := tree.Box(pre.Children[2])
	assert.True(t, last.IsAnonymous())
	assert.Equal(t, "   ", last.Runs.String())
	assert.False(t, last.Runs.HasVisible())
}

func TestPreLineLeadingWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<div id="d" style="white-space: pre-line">   <b>x</b>   <i>y</i></div>`)
	div := boxOf(t, doc, tree, "d")
	require.Len(t, div.Children, 3)
	assert.Equal(t, "b", tree.Box(div.Children[0]).Name(), "first whitespace-only text is dropped")
	mid := tree.Box(div.Children[1])
	assert.True(t, mid.IsAnonymous(), "later whitespace-only text is kept")
	assert.Equal(t, " ", mid.Runs.String())
}

func TestSingleChildFastPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<div><p id="p">  hi  there </p><span id="s"> yo </span></div>`)
	p := boxOf(t, doc, tree, "p")
	assert.Empty(t, p.Children)
	assert.Equal(t, "hi there", p.Runs.String())
	s := boxOf(t, doc, tree, "s")
	assert.Equal(t, " yo ", s.Runs.String(), "inline boxes keep their edge spaces")
}

func TestAnonymousBoxIsReused(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<p id="p">a<!-- comment -->b<span style="display:none">c</span>d</p>`)
	p := boxOf(t, doc, tree, "p")
	require.Len(t, p.Children, 1)
	assert.Equal(t, "abd", tree.Box(p.Children[0]).Runs.String())
}

func TestLineBreakElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<p id="p">a<br>b</p>`)
	p := boxOf(t, doc, tree, "p")
	require.Len(t, p.Children, 3)
	br := tree.Box(p.Children[1])
	assert.Equal(t, "br", br.Name())
	require.Equal(t, 1, br.Runs.Len())
	assert.Equal(t, text.BreakRun, br.Runs.Runs[0].Kind)
}

func TestImageRequest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	var syncFlags []bool
	req := func(src string, sync bool) (image.Image, error) {
		syncFlags = append(syncFlags, sync)
		if src == "ok.png" {
			return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
		}
		return nil, errors.New("not found")
	}
	doc, tree := build(t, `<p><img id="a" src="ok.png"><img id="b" src="missing.png" width="20"></p>`,
		boxtree.WithImageRequest(req), boxtree.WithSyncImages(true))
	a := boxOf(t, doc, tree, "a")
	assert.True(t, a.IsReplaced())
	assert.NotNil(t, a.Image)
	b := boxOf(t, doc, tree, "b")
	assert.Nil(t, b.Image)
	assert.Equal(t, css.SomeDimen(20*65536), b.Spec.Width)
	assert.Equal(t, []bool{true, true}, syncFlags)
	assert.Len(t, tree.Images("ok.png"), 1)
}

func TestAnchorOfPositionedBoxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, tree := build(t, `<div id="r" style="position: relative"><p>
<span id="a" style="position: absolute">x</span></p></div><span id="f" style="position: fixed">y</span>`)
	a, _ := tree.BoxFor(doc.ElementByID("a"))
	r, _ := tree.BoxFor(doc.ElementByID("r"))
	f, _ := tree.BoxFor(doc.ElementByID("f"))
	assert.Equal(t, r, tree.Anchor(a))
	assert.Equal(t, tree.Root(), tree.Anchor(f))
	assert.True(t, tree.Box(a).IsBlockLevel(), "absolute boxes are blockified")
	assert.Equal(t, []boxtree.Index{a, f}, tree.OutOfFlow())
}

func TestEmptyDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	_, err := boxtree.Build(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boxtree.ErrNoDocument))
	assert.Equal(t, core.EMISSING, core.Code(err))
}

type shapeNode struct {
	Kind     boxtree.Kind
	Display  css.DisplayMode
	Name     string
	Parent   boxtree.Index
	Children []boxtree.Index
	Runs     string
}

func shape(tree *boxtree.Tree) []shapeNode {
	var s []shapeNode
	tree.Walk(tree.Root(), func(i boxtree.Index, _ int) bool {
		b := tree.Box(i)
		s = append(s, shapeNode{b.Kind, b.Display, b.Name(), b.Parent, b.Children, b.Runs.String()})
		return true
	})
	return s
}

func TestBuildRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.boxtree")
	defer teardown()
	//
	doc, err := dom.ParseString(minihtml)
	require.NoError(t, err)
	cs := cssom.NewCascadeState()
	t1, err := boxtree.Build(doc, cs)
	require.NoError(t, err)
	t2, err := boxtree.Build(doc, cs)
	require.NoError(t, err)
	assert.NotSame(t, t1, t2)
	if diff := cmp.Diff(shape(t1), shape(t2)); diff != "" {
		t.Errorf("box trees differ (-first +second):\n%s", diff)
	}
}
