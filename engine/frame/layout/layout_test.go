package layout

import (
	"errors"
	"image"
	"testing"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/cssom"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const px = dimen.PX

func layoutOf(t *testing.T, h string, width css.DimenT, opts ...boxtree.Option) (*dom.Document, *Layouter, dimen.Point) {
	doc, err := dom.ParseString(h)
	require.NoError(t, err)
	tree, err := boxtree.Build(doc, cssom.NewCascadeState(), opts...)
	require.NoError(t, err)
	l := New(tree)
	size, err := l.Layout(tree.Root(), width)
	require.NoError(t, err)
	return doc, l, size
}

func boxByID(t *testing.T, doc *dom.Document, l *Layouter, id string) *boxtree.CssBox {
	n := doc.ElementByID(id)
	require.NotNil(t, n, "no element with id %q", id)
	i, ok := l.Tree().BoxFor(n)
	require.True(t, ok, "element %q has no box", id)
	return l.Tree().Box(i)
}

func TestShrinkToFitImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	_, _, size := layoutOf(t, `<html><head><style>body{margin:0}</style></head>
<body><div><img width="40" height="10"></div></body></html>`, css.Dimen())
	assert.Equal(t, 40*px, size.X)
	assert.Equal(t, 13*px, size.Y, "image sits on the baseline of a 13px line")
}

func TestShrinkToFitImageOfIntrinsicSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	req := func(src string, sync bool) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 30, 20)), nil
	}
	doc, l, size := layoutOf(t, `<body style="margin:0"><div><img id="i" src="a.png" height="10"></div></body>`,
		css.Auto(), boxtree.WithImageRequest(req))
	assert.Equal(t, 15*px, size.X, "aspect ratio is kept")
	img := boxByID(t, doc, l, "i")
	assert.Equal(t, dimen.Point{X: 0, Y: 1 * px}, img.Box.TopL, "bottom of image on the baseline")
}

func TestLayoutIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0"><p id="p" style="margin:0">Hello <b>World</b></p></body>`, css.Dimen())
	p := boxByID(t, doc, l, "p")
	require.Len(t, p.Children, 2)
	hello := l.Tree().Box(p.Children[0])
	before := p.Box
	words := append([]boxtree.Word(nil), hello.Words...)
	again, err := l.Layout(l.Tree().Root(), css.Dimen())
	require.NoError(t, err)
	assert.Equal(t, size, again)
	assert.Equal(t, before, p.Box)
	assert.Equal(t, words, hello.Words)
	assert.Equal(t, 11*7*px, size.X)
}

func TestUnbalancedContainingBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	l := New(nil)
	err := l.popContainingBlock()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnbalancedContainingBlock))
	assert.True(t, core.IsFatal(err))
	l.pushContainingBlock(10 * px)
	assert.NoError(t, l.popContainingBlock())
	_, err = l.Layout(0, css.Dimen())
	assert.True(t, errors.Is(err, ErrNoTree))
}

func TestInvalidAvailableWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, err := dom.ParseString(`<p>x</p>`)
	require.NoError(t, err)
	tree, err := boxtree.Build(doc, nil)
	require.NoError(t, err)
	_, err = New(tree).Layout(tree.Root(), css.Percent(50))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestBlockStackingAndMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0">
<div id="a" style="margin-bottom:10px;height:20px"></div>
<div id="b" style="margin-top:15px;height:5px;padding-left:4px"></div>
</body>`, css.SomeDimen(100*px))
	a := boxByID(t, doc, l, "a")
	b := boxByID(t, doc, l, "b")
	assert.Equal(t, 100*px, a.Box.W)
	assert.Equal(t, dimen.Zero, a.Box.TopL.Y)
	assert.Equal(t, 35*px, b.Box.TopL.Y, "sibling margins collapse")
	assert.Equal(t, 96*px, b.Box.W)
	assert.Equal(t, 40*px, size.Y)
}

func TestCenteredBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0"><div id="c" style="width:50px;margin:0 auto;height:1px"></div></body>`,
		css.SomeDimen(200*px))
	c := boxByID(t, doc, l, "c")
	assert.Equal(t, 75*px, c.Box.TopL.X)
	assert.Equal(t, 50*px, size.X, "auto margins do not count as content")
}

func TestTextWrapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0"><p id="p" style="margin:0">abc def</p></body>`,
		css.SomeDimen(28*px))
	p := boxByID(t, doc, l, "p")
	require.Len(t, p.Words, 2)
	assert.Equal(t, "abc", p.Words[0].Text)
	assert.Equal(t, dimen.Zero, p.Words[1].Rect.TopL.X, "second word starts a new line")
	assert.Equal(t, 13*px, p.Words[1].Rect.TopL.Y)
	assert.Equal(t, 24*px, p.Words[1].Baseline)
	assert.Equal(t, 26*px, p.Box.H)
	assert.Equal(t, 21*px, size.X)
}

func TestNoWrapOverflows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	_, l, size := layoutOf(t, `<body style="margin:0"><p style="margin:0;white-space:nowrap">abc def</p></body>`,
		css.SomeDimen(28*px))
	assert.Equal(t, 49*px, size.X)
	assert.Equal(t, 13*px, size.Y)
	assert.Equal(t, 21*px, l.Overflow())
}

func TestCenterAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, _ := layoutOf(t, `<body style="margin:0"><p id="p" style="margin:0;text-align:center">ab</p></body>`,
		css.SomeDimen(100*px))
	p := boxByID(t, doc, l, "p")
	require.Len(t, p.Words, 1)
	assert.Equal(t, 43*px, p.Words[0].Rect.TopL.X)
}

func TestPreservedLineBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, "<body style=\"margin:0\"><pre id=\"p\" style=\"margin:0\">a\n\nbb</pre></body>",
		css.Dimen())
	p := boxByID(t, doc, l, "p")
	assert.Equal(t, 39*px, p.Box.H, "empty lines keep their height")
	assert.Equal(t, 14*px, size.X)
}

func TestTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0"><table style="border-spacing:0"><tr>
<td style="padding:0">ab</td><td id="c" style="padding:0;vertical-align:bottom">abcd</td></tr>
<tr><td style="padding:0">x<br>y</td></tr></table></body>`, css.Dimen())
	assert.Equal(t, 42*px, size.X)
	assert.Equal(t, 39*px, size.Y)
	c := boxByID(t, doc, l, "c")
	assert.Equal(t, 14*px, c.Box.TopL.X)
	assert.Equal(t, 28*px, c.Box.W)
}

func TestAbsolutePositioning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, _ := layoutOf(t, `<body style="margin:0"><div style="position:relative;width:100px;height:50px">
<span id="s" style="position:absolute;right:0;bottom:0;width:10px;height:10px"></span></div></body>`,
		css.SomeDimen(200*px))
	s := boxByID(t, doc, l, "s")
	assert.Equal(t, dimen.Point{X: 90 * px, Y: 40 * px}, s.Box.TopL)
	assert.Equal(t, 10*px, s.Box.W)
}

func TestRelativePositioning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0"><div id="r" style="position:relative;left:5px;top:3px;height:10px"></div></body>`,
		css.SomeDimen(100*px))
	r := boxByID(t, doc, l, "r")
	assert.Equal(t, dimen.Point{X: 5 * px, Y: 3 * px}, r.Box.TopL)
	assert.Equal(t, 13*px, size.Y)
}

func TestQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, _ := layoutOf(t, `<body style="margin:0"><p style="margin:0" title="para"><a id="a" href="x.html">link</a> text</p></body>`,
		css.SomeDimen(200*px))
	inLink := dimen.Point{X: 3 * px, Y: 5 * px}
	i, ok := l.BoxAt(inLink)
	require.True(t, ok)
	a, _ := l.Tree().BoxFor(doc.ElementByID("a"))
	assert.Equal(t, a, i)
	href, ok := l.LinkAt(inLink)
	assert.True(t, ok)
	assert.Equal(t, "x.html", href)
	_, ok = l.LinkAt(dimen.Point{X: 40 * px, Y: 5 * px})
	assert.False(t, ok)
	title, ok := l.AttributeAt(dimen.Point{X: 40 * px, Y: 5 * px}, "title")
	assert.True(t, ok)
	assert.Equal(t, "para", title)
	assert.Len(t, l.Query(HasElement(dom.TagA)).AllBoxes(), 1)
}

func TestBreakLinesKeepsGluedItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	items := []item{
		{kind: wordItem, width: 3},
		{kind: spaceItem, width: 1},
		{kind: wordItem, width: 2},
		{kind: openItem, width: 1},
		{kind: wordItem, width: 2},
		{kind: closeItem},
	}
	lines := breakLines(items, 6, 0)
	assert.Equal(t, [][]int{{0, 1}, {2, 3, 4, 5}}, lines)
	assert.Equal(t, dimen.Dimen(3), lineWidth(items, lines[0]))
}

func TestOverflowKeepsMarginsOfContainingBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	// 70px of unbreakable text in a box with 10px margins on either side,
	// laid out at 49px: content ends at 90px, and the box needs 70px for its
	// text plus 20px of margins where only 49px-20px are available.
	for _, tc := range []struct {
		name string
		body string
	}{
		{"table-cell", `<table style="border-spacing:0"><tr><td style="padding:0;margin:0 10px;white-space:nowrap">aaaaaaaaaa</td></tr></table>`},
		{"absolute", `<div style="position:absolute;margin:0 10px;white-space:nowrap">aaaaaaaaaa</div>`},
		{"inline-block", `<span style="display:inline-block;margin:0 10px;white-space:nowrap">aaaaaaaaaa</span>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, l, size := layoutOf(t, `<body style="margin:0">`+tc.body+`</body>`, css.SomeDimen(49*px))
			assert.Equal(t, 90*px, size.X)
			assert.Equal(t, 61*px, l.Overflow())
		})
	}
}

func TestShrinkToFitAbsolute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	doc, l, size := layoutOf(t, `<body style="margin:0"><p style="margin:0">ab</p>
<span id="s" style="position:absolute;left:500px">z</span></body>`, css.Dimen())
	assert.Equal(t, 507*px, size.X)
	s := boxByID(t, doc, l, "s")
	assert.Equal(t, 500*px, s.Box.TopL.X)
	assert.Equal(t, 7*px, s.Box.W)
}

func TestStrayTablePartsShrinkToFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.layout")
	defer teardown()
	//
	for _, tc := range []struct {
		name string
		body string
	}{
		{"cell", `<div id="c" style="display:table-cell;padding:0">ab</div>`},
		{"row", `<div style="display:table-row;border-spacing:0"><div id="c" style="display:table-cell;padding:0">ab</div></div>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc, l, size := layoutOf(t, `<body style="margin:0">`+tc.body+`</body>`, css.Dimen())
			assert.Equal(t, 14*px, size.X)
			assert.Equal(t, 14*px, boxByID(t, doc, l, "c").Box.W)
		})
	}
}
