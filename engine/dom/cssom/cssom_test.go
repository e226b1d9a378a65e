package cssom

import (
	"errors"
	"image/color"
	"testing"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/cssom/douceuradapter"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0, 0, 0xff}
	blue  = color.RGBA{0, 0, 0xff, 0xff}
	green = color.RGBA{0, 0x80, 0, 0xff}
)

// styleAll runs the cascade top-down for all elements of a document.
func styleAll(t *testing.T, doc *dom.Document, cs *CascadeState) {
	var rec func(n *dom.Node, parent *style.Spec)
	rec = func(n *dom.Node, parent *style.Spec) {
		if !n.IsElement() {
			return
		}
		s, err := ApplyForElement(n, parent, cs)
		if err != nil {
			require.True(t, IsRecoverable(err), "unexpected fatal error %v", err)
		}
		for _, ch := range n.Children() {
			rec(ch, s)
		}
	}
	rec(doc.Root(), nil)
}

func parse(t *testing.T, h string) *dom.Document {
	doc, err := dom.ParseString(h)
	require.NoError(t, err)
	return doc
}

func TestCascadeOverrideOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	sheet := `<style>#x { color: blue; } p { color: red; }</style>`
	for _, tc := range []struct {
		body string
		want color.RGBA
	}{
		{`<p id="x" style="color: green">A</p>`, green},
		{`<p id="x">A</p>`, blue},
		{`<p>A</p>`, red},
	} {
		doc := parse(t, "<html><head>"+sheet+"</head><body>"+tc.body+"</body></html>")
		cs := NewCascadeState()
		cs.CollectStylesheets(doc)
		styleAll(t, doc, cs)
		var p *dom.Node
		doc.Walk(func(n *dom.Node) bool {
			if n.Name() == "p" {
				p = n
			}
			return true
		})
		require.NotNil(t, p)
		assert.Equal(t, tc.want, p.ComputedStyle().Color, tc.body)
	}
}

func TestVersionCountsAppliedBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	doc := parse(t, `<div id="x" class="c" style="width: 1px" bgcolor="red">A</div>`)
	cs := NewCascadeState(WithUserAgentStylesheet(false))
	require.NoError(t, cs.AddCSS(`.c { color: red } div { color: blue } #x { color: green } span { color: red }`))
	styleAll(t, doc, cs)
	div := doc.ElementByID("x")
	s := div.ComputedStyle()
	require.NotNil(t, s)
	assert.Equal(t, uint32(5), s.Version(), "two tag/class blocks, one id block, legacy, inline")
	assert.Equal(t, green, s.Color)
	assert.Equal(t, css.SomeDimen(dimen.PX), s.Width)
	assert.Equal(t, red, s.Background)
}

func TestMalformedInlineStyleIsRecoverable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	doc := parse(t, `<p id="x" style="color red;">A</p>`)
	cs := NewCascadeState()
	require.NoError(t, cs.AddCSS(`#x { color: blue }`))
	cs.CollectStylesheets(doc)
	var parent *style.Spec
	for _, n := range []*dom.Node{doc.Root(), doc.Root().Children()[1]} {
		s, err := ApplyForElement(n, parent, cs)
		require.NoError(t, err)
		parent = s
	}
	s, err := ApplyForElement(doc.ElementByID("x"), parent, cs)
	require.Error(t, err)
	assert.True(t, IsRecoverable(err))
	assert.False(t, core.IsFatal(err))
	require.NotNil(t, s)
	assert.Equal(t, blue, s.Color, "earlier stages are kept")
	assert.True(t, s.Display.Contains(css.BlockMode))
	//
	s2, err := ApplyForElement(doc.ElementByID("x"), parent, cs)
	assert.NoError(t, err)
	assert.Same(t, s, s2, "frozen styles are reused")
}

func TestFrozenStyleIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	doc := parse(t, `<p>A</p>`)
	cs := NewCascadeState()
	_, err := ApplyForElement(doc.Root().Children()[1].Children()[0].Children()[0], nil, cs)
	require.Error(t, err, "text nodes have no style")
	assert.True(t, core.IsFatal(err))
	assert.False(t, IsRecoverable(err))
	b := doc.Root().StyleBuilder(cs.Defaults())
	b.Freeze()
	err = b.ApplyDeclaration("color", "red", nil)
	assert.True(t, errors.Is(err, style.ErrFrozen))
	assert.False(t, IsRecoverable(err))
}

func TestInterceptStyleAndLink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	doc := parse(t, `<html><head>
<link rel="stylesheet" href="a.css">
<link rel="stylesheet" href="b.css">
<link rel="stylesheet" href="missing.css">
<link rel="icon" href="icon.png">
</head><body><p>A</p><style>p { font-style: italic }</style></body></html>`)
	var requested []string
	bsheet, err := douceuradapter.Parse(`p { text-align: center }`)
	require.NoError(t, err)
	cs := NewCascadeState(WithUserAgentStylesheet(false),
		WithStylesheetRequest(func(href string) (string, css.StyleSheet) {
			requested = append(requested, href)
			switch href {
			case "a.css":
				return "p { color: red }", nil
			case "b.css":
				return "", bsheet
			}
			return "", nil
		}))
	cs.CollectStylesheets(doc)
	cs.CollectStylesheets(doc)
	assert.Equal(t, []string{"a.css", "b.css", "missing.css"}, requested, "each link is requested once")
	assert.Equal(t, 3, cs.RuleCount())
	styleAll(t, doc, cs)
	var p *dom.Node
	doc.Walk(func(n *dom.Node) bool {
		if n.Name() == "p" {
			p = n
		}
		return true
	})
	s := p.ComputedStyle()
	assert.Equal(t, red, s.Color)
	assert.Equal(t, css.TextAlignCenter, s.TextAlign)
	assert.Equal(t, css.FontStyleItalic, s.FontStyle, "style elements apply regardless of position")
	assert.False(t, cs.Intercept(p))
}

func TestUserAgentStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	doc := parse(t, `<html><head><title>T</title></head><body><pre>x</pre><table><tr><td>1</td></tr></table></body></html>`)
	cs := NewCascadeState()
	assert.Greater(t, cs.RuleCount(), 10)
	styleAll(t, doc, cs)
	head := doc.Root().Children()[0]
	assert.True(t, head.ComputedStyle().IsDisplayNone())
	assert.NotNil(t, head.Children()[0].ComputedStyle(), "descendants of display:none are styled")
	body := doc.Root().Children()[1]
	assert.Equal(t, css.SomeDimen(8*dimen.PX), body.ComputedStyle().Margins[css.Left])
	pre := body.Children()[0]
	assert.Equal(t, css.WhiteSpacePre, pre.ComputedStyle().WhiteSpace)
	var td *dom.Node
	doc.Walk(func(n *dom.Node) bool {
		if n.Tag() == dom.TagTd {
			td = n
		}
		return true
	})
	require.NotNil(t, td)
	assert.True(t, td.ComputedStyle().Display.Contains(css.TableCellMode))
}

func TestLegacyAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.cssom")
	defer teardown()
	//
	doc := parse(t, `<body text="blue"><table id="t" width="50%" border="2" cellpadding="4" align="center"><tr>
<td id="c" bgcolor="#ff0000" nowrap align="right" valign="top">x</td></tr></table>
<font id="f" size="+2" color="red" face="serif">y</font><img id="i" src="a.png" width="20" height="10px">
<div id="h" hidden>z</div></body>`)
	cs := NewCascadeState()
	styleAll(t, doc, cs)
	table := doc.ElementByID("t").ComputedStyle()
	assert.Equal(t, css.Percent(50), table.Width)
	assert.Equal(t, css.SomeDimen(2*dimen.PX), table.BorderWidth[css.Top])
	assert.True(t, table.Margins[css.Left].IsAuto())
	cell := doc.ElementByID("c").ComputedStyle()
	assert.Equal(t, red, cell.Background)
	assert.Equal(t, css.WhiteSpaceNowrap, cell.WhiteSpace)
	assert.Equal(t, css.TextAlignRight, cell.TextAlign)
	assert.Equal(t, "top", cell.VerticalAlign)
	assert.Equal(t, css.SomeDimen(4*dimen.PX), cell.Padding[css.Left])
	font := doc.ElementByID("f").ComputedStyle()
	assert.Equal(t, red, font.Color)
	assert.Equal(t, "serif", font.FontFamily)
	assert.Equal(t, style.StandardDefaults.FontSize.Scale(1.5), font.FontSize)
	img := doc.ElementByID("i").ComputedStyle()
	assert.Equal(t, css.SomeDimen(20*dimen.PX), img.Width)
	assert.Equal(t, css.SomeDimen(10*dimen.PX), img.Height)
	assert.True(t, doc.ElementByID("h").ComputedStyle().IsDisplayNone())
	assert.Equal(t, blue, doc.Root().Children()[1].ComputedStyle().Color)
}
