package session

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/core/config"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const px = dimen.PX

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLayoutWithoutDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	_, err := c.PerformLayout(100 * px)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDocument))
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, dimen.Point{}, c.ActualSize())
}

func TestShrinkToFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	require.NoError(t, c.SetHTML(`<body style="margin:0"><p style="margin:0">Hello</p></body>`))
	_, err := c.BoxAt(dimen.Point{})
	assert.True(t, errors.Is(err, ErrNotLaidOut))
	size, err := c.PerformLayout(0)
	require.NoError(t, err)
	assert.Equal(t, dimen.Point{X: 35 * px, Y: 13 * px}, size)
	assert.Equal(t, size, c.ActualSize())
}

func TestConfiguredWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	params := config.Defaults()
	params.Set(config.P_LAYOUTWIDTH, 14*px)
	c := New(params)
	require.NoError(t, c.SetHTML(`<body style="margin:0"><p style="margin:0">ab cd</p></body>`))
	size, err := c.PerformLayout(0)
	require.NoError(t, err)
	assert.Equal(t, 26*px, size.Y, "text wraps at the configured width")
}

func TestSetHTMLTearsDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	require.NoError(t, c.SetHTML(`<p>first</p>`))
	first := c.Document()
	_, err := c.PerformLayout(100 * px)
	require.NoError(t, err)
	require.NoError(t, c.SetHTML(`<p>second</p>`))
	assert.NotSame(t, first, c.Document())
	assert.Equal(t, dimen.Point{}, c.ActualSize(), "layout results are dropped")
	_, _, err = c.LinkAt(dimen.Point{})
	assert.True(t, errors.Is(err, ErrNotLaidOut))
}

func TestHostStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	require.NoError(t, c.SetHTML(`<body><div id="d">x</div></body>`))
	require.NoError(t, c.AddStylesheet(`body { margin: 0 } #d { width: 20px; height: 30px }`))
	size, err := c.PerformLayout(200 * px)
	require.NoError(t, err)
	assert.Equal(t, 30*px, size.Y)
	// the stylesheet survives a new document
	require.NoError(t, c.SetHTML(`<body><div id="d"></div></body>`))
	size, err = c.PerformLayout(200 * px)
	require.NoError(t, err)
	assert.Equal(t, 30*px, size.Y)
}

func TestStylesheetBeforeDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	require.NoError(t, c.AddStylesheet(`body { margin: 0 } p { margin: 0; width: 10px }`))
	require.NoError(t, c.SetHTML(`<p>a</p>`))
	size, err := c.PerformLayout(100 * px)
	require.NoError(t, err)
	assert.Equal(t, 13*px, size.Y)
}

func TestDeliverImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	requested := 0
	loader := func(src string, sync bool) (image.Image, error) {
		requested++
		assert.False(t, sync)
		return nil, errors.New("pending")
	}
	c := New(nil, WithImageLoader(loader))
	require.NoError(t, c.SetHTML(`<body style="margin:0"><div><img src="a.png"></div></body>`))
	assert.Equal(t, 1, requested)
	size, err := c.PerformLayout(0)
	require.NoError(t, err)
	assert.Equal(t, dimen.Zero, size.X)
	assert.False(t, c.DeliverImage("b.png", image.NewRGBA(image.Rect(0, 0, 1, 1))))
	assert.True(t, c.DeliverImage("a.png", image.NewRGBA(image.Rect(0, 0, 20, 10))))
	assert.Equal(t, dimen.Point{}, c.ActualSize(), "delivery invalidates layout")
	size, err = c.PerformLayout(0)
	require.NoError(t, err)
	assert.Equal(t, 20*px, size.X)
}

func TestLinkAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	require.NoError(t, c.SetHTML(`<body style="margin:0"><a href="https://example.com/">go</a></body>`))
	_, err := c.PerformLayout(100 * px)
	require.NoError(t, err)
	href, ok, err := c.LinkAt(dimen.Point{X: 2 * px, Y: 2 * px})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/", href)
	_, ok, err = c.AttributeAt(dimen.Point{X: 50 * px, Y: 2 * px}, "href")
	require.NoError(t, err)
	assert.False(t, ok)
}

type counter struct {
	texts, rects int
}

func (c *counter) FillRect(r dimen.Rect, col color.Color) { c.rects++ }
func (c *counter) StrokeRect(r dimen.Rect, widths [4]dimen.Dimen, border frame.BorderStyle) {
}
func (c *counter) DrawText(s string, p dimen.Point, st frame.TextStyle, col color.Color) { c.texts++ }
func (c *counter) DrawImage(img image.Image, r dimen.Rect)                               {}

func TestPaint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.session")
	defer teardown()
	//
	c := New(nil)
	require.NoError(t, c.SetHTML(`<body style="background-color:#00ff00">a b</body>`))
	dc := &counter{}
	assert.Error(t, c.Paint(dc))
	_, err := c.PerformLayout(0)
	require.NoError(t, err)
	require.NoError(t, c.Paint(dc))
	assert.Equal(t, 2, dc.texts)
	assert.Equal(t, 1, dc.rects)
}
