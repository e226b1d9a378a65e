package paint

import (
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/frame/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	fills   []color.Color
	borders int
	words   []string
	images  []dimen.Rect
}

func (r *recorder) FillRect(_ dimen.Rect, c color.Color) { r.fills = append(r.fills, c) }
func (r *recorder) StrokeRect(dimen.Rect, [4]dimen.Dimen, frame.BorderStyle) {
	r.borders++
}
func (r *recorder) DrawText(s string, _ dimen.Point, _ frame.TextStyle, _ color.Color) {
	r.words = append(r.words, s)
}
func (r *recorder) DrawImage(_ image.Image, rect dimen.Rect) { r.images = append(r.images, rect) }

func TestPaintOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.paint")
	defer teardown()
	//
	doc, err := dom.ParseString(`<body style="margin:0;background-color:#ff0000">
<p style="border:1px solid blue">Hello <b>World</b></p>
<span style="visibility:hidden">gone</span><img src="x.png" width="4" height="4"></body>`)
	require.NoError(t, err)
	req := func(string, bool) (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil }
	tree, err := boxtree.Build(doc, nil, boxtree.WithImageRequest(req))
	require.NoError(t, err)
	_, err = layout.New(tree).Layout(tree.Root(), css.SomeDimen(200*dimen.PX))
	require.NoError(t, err)
	r := &recorder{}
	Paint(tree, r)
	assert.Equal(t, []color.Color{color.RGBA{R: 0xff, A: 0xff}}, r.fills, "body background only")
	assert.Equal(t, 1, r.borders)
	assert.Equal(t, []string{"Hello", "World"}, r.words)
	require.Len(t, r.images, 1)
	assert.Equal(t, 4*dimen.PX, r.images[0].Width())
}
