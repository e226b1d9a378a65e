package frame

import (
	"testing"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// specFrom creates a frozen style from a list of property/value pairs.
func specFrom(t *testing.T, props ...string) *style.Spec {
	b := style.NewBuilder()
	require.NoError(t, b.InheritFrom(nil))
	for i := 0; i+1 < len(props); i += 2 {
		require.NoError(t, b.ApplyDeclaration(props[i], props[i+1], nil))
	}
	return b.Freeze()
}

func TestBoxNullbox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	box := &Box{}
	box.InitFromStyle(style.Default(), 100*dimen.PX)
	assert.Equal(t, dimen.Zero, box.Padding[Top])
	assert.Equal(t, dimen.Zero, box.BorderWidth[Right], "border style none")
	assert.Equal(t, dimen.Zero, box.Margins[Left])
	assert.Equal(t, dimen.Zero, box.TotalWidth())
}

func TestBoxRects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	box := &Box{W: 100 * dimen.PX, H: 20 * dimen.PX}
	box.Padding = [4]dimen.Dimen{1 * dimen.PX, 2 * dimen.PX, 3 * dimen.PX, 4 * dimen.PX}
	box.BorderWidth = [4]dimen.Dimen{dimen.PX, dimen.PX, dimen.PX, dimen.PX}
	box.Margins = [4]dimen.Dimen{10 * dimen.PX, 0, 10 * dimen.PX, 5 * dimen.PX}
	box.MoveTo(dimen.Point{X: 0, Y: 0})
	t.Logf(box.DebugString())
	assert.Equal(t, dimen.Point{X: 5 * dimen.PX, Y: 10 * dimen.PX}, box.TopL)
	assert.Equal(t, 108*dimen.PX, box.BorderBoxWidth())
	assert.Equal(t, 26*dimen.PX, box.BorderBoxHeight())
	assert.Equal(t, 113*dimen.PX, box.TotalWidth())
	assert.Equal(t, 46*dimen.PX, box.TotalHeight())
	assert.Equal(t, dimen.Point{X: 10 * dimen.PX, Y: 12 * dimen.PX}, box.ContentOrigin())
	assert.Equal(t, dimen.RectWH(10*dimen.PX, 12*dimen.PX, 100*dimen.PX, 20*dimen.PX), box.ContentBox())
	assert.Equal(t, dimen.RectWH(6*dimen.PX, 11*dimen.PX, 106*dimen.PX, 24*dimen.PX), box.PaddingBox())
	assert.Equal(t, dimen.RectWH(0, 0, 113*dimen.PX, 46*dimen.PX), box.MarginBox())
}

func TestConstraintsAutoMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	spec := specFrom(t, "padding-left", "10px", "width", "90px", "margin-left", "auto", "margin-right", "auto")
	box := &Box{}
	box.InitFromStyle(spec, 200*dimen.PX)
	isRest := FixDimensionsFromEnclosingWidth(box, spec, 200*dimen.PX)
	assert.False(t, isRest)
	assert.Equal(t, 90*dimen.PX, box.W)
	assert.Equal(t, 50*dimen.PX, box.Margins[Left])
	assert.Equal(t, 50*dimen.PX, box.Margins[Right])
}

func TestConstraintsLeftAuto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	spec := specFrom(t, "padding-left", "10px", "width", "100px", "margin-left", "auto", "margin-right", "10px")
	box := &Box{}
	box.InitFromStyle(spec, 200*dimen.PX)
	FixDimensionsFromEnclosingWidth(box, spec, 200*dimen.PX)
	assert.Equal(t, 80*dimen.PX, box.Margins[Left])
	assert.Equal(t, 10*dimen.PX, box.Margins[Right])
}

func TestConstraintsWidthAsRest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	spec := specFrom(t, "padding", "0 10px", "margin-left", "auto", "margin-right", "auto")
	box := &Box{}
	box.InitFromStyle(spec, 200*dimen.PX)
	isRest := FixDimensionsFromEnclosingWidth(box, spec, 200*dimen.PX)
	assert.True(t, isRest)
	assert.Equal(t, 180*dimen.PX, box.W)
	assert.Equal(t, dimen.Zero, box.Margins[Left])
	assert.Equal(t, 200*dimen.PX, box.TotalWidth())
}

func TestConstraintsPercentAndMax(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	spec := specFrom(t, "padding-left", "10%", "padding-right", "10%", "max-width", "100px")
	box := &Box{}
	box.InitFromStyle(spec, 200*dimen.PX)
	assert.Equal(t, 20*dimen.PX, box.Padding[Left])
	FixDimensionsFromEnclosingWidth(box, spec, 200*dimen.PX)
	assert.Equal(t, 100*dimen.PX, box.W)
	assert.Equal(t, 60*dimen.PX, box.Margins[Right], "over-constrained: margin-right gives way")
}

func TestBorderBoxSizing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	spec := specFrom(t, "box-sizing", "border-box", "width", "120px", "padding", "10px",
		"border", "2px solid red")
	box := &Box{}
	box.InitFromStyle(spec, 500*dimen.PX)
	FixDimensionsFromEnclosingWidth(box, spec, 500*dimen.PX)
	assert.Equal(t, 96*dimen.PX, box.W)
	assert.Equal(t, 120*dimen.PX, box.BorderBoxWidth())
	h, ok := SpecifiedHeight(box, spec, -1)
	assert.False(t, ok, "height is auto")
	assert.Equal(t, dimen.Zero, h)
}

func TestPercentHeightOfAutoContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	spec := specFrom(t, "height", "50%")
	box := &Box{}
	_, ok := SpecifiedHeight(box, spec, -1)
	assert.False(t, ok)
	h, ok := SpecifiedHeight(box, spec, 40*dimen.PX)
	assert.True(t, ok)
	assert.Equal(t, 20*dimen.PX, h)
}

func TestMarginCollapsing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	b1 := &Box{Margins: [4]dimen.Dimen{0, 0, 20 * dimen.PX, 0}}
	b2 := &Box{Margins: [4]dimen.Dimen{10 * dimen.PX, 0, 0, 0}}
	greater, smaller := CollapseMargins(b1, b2)
	assert.Equal(t, 20*dimen.PX, greater)
	assert.Equal(t, 10*dimen.PX, smaller)
	assert.Equal(t, 20*dimen.PX, CollapsedMargin(20*dimen.PX, 10*dimen.PX))
	assert.Equal(t, 10*dimen.PX, CollapsedMargin(20*dimen.PX, -10*dimen.PX))
	assert.Equal(t, -20*dimen.PX, CollapsedMargin(-5*dimen.PX, -20*dimen.PX))
	g, _ := CollapseMargins(nil, b2)
	assert.Equal(t, 10*dimen.PX, g)
}

func TestContainingBlockClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	assert.True(t, EstablishesContainingBlock(specFrom(t, "position", "absolute")))
	assert.True(t, EstablishesContainingBlock(specFrom(t, "display", "table-cell")))
	assert.True(t, EstablishesContainingBlock(specFrom(t, "display", "inline-block")))
	assert.False(t, EstablishesContainingBlock(specFrom(t, "display", "block")))
	assert.False(t, EstablishesContainingBlock(specFrom(t, "position", "relative")))
	assert.Equal(t, InlineFormattingContext, InnerContext(css.InlineMode|css.FlowMode, false))
	assert.Equal(t, BlockFormattingContext, InnerContext(css.InlineMode|css.FlowMode, true))
	assert.Equal(t, TableFormattingContext, InnerContext(css.BlockMode|css.TableMode, false))
}

func TestStylingFromSpec(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	st := StylingFrom(specFrom(t, "color", "blue", "border-top", "1px dashed", "font-style", "italic"))
	assert.Equal(t, LSDashed, st.Border.LineStyle[Top])
	assert.Equal(t, LSNone, st.Border.LineStyle[Bottom])
	assert.Equal(t, st.Colors.Foreground, st.Border.LineColor[Top], "currentcolor")
	assert.True(t, st.TextStyle.Italic)
	assert.True(t, st.Visible)
}
