package session

import (
	"errors"
	"image"
	"strings"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/cssbox/core/config"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/dom/cssom"
	"github.com/npillmayer/cssbox/engine/dom/cssom/douceuradapter"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/frame/layout"
	"github.com/npillmayer/cssbox/engine/frame/paint"
	"github.com/npillmayer/cssbox/engine/text"
)

// ErrNoDocument is returned for operations which need a document.
var ErrNoDocument = errors.New("no document set")

// ErrNotLaidOut is returned for operations which need the results of layout.
var ErrNotLaidOut = errors.New("document has not been laid out")

// Container holds a document and everything derived from it.
type Container struct {
	params   *config.Parameters
	images   boxtree.ImageRequest
	sheets   cssom.StylesheetRequest
	measure  text.Measurer
	css      []string // stylesheets added by the host
	doc      *dom.Document
	tree     *boxtree.Tree
	layouter *layout.Layouter
	laidOut  bool
}

// Option configures a Container.
type Option func(*Container)

// WithImageLoader sets the callback for images.
func WithImageLoader(req boxtree.ImageRequest) Option {
	return func(c *Container) {
		c.images = req
	}
}

// WithStylesheetLoader sets the callback for linked stylesheets.
func WithStylesheetLoader(req cssom.StylesheetRequest) Option {
	return func(c *Container) {
		c.sheets = req
	}
}

// WithMeasurer sets the text measurer for layout.
func WithMeasurer(m text.Measurer) Option {
	return func(c *Container) {
		c.measure = m
	}
}

// New creates a container. params may be nil, which selects the defaults.
func New(params *config.Parameters, opts ...Option) *Container {
	if params == nil {
		params = config.Defaults()
	}
	c := &Container{params: params}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetHTML replaces the document of the container. The previous document,
// its styles, box tree and layout are dropped wholesale.
func (c *Container) SetHTML(h string) error {
	c.doc, c.tree, c.layouter, c.laidOut = nil, nil, nil, false
	doc, err := dom.Parse(strings.NewReader(h))
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot parse HTML")
	}
	c.doc = doc
	return c.build()
}

// AddStylesheet adds a stylesheet of the host. It applies to the current
// document and to every document set later.
func (c *Container) AddStylesheet(raw string) error {
	if _, err := douceuradapter.Parse(raw); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
	}
	c.css = append(c.css, raw)
	if c.doc == nil {
		return nil
	}
	c.doc.ResetStyles()
	return c.build()
}

func (c *Container) cascade() *cssom.CascadeState {
	cs := cssom.NewCascadeState(
		cssom.WithUserAgentStylesheet(c.params.B(config.P_USERAGENT)),
		cssom.WithStylesheetRequest(c.sheets),
		cssom.WithDefaults(style.Defaults{
			FontSize:   c.params.D(config.P_FONTSIZE),
			FontFamily: c.params.S(config.P_FONTFAMILY),
		}),
	)
	for _, raw := range c.css {
		if err := cs.AddCSS(raw); err != nil {
			tracer().Errorf("session: skipping stylesheet: %v", err)
		}
	}
	return cs
}

func (c *Container) build() error {
	opts := []boxtree.Option{boxtree.WithSyncImages(c.params.B(config.P_IMAGESYNC))}
	if c.images != nil {
		opts = append(opts, boxtree.WithImageRequest(c.images))
	}
	tree, err := boxtree.Build(c.doc, c.cascade(), opts...)
	if err != nil {
		return err
	}
	c.tree = tree
	var lopts []layout.Option
	if c.measure != nil {
		lopts = append(lopts, layout.WithMeasurer(c.measure))
	}
	c.layouter = layout.New(tree, lopts...)
	c.laidOut = false
	tracer().Infof("session: document with %d boxes", tree.Len())
	return nil
}

// Document returns the current document, if any.
func (c *Container) Document() *dom.Document {
	return c.doc
}

// Tree returns the box tree of the current document, if any.
func (c *Container) Tree() *boxtree.Tree {
	return c.tree
}

// PerformLayout lays out the document. If maxWidth is 0, the configured
// layout width is used; if that is 0 as well, layout shrinks to fit.
// It returns the actual size of the content.
func (c *Container) PerformLayout(maxWidth dimen.Dimen) (dimen.Point, error) {
	if c.tree == nil {
		return dimen.Point{}, core.WrapError(ErrNoDocument, core.EMISSING, "layout")
	}
	if maxWidth <= 0 {
		maxWidth = c.params.D(config.P_LAYOUTWIDTH)
	}
	available := css.Dimen()
	if maxWidth > 0 {
		available = css.SomeDimen(maxWidth)
	}
	size, err := c.layouter.Layout(c.tree.Root(), available)
	c.laidOut = err == nil
	return size, err
}

// ActualSize returns the size of the content after the last layout.
func (c *Container) ActualSize() dimen.Point {
	if !c.laidOut {
		return dimen.Point{}
	}
	return c.layouter.Size()
}

// DeliverImage hands an image to all boxes referencing src, after an
// asynchronous request. It returns false if no box references src. Boxes
// change size, so the document has to be laid out again.
func (c *Container) DeliverImage(src string, img image.Image) bool {
	if c.tree == nil {
		return false
	}
	boxes := c.tree.Images(src)
	for _, i := range boxes {
		c.tree.Box(i).Image = img
	}
	if len(boxes) > 0 {
		c.laidOut = false
	}
	tracer().Debugf("session: image %q delivered to %d boxes", src, len(boxes))
	return len(boxes) > 0
}

func (c *Container) checkLayout() error {
	if c.tree == nil {
		return core.WrapError(ErrNoDocument, core.EMISSING, "query")
	}
	if !c.laidOut {
		return core.WrapError(ErrNotLaidOut, core.EMISSING, "query")
	}
	return nil
}

// BoxAt returns the innermost box at p.
func (c *Container) BoxAt(p dimen.Point) (boxtree.Index, error) {
	if err := c.checkLayout(); err != nil {
		return boxtree.None, err
	}
	i, _ := c.layouter.BoxAt(p)
	return i, nil
}

// AttributeAt returns an attribute of the innermost element at p having it.
func (c *Container) AttributeAt(p dimen.Point, name string) (string, bool, error) {
	if err := c.checkLayout(); err != nil {
		return "", false, err
	}
	v, ok := c.layouter.AttributeAt(p, name)
	return v, ok, nil
}

// LinkAt returns the target of the link at p.
func (c *Container) LinkAt(p dimen.Point) (string, bool, error) {
	if err := c.checkLayout(); err != nil {
		return "", false, err
	}
	href, ok := c.layouter.LinkAt(p)
	return href, ok, nil
}

// Paint draws the laid out document onto dc.
func (c *Container) Paint(dc paint.DrawingContext) error {
	if err := c.checkLayout(); err != nil {
		return err
	}
	paint.Paint(c.tree, dc)
	return nil
}
