package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/core/locate/resources"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/session"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

var errPending = errors.New("image is loading")

// documentResources loads the resources referenced by a document. Images
// requested asynchronously are collected and delivered after the box tree
// has been built.
type documentResources struct {
	ctx      context.Context
	resolver *resources.Resolver
	pending  map[string]resources.ImagePromise
}

func (r *documentResources) image(src string, sync bool) (image.Image, error) {
	if sync {
		return r.resolver.LoadImage(r.ctx, src)
	}
	if _, ok := r.pending[src]; !ok {
		r.pending[src] = r.resolver.ResolveImage(r.ctx, src)
	}
	return nil, errPending
}

func (r *documentResources) stylesheet(href string) (string, css.StyleSheet) {
	raw, err := r.resolver.Stylesheet(r.ctx, href)
	if err != nil {
		tracer().Errorf("cannot load stylesheet: %v", err)
		return "", nil
	}
	return raw, nil
}

// deliver waits for pending images and hands them to the session. Images
// which fail to load are reported together.
func (r *documentResources) deliver(c *session.Container) (err error) {
	for src, promise := range r.pending {
		img, e := promise.Await(r.ctx)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("image %q: %w", src, e))
			continue
		}
		c.DeliverImage(src, img)
	}
	r.pending = make(map[string]resources.ImagePromise)
	return err
}

// load reads an HTML document and builds a session for it. Path "-" reads
// from stdin.
func load(ctx context.Context, path string) (*session.Container, error) {
	var h []byte
	var err error
	base := "."
	if path == "-" {
		h, err = io.ReadAll(os.Stdin)
	} else {
		h, err = os.ReadFile(path)
		base = filepath.Dir(path)
	}
	if err != nil {
		return nil, err
	}
	res := &documentResources{
		ctx:      ctx,
		resolver: resources.NewResolver(base),
		pending:  make(map[string]resources.ImagePromise),
	}
	c := session.New(parameters(),
		session.WithImageLoader(res.image),
		session.WithStylesheetLoader(res.stylesheet))
	for _, sheet := range viper.GetStringSlice("cssbox.stylesheets") {
		raw, err := os.ReadFile(sheet)
		if err != nil {
			return nil, err
		}
		if err = c.AddStylesheet(string(raw)); err != nil {
			return nil, fmt.Errorf("%s: %w", sheet, err)
		}
	}
	if err = c.SetHTML(string(h)); err != nil {
		return nil, err
	}
	if err = res.deliver(c); err != nil {
		for _, e := range multierr.Errors(err) {
			pterm.Warning.Println(e.Error())
		}
	}
	return c, nil
}

// layout loads and lays out a document, at the configured width.
func layout(ctx context.Context, path string) (*session.Container, dimen.Point, error) {
	c, err := load(ctx, path)
	if err != nil {
		return nil, dimen.Point{}, err
	}
	size, err := c.PerformLayout(0)
	if err != nil {
		return nil, size, err
	}
	tracer().Infof("laid out %s: %v x %v", path, size.X, size.Y)
	return c, size, nil
}
