package resources

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/npillmayer/cssbox/core"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	imageResourceType
	stylesheetResourceType
)

// ErrNotFound is wrapped by errors for missing resources.
var ErrNotFound = errors.New("resource not found")

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	case stylesheetResourceType:
		s = fmt.Sprintf("stylesheet not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(ErrNotFound, core.EMISSING, s)
}

// Resolver resolves references relative to a base location, which is either
// a directory or an http(s) URL.
type Resolver struct {
	base   string
	client *http.Client
}

// NewResolver creates a resolver for references relative to base.
func NewResolver(base string) *Resolver {
	return &Resolver{base: base, client: http.DefaultClient}
}

// Location returns the absolute location of a reference, and whether it is
// remote.
func (r *Resolver) Location(ref string) (string, bool, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false, core.WrapError(err, core.EINVALID, "illegal reference %q", ref)
	}
	switch u.Scheme {
	case "http", "https":
		return u.String(), true, nil
	case "file":
		return filepath.FromSlash(u.Path), false, nil
	case "":
	default:
		return "", false, core.Error(core.EINVALID, "unsupported scheme in reference %q", ref)
	}
	if b, err := url.Parse(r.base); err == nil && (b.Scheme == "http" || b.Scheme == "https") {
		return b.ResolveReference(u).String(), true, nil
	}
	p := filepath.FromSlash(u.Path)
	if filepath.IsAbs(p) {
		return p, false, nil
	}
	return filepath.Join(r.base, p), false, nil
}

func (r *Resolver) open(ctx context.Context, ref string, rtype resourceType) (io.ReadCloser, error) {
	loc, remote, err := r.Location(ref)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("resolving %q as %s", ref, loc)
	if !remote {
		f, err := os.Open(loc)
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFound(ref, rtype)
		}
		return f, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot load %q", loc)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, NotFound(ref, rtype)
	}
	return resp.Body, nil
}

// Stylesheet loads the text of a stylesheet.
func (r *Resolver) Stylesheet(ctx context.Context, ref string) (string, error) {
	rc, err := r.open(ctx, ref, stylesheetResourceType)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	return string(b), err
}

// --- Images ---------------------------------------------------------------

type imgPlusErr struct {
	img image.Image
	err error
}

// ImagePromise delivers an image which is loaded in the background.
type ImagePromise interface {
	Image() (image.Image, error)
	Await(ctx context.Context) (image.Image, error)
}

type imageLoader struct {
	ch     <-chan imgPlusErr
	result *imgPlusErr
}

func (loader *imageLoader) Image() (image.Image, error) {
	return loader.Await(context.Background())
}

func (loader *imageLoader) Await(ctx context.Context) (image.Image, error) {
	if loader.result != nil {
		return loader.result.img, loader.result.err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-loader.ch:
		loader.result = &r
		return r.img, r.err
	}
}

// ResolveImage starts loading and decoding an image. Cancelling ctx stops
// loading remote images.
func (r *Resolver) ResolveImage(ctx context.Context, ref string) ImagePromise {
	ch := make(chan imgPlusErr, 1)
	go func(ch chan<- imgPlusErr) {
		defer close(ch)
		result := imgPlusErr{}
		rc, err := r.open(ctx, ref, imageResourceType)
		if err != nil {
			result.err = err
			ch <- result
			return
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			result.err = err
		} else {
			result.img, result.err = decodeImage(data, ref)
		}
		ch <- result
	}(ch)
	return &imageLoader{ch: ch}
}

// LoadImage loads an image and waits for it.
func (r *Resolver) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	return r.ResolveImage(ctx, ref).Await(ctx)
}
