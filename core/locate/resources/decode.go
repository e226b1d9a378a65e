package resources

import (
	"bytes"
	"image"
	"math"

	"github.com/h2non/filetype"
	"github.com/npillmayer/cssbox/core"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVG images without a view box are rasterized at this size.
const defaultSVGSize = 150

// decodeImage decodes raster images of all registered formats, and
// rasterizes SVG images at their intrinsic size.
func decodeImage(data []byte, ref string) (image.Image, error) {
	if isSVG(data) {
		return rasterizeSVG(data, ref)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, core.Error(core.EINVALID, "%q is not an image (%s)", ref, kind.MIME.Value)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode image %q", ref)
	}
	tracer().Debugf("decoded %s image %q", format, ref)
	return img, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("<svg"))
}

func rasterizeSVG(data []byte, ref string) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read SVG image %q", ref)
	}
	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 {
		w = defaultSVGSize
	}
	if h <= 0 {
		h = defaultSVGSize
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}
