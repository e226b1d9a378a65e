package layout

import (
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// natural returns the content width of box i if its content is laid out
// without any width constraint. Percentages resolve to 0.
func (l *Layouter) natural(i boxtree.Index) dimen.Dimen {
	if w, ok := l.naturals[i]; ok {
		return w
	}
	b := l.tree.Box(i)
	var w dimen.Dimen
	switch {
	case b.IsReplaced():
		w, _ = l.intrinsicSize(i, l.spec(i), 0, -1)
	case isTableContext(b):
		w = l.tableNatural(i)
	default:
		w = l.contentNatural(i)
	}
	l.naturals[i] = w
	return w
}

// outerNatural returns the natural width of box i including its decoration
// and margins, or its specified width if it has an absolute one.
func (l *Layouter) outerNatural(i boxtree.Index) dimen.Dimen {
	spec := l.spec(i)
	var box frame.Box
	box.InitFromStyle(spec, 0)
	var w dimen.Dimen
	if spec.Width.IsAbsolute() && !l.tree.Box(i).IsReplaced() {
		w, _ = frame.SpecifiedWidth(&box, spec, 0)
	} else {
		w = frame.ClampWidth(&box, spec, l.natural(i), 0)
	}
	return w + box.DecorationWidth(true)
}

func (l *Layouter) contentNatural(i boxtree.Index) dimen.Dimen {
	b := l.tree.Box(i)
	var w dimen.Dimen
	c := &collector{l: l}
	c.runs(i, b.Runs)
	flush := func() {
		if len(c.items) == 0 {
			return
		}
		indent := l.spec(i).TextIndent.ResolveOr(0, 0)
		for n, line := range breakLines(c.items, dimen.Unbounded, indent) {
			lw := lineWidth(c.items, line)
			if n == 0 {
				lw += indent
			}
			w = dimen.Max(w, lw)
		}
		c.items = c.items[:0]
	}
	for _, ch := range b.Children {
		if l.tree.Box(ch).IsOutOfFlow() {
			continue
		}
		if l.isInlineContent(ch) {
			c.box(ch)
			continue
		}
		flush()
		w = dimen.Max(w, l.outerNatural(ch))
	}
	flush()
	return w
}

// intrinsicSize returns the size of a replaced box. Specified dimensions
// take precedence; if only one of width and height is given, the other one
// keeps the aspect ratio of the image. An unknown height reference is < 0.
func (l *Layouter) intrinsicSize(i boxtree.Index, spec *style.Spec, cbw, cbh dimen.Dimen) (dimen.Dimen, dimen.Dimen) {
	b := l.tree.Box(i)
	var iw, ih dimen.Dimen
	if b.Image != nil {
		bounds := b.Image.Bounds()
		iw, ih = dimen.Dimen(bounds.Dx())*dimen.PX, dimen.Dimen(bounds.Dy())*dimen.PX
	}
	w, wok := spec.Width.Resolve(cbw)
	var h dimen.Dimen
	var hok bool
	if !spec.Height.IsPercent() || cbh >= 0 {
		h, hok = spec.Height.Resolve(cbh)
	}
	switch {
	case wok && hok:
		return w, h
	case wok:
		if iw > 0 {
			return w, dimen.Dimen(int64(ih) * int64(w) / int64(iw))
		}
		return w, 0
	case hok:
		if ih > 0 {
			return dimen.Dimen(int64(iw) * int64(h) / int64(ih)), h
		}
		return 0, h
	}
	return iw, ih
}

// replacedSize sets the content size of a replaced box.
func (l *Layouter) replacedSize(i boxtree.Index, box *frame.Box, spec *style.Spec, cb containingBlock) {
	w, h := l.intrinsicSize(i, spec, cb.w, cb.h)
	box.W = frame.ClampWidth(box, spec, w, cb.w)
	box.H = frame.ClampHeight(box, spec, h, cb.h)
}
