package layout

import (
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/text"
)

// --- Inline Formatting Context ---------------------------------------------

// https://developer.mozilla.org/en-US/docs/Web/CSS/Inline_formatting_context
//
// Inline content is flattened into a sequence of items, which is broken into
// lines greedily. Inline boxes contribute their left and right decoration at
// their start and end.

type itemKind uint8

const (
	wordItem itemKind = iota
	spaceItem
	breakItem
	atomicItem // replaced element or inline-block
	openItem   // start of an inline box
	closeItem  // end of an inline box
	anchorItem // static position of an absolutely positioned box
)

type item struct {
	kind  itemKind
	box   boxtree.Index // owner of a run, or the box itself
	run   text.Run
	width dimen.Dimen
	ws    css.WhiteSpace
	held  []extent // extents of an atomic inline laid out at the origin
}

func (it item) isContent() bool {
	return it.kind == wordItem || it.kind == spaceItem || it.kind == breakItem || it.kind == atomicItem
}

// collector flattens inline boxes into items. If cb is nil, atomic inlines
// are measured by their natural width instead of being laid out.
type collector struct {
	l     *Layouter
	cb    *containingBlock
	items []item
	err   error
}

func (c *collector) runs(owner boxtree.Index, rl text.RunList) {
	spec := c.l.spec(owner)
	for _, r := range rl.Runs {
		it := item{box: owner, run: r, ws: spec.WhiteSpace}
		switch r.Kind {
		case text.WordRun:
			it.kind = wordItem
			it.width = c.l.measure.Width(r.Text, spec.FontSize)
		case text.SpaceRun:
			it.kind = spaceItem
			if spec.WhiteSpace.Collapses() {
				it.width = c.l.measure.Width(" ", spec.FontSize)
			} else {
				it.width = c.l.measure.Width(r.Text, spec.FontSize)
			}
		case text.BreakRun:
			it.kind = breakItem
		}
		c.items = append(c.items, it)
	}
}

func (c *collector) box(i boxtree.Index) {
	if c.err != nil {
		return
	}
	b := c.l.tree.Box(i)
	if b.IsOutOfFlow() {
		c.items = append(c.items, item{kind: anchorItem, box: i})
		return
	}
	if b.Display.IsAtomicInline() || b.IsReplaced() {
		w, held := c.atomicWidth(i)
		c.items = append(c.items, item{kind: atomicItem, box: i, width: w, held: held, ws: c.l.spec(i).WhiteSpace})
		return
	}
	var fb frame.Box
	if b.IsPrincipal() {
		var ref dimen.Dimen
		if c.cb != nil {
			ref = c.cb.w
		}
		fb.InitFromStyle(c.l.spec(i), ref)
		if c.cb != nil {
			b.Box = fb
		}
	}
	c.items = append(c.items, item{kind: openItem, box: i,
		width: fb.Margins[frame.Left] + fb.BorderWidth[frame.Left] + fb.Padding[frame.Left]})
	c.runs(i, b.Runs)
	for _, ch := range b.Children {
		c.box(ch)
	}
	c.items = append(c.items, item{kind: closeItem, box: i,
		width: fb.Padding[frame.Right] + fb.BorderWidth[frame.Right] + fb.Margins[frame.Right]})
}

// atomicWidth returns the outer width of an atomic inline. During layout the
// box is laid out at the origin and moved later. The extents of its content
// are returned for accounting after the move.
func (c *collector) atomicWidth(i boxtree.Index) (dimen.Dimen, []extent) {
	if c.cb == nil {
		return c.l.outerNatural(i), nil
	}
	c.l.beginProvisional()
	_, err := c.l.layoutBlock(i, *c.cb, 0, 0, 0)
	held := c.l.endProvisional()
	if err != nil {
		c.err = err
		return 0, nil
	}
	return c.l.tree.Box(i).Box.TotalWidth(), held
}

// breakLines distributes items into lines of at most avail width. The first
// line is shortened by indent. Lines hold indices into items.
func breakLines(items []item, avail, indent dimen.Dimen) [][]int {
	var lines [][]int
	var cur []int
	var width dimen.Dimen
	brk := -1 // break opportunity: items of cur before brk may stay on the line
	hasContent := func(ix []int) bool {
		for _, k := range ix {
			if items[k].isContent() {
				return true
			}
		}
		return false
	}
	for k, it := range items {
		switch it.kind {
		case breakItem:
			lines = append(lines, append(cur, k))
			cur, width, brk = nil, 0, -1
			continue
		case spaceItem:
			if it.ws.Collapses() {
				if !hasContent(cur) || lastIsSpace(items, cur) {
					continue
				}
			}
			cur = append(cur, k)
			width += it.width
			if it.ws.Wraps() {
				brk = len(cur)
			}
			continue
		case wordItem, atomicItem:
			limit := avail
			if len(lines) == 0 {
				limit -= indent
			}
			if it.kind == atomicItem && it.ws.Wraps() && hasContent(cur) {
				brk = len(cur)
			}
			if it.ws.Wraps() && brk > 0 && hasContent(cur[:brk]) && width+it.width > limit {
				head, tail := cur[:brk], append([]int(nil), cur[brk:]...)
				lines = append(lines, head)
				cur, width, brk = tail, 0, -1
				for _, t := range tail {
					width += items[t].width
				}
			}
			cur = append(cur, k)
			width += it.width
			if it.kind == atomicItem && it.ws.Wraps() {
				brk = len(cur)
			}
			continue
		}
		cur = append(cur, k)
		width += it.width
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// lastIsSpace is true if the last item of a line which is not an inline box
// boundary is a space.
func lastIsSpace(items []item, line []int) bool {
	for n := len(line) - 1; n >= 0; n-- {
		switch items[line[n]].kind {
		case openItem, closeItem:
			continue
		case spaceItem:
			return true
		}
		return false
	}
	return false
}

// lineWidth is the width of a line without trailing spaces which hang.
func lineWidth(items []item, line []int) dimen.Dimen {
	end := len(line)
	for end > 0 {
		it := items[line[end-1]]
		if it.kind != spaceItem || it.ws == css.WhiteSpacePre {
			break
		}
		end--
	}
	var w dimen.Dimen
	for _, k := range line[:end] {
		w += items[k].width
	}
	return w
}

// isPhantom is true for lines without any content and decoration.
func isPhantom(items []item, line []int) bool {
	for _, k := range line {
		if items[k].isContent() || items[k].width != 0 {
			return false
		}
	}
	return true
}

// lineMetrics returns the ascent and descent of a line box part for a style,
// with half-leading added.
func (l *Layouter) lineMetrics(spec *style.Spec) (dimen.Dimen, dimen.Dimen) {
	asc, desc := l.measure.Metrics(spec.FontSize)
	lh := asc + desc
	switch {
	case spec.LineHeight.IsAbsolute():
		lh = spec.LineHeight.Unwrap()
	case spec.LineHeight.IsPercent():
		lh = spec.LineHeight.ResolveOr(spec.FontSize, lh)
	}
	a := asc + (lh-asc-desc)/2
	return a, lh - a
}

// layoutInline flows inline content of container i into lines, starting at
// y. If ownRuns is set, the runs of the container itself come first. It
// returns the height of the lines and the rightmost edge used by content.
func (l *Layouter) layoutInline(i boxtree.Index, ownRuns bool, group []boxtree.Index,
	inner containingBlock, y dimen.Dimen) (dimen.Dimen, dimen.Dimen, error) {
	//
	c := &collector{l: l, cb: &inner}
	if ownRuns {
		c.runs(i, l.tree.Box(i).Runs)
	}
	for _, ch := range group {
		c.box(ch)
	}
	if c.err != nil {
		return 0, inner.x, c.err
	}
	spec := l.spec(i)
	indent := spec.TextIndent.ResolveOr(inner.w, 0)
	lines := breakLines(c.items, inner.w, indent)
	tracer().Debugf("%d inline items of %s broken into %d lines", len(c.items), l.tree.Box(i).Name(), len(lines))
	strutA, strutD := l.lineMetrics(spec)
	align := spec.EffectiveTextAlign()
	p := placer{l: l, items: c.items, extents: make(map[boxtree.Index]dimen.Rect)}
	top, used := y, inner.x
	for n, line := range lines {
		var x dimen.Dimen
		if n == 0 {
			x = indent
		}
		w := lineWidth(c.items, line)
		used = dimen.Max(used, inner.x+x+w)
		switch rest := dimen.Max(0, inner.w-x-w); align {
		case css.TextAlignRight:
			x += rest
		case css.TextAlignCenter:
			x += rest / 2
		}
		p.aligned = x
		if n == 0 {
			p.aligned -= indent
		}
		if isPhantom(c.items, line) {
			p.place(line, inner.x+x, y, y)
			continue
		}
		a, d := strutA, strutD
		for _, k := range line {
			ia, id := p.metrics(c.items[k])
			a, d = dimen.Max(a, ia), dimen.Max(d, id)
		}
		p.place(line, inner.x+x, y, y+a)
		y += a + d
	}
	p.finish()
	return y - top, used, p.err
}

// placer assigns positions to the items of lines.
type placer struct {
	l       *Layouter
	items   []item
	aligned dimen.Dimen     // offset of the current line from text-align
	open    []boxtree.Index // inline boxes started but not yet ended
	extents map[boxtree.Index]dimen.Rect
	order   []boxtree.Index
	err     error
}

func (p *placer) metrics(it item) (dimen.Dimen, dimen.Dimen) {
	switch it.kind {
	case atomicItem:
		return p.l.tree.Box(it.box).Box.TotalHeight(), 0
	case anchorItem:
		return 0, 0
	}
	return p.l.lineMetrics(p.l.spec(it.box))
}

// extend adds a rectangle to the extents of all open inline boxes.
func (p *placer) extend(r dimen.Rect) {
	for _, o := range p.open {
		if e, ok := p.extents[o]; ok {
			p.extents[o] = e.Union(r)
		} else {
			p.extents[o] = r
			p.order = append(p.order, o)
		}
	}
}

func (p *placer) place(line []int, x, top, baseline dimen.Dimen) {
	for _, k := range line {
		it := p.items[k]
		switch it.kind {
		case wordItem, spaceItem:
			spec := p.l.spec(it.box)
			asc, desc := p.l.measure.Metrics(spec.FontSize)
			r := dimen.RectWH(x, baseline-asc, it.width, asc+desc)
			if it.kind == wordItem {
				b := p.l.tree.Box(it.box)
				b.Words = append(b.Words, boxtree.Word{Run: it.run, Rect: r, Baseline: baseline})
			}
			p.extend(r)
		case atomicItem:
			b := p.l.tree.Box(it.box)
			h := b.Box.TotalHeight()
			p.l.shiftSubtree(it.box, dimen.Point{X: x, Y: baseline - h})
			p.l.replay(it.held, dimen.Point{X: x - p.aligned, Y: baseline - h})
			p.l.account(x-p.aligned+it.width, baseline)
			p.extend(b.Box.MarginBox())
		case openItem:
			p.open = append(p.open, it.box)
			spec := p.l.spec(it.box)
			asc, desc := p.l.measure.Metrics(spec.FontSize)
			p.extend(dimen.RectWH(x+it.width, baseline-asc, 0, asc+desc))
		case closeItem:
			for n := len(p.open) - 1; n >= 0; n-- {
				if p.open[n] == it.box {
					p.open = append(p.open[:n], p.open[n+1:]...)
					break
				}
			}
		case anchorItem:
			p.l.deferAbsolute(it.box, dimen.Point{X: x, Y: top})
		}
		x += it.width
	}
}

// finish sets the geometry of inline boxes from the extents of their content.
func (p *placer) finish() {
	for _, i := range p.order {
		e := p.extents[i]
		box := &p.l.tree.Box(i).Box
		box.W, box.H = e.Width(), e.Height()
		box.TopL = dimen.Point{
			X: e.TopL.X - box.Padding[frame.Left] - box.BorderWidth[frame.Left],
			Y: e.TopL.Y - box.Padding[frame.Top] - box.BorderWidth[frame.Top],
		}
	}
}
