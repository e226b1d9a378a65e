package layout

import (
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// --- Table Formatting Context ----------------------------------------------

// Tables are laid out with a simplified automatic table layout: the width of
// a column is the largest natural width of its cells, scaled to the width of
// the table. Cells of a row are stretched to the height of the row. Column
// spans are not supported.

type tableRow struct {
	box   boxtree.Index // None for cells which are direct children of the table
	cells []boxtree.Index
}

type tableGroup struct {
	box  boxtree.Index
	rows []int
}

type tableGrid struct {
	rows    []tableRow
	groups  []tableGroup
	columns int
}

func (l *Layouter) grid(i boxtree.Index) *tableGrid {
	g := &tableGrid{}
	implicit := -1
	addRow := func(r boxtree.Index) int {
		row := tableRow{box: r}
		for _, c := range l.tree.Children(r) {
			if !l.tree.Box(c).IsOutOfFlow() {
				row.cells = append(row.cells, c)
			}
		}
		g.rows = append(g.rows, row)
		return len(g.rows) - 1
	}
	for _, ch := range l.tree.Children(i) {
		b := l.tree.Box(ch)
		switch {
		case b.IsOutOfFlow():
			continue
		case b.Display.Contains(css.TableRowGroupMode):
			group := tableGroup{box: ch}
			for _, r := range l.tree.Children(ch) {
				group.rows = append(group.rows, addRow(r))
			}
			g.groups = append(g.groups, group)
			implicit = -1
		case b.Display.Contains(css.TableRowMode):
			addRow(ch)
			implicit = -1
		default:
			if implicit < 0 {
				g.rows = append(g.rows, tableRow{box: boxtree.None})
				implicit = len(g.rows) - 1
			}
			g.rows[implicit].cells = append(g.rows[implicit].cells, ch)
		}
	}
	for _, r := range g.rows {
		if len(r.cells) > g.columns {
			g.columns = len(r.cells)
		}
	}
	return g
}

// borderSpacing returns the horizontal spacing between cells.
func borderSpacing(spec *style.Spec) dimen.Dimen {
	values := css.SplitValues(spec.Get("border-spacing"))
	if len(values) == 0 {
		return 0
	}
	d, err := css.ParseDimen(values[0])
	if err != nil {
		return 0
	}
	return dimen.Max(0, d.ResolveOr(0, 0))
}

// columnNaturals returns the natural outer width of every column.
func (l *Layouter) columnNaturals(g *tableGrid) []dimen.Dimen {
	cols := make([]dimen.Dimen, g.columns)
	for _, r := range g.rows {
		for c, cell := range r.cells {
			cols[c] = dimen.Max(cols[c], l.outerNatural(cell))
		}
	}
	return cols
}

func (l *Layouter) tableNatural(i boxtree.Index) dimen.Dimen {
	g := l.grid(i)
	if g.columns == 0 {
		return 0
	}
	spacing := borderSpacing(l.spec(i))
	w := spacing * dimen.Dimen(g.columns+1)
	for _, c := range l.columnNaturals(g) {
		w += c
	}
	return w
}

// columnWidths scales the natural column widths to fill width.
func columnWidths(naturals []dimen.Dimen, width dimen.Dimen) []dimen.Dimen {
	widths := make([]dimen.Dimen, len(naturals))
	var total dimen.Dimen
	for _, n := range naturals {
		total += n
	}
	width = dimen.Max(0, width)
	rest := width
	for c, n := range naturals {
		if c == len(naturals)-1 {
			widths[c] = rest
			break
		}
		if total == 0 {
			widths[c] = width / dimen.Dimen(len(naturals))
		} else {
			widths[c] = dimen.Dimen(int64(n) * int64(width) / int64(total))
		}
		rest -= widths[c]
	}
	return widths
}

// layoutTable lays out the rows of table i. It returns the content height
// and the rightmost edge used.
func (l *Layouter) layoutTable(i boxtree.Index, inner containingBlock) (dimen.Dimen, dimen.Dimen, error) {
	g := l.grid(i)
	if g.columns == 0 {
		return 0, inner.x, nil
	}
	spacing := borderSpacing(l.spec(i))
	widths := columnWidths(l.columnNaturals(g), inner.w-spacing*dimen.Dimen(g.columns+1))
	tracer().Debugf("table %s: %d rows, column widths %v", l.tree.Box(i).Name(), len(g.rows), widths)
	y, used := inner.y+spacing, inner.x
	rowTop := make([]dimen.Dimen, len(g.rows))
	rowHeight := make([]dimen.Dimen, len(g.rows))
	for n, r := range g.rows {
		x := inner.x + spacing
		var h dimen.Dimen
		for c, cell := range r.cells {
			cb := containingBlock{x: x, y: y, w: widths[c], h: -1, cell: true}
			p, err := l.layoutBlock(cell, cb, x, y, 0)
			if err != nil {
				return 0, used, err
			}
			h = dimen.Max(h, p.bottom-y)
			x += widths[c] + spacing
		}
		used = dimen.Max(used, x)
		for _, cell := range r.cells {
			l.stretchCell(cell, y+h)
		}
		if r.box != boxtree.None {
			box := &l.tree.Box(r.box).Box
			box.TopL = dimen.Point{X: inner.x + spacing, Y: y}
			box.W, box.H = x-spacing-box.TopL.X, h
		}
		rowTop[n], rowHeight[n] = y, h
		y += h + spacing
	}
	for _, group := range g.groups {
		if len(group.rows) == 0 {
			continue
		}
		first, last := group.rows[0], group.rows[len(group.rows)-1]
		box := &l.tree.Box(group.box).Box
		box.TopL = dimen.Point{X: inner.x + spacing, Y: rowTop[first]}
		box.W = used - spacing - box.TopL.X
		box.H = rowTop[last] + rowHeight[last] - rowTop[first]
	}
	return y - inner.y, used, nil
}

// stretchCell extends a cell to the bottom of its row. Content is moved
// according to vertical-align.
func (l *Layouter) stretchCell(cell boxtree.Index, bottom dimen.Dimen) {
	b := l.tree.Box(cell)
	delta := bottom - b.Box.TopL.Y - b.Box.BorderBoxHeight()
	if delta <= 0 {
		return
	}
	b.Box.H += delta
	var v dimen.Point
	switch l.spec(cell).VerticalAlign {
	case "middle":
		v.Y = delta / 2
	case "bottom":
		v.Y = delta
	default:
		return
	}
	for k := range b.Words {
		b.Words[k].Rect.TopL.Shift(v)
		b.Words[k].Rect.BotR.Shift(v)
		b.Words[k].Baseline += v.Y
	}
	for _, ch := range b.Children {
		l.shiftSubtree(ch, v)
	}
}
