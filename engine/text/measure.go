package text

import (
	"strings"
	"sync"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Measurer measures text for layout.
type Measurer interface {
	// Width returns the advance width of s at a font size.
	Width(s string, size dimen.Dimen) dimen.Dimen
	// Metrics returns ascent and descent at a font size.
	Metrics(size dimen.Dimen) (ascent, descent dimen.Dimen)
}

// TabCells is the number of cells a tab character advances in preserved text.
const TabCells = 8

// Monospace measures text as a sequence of fixed-width cells, using a
// monospace face as reference. Wide East Asian graphemes occupy two cells.
type Monospace struct {
	face    font.Face
	advance dimen.Dimen // cell width at reference size
	ascent  dimen.Dimen
	descent dimen.Dimen
	height  dimen.Dimen // reference size
	context *uax11.Context
}

var setupGraphemes sync.Once

// NewMonospace creates a measurer for a monospace face. If face is nil,
// the 7x13 basic font is used.
func NewMonospace(face font.Face) *Monospace {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	if face == nil {
		face = basicfont.Face7x13
	}
	m := face.Metrics()
	ms := &Monospace{
		face:    face,
		advance: fromFixed(font.MeasureString(face, "M")),
		ascent:  fromFixed(m.Ascent),
		descent: fromFixed(m.Descent),
		height:  fromFixed(m.Height),
		context: uax11.LatinContext,
	}
	if ms.height <= 0 {
		ms.height = ms.ascent + ms.descent
	}
	tracer().Debugf("monospace measurer: cell %s x %s", ms.advance, ms.height)
	return ms
}

// Face returns the reference face.
func (ms *Monospace) Face() font.Face {
	return ms.face
}

// Cells returns the number of cells s occupies. Invalid UTF-8 sequences
// count as replacement characters.
func (ms *Monospace) Cells(s string) int {
	if s == "" {
		return 0
	}
	gstr := grapheme.StringFromString(strings.ToValidUTF8(s, "\uFFFD"))
	cells := 0
	for i := 0; i < gstr.Len(); i++ {
		g := string(gstr.Nth(i))
		if g == "\t" {
			cells += TabCells
			continue
		}
		cells += uax11.Width([]byte(g), ms.context)
	}
	return cells
}

// Width returns the advance width of s scaled to a font size.
func (ms *Monospace) Width(s string, size dimen.Dimen) dimen.Dimen {
	return ms.scale(ms.advance*dimen.Dimen(ms.Cells(s)), size)
}

// Metrics returns ascent and descent scaled to a font size.
func (ms *Monospace) Metrics(size dimen.Dimen) (ascent, descent dimen.Dimen) {
	return ms.scale(ms.ascent, size), ms.scale(ms.descent, size)
}

func (ms *Monospace) scale(d, size dimen.Dimen) dimen.Dimen {
	if size <= 0 || size == ms.height {
		return d
	}
	return dimen.Dimen(int64(d) * int64(size) / int64(ms.height))
}

// fromFixed converts 26.6 fixed point pixels to scaled points.
func fromFixed(x fixed.Int26_6) dimen.Dimen {
	return dimen.Dimen(x) << 10
}

var _ Measurer = &Monospace{}
