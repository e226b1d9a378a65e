package text

import (
	"strings"

	"github.com/npillmayer/cssbox/engine/dom/style/css"
	"github.com/npillmayer/uax/segment"
)

// RunKind classifies a run of text.
type RunKind uint8

// Kinds of runs
const (
	WordRun  RunKind = iota // non-whitespace characters
	SpaceRun                // whitespace, collapsed or verbatim
	BreakRun                // a preserved line break
)

func (k RunKind) String() string {
	switch k {
	case WordRun:
		return "word"
	case SpaceRun:
		return "space"
	case BreakRun:
		return "break"
	}
	return "?"
}

// Run is a maximal sequence of characters of the same class.
type Run struct {
	Kind RunKind
	Text string
}

// IsSpace is true for space runs.
func (r Run) IsSpace() bool {
	return r.Kind == SpaceRun
}

// RunList is the result of splitting the text of a node.
type RunList struct {
	Runs    []Run
	visible bool
}

// HasVisible is true if the list contains at least one word run.
func (rl RunList) HasVisible() bool {
	return rl.visible
}

// Len returns the number of runs.
func (rl RunList) Len() int {
	return len(rl.Runs)
}

// IsEmpty is true if there are no runs.
func (rl RunList) IsEmpty() bool {
	return len(rl.Runs) == 0
}

// String concatenates the text of all runs.
func (rl RunList) String() string {
	var b strings.Builder
	for _, r := range rl.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Words returns the texts of all word runs.
func (rl RunList) Words() []string {
	var w []string
	for _, r := range rl.Runs {
		if r.Kind == WordRun {
			w = append(w, r.Text)
		}
	}
	return w
}

// TrimLeft drops leading space runs.
func (rl RunList) TrimLeft() RunList {
	i := 0
	for i < len(rl.Runs) && rl.Runs[i].IsSpace() {
		i++
	}
	return RunList{Runs: rl.Runs[i:], visible: rl.visible}
}

// TrimRight drops trailing space runs.
func (rl RunList) TrimRight() RunList {
	j := len(rl.Runs)
	for j > 0 && rl.Runs[j-1].IsSpace() {
		j--
	}
	return RunList{Runs: rl.Runs[:j], visible: rl.visible}
}

// NewRunList creates a run list from runs.
func NewRunList(runs ...Run) RunList {
	rl := RunList{Runs: runs}
	for _, r := range runs {
		if r.Kind == WordRun {
			rl.visible = true
			break
		}
	}
	return rl
}

// Append concatenates two run lists.
func (rl RunList) Append(other RunList) RunList {
	runs := make([]Run, 0, len(rl.Runs)+len(other.Runs))
	runs = append(append(runs, rl.Runs...), other.Runs...)
	return RunList{Runs: runs, visible: rl.visible || other.visible}
}

// IsWhitespace reports whether r is a CSS document white space character.
// No-break spaces are not included.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// Split breaks buf into runs for a white-space mode. It is deterministic and
// does not depend on layout state.
//
// Run boundaries are taken from the segments of a whitespace segmenter and
// set around preserved line breaks. No-break spaces never end a word.
func Split(buf string, mode css.WhiteSpace) RunList {
	sp := splitter{mode: mode}
	seg := segment.NewSegmenter()
	seg.Init(strings.NewReader(buf))
	for seg.Next() {
		sp.segment(seg.Text())
	}
	sp.flush()
	if mode == css.WhiteSpacePreLine {
		sp.trimAroundBreaks()
	}
	tracer().Debugf("split %q into %d runs", buf, len(sp.list.Runs))
	return sp.list
}

type splitter struct {
	mode css.WhiteSpace
	list RunList
	kind RunKind
	acc  strings.Builder
}

// segment classifies a segment of the whitespace segmenter. A segment free
// of CSS whitespace continues a word, so no-break spaces glue the words
// around them. A segment of CSS whitespace only becomes a space run. The
// segmenter counts no-break spaces as whitespace, too, so a segment may mix
// both classes and is then split by character.
func (sp *splitter) segment(s string) {
	switch {
	case strings.IndexFunc(s, IsWhitespace) < 0:
		sp.add(WordRun, s)
	case strings.TrimFunc(s, IsWhitespace) == "":
		sp.space(s)
	default:
		for _, r := range s {
			if IsWhitespace(r) {
				sp.space(string(r))
			} else {
				sp.add(WordRun, string(r))
			}
		}
	}
}

// space adds whitespace, with preserved line breaks as runs of their own.
func (sp *splitter) space(s string) {
	if !sp.keepsBreaks() {
		sp.add(SpaceRun, s)
		return
	}
	for n, part := range strings.Split(s, "\n") {
		if n > 0 {
			sp.flush()
			sp.list.Runs = append(sp.list.Runs, Run{Kind: BreakRun, Text: "\n"})
		}
		if part != "" {
			sp.add(SpaceRun, part)
		}
	}
}

func (sp *splitter) keepsBreaks() bool {
	return sp.mode == css.WhiteSpacePre || sp.mode == css.WhiteSpacePreWrap ||
		sp.mode == css.WhiteSpacePreLine
}

// add appends s to the current run. Adjacent text of the same kind is merged.
func (sp *splitter) add(kind RunKind, s string) {
	if sp.acc.Len() > 0 && sp.kind != kind {
		sp.flush()
	}
	sp.kind = kind
	if kind == SpaceRun && sp.mode.Collapses() {
		if sp.acc.Len() == 0 {
			sp.acc.WriteByte(' ')
		}
		return
	}
	sp.acc.WriteString(s)
}

func (sp *splitter) flush() {
	if sp.acc.Len() == 0 {
		return
	}
	if sp.kind == WordRun {
		sp.list.visible = true
	}
	sp.list.Runs = append(sp.list.Runs, Run{Kind: sp.kind, Text: sp.acc.String()})
	sp.acc.Reset()
}

// trimAroundBreaks removes collapsible spaces adjacent to a preserved break.
func (sp *splitter) trimAroundBreaks() {
	runs := make([]Run, 0, len(sp.list.Runs))
	for i, r := range sp.list.Runs {
		if r.Kind == SpaceRun {
			if i > 0 && sp.list.Runs[i-1].Kind == BreakRun {
				continue
			}
			if i+1 < len(sp.list.Runs) && sp.list.Runs[i+1].Kind == BreakRun {
				continue
			}
		}
		runs = append(runs, r)
	}
	sp.list.Runs = runs
}
