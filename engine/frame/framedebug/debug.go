package framedebug

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/cssbox/engine/frame"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	BoxTmpl  *template.Template
	PBoxTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz creates a graphical representation of a box tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
// Boxes with a specified width are drawn with a single border, boxes whose
// width depends on content with a double one.
func ToGraphViz(tree *boxtree.Tree, w io.Writer) error {
	header, err := template.New("boxTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	funcs := template.FuncMap{
		"shortstring": shortText,
		"label":       label,
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.BoxTmpl = template.Must(template.New("box").Funcs(funcs).Parse(boxTmpl))
	gparams.PBoxTmpl = template.Must(template.New("pbox").Funcs(funcs).Parse(pboxTmpl))
	gparams.EdgeTmpl = template.Must(template.New("boxedge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	tracer().Debugf("writing %d boxes to DOT", tree.Len())
	var walkErr error
	tree.Walk(tree.Root(), func(i boxtree.Index, _ int) bool {
		if walkErr = box(tree, i, w, &gparams); walkErr != nil {
			return false
		}
		if p := tree.Parent(i); p != boxtree.None {
			walkErr = gparams.EdgeTmpl.Execute(w, cedge{N1: nodeName(p), N2: nodeName(i)})
		}
		return walkErr == nil
	})
	if walkErr != nil {
		return walkErr
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func nodeName(i boxtree.Index) string {
	return fmt.Sprintf("node%05d", i)
}

func box(tree *boxtree.Tree, i boxtree.Index, w io.Writer, gparams *graphParamsType) error {
	c := &cbox{C: tree.Box(i), Name: nodeName(i)}
	if c.C.IsAnonymous() {
		return gparams.BoxTmpl.Execute(w, c)
	}
	return gparams.PBoxTmpl.Execute(w, styledBoxParams(c))
}

// Helper structs
type cbox struct {
	C    *boxtree.CssBox
	Name string
}

type pbox struct {
	*cbox
	Color  string
	Fill   string
	Border string
}

type cedge struct {
	N1, N2 string
}

func shortText(c *cbox) string {
	txt := c.C.Runs.String()
	s := fmt.Sprintf("\"%s \\\"", "T")
	if r := []rune(txt); len(r) > 10 {
		s += string(r[:10]) + "…\\\"\""
	} else {
		s += txt + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// ---------------------------------------------------------------------------

func label(c *boxtree.CssBox) string {
	if c.IsAnonymous() {
		return "\"" + AnonLabel(c) + "\""
	}
	return "\"" + PrincipalLabel(c) + "\""
}

// PrincipalLabel returns a label for the box of an element.
func PrincipalLabel(c *boxtree.CssBox) string {
	if c == nil {
		return "<empty box>"
	}
	return fmt.Sprintf("%s %s", c.Display.Symbol(), c.Name())
}

// AnonLabel returns a label for an anonymous box.
func AnonLabel(c *boxtree.CssBox) string {
	if c == nil {
		return "<empty anon box>"
	}
	return fmt.Sprintf("%s anon", c.Display.Symbol())
}

// ColorString returns a color in the notation of GraphViz.
func ColorString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const boxTmpl = `{{ if .C.Runs.IsEmpty }}
{{ .Name }}	[ label={{ label .C }} shape=box style=filled fillcolor=lightblue3 ] ;
{{ else }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ end }}
`

const pboxTmpl = `
{{ .Name }}	[ label={{ label .C }} shape=box style=filled {{ .Fill }} {{ .Color }} {{ .Border }}] ;
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

func styledBoxParams(c *cbox) *pbox {
	b := &pbox{cbox: c, Color: "color=black", Fill: "fillcolor=lightblue3"}
	if spec := c.C.Spec; spec != nil {
		sty := frame.StylingFrom(spec)
		b.Color = fmt.Sprintf("color=\"%s\"", ColorString(sty.Border.LineColor[frame.Top]))
		if sty.Colors.Background.A > 0 {
			b.Fill = fmt.Sprintf("fillcolor=\"%s\"", ColorString(sty.Colors.Background))
		}
		if !spec.Width.IsAuto() {
			return b
		}
	}
	b.Border = "peripheries=2"
	return b
}
