/*
Package dom is a bridge between a parsed HTML document and the style and
box machinery.

Nodes come in two variants, elements and text, with elements classified
by a well-known-tag enumeration. Comments, doctypes and processing
instructions are dropped. The only mutable parts of a node are its style
builder and the link to its principal box.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/cssbox/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'cssbox.dom'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.dom")
}

// ErrNoRoot is returned for HTML input without an element.
var ErrNoRoot = errors.New("document has no root element")

// Document is a bridged HTML document.
type Document struct {
	root  *Node
	count int
}

// Parse parses HTML from r.
func Parse(r io.Reader) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML")
	}
	doc := FromHTMLParseTree(h)
	if doc.root == nil {
		return nil, core.WrapError(ErrNoRoot, core.EINVALID, "cannot parse HTML")
	}
	return doc, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromHTMLParseTree bridges an already parsed HTML tree. h may be a document
// node or an element; for a document node the first element child becomes
// the root.
func FromHTMLParseTree(h *html.Node) *Document {
	doc := &Document{}
	if h == nil {
		return doc
	}
	if h.Type == html.DocumentNode {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				h = c
				break
			}
		}
	}
	if h.Type != html.ElementNode {
		return doc
	}
	doc.root = doc.bridge(h, nil)
	tracer().Debugf("bridged HTML document with %d nodes", doc.count)
	return doc
}

func (doc *Document) bridge(h *html.Node, parent *Node) *Node {
	n := newNode(h, parent)
	doc.count++
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode, html.TextNode:
			n.children = append(n.children, doc.bridge(c, n))
		}
	}
	return n
}

// Root returns the root element, usually <html>.
func (doc *Document) Root() *Node {
	return doc.root
}

// NodeCount returns the number of element and text nodes.
func (doc *Document) NodeCount() int {
	return doc.count
}

// Walk visits all nodes in document order. If fn returns false, the children
// of the node are skipped.
func (doc *Document) Walk(fn func(n *Node) bool) {
	if doc.root != nil {
		walk(doc.root, fn)
	}
}

func walk(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, ch := range n.children {
		walk(ch, fn)
	}
}

// ElementByID finds the first element with a given id.
func (doc *Document) ElementByID(id string) *Node {
	var found *Node
	doc.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.IsElement() && n.ID() == id {
			found = n
		}
		return found == nil
	})
	return found
}

// ResetStyles drops all computed styles and principal-box links, enabling
// a fresh cascade.
func (doc *Document) ResetStyles() {
	doc.Walk(func(n *Node) bool {
		n.styles = nil
		n.principal = NoBox
		return true
	})
}
