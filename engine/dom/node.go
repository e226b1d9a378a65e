package dom

/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cssbox/engine/dom/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind discriminates the variants of a Node.
type Kind uint8

// Node kinds
const (
	ElementNode Kind = iota
	TextNode
)

func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	}
	return "?"
}

// NoBox marks a node without a principal box.
const NoBox = -1

// Node is a read-only view of an element or text node of an HTML document.
// Elements own their style; both kinds carry a reference to their principal
// box, if one has been generated.
type Node struct {
	kind      Kind
	tag       Tag
	htmlNode  *html.Node
	parent    *Node
	children  []*Node
	styles    *style.Builder // elements only
	principal int
}

func newNode(h *html.Node, parent *Node) *Node {
	n := &Node{htmlNode: h, parent: parent, principal: NoBox}
	if h.Type == html.TextNode {
		n.kind = TextNode
	} else {
		n.kind = ElementNode
		n.tag = TagOf(h.DataAtom)
	}
	return n
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsElement is true for element nodes.
func (n *Node) IsElement() bool {
	return n.kind == ElementNode
}

// IsText is true for text nodes.
func (n *Node) IsText() bool {
	return n.kind == TextNode
}

// Tag returns the well-known tag of an element. Text nodes and unknown
// elements return TagOther.
func (n *Node) Tag() Tag {
	return n.tag
}

// Name returns the lower-case tag name of an element, or "#text".
func (n *Node) Name() string {
	if n.kind == TextNode {
		return "#text"
	}
	return n.htmlNode.Data
}

// HTMLNode gets the HTML DOM node corresponding to this node.
func (n *Node) HTMLNode() *html.Node {
	return n.htmlNode
}

// Parent returns the parent element, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the element and text children of n.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount returns the number of children of n.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Attr looks up an attribute of an element.
func (n *Node) Attr(key string) (string, bool) {
	if n.kind != ElementNode {
		return "", false
	}
	for _, a := range n.htmlNode.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the id attribute of an element, if any.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Text returns the raw text buffer of a text node. For elements, it returns
// the concatenated text of all descendant text nodes.
func (n *Node) Text() string {
	if n.kind == TextNode {
		return n.htmlNode.Data
	}
	var b strings.Builder
	for _, ch := range n.children {
		b.WriteString(ch.Text())
	}
	return b.String()
}

// StyleBuilder returns the style builder owned by an element, creating it with
// the given defaults on first use. Text nodes have no style and return nil.
func (n *Node) StyleBuilder(dflt style.Defaults) *style.Builder {
	if n.kind != ElementNode {
		return nil
	}
	if n.styles == nil {
		n.styles = style.NewBuilder(dflt)
	}
	return n.styles
}

// ComputedStyle returns the frozen style of an element, or nil if the cascade
// has not finished for it. Text nodes return the computed style of their parent.
func (n *Node) ComputedStyle() *style.Spec {
	if n.kind == TextNode {
		if n.parent == nil {
			return nil
		}
		return n.parent.ComputedStyle()
	}
	if n.styles == nil || !n.styles.IsFrozen() {
		return nil
	}
	return n.styles.Freeze()
}

// PrincipalBox returns the index of the principal box of n.
func (n *Node) PrincipalBox() (int, bool) {
	return n.principal, n.principal != NoBox
}

// SetPrincipalBox links n to its principal box.
func (n *Node) SetPrincipalBox(index int) {
	n.principal = index
}

func (n *Node) String() string {
	if n.kind == TextNode {
		return fmt.Sprintf("DOM(#text/%s)", shortText(n.htmlNode.Data))
	}
	return fmt.Sprintf("DOM(%s)", n.htmlNode.Data)
}

func shortText(t string) string {
	s := "\""
	if len(t) > 10 {
		s += t[:10] + "…\""
	} else {
		s += t + "\""
	}
	s = strings.Replace(s, "\n", `\n`, -1)
	s = strings.Replace(s, "\t", `\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Well-known tags -------------------------------------------------------

// Tag classifies elements which need special treatment.
type Tag uint8

// Well-known tags
const (
	TagOther Tag = iota
	TagHTML
	TagHead
	TagBody
	TagStyle
	TagLink
	TagScript
	TagImg
	TagBr
	TagA
	TagTable
	TagTr
	TagTd
	TagTh
	TagFont
	TagPre
)

var tagsByAtom = map[atom.Atom]Tag{
	atom.Html:   TagHTML,
	atom.Head:   TagHead,
	atom.Body:   TagBody,
	atom.Style:  TagStyle,
	atom.Link:   TagLink,
	atom.Script: TagScript,
	atom.Img:    TagImg,
	atom.Br:     TagBr,
	atom.A:      TagA,
	atom.Table:  TagTable,
	atom.Tr:     TagTr,
	atom.Td:     TagTd,
	atom.Th:     TagTh,
	atom.Font:   TagFont,
	atom.Pre:    TagPre,
}

// TagOf classifies an HTML atom.
func TagOf(a atom.Atom) Tag {
	return tagsByAtom[a]
}

// IsMetadata is true for elements which carry document metadata and never
// generate boxes.
func (t Tag) IsMetadata() bool {
	return t == TagStyle || t == TagLink || t == TagScript || t == TagHead
}
