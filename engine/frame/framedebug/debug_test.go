package framedebug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/cssbox/engine/dom"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.frame")
	defer teardown()
	//
	doc, err := dom.ParseString(`<p style="width:10px">Hello <b>World</b></p>`)
	require.NoError(t, err)
	tree, err := boxtree.Build(doc, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ToGraphViz(tree, &buf))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Equal(t, tree.Len()-1, strings.Count(dot, "->"), "one edge per non-root box")
	assert.Contains(t, dot, "Hello")
	assert.Contains(t, dot, "peripheries=2")
}
