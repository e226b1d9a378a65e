package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var errSample = errors.New("sample")

func TestWrapError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	err := WrapError(errSample, EINVALID, "inline style of <%s>", "p")
	assert.True(t, errors.Is(err, errSample))
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "inline style of <p>", UserMessage(err))
	assert.False(t, IsFatal(err))
}

func TestFatalCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	assert.True(t, IsFatal(Error(ESTRUCTURE, "unbalanced")))
	assert.True(t, IsFatal(errSample), "errors without code count as fatal")
	assert.False(t, IsFatal(nil))
	assert.Equal(t, NOERROR, Code(nil))
}

func TestReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	var buf bytes.Buffer
	Report(&buf, ErrorWithCode(nil, EMISSING))
	assert.Equal(t, "[122] not found\n", buf.String())
}
