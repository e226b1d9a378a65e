package config

import (
	"testing"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/bidi"
)

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	params := FromConfiguration(nil)
	assert.Equal(t, dimen.Zero, params.D(P_LAYOUTWIDTH))
	assert.Equal(t, 13*dimen.PX, params.D(P_FONTSIZE))
	assert.True(t, params.B(P_USERAGENT))
	assert.False(t, params.B(P_IMAGESYNC))
	assert.Equal(t, bidi.LeftToRight, params.Direction())
}

func TestOverrides(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	conf := testconfig.Conf{
		"cssbox.layout.width":   "640px",
		"cssbox.font.size":      "16",
		"cssbox.images.sync":    true,
		"cssbox.text.direction": "RTL",
		"cssbox.useragent":      "false",
	}
	params := FromConfiguration(conf)
	assert.Equal(t, 640*dimen.PX, params.D(P_LAYOUTWIDTH))
	assert.Equal(t, 16*dimen.PX, params.D(P_FONTSIZE))
	assert.True(t, params.B(P_IMAGESYNC))
	assert.False(t, params.B(P_USERAGENT))
	assert.Equal(t, bidi.RightToLeft, params.Direction())
}

func TestIllegalValueKeepsDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	conf := testconfig.Conf{"cssbox.font.size": "large"}
	params := FromConfiguration(conf)
	assert.Equal(t, 13*dimen.PX, params.D(P_FONTSIZE))
}
