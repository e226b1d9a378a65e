/*
Package config holds the layout parameters of a document session.

Parameters have built-in defaults and may be overridden from any
schuko.Configuration, e.g. a viper-backed configuration in a command-line
application or a testconfig.Conf in tests. Keys are prefixed with "cssbox.".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssbox.core'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.core")
}

// LayoutParameter enumerates the parameters a session consults.
type LayoutParameter int

const (
	none LayoutParameter = iota
	P_LAYOUTWIDTH        // dimension; 0 means shrink-to-fit
	P_FONTSIZE           // dimension
	P_FONTFAMILY         // string
	P_TEXTDIRECTION      // bidi.Direction
	P_IMAGESYNC          // bool: images requested synchronously
	P_USERAGENT          // bool: apply the user-agent stylesheet
	P_STOPPER
)

var keys = [P_STOPPER]string{
	P_LAYOUTWIDTH:   "cssbox.layout.width",
	P_FONTSIZE:      "cssbox.font.size",
	P_FONTFAMILY:    "cssbox.font.family",
	P_TEXTDIRECTION: "cssbox.text.direction",
	P_IMAGESYNC:     "cssbox.images.sync",
	P_USERAGENT:     "cssbox.useragent",
}

// Key returns the configuration key for a parameter.
func (p LayoutParameter) Key() string {
	if p <= none || p >= P_STOPPER {
		return ""
	}
	return keys[p]
}

// Parameters is a set of layout parameters.
type Parameters struct {
	base [P_STOPPER]interface{}
}

// Defaults returns a parameter set with built-in defaults.
func Defaults() *Parameters {
	params := &Parameters{}
	initParameters(&params.base)
	return params
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_LAYOUTWIDTH] = dimen.Zero         // dimension
	p[P_FONTSIZE] = 13 * dimen.PX         // dimension
	p[P_FONTFAMILY] = "monospace"         // a string
	p[P_TEXTDIRECTION] = bidi.LeftToRight //
	p[P_IMAGESYNC] = false                // a flag
	p[P_USERAGENT] = true                 // a flag
}

// FromConfiguration creates a parameter set from defaults, overridden by
// the keys set in conf. conf may be nil.
func FromConfiguration(conf schuko.Configuration) *Parameters {
	params := Defaults()
	if conf == nil {
		return params
	}
	for p := P_LAYOUTWIDTH; p < P_STOPPER; p++ {
		key := p.Key()
		if !conf.IsSet(key) {
			continue
		}
		switch p {
		case P_LAYOUTWIDTH, P_FONTSIZE:
			s := conf.GetString(key)
			d, pcnt, err := dimen.ParseDimen(strings.TrimSpace(s))
			if err != nil || pcnt || d < 0 {
				tracer().Errorf("configuration: %s has illegal value %q, using default", key, s)
				continue
			}
			params.base[p] = d
		case P_FONTFAMILY:
			params.base[p] = conf.GetString(key)
		case P_TEXTDIRECTION:
			if strings.EqualFold(conf.GetString(key), "rtl") {
				params.base[p] = bidi.RightToLeft
			} else {
				params.base[p] = bidi.LeftToRight
			}
		case P_IMAGESYNC, P_USERAGENT:
			params.base[p] = conf.GetBool(key)
		}
		tracer().Debugf("configuration: %s = %v", key, params.base[p])
	}
	return params
}

// Set overrides a parameter.
func (params *Parameters) Set(key LayoutParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of layout parameters")
	}
	params.base[key] = value
}

// Get returns the value of a parameter.
func (params *Parameters) Get(key LayoutParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of layout parameters")
	}
	return params.base[key]
}

// S returns a string parameter.
func (params *Parameters) S(key LayoutParameter) string {
	return params.Get(key).(string)
}

// B returns a boolean parameter.
func (params *Parameters) B(key LayoutParameter) bool {
	return params.Get(key).(bool)
}

// D returns a dimension parameter.
func (params *Parameters) D(key LayoutParameter) dimen.Dimen {
	return params.Get(key).(dimen.Dimen)
}

// Direction returns the text direction parameter.
func (params *Parameters) Direction() bidi.Direction {
	return params.Get(P_TEXTDIRECTION).(bidi.Direction)
}
