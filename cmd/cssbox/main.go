/*
Command cssbox lays out HTML documents with CSS and shows the results.

	cssbox dump doc.html            print the box tree after layout
	cssbox render -o doc.png doc.html
	cssbox shell doc.html           query the layout interactively

Configuration is read from cssbox.yaml, from CSSBOX_* environment variables
and from flags, in increasing priority.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'cssbox.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cssbox.cli")
}

func main() {
	initDisplay()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
