package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/cssbox/core/dimen"
	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell FILE",
		Short: "Query the layout of a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			repl, err := readline.New("cssbox > ")
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
			(&Intp{c: c, repl: repl}).REPL()
			return nil
		},
	}
}

// Intp is our interpreter object.
type Intp struct {
	c    *session.Container
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		out, quit, err := intp.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if out != "" {
			pterm.Println(out)
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

var errUsage = errors.New("usage: box X Y | attr X Y NAME | href X Y | width W | dump | quit")

// eval executes one command line and returns its output.
func (intp *Intp) eval(line string) (string, bool, error) {
	args := strings.Fields(line)
	tracer().Debugf("command %v", args)
	switch strings.ToLower(args[0]) {
	case "quit", "exit":
		return "", true, nil
	case "box":
		p, err := point(args, 3)
		if err != nil {
			return "", false, err
		}
		i, err := intp.c.BoxAt(p)
		if err != nil {
			return "", false, err
		}
		if i == boxtree.None {
			return "no box", false, nil
		}
		return boxLine(intp.c.Tree(), i), false, nil
	case "attr":
		p, err := point(args, 4)
		if err != nil {
			return "", false, err
		}
		v, ok, err := intp.c.AttributeAt(p, args[3])
		return found(v, ok), false, err
	case "href":
		p, err := point(args, 3)
		if err != nil {
			return "", false, err
		}
		href, ok, err := intp.c.LinkAt(p)
		return found(href, ok), false, err
	case "width":
		if len(args) != 2 {
			return "", false, errUsage
		}
		w, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "px"), 64)
		if err != nil || w < 0 {
			return "", false, fmt.Errorf("illegal width %q", args[1])
		}
		size, err := intp.c.PerformLayout(dimen.FromPx(w))
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("actual size %.1fpx x %.1fpx", size.X.Px(), size.Y.Px()), false, nil
	case "dump":
		return "", false, printTree(intp.c.Tree())
	}
	return "", false, errUsage
}

func point(args []string, n int) (dimen.Point, error) {
	if len(args) != n {
		return dimen.Point{}, errUsage
	}
	x, err1 := strconv.ParseFloat(args[1], 64)
	y, err2 := strconv.ParseFloat(args[2], 64)
	if err1 != nil || err2 != nil {
		return dimen.Point{}, fmt.Errorf("illegal coordinates %s %s", args[1], args[2])
	}
	return dimen.Point{X: dimen.FromPx(x), Y: dimen.FromPx(y)}, nil
}

func found(s string, ok bool) string {
	if !ok {
		return "none"
	}
	return s
}
