package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/cssbox/engine/frame/boxtree"
	"github.com/npillmayer/cssbox/engine/frame/framedebug"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var dot string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Lay out a document and print its box tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, size, err := layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			pterm.Info.Printfln("actual size %.1fpx x %.1fpx", size.X.Px(), size.Y.Px())
			if err = printTree(c.Tree()); err != nil {
				return err
			}
			if dot == "" {
				return nil
			}
			f, err := os.Create(dot)
			if err != nil {
				return err
			}
			defer f.Close()
			return framedebug.ToGraphViz(c.Tree(), f)
		},
	}
	cmd.Flags().StringVar(&dot, "dot", "", "write the box tree in GraphViz format to this file")
	return cmd
}

func printTree(tree *boxtree.Tree) error {
	var list pterm.LeveledList
	tree.Walk(tree.Root(), func(i boxtree.Index, depth int) bool {
		list = append(list, pterm.LeveledListItem{Level: depth, Text: boxLine(tree, i)})
		return true
	})
	return pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Render()
}

func boxLine(tree *boxtree.Tree, i boxtree.Index) string {
	b := tree.Box(i)
	label := framedebug.PrincipalLabel(b)
	if b.IsAnonymous() {
		label = framedebug.AnonLabel(b)
	}
	bb := b.Box.BorderBox()
	s := fmt.Sprintf("%s  (%.1f,%.1f) %.1f x %.1f", label,
		bb.TopL.X.Px(), bb.TopL.Y.Px(), bb.Width().Px(), bb.Height().Px())
	if !b.Runs.IsEmpty() {
		s += pterm.FgGray.Sprintf("  %q", shorten(b.Runs.String(), 24))
	}
	return s
}

func shorten(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
