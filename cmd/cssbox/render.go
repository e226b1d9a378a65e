package main

import (
	"github.com/npillmayer/cssbox/backend/raster"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Lay out a document and paint it to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, size, err := layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			canvas := raster.ForSize(size)
			if err = c.Paint(canvas); err != nil {
				return err
			}
			if err = canvas.SavePNG(out); err != nil {
				return err
			}
			pterm.Success.Printfln("wrote %s (%.0fpx x %.0fpx)", out, size.X.Px(), size.Y.Px())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "out.png", "PNG file to write")
	return cmd
}
