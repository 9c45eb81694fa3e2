package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tweezer/arch"
	"github.com/katalvlaran/tweezer/grid"
)

func newZonesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the zones and special grids of the architecture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.needArch(); err != nil {
				return err
			}
			spec, err := arch.Load(cmd.Context(), root.archFile)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "aod: %d x tones, %d y tones\n", spec.XTones, spec.YTones)
			for _, name := range spec.ZoneNames() {
				g, _ := spec.Zone(name)
				fmt.Fprintf(w, "zone %s: %s\n", name, describe(g))
			}
			for _, name := range spec.SpecialNames() {
				g, _ := spec.SpecialGrid(name)
				fmt.Fprintf(w, "special_grid %s: %s\n", name, describe(g))
			}

			return nil
		},
	}
}

func describe(g grid.Grid) string {
	nx, ny := g.Shape()

	return fmt.Sprintf("%dx%d x=%v y=%v", nx, ny, g.XPositions(), g.YPositions())
}
