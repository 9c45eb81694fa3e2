package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tweezer/action"
	"github.com/katalvlaran/tweezer/internal/ctxlog"
	"github.com/katalvlaran/tweezer/schedule"
)

func newTraceCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trace PLAN PATH...",
		Short: "Print the actions a plan path generates",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, p, err := root.load(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := schedule.NewAnalyzer(schedule.WithLogger(ctxlog.FromContext(ctx))).Run(p.Program)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, name := range args[1:] {
				v, ok := p.Values[name]
				if !ok {
					return fmt.Errorf("unknown path %q", name)
				}
				var acts []action.Action
				switch l := res.Get(v).(type) {
				case schedule.ConcretePath:
					fmt.Fprintf(w, "%s: x%v y%v\n", name, l.Path.XTones, l.Path.YTones)
					acts = l.Path.Actions
				case schedule.NeedsTones:
					nx, ny, _, _ := action.TraceShape(l.Actions)
					fmt.Fprintf(w, "%s: unbound, needs %dx%d tones\n", name, nx, ny)
					acts = l.Actions
				default:
					if err := res.Err(); err != nil {
						return fmt.Errorf("path %q did not generate: %w", name, err)
					}
					return fmt.Errorf("path %q did not generate: %v", name, l)
				}
				for i, a := range acts {
					fmt.Fprintf(w, "  %d: %v\n", i, a)
				}
			}

			return nil
		},
	}
}
