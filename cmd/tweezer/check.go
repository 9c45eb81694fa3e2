package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tweezer/aodstate"
	"github.com/katalvlaran/tweezer/export"
	"github.com/katalvlaran/tweezer/internal/ctxlog"
	"github.com/katalvlaran/tweezer/schedule"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "check PLAN",
		Short: "Compile a plan, check every step on the AOD and export the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := ctxlog.FromContext(ctx)
			if err := root.needArch(); err != nil {
				return err
			}
			spec, p, err := root.load(ctx, args[0])
			if err != nil {
				return err
			}

			sched, _, err := schedule.Compile(p.Program,
				schedule.WithToneBudget(spec.XTones, spec.YTones),
				schedule.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("failed to compile %s: %w", args[0], err)
			}
			if _, err := aodstate.CheckSchedule(sched,
				aodstate.WithToneBudget(spec.XTones, spec.YTones),
				aodstate.WithLogger(logger),
			); err != nil {
				return fmt.Errorf("schedule of %s is illegal: %w", args[0], err)
			}
			logger.Info("Schedule checked.", "plan", args[0], "groups", len(sched.Groups))

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			return export.Encode(w, sched)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the YAML schedule to this file instead of stdout")

	return cmd
}
