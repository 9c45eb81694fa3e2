package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tweezer/arch"
	"github.com/katalvlaran/tweezer/internal/ctxlog"
	"github.com/katalvlaran/tweezer/plan"
)

type rootOptions struct {
	logLevel  string
	logFormat string
	logFile   string
	archFile  string

	closer io.Closer
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tweezer",
		Short: "Schedule AOD tweezer choreographies",
		Long: `tweezer compiles move plans written in HCL against an AOD architecture
file, groups auto-scheduled paths, checks the device state of every step and
writes the schedule as YAML.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  opts.setupLogging,
		PersistentPostRunE: opts.teardown,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format on stderr (text, json)")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this file")
	flags.StringVarP(&opts.archFile, "arch", "a", "", "Architecture file (HCL)")

	cmd.AddCommand(newCheckCmd(opts), newTraceCmd(opts), newZonesCmd(opts))

	return cmd
}

func (o *rootOptions) setupLogging(cmd *cobra.Command, _ []string) error {
	handler := ctxlog.NewHandler(o.logLevel, o.logFormat, cmd.ErrOrStderr())
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		o.closer = f
		handler = slogmulti.Fanout(handler, ctxlog.NewHandler(o.logLevel, "json", f))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctxlog.WithLogger(ctx, slog.New(handler)))

	return nil
}

func (o *rootOptions) teardown(*cobra.Command, []string) error {
	if o.closer == nil {
		return nil
	}
	err := o.closer.Close()
	o.closer = nil

	return err
}

// load reads the architecture, when given, and the plan.
func (o *rootOptions) load(ctx context.Context, planFile string) (*arch.Spec, *plan.Plan, error) {
	spec := arch.NewSpec()
	if o.archFile != "" {
		var err error
		if spec, err = arch.Load(ctx, o.archFile); err != nil {
			return nil, nil, err
		}
	}
	p, err := plan.Load(ctx, planFile, spec)
	if err != nil {
		return nil, nil, err
	}

	return spec, p, nil
}

func (o *rootOptions) needArch() error {
	if o.archFile == "" {
		return errors.New("--arch is required")
	}

	return nil
}
