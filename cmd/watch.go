package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/pkg/lint"
	"github.com/grovetools/hookcheck/pkg/report"
	"github.com/grovetools/hookcheck/pkg/watch"
	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-validate a document every time it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)

			layered, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}
			settings := layered.Final

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			path, err := resolveDocument(arg, settings)
			if err != nil {
				return err
			}

			linter, err := newLinter(settings)
			if err != nil {
				return err
			}

			printer := report.NewPrinter(cmd.OutOrStdout())
			run := func(path string) {
				r, err := linter.LintFile(path)
				if err != nil {
					logger.WithError(err).Warn("Validation failed")
					return
				}
				if opts.JSONOutput {
					if err := report.JSON(cmd.OutOrStdout(), r); err != nil {
						logger.WithError(err).Error("Failed to write report")
					}
					return
				}
				printer.Reports([]*lint.Report{r}, settings.IsStrict())
			}

			if !cmd.Flags().Changed("debounce") {
				debounce = time.Duration(settings.Watch.DebounceMs) * time.Millisecond
			}
			w, err := watch.New(path, debounce, run)
			if err != nil {
				return err
			}
			defer w.Close()

			run(path)

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.WithField("path", path).Info("Watching for changes (Ctrl+C to stop)")
			w.Start(ctx)
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Wait this long after the last change before re-validating")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
