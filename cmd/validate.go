package cmd

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/pkg/discover"
	"github.com/grovetools/hookcheck/pkg/lint"
	"github.com/grovetools/hookcheck/pkg/report"
	"github.com/spf13/cobra"
)

func NewValidateCmd() *cobra.Command {
	var (
		recursive string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate pre-commit configuration files",
		Long: `Parses each document, checks it against the pre-commit schema and runs
every enabled rule. Without arguments the document is searched for upward
from the current directory, stopping at the repository root.

Examples:
  hookcheck validate
  hookcheck validate .pre-commit-config.yaml --strict
  hookcheck validate --recursive . --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)

			layered, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}
			settings := layered.Final
			if !cmd.Flags().Changed("strict") {
				strict = settings.IsStrict()
			}

			var paths []string
			for _, arg := range args {
				path, err := resolveDocument(arg, settings)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}
			if recursive != "" {
				found, err := discover.Find(cmd.Context(), recursive, settings.Discover.Ignore)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					return errors.DocumentNotFound(recursive)
				}
				paths = append(paths, found...)
			}
			if len(paths) == 0 {
				path, err := resolveDocument("", settings)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}

			linter, err := newLinter(settings)
			if err != nil {
				return err
			}

			logger.WithField("documents", len(paths)).Debug("Validating")
			reports, err := lintAll(linter, paths)
			if err != nil {
				return err
			}

			if opts.JSONOutput {
				if err := report.JSON(cmd.OutOrStdout(), reports); err != nil {
					return err
				}
			} else {
				report.NewPrinter(cmd.OutOrStdout()).Reports(reports, strict)
			}

			return failure(reports, strict)
		},
	}

	cmd.Flags().StringVarP(&recursive, "recursive", "r", "", "Also validate every document found below this directory")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings as well as errors")
	return cmd
}

// lintAll validates documents concurrently. Reports keep the order of paths.
func lintAll(linter *lint.Linter, paths []string) ([]*lint.Report, error) {
	reports := make([]*lint.Report, len(paths))
	errs := make(chan error, len(paths))
	sem := make(chan struct{}, runtime.NumCPU())

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r, err := linter.LintFile(path)
			if err != nil {
				errs <- err
				return
			}
			reports[i] = r
		}(i, path)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		return nil, err
	}
	return reports, nil
}

func failure(reports []*lint.Report, strict bool) error {
	var failed []*lint.Report
	var errCount, warnCount int
	for _, r := range reports {
		if r.HasErrors(strict) {
			failed = append(failed, r)
			errCount += r.Errors()
			warnCount += r.Warnings()
		}
	}
	switch len(failed) {
	case 0:
		return nil
	case 1:
		return errors.DocumentInvalid(failed[0].Path, errCount, warnCount)
	default:
		return errors.DocumentInvalid(fmt.Sprintf("%d documents", len(failed)), errCount, warnCount)
	}
}
