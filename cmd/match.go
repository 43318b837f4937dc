package cmd

import (
	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/pkg/match"
	"github.com/grovetools/hookcheck/pkg/precommit"
	"github.com/grovetools/hookcheck/pkg/report"
	"github.com/spf13/cobra"
)

func NewMatchCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "match paths...",
		Short: "Show which hooks would run on the given files",
		Long: `Evaluates the files and exclude patterns of the document and of each hook
against repository-relative paths. Type filters (types, types_or,
exclude_types) depend on file contents and are not evaluated.

Examples:
  hookcheck match src/app.py docs/index.rst
  hookcheck match --file ci/.pre-commit-config.yaml $(git ls-files)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layered, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}
			path, err := resolveDocument(file, layered.Final)
			if err != nil {
				return err
			}

			doc, err := precommit.ParseFile(path)
			if err != nil {
				return err
			}
			matcher, err := match.Compile(doc)
			if err != nil {
				return err
			}
			selections, err := matcher.Select(args)
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return report.JSON(cmd.OutOrStdout(), selections)
			}
			report.NewPrinter(cmd.OutOrStdout()).Selections(selections)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Pre-commit document (default: searched upward)")
	return cmd
}
