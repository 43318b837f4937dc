package cmd

import (
	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/pkg/precommit"
	"github.com/grovetools/hookcheck/pkg/report"
	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List the (source, rev, hook, args, exclude) tuples of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layered, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			path, err := resolveDocument(arg, layered.Final)
			if err != nil {
				return err
			}

			doc, err := precommit.ParseFile(path)
			if err != nil {
				return err
			}

			tuples := doc.Tuples()
			if cli.GetOptions(cmd).JSONOutput {
				return report.JSON(cmd.OutOrStdout(), tuples)
			}
			report.NewPrinter(cmd.OutOrStdout()).Tuples(tuples)
			return nil
		},
	}
}
