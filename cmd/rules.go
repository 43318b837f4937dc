package cmd

import (
	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/pkg/lint"
	"github.com/grovetools/hookcheck/pkg/report"
	"github.com/spf13/cobra"
)

func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List validation rules and their default severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.GetOptions(cmd).JSONOutput {
				return report.JSON(cmd.OutOrStdout(), lint.Rules())
			}
			report.NewPrinter(cmd.OutOrStdout()).Rules(lint.Rules())
			return nil
		},
	}
}
