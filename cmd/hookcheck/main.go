package main

import (
	"os"

	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/cmd"
	"github.com/grovetools/hookcheck/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"hookcheck",
		"Validate and inspect pre-commit configuration files",
	)
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewMatchCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewSettingsCmd())
	rootCmd.AddCommand(cmd.NewRulesCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("hookcheck"))

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
