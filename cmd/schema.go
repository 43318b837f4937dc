package cmd

import (
	"github.com/grovetools/hookcheck/config"
	"github.com/grovetools/hookcheck/schema"
	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	var settings bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema used to validate documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := schema.Embedded()
			if settings {
				var err error
				if data, err = config.GenerateSchema(); err != nil {
					return err
				}
			}
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().BoolVar(&settings, "settings", false, "Print the schema of hookcheck's own settings file instead")
	return cmd
}
