package cli

import (
	"os"

	"github.com/grovetools/hookcheck/config"
	"github.com/grovetools/hookcheck/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the options shared by every command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a root command with the standard flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a hookcheck.yml settings file")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the CLI logger, switched to debug level by --verbose.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	return logging.NewLogger("cli")
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadSettings loads the layered settings for the current directory,
// honouring --config.
func LoadSettings(cmd *cobra.Command) (*config.LayeredConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logger := GetLogger(cmd)
	return config.LoadLayered(cwd, GetOptions(cmd).ConfigFile, logger.Logger)
}
