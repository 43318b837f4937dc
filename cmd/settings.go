package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/hookcheck/cli"
	"github.com/grovetools/hookcheck/config"
	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/pkg/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewSettingsCmd() *cobra.Command {
	var layers bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Display the effective hookcheck settings",
		Long: `Shows the merged settings. With --layers, every layer is printed in merge order:
1. Built-in defaults
2. Global settings ($XDG_CONFIG_HOME/hookcheck/hookcheck.yml)
3. Project settings (hookcheck.yml or .hookcheck.yml, found upward)
4. [tool.hookcheck] in pyproject.toml
5. The file given with --config
This is useful for debugging settings issues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			layered, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return report.JSON(cmd.OutOrStdout(), layered.Final)
			}

			out := cmd.OutOrStdout()
			if layers {
				for _, layer := range layered.Layers {
					if err := writeLayer(out, strings.ToUpper(string(layer.Source))+" SETTINGS", layer.Path, layer.Config); err != nil {
						return err
					}
				}
			}
			return writeLayer(out, "FINAL MERGED SETTINGS", "", layered.Final)
		},
	}

	cmd.Flags().BoolVar(&layers, "layers", false, "Print every settings layer before the merged result")
	return cmd
}

func writeLayer(w io.Writer, title, path string, cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to render settings").
			WithDetail("layer", title)
	}
	fmt.Fprintf(w, "--- # %s\n", title)
	if path != "" {
		fmt.Fprintf(w, "# Source: %s\n", path)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
