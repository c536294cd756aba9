package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/config"
)

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	var (
		path   string
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration the other commands would use.

Without --config this is the built-in default, which makes a good starting
point for a config file:

  forcegraph config > forcegraph.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			if asYAML {
				return config.EncodeYAML(cmd.OutOrStdout(), cfg)
			}
			return config.EncodeTOML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file to load and validate")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of TOML")

	return cmd
}
