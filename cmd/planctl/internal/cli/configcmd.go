package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bundleplan/cmd/planctl/internal/cliconfig"
	"github.com/katalvlaran/bundleplan/config"
)

func resolveConfig(path string) (*config.Resolved, string, error) {
	return cliconfig.Load(path)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate planctl configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved planner configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd)
			if cfg == nil {
				return cmdErr(fmt.Errorf("config: no configuration resolved"), 1)
			}
			if source, ok := cmd.Annotations["configFile"]; ok && source != "" {
				fmt.Printf("source: %s\n", source)
			} else {
				fmt.Println("source: built-in defaults")
			}
			fmt.Printf("minBundles: %d\n", cfg.MinBundles)
			fmt.Printf("minBundleSize: %d\n", cfg.MinBundleSize)
			fmt.Printf("maxParallelRequests: %d\n", cfg.MaxParallelRequests)
			return nil
		},
	}
}

// rawTOMLConfig mirrors the fields cliconfig.Load reads from a config file,
// decoded directly (not through Viper) so that a .toml file can be checked
// for unknown/malformed keys before it is ever handed to Viper.
type rawTOMLConfig struct {
	HTTPVersion         int `toml:"http-version"`
	MinBundles          int `toml:"min-bundles"`
	MinBundleSize       int `toml:"min-bundle-size"`
	MaxParallelRequests int `toml:"max-parallel-requests"`
}

func newConfigValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file without applying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return cmdErr(fmt.Errorf("config validate: --file is required"), 2)
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return cmdErr(fmt.Errorf("config validate: %w", err), 1)
			}

			var raw rawTOMLConfig
			meta, err := toml.Decode(string(data), &raw)
			if err != nil {
				return cmdErr(fmt.Errorf("config validate: %s: %w", file, err), 1)
			}
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return cmdErr(fmt.Errorf("config validate: %s: unknown keys: %v", file, undecoded), 1)
			}
			if raw.MinBundleSize < 0 || raw.MaxParallelRequests < 0 || raw.MinBundles < 0 {
				return cmdErr(fmt.Errorf("config validate: %s: fields must be non-negative", file), 1)
			}

			fmt.Printf("%s: valid\n", file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "TOML config file to validate")
	return cmd
}
