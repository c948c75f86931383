// Package cliconfig loads the CLI-facing configuration that produces a
// config.Resolved for the planner. File I/O and schema defaults belong here,
// not in the config package itself (SPEC_FULL.md §1, §AMBIENT STACK): the
// planning core never touches a filesystem.
//
// The search path and env-prefix convention are grounded on
// untoldecay-BeadsLog's internal/config loader: project-local file first,
// then the user config directory, then $HOME.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/katalvlaran/bundleplan/config"
)

const (
	projectConfigName = ".planctl"
	userConfigDir     = "planctl"
	userConfigFile    = "config"
	envPrefix         = "PLANCTL"
)

// Load resolves config.Resolved. At most one config file is read: the
// explicit path if non-empty, otherwise the first .planctl.{yaml,toml,...}
// found in the working directory, the planctl folder of the user config
// directory, then $HOME; its extension selects the parser.
// PLANCTL_-prefixed environment variables override values from that file,
// and built-in defaults apply to keys set in neither. It also returns the
// config file path actually used, if any, for `planctl config show` to
// report its source.
func Load(explicitPath string) (*config.Resolved, string, error) {
	v := viper.New()

	v.SetDefault("http-version", int(config.HTTP2))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	switch {
	case explicitPath != "":
		v.SetConfigFile(explicitPath)
	default:
		if cwd, err := os.Getwd(); err == nil {
			v.AddConfigPath(cwd)
		}
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, userConfigDir))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(projectConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, "", fmt.Errorf("cliconfig: read config: %w", err)
		}
		if explicitPath != "" {
			return nil, "", fmt.Errorf("cliconfig: read config %s: %w", explicitPath, err)
		}
	}

	httpVersion := config.HTTPVersion(v.GetInt("http-version"))
	opts := []config.Option{config.WithHTTPVersion(httpVersion)}

	// Only an explicitly set key overrides the http-derived default; an
	// absent key must not re-apply HTTP2's hardcoded values over HTTP1's.
	if v.IsSet("min-bundles") {
		opts = append(opts, config.WithMinBundles(v.GetInt("min-bundles")))
	}
	if v.IsSet("min-bundle-size") {
		opts = append(opts, config.WithMinBundleSize(v.GetInt("min-bundle-size")))
	}
	if v.IsSet("max-parallel-requests") {
		opts = append(opts, config.WithMaxParallelRequests(v.GetInt("max-parallel-requests")))
	}

	resolved := config.Resolve(opts...)
	return resolved, v.ConfigFileUsed(), nil
}
