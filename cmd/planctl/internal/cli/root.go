// Package cli assembles planctl's Cobra command tree, grounded on
// ALT-F4-LLC/docket's cmd/docket/root.go (PersistentPreRunE resolving a
// shared context, Version wired from build-time ldflags, a sentinel error
// type wrapping an exit code).
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bundleplan/config"
)

var (
	version = "dev"
	commit  = "none"
)

type contextKey string

const cfgKey contextKey = "cfg"

// CmdError wraps an error with an explicit process exit code.
type CmdError struct {
	Err  error
	Code int
}

func (e *CmdError) Error() string { return e.Err.Error() }
func (e *CmdError) Unwrap() error { return e.Err }

func cmdErr(err error, code int) *CmdError {
	return &CmdError{Err: err, Code: code}
}

var configPath string

// NewRootCmd builds the root Cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "planctl",
		Short:   "Run the ideal-bundle planner against a fixture asset graph",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgFile, err := resolveConfig(configPath)
			if err != nil {
				return cmdErr(err, 2)
			}
			if cfgFile != "" {
				cmd.Annotations = map[string]string{"configFile": cfgFile}
			}
			cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, cfg))
			return nil
		},
	}
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a .planctl config file (yaml or toml)")

	root.AddCommand(newPlanCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func configFromContext(cmd *cobra.Command) *config.Resolved {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Resolved)
	return cfg
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var ce *CmdError
		if errors.As(err, &ce) {
			fmt.Println(ce.Error())
			return ce.Code
		}
		fmt.Println(err.Error())
		return 1
	}
	return 0
}
