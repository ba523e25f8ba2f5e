package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
)

var validateFlags struct {
	env bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a callisto configuration file.

All validation errors are collected and reported together, so a single run
surfaces every problem in the file.

Examples:
  # Validate the default config file
  callisto validate

  # Validate a specific file
  callisto validate --config /etc/callisto/config.yaml

  # Validate with CALLISTO_* environment overrides applied
  callisto validate --env`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.env, "env", false, "apply CALLISTO_* environment overrides before validating")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	load := config.Load
	if validateFlags.env {
		load = config.LoadWithEnvOverrides
	}

	cfg, err := load(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("Configuration file %s is invalid:\n", cfgFile)
			for _, fieldErr := range verr.Errors {
				fmt.Printf("  ✗ %s: %s\n", fieldErr.Field, fieldErr.Message)
			}
			return cli.NewConfigError("", fmt.Sprintf("%d validation error(s)", len(verr.Errors)))
		}
		return cli.NewConfigError("", err.Error())
	}

	fmt.Printf("Configuration file %s is valid.\n", cfgFile)

	if verbose {
		fmt.Println()
		fmt.Printf("Audit backend:   %s\n", cfg.Audit.Backend)
		if cfg.Audit.Backend == "sqlite" {
			fmt.Printf("Audit database:  %s\n", cfg.Audit.SQLite.Path)
		}
		fmt.Printf("Retention:       %d days (schedule %q)\n", cfg.Audit.Retention.Days, cfg.Audit.Retention.Schedule)
		fmt.Printf("Metrics enabled: %t\n", cfg.Telemetry.Metrics.Enabled)
		fmt.Printf("Tracing enabled: %t\n", cfg.Telemetry.Tracing.Enabled)
	}

	return nil
}
