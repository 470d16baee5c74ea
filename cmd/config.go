package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/constants"
	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/verbose"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create, or validate configuration",
	Long: `Show, create, or validate configuration.

The configuration is read from --config, or from the first of .wsbump.yml,
.wsbump.yaml and .wsbump.toml found in the workspace root. Keys it sets
replace the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create .wsbump.yml template in the workspace root")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .wsbump.yml template file
//   - --validate: Validates the configuration file
//   - --show-defaults: Displays the default configuration
//   - --show-effective: Displays the defaults merged with the project file
func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case configInitFlag:
		return createConfigTemplate(cmd)
	case configValidateFlag:
		return validateConfigFile(cmd)
	case configShowDefaultsFlag:
		fmt.Fprintln(out, config.GetDefaultConfig())
		return nil
	case configShowEffectiveFlag:
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		text, err := config.EffectiveYAML(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		fmt.Fprintf(out, "# Source: %s\n# Working directory: %s\n", cfg.Source(), cfg.WorkingDir)
		fmt.Fprint(out, text)
		return nil
	}

	return cmd.Help()
}

// validateConfigFile validates --config, or the local config file of the
// workspace root.
//
// Returns:
//   - error: ExitError with ExitConfigError when the file is missing or invalid
func validateConfigFile(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	path := configFlag
	if path == "" {
		for _, name := range config.LocalConfigNames {
			candidate := filepath.Join(directoryFlag, name)
			if _, err := statFunc(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return errors.NewExitErrorf(errors.ExitConfigError, "no config file found in %s", directoryFlag)
	}

	result := config.ValidateConfigFile(path)
	if result.HasErrors() {
		fmt.Fprintf(out, "%s Configuration validation failed for: %s\n\n", constants.IconError, path)
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  ERROR: %s\n", e.Error())
		}
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, path)
		return errors.NewExitErrorf(errors.ExitConfigError, "configuration validation failed")
	}

	fmt.Fprintf(out, "%s Configuration valid: %s\n", constants.IconCheckmarkBox, path)
	return nil
}

// createConfigTemplate writes the commented template to .wsbump.yml in the
// workspace root. An existing file is never overwritten.
func createConfigTemplate(cmd *cobra.Command) error {
	path := filepath.Join(directoryFlag, config.LocalConfigNames[0])
	if _, err := statFunc(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := writeFileFunc(path, []byte(config.GetTemplateConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration template: %s\n", path)
	return nil
}
