package cmd

import (
	"fmt"
	"os"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/output"
	"github.com/ajxudir/wsbump/pkg/warnings"
)

// Testable function variables
var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	statFunc       = os.Stat
)

// loadRunConfig loads the configuration for the directory named by
// --directory. Any problem is a configuration error (exit code 3).
func loadRunConfig() (*config.Config, error) {
	workDir := directoryFlag
	if workDir == "" {
		workDir = "."
	}

	info, err := statFunc(workDir)
	if err != nil {
		return nil, errors.NewExitErrorf(errors.ExitConfigError, "working directory %s: %v", workDir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewExitErrorf(errors.ExitConfigError, "working directory %s is not a directory", workDir)
	}

	cfg, err := loadConfigFunc(configFlag, workDir)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}
	return cfg, nil
}

// parseOutputFlag validates --output.
func parseOutputFlag() (output.Format, error) {
	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		return "", errors.NewExitError(errors.ExitConfigError, err)
	}
	return format, nil
}

// collectWarnings routes warnings into a collector while structured output
// is being produced, so they end up in the document instead of interleaving
// with it. For table output warnings keep going to stderr.
func collectWarnings(format output.Format) (*warnings.Collector, func()) {
	if !output.IsStructuredFormat(format) {
		return nil, func() {}
	}
	collector := &warnings.Collector{}
	return collector, warnings.SetWarningWriter(collector)
}

func collectedMessages(c *warnings.Collector) []string {
	if c == nil {
		return nil
	}
	return c.Messages()
}
