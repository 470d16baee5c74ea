package config

// Rewriter names accepted by update.rewriter.
const (
	RewriterText = "text"
	RewriterJSON = "json"
)

// Config is the root configuration structure.
type Config struct {
	// Manifest is the per-workspace manifest file name.
	Manifest string      `yaml:"manifest,omitempty" toml:"manifest,omitempty"`
	Commands CommandsCfg `yaml:"commands" toml:"commands"`
	Report   ReportCfg   `yaml:"report" toml:"report"`
	Update   UpdateCfg   `yaml:"update" toml:"update"`

	// WorkingDir is the workspace root. It is a runtime value set by the CLI
	// (--directory) and never read from a file.
	WorkingDir string `yaml:"-" toml:"-"`

	// source records where the configuration came from, for diagnostics.
	source string
}

// CommandsCfg holds the package manager commands wsbump shells out to.
type CommandsCfg struct {
	// Workspaces prints the workspace-info JSON.
	Workspaces string `yaml:"workspaces,omitempty" toml:"workspaces,omitempty"`
	// Outdated prints the outdated table and exits non-zero when it has rows.
	Outdated string `yaml:"outdated,omitempty" toml:"outdated,omitempty"`
	// Env is added to the environment of both commands.
	Env map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
	// TimeoutSeconds bounds each command; 0 disables the limit.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty"`
}

// ReportCfg describes the markers framing the outdated table body.
type ReportCfg struct {
	Header string `yaml:"header,omitempty" toml:"header,omitempty"`
	Footer string `yaml:"footer,omitempty" toml:"footer,omitempty"`
}

// UpdateCfg controls version selection and manifest rewriting.
type UpdateCfg struct {
	PreferLatest   bool     `yaml:"prefer_latest" toml:"prefer_latest"`
	AllOccurrences bool     `yaml:"all_occurrences" toml:"all_occurrences"`
	Rewriter       string   `yaml:"rewriter,omitempty" toml:"rewriter,omitempty"`
	Fields         []string `yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// Source returns a description of where the configuration was loaded from:
// a file path, or "built-in defaults".
func (c *Config) Source() string {
	if c.source == "" {
		return "built-in defaults"
	}
	return c.source
}

// DefaultMaxConfigFileSize caps configuration files at 1MB.
const DefaultMaxConfigFileSize = 1024 * 1024
