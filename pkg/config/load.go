// Package config loads wsbump configuration: the embedded defaults overlaid
// with an optional project file (.wsbump.yml, .wsbump.yaml or .wsbump.toml).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/wsbump/pkg/verbose"
)

// LocalConfigNames are the project config files looked up in the working
// directory, in order of precedence.
var LocalConfigNames = []string{".wsbump.yml", ".wsbump.yaml", ".wsbump.toml"}

// LoadConfig loads configuration from configPath, or from the first local
// config file found in workDir, or the built-in defaults.
//
// Keys present in the file replace the defaults; absent keys keep them.
//
// Parameters:
//   - configPath: Explicit config file, or empty to search workDir
//   - workDir: Workspace root
//
// Returns:
//   - *Config: The effective, validated configuration
//   - error: File unreadable, too large, malformed, or invalid
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" {
		path = findLocalConfig(workDir)
	}

	if path != "" {
		if err := overlayFile(cfg, path); err != nil {
			return nil, err
		}
		cfg.source = path
	}
	verbose.ConfigLoaded(cfg.Source())

	cfg.WorkingDir = workDir
	if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}

	if result := cfg.Validate(); result.HasErrors() {
		return nil, fmt.Errorf("%s: %s", cfg.Source(), result.ErrorMessages())
	}

	return cfg, nil
}

// findLocalConfig returns the first of LocalConfigNames present in workDir.
func findLocalConfig(workDir string) string {
	for _, name := range LocalConfigNames {
		candidate := filepath.Join(workDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// overlayFile decodes path on top of cfg, rejecting unknown keys.
func overlayFile(cfg *Config, path string) error {
	data, err := readConfigFile(path, DefaultMaxConfigFileSize)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		return decodeTOML(cfg, path, data)
	}
	return decodeYAML(cfg, path, data)
}

// readConfigFile reads path after checking it does not exceed maxSize bytes.
func readConfigFile(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}
	return os.ReadFile(path)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decodeYAML(cfg *Config, path string, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// A file holding only comments decodes to io.EOF.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}

func decodeTOML(cfg *Config, path string, data []byte) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("invalid TOML in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ValidateConfigFile checks a config file without loading it: the file must
// decode strictly and the resulting configuration must be valid.
//
// Parameters:
//   - path: Config file to check; .toml selects the TOML decoder
//
// Returns:
//   - *ValidationResult: Collected problems; empty when the file is valid
func ValidateConfigFile(path string) *ValidationResult {
	cfg := loadDefaultConfig()
	if err := overlayFile(cfg, path); err != nil {
		return &ValidationResult{Errors: []ValidationError{{Message: err.Error()}}}
	}
	return cfg.Validate()
}

// EffectiveYAML renders cfg as YAML, as printed by `config --show-effective`.
func EffectiveYAML(cfg *Config) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
