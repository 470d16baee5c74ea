package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// loadDefaultConfig parses the embedded default.yml.
//
// The embedded file is part of the binary, so a parse failure is a build
// defect; it panics rather than running with a half-filled config.
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic("config: embedded default.yml is invalid: " + err.Error())
	}
	return &cfg
}

// Default returns a fresh copy of the built-in configuration with WorkingDir
// set to ".".
func Default() *Config {
	cfg := loadDefaultConfig()
	cfg.WorkingDir = "."
	return cfg
}

// GetDefaultConfig returns the embedded default configuration YAML.
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns the commented starter file written by `config --init`.
func GetTemplateConfig() string {
	return templateConfigYAML
}
