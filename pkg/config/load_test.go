package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadConfigDefaults tests the built-in configuration.
//
// It verifies:
//   - yarn v1 commands and markers are the defaults
//   - The text rewriter with first-occurrence replacement is the default
//   - The working directory is recorded
func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, "package.json", cfg.Manifest)
	assert.Equal(t, "yarn -s workspaces info", cfg.Commands.Workspaces)
	assert.Equal(t, "yarn outdated", cfg.Commands.Outdated)
	assert.Equal(t, 0, cfg.Commands.TimeoutSeconds)
	assert.Equal(t, "Package", cfg.Report.Header)
	assert.Equal(t, "Done", cfg.Report.Footer)
	assert.False(t, cfg.Update.PreferLatest)
	assert.False(t, cfg.Update.AllOccurrences)
	assert.Equal(t, RewriterText, cfg.Update.Rewriter)
	assert.Contains(t, cfg.Update.Fields, "devDependencies")
	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, "built-in defaults", cfg.Source())
}

// TestLoadConfigEmptyWorkDir tests the "." fallback.
func TestLoadConfigEmptyWorkDir(t *testing.T) {
	cfg, err := LoadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.WorkingDir)
}

// TestLoadConfigLocalYAML tests overlaying .wsbump.yml on the defaults.
//
// It verifies:
//   - Keys present in the file win
//   - Keys absent from the file keep their defaults
func TestLoadConfigLocalYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".wsbump.yml", `
commands:
  outdated: yarn outdated --json-less
  timeout_seconds: 30
  env:
    CI: "1"
update:
  prefer_latest: true
`)

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, "yarn outdated --json-less", cfg.Commands.Outdated)
	assert.Equal(t, "yarn -s workspaces info", cfg.Commands.Workspaces)
	assert.Equal(t, 30, cfg.Commands.TimeoutSeconds)
	assert.Equal(t, map[string]string{"CI": "1"}, cfg.Commands.Env)
	assert.True(t, cfg.Update.PreferLatest)
	assert.Equal(t, RewriterText, cfg.Update.Rewriter)
	assert.Equal(t, path, cfg.Source())
}

// TestLoadConfigTOML tests the TOML project file.
func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".wsbump.toml", `
manifest = "package.json"

[commands]
outdated = "npx yarn outdated"

[update]
rewriter = "json"
all_occurrences = true
fields = ["dependencies"]
`)

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, "npx yarn outdated", cfg.Commands.Outdated)
	assert.Equal(t, RewriterJSON, cfg.Update.Rewriter)
	assert.True(t, cfg.Update.AllOccurrences)
	assert.Equal(t, []string{"dependencies"}, cfg.Update.Fields)
}

// TestLoadConfigPrecedence tests that .wsbump.yml wins over .wsbump.toml.
func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".wsbump.yml", "commands:\n  outdated: from-yaml\n")
	writeFile(t, dir, ".wsbump.toml", "[commands]\noutdated = \"from-toml\"\n")

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Commands.Outdated)
}

// TestLoadConfigExplicitPath tests --config taking precedence over local files.
func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".wsbump.yml", "commands:\n  outdated: local\n")
	explicit := writeFile(t, t.TempDir(), "custom.yaml", "commands:\n  outdated: explicit\n")

	cfg, err := LoadConfig(explicit, dir)
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Commands.Outdated)
}

// TestLoadConfigErrors tests rejection of bad configuration files.
func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{name: "unknown yaml key", file: ".wsbump.yml", content: "comands:\n  outdated: x\n", errPart: "comands"},
		{name: "malformed yaml", file: ".wsbump.yml", content: "commands: [\n", errPart: "invalid YAML"},
		{name: "unknown toml key", file: ".wsbump.toml", content: "[update]\nrewrite = \"json\"\n", errPart: "update.rewrite"},
		{name: "malformed toml", file: ".wsbump.toml", content: "[update\n", errPart: "invalid TOML"},
		{name: "bad rewriter", file: ".wsbump.yml", content: "update:\n  rewriter: ast\n", errPart: "update.rewriter"},
		{name: "negative timeout", file: ".wsbump.yml", content: "commands:\n  timeout_seconds: -1\n", errPart: "timeout_seconds"},
		{name: "manifest path", file: ".wsbump.yml", content: "manifest: sub/package.json\n", errPart: "manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, err := LoadConfig("", dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

// TestLoadConfigMissingExplicit tests a --config path that does not exist.
func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadConfigCommentsOnly tests that the commented template is a valid no-op.
func TestLoadConfigCommentsOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".wsbump.yml", GetTemplateConfig())

	cfg, err := LoadConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, "yarn outdated", cfg.Commands.Outdated)
}

// TestReadConfigFileTooLarge tests the size guard.
func TestReadConfigFileTooLarge(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.yml", strings.Repeat("#", 64))
	_, err := readConfigFile(path, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

// TestValidateConfigFile tests standalone validation.
func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yml", "update:\n  prefer_latest: true\n")
	bad := writeFile(t, dir, "bad.yml", "update:\n  rewriter: nope\n")

	assert.False(t, ValidateConfigFile(good).HasErrors())

	result := ValidateConfigFile(bad)
	require.True(t, result.HasErrors())
	assert.Contains(t, result.ErrorMessages(), "update.rewriter")
}

// TestEffectiveYAML tests that the rendered config round-trips through the loader.
func TestEffectiveYAML(t *testing.T) {
	cfg, err := LoadConfig("", t.TempDir())
	require.NoError(t, err)
	cfg.Commands.TimeoutSeconds = 12

	out, err := EffectiveYAML(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "timeout_seconds: 12")
	assert.NotContains(t, out, "workingdir")

	dir := t.TempDir()
	writeFile(t, dir, ".wsbump.yml", out)
	reloaded, err := LoadConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, 12, reloaded.Commands.TimeoutSeconds)
}

// TestGetDefaultConfig tests the embedded YAML accessors.
func TestGetDefaultConfig(t *testing.T) {
	assert.Contains(t, GetDefaultConfig(), "yarn outdated")
	assert.Contains(t, GetTemplateConfig(), "prefer_latest")
}

// TestDefault tests that Default returns independent copies.
func TestDefault(t *testing.T) {
	a := Default()
	b := Default()

	assert.Equal(t, ".", a.WorkingDir)
	assert.Equal(t, "built-in defaults", a.Source())
	assert.False(t, a.Validate().HasErrors())

	a.Update.Fields[0] = "changed"
	assert.Equal(t, "dependencies", b.Update.Fields[0])
}
