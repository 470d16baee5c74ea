// Package verbose provides opt-in debug logging for wsbump.
//
// Messages are written with a [DEBUG] prefix to stderr (or the writer set
// with SetWriter) only after Enable has been called, which the CLI does when
// --verbose is passed.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on debug logging.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off debug logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled reports whether debug logging is on.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter redirects debug output. A nil writer is ignored.
//
// Parameters:
//   - w: Destination for subsequent [DEBUG] lines
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// output returns the active writer, or nil when logging is disabled.
func output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return writer
}

// Printf prints a formatted [DEBUG] line when logging is enabled.
//
// A trailing newline is always appended, so format strings should not end
// with one.
func Printf(format string, args ...any) {
	if w := output(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] "+strings.TrimSuffix(format, "\n")+"\n", args...)
	}
}

// Info prints msg as a [DEBUG] line when logging is enabled.
func Info(msg string) {
	if w := output(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", msg)
	}
}

// Infof is an alias of Printf kept for call sites that log informational steps.
func Infof(format string, args ...any) {
	Printf(format, args...)
}

// CommandExec logs an external command before it runs.
//
// Parameters:
//   - cmd: Command line handed to the shell
//   - workDir: Directory the command runs in
func CommandExec(cmd, workDir string) {
	w := output()
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
	_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
}

// CommandResult logs how an external command finished and a short excerpt of
// what it printed. Output longer than five lines is cut to its first three.
//
// Parameters:
//   - cmd: Command line that was run
//   - exitCode: Process exit status
//   - out: Captured output to excerpt, may be empty
func CommandResult(cmd string, exitCode int, out string) {
	w := output()
	if w == nil {
		return
	}
	if exitCode == 0 {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command exited 0: %s\n", truncate(cmd, 60))
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command exited %d: %s\n", exitCode, truncate(cmd, 60))
	}

	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return
	}
	lines := strings.Split(trimmed, "\n")
	shown := lines
	if len(lines) > 5 {
		shown = lines[:3]
	}
	for _, line := range shown {
		_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
	}
	if len(shown) < len(lines) {
		_, _ = fmt.Fprintf(w, "        | ... (%d more lines)\n", len(lines)-len(shown))
	}
}

// ConfigLoaded logs the configuration source in use.
func ConfigLoaded(source string) {
	Printf("Config loaded: %s", source)
}

// RowSkipped logs why an outdated row was left out of the update set.
func RowSkipped(dependency, workspace, reason string) {
	Printf("Skipping %s (%s): %s", dependency, workspace, reason)
}

// VersionSelected logs the version decided for a dependency.
//
// Parameters:
//   - dependency: Dependency name
//   - current: Installed version from the report
//   - target: Version that will be written
//   - reason: Which column the target came from and why
func VersionSelected(dependency, current, target, reason string) {
	Printf("Version selected for '%s': %s -> %s (%s)", dependency, current, target, reason)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
