// Package cmdexec runs the package manager commands wsbump depends on.
//
// Commands run through the user's shell so that aliases, version managers
// (nvm, volta, corepack shims) and PATH tweaks from shell profiles apply.
// A command that runs to completion is never an error here, whatever its exit
// status: "yarn outdated" exits non-zero precisely when it has something to
// report, so interpreting the status is left to the caller.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ajxudir/wsbump/pkg/verbose"
	"github.com/ajxudir/wsbump/pkg/warnings"
)

// Result holds everything a finished command produced.
//
// Fields:
//   - Stdout: Captured standard output
//   - Stderr: Captured standard error
//   - ExitCode: Process exit status (0 on success)
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status 0.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Diagnostic returns the trimmed stderr, falling back to stdout when stderr is empty.
func (r *Result) Diagnostic() string {
	if r == nil {
		return ""
	}
	if msg := strings.TrimSpace(string(r.Stderr)); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(r.Stdout))
}

// ExecuteFunc is the function signature for command execution.
//
// Parameters:
//   - ctx: Cancels the command when done
//   - command: Command line handed to the shell
//   - env: Extra environment variables; values may reference $VARS
//   - dir: Working directory, empty for the current one
//   - timeoutSeconds: Kill the command after this many seconds, 0 for no limit
//
// Returns:
//   - *Result: Output and exit status of a command that ran to completion
//   - error: The command could not be started, timed out, or was cancelled
type ExecuteFunc func(ctx context.Context, command string, env map[string]string, dir string, timeoutSeconds int) (*Result, error)

// waitDelay bounds how long Run waits for the output pipes to close after
// the process group was killed.
const waitDelay = 2 * time.Second

// Execute is the command runner used throughout wsbump. Tests replace it
// with a fake to avoid depending on an installed package manager.
var Execute ExecuteFunc = executeCommand

// getShell returns the user's shell and the args to run a command string.
//
// SHELL is honored on Unix so that profile configuration is loaded with -l.
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l", "-c"}
	}
	return getDefaultShell()
}

// buildEnviron appends env to the current process environment, expanding
// $VAR references in the values.
func buildEnviron(env map[string]string) []string {
	environ := os.Environ()
	for key, value := range env {
		environ = append(environ, fmt.Sprintf("%s=%s", key, os.ExpandEnv(value)))
	}
	return environ
}

// executeCommand runs command through the user's shell in its own process
// group, so that a timeout can kill yarn together with the node children it
// spawned.
func executeCommand(ctx context.Context, command string, env map[string]string, dir string, timeoutSeconds int) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("empty command")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	shell, shellArgs := getShell()
	args := append(append([]string{}, shellArgs...), command)

	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Env = buildEnviron(env)
	if dir != "" {
		cmd.Dir = dir
	}
	setProcGroup(cmd)
	// Kill the whole group as soon as ctx is done. A grandchild holding the
	// output pipes would otherwise keep Run blocked until it exits.
	cmd.Cancel = func() error { return killProcGroup(cmd) }
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	verbose.CommandExec(command, dir)
	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if killErr := killProcGroup(cmd); killErr != nil {
			verbose.Printf("Unable to kill process group for %q: %v", command, killErr)
		}
		if errors.Is(ctxErr, context.DeadlineExceeded) && timeoutSeconds > 0 {
			warnings.Warnf("command timed out after %d seconds: %s\n", timeoutSeconds, command)
			return nil, fmt.Errorf("command timed out after %d seconds: %w", timeoutSeconds, ctxErr)
		}
		return nil, ctxErr
	}

	result := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("failed to start %q: %w", shell, runErr)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	verbose.CommandResult(command, result.ExitCode, result.Diagnostic())
	return result, nil
}
