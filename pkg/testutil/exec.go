package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ajxudir/wsbump/pkg/cmdexec"
)

// Call records one invocation seen by a FakeExecutor.
type Call struct {
	Command string
	Dir     string
	Env     map[string]string
}

// FakeExecutor answers commands from a script instead of running them.
// Commands without a scripted response fail as if the shell could not find
// them (exit status 127).
type FakeExecutor struct {
	mu        sync.Mutex
	responses map[string]*cmdexec.Result
	errs      map[string]error
	calls     []Call
}

// NewFakeExecutor returns an executor with no scripted commands.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		responses: make(map[string]*cmdexec.Result),
		errs:      make(map[string]error),
	}
}

// On scripts the result of command.
func (f *FakeExecutor) On(command string, exitCode int, stdout, stderr string) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[command] = &cmdexec.Result{Stdout: []byte(stdout), Stderr: []byte(stderr), ExitCode: exitCode}
	return f
}

// OnError makes command fail to run at all.
func (f *FakeExecutor) OnError(command string, err error) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[command] = err
	return f
}

// Execute implements cmdexec.ExecuteFunc.
func (f *FakeExecutor) Execute(ctx context.Context, command string, env map[string]string, dir string, _ int) (*cmdexec.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Command: command, Dir: dir, Env: env})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[command]; ok {
		return nil, err
	}
	if res, ok := f.responses[command]; ok {
		return res, nil
	}
	return &cmdexec.Result{
		Stderr:   []byte(fmt.Sprintf("sh: 1: %s: not found\n", command)),
		ExitCode: 127,
	}, nil
}

// Calls returns the commands executed so far.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Install swaps cmdexec.Execute for f until the test ends.
func (f *FakeExecutor) Install(t *testing.T) *FakeExecutor {
	t.Helper()
	orig := cmdexec.Execute
	cmdexec.Execute = f.Execute
	t.Cleanup(func() { cmdexec.Execute = orig })
	return f
}
