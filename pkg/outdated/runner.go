package outdated

import (
	"context"

	"github.com/ajxudir/wsbump/pkg/cmdexec"
	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/verbose"
)

// Kind classifies how the outdated command ended.
type Kind int

const (
	// NoUpdatesFound means the command exited 0: nothing is outdated.
	NoUpdatesFound Kind = iota
	// ReportAvailable means the command exited non-zero with a table.
	ReportAvailable
	// InvocationFailed means no usable table was produced.
	InvocationFailed
)

// String returns the kind name used in debug output.
func (k Kind) String() string {
	switch k {
	case NoUpdatesFound:
		return "NoUpdatesFound"
	case ReportAvailable:
		return "ReportAvailable"
	case InvocationFailed:
		return "InvocationFailed"
	default:
		return "Unknown"
	}
}

// Report is the outcome of running the outdated command. Text is set only
// for ReportAvailable and Err only for InvocationFailed.
type Report struct {
	Kind Kind
	Text string
	Err  error
}

// Runner executes the outdated command.
type Runner struct {
	Command        string
	Header         string
	Env            map[string]string
	TimeoutSeconds int
	Exec           cmdexec.ExecuteFunc
}

// NewRunner creates a runner from the configuration. The command runner is
// read from cmdexec.Execute at construction time.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Command:        cfg.Commands.Outdated,
		Header:         cfg.Report.Header,
		Env:            cfg.Commands.Env,
		TimeoutSeconds: cfg.Commands.TimeoutSeconds,
		Exec:           cmdexec.Execute,
	}
}

// Run executes the outdated command in workDir and classifies the result.
//
// A zero exit is NoUpdatesFound. A non-zero exit is the command's way of
// announcing findings, and is ReportAvailable as long as a table header can
// be found on stdout or, failing that, on stderr. Everything else, including
// a missing binary (shell status 127), a timeout, or cancellation, is
// InvocationFailed with a CommandError cause.
func (r *Runner) Run(ctx context.Context, workDir string) Report {
	res, err := r.Exec(ctx, r.Command, r.Env, workDir, r.TimeoutSeconds)
	if err != nil {
		return r.failed(&errors.CommandError{Command: r.Command, ExitCode: -1, Err: err})
	}

	if res.Success() {
		verbose.Printf("Outdated report: %s", NoUpdatesFound)
		return Report{Kind: NoUpdatesFound}
	}

	for _, stream := range [][]byte{res.Stdout, res.Stderr} {
		text := string(stream)
		if HasHeader(text, r.Header) {
			verbose.Printf("Outdated report: %s (%d bytes)", ReportAvailable, len(text))
			return Report{Kind: ReportAvailable, Text: text}
		}
	}

	return r.failed(&errors.CommandError{Command: r.Command, ExitCode: res.ExitCode, Output: res.Diagnostic()})
}

func (r *Runner) failed(err error) Report {
	verbose.Printf("Outdated report: %s: %v", InvocationFailed, err)
	return Report{Kind: InvocationFailed, Err: err}
}
