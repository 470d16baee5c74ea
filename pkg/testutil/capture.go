// Package testutil provides shared test helpers: diagnostic capture, yarn
// workspace fixtures on disk, and a scripted command executor.
package testutil

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/ajxudir/wsbump/pkg/verbose"
	"github.com/ajxudir/wsbump/pkg/warnings"
)

// RedirectDiagnostics sends warnings and verbose debug lines to w until the
// test ends. Verbose logging itself is left as it is; it is disabled again
// on cleanup.
func RedirectDiagnostics(t *testing.T, w io.Writer) {
	t.Helper()

	restore := warnings.SetWarningWriter(w)
	verbose.SetWriter(w)
	t.Cleanup(func() {
		restore()
		verbose.Disable()
		verbose.SetWriter(os.Stderr)
	})
}

// CaptureStderr runs fn with os.Stderr redirected and returns everything
// written to it, including warnings and verbose lines, which are routed to
// the same pipe while fn runs.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&buf, r)
	}()

	oldStderr := os.Stderr
	os.Stderr = w
	restore := warnings.SetWarningWriter(w)
	verbose.SetWriter(w)

	defer func() {
		restore()
		verbose.SetWriter(oldStderr)
		os.Stderr = oldStderr
	}()

	fn()

	_ = w.Close()
	wg.Wait()
	_ = r.Close()

	return buf.String()
}
