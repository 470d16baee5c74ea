// Package warnings routes non-fatal diagnostics to a swappable writer.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
)

// Warnf formats and writes a warning. The caller supplies any trailing newline.
func Warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(WarningWriter(), format, args...)
}

// WarningWriter returns the writer warnings currently go to.
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter installs w as the warning destination and returns a
// function restoring the previous one. A nil w selects os.Stderr.
//
// Parameters:
//   - w: New destination, or nil for stderr
//
// Returns:
//   - func(): Restores the writer that was active before the call
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	warnWriter = w
	if w == nil {
		warnWriter = os.Stderr
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
