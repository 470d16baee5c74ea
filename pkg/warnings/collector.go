package warnings

import (
	"strings"
	"sync"
)

// Collector is an io.Writer that keeps each non-empty line written to it.
// Install it with SetWarningWriter to gather warnings for JSON or CSV output
// instead of printing them.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// Write implements io.Writer. It never fails.
func (c *Collector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			c.messages = append(c.messages, trimmed)
		}
	}
	return len(p), nil
}

// Messages returns a copy of the collected lines.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]string, len(c.messages))
	copy(copied, c.messages)
	return copied
}
