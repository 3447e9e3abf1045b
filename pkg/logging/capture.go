package logging

import (
	"strings"
	"sync"
)

// Capture keeps the last few formatted log lines in memory for the settings
// page status bar.
type Capture struct {
	mu    sync.RWMutex
	lines []string
	next  int
	full  bool
}

// Latest receives every INFO+ line of the server logger.
var Latest = NewCapture(50)

// NewCapture creates a capture holding up to size lines.
func NewCapture(size int) *Capture {
	if size < 1 {
		size = 1
	}
	return &Capture{lines: make([]string, size)}
}

// Write implements io.Writer. Each call is one slog record.
func (c *Capture) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines[c.next] = line
	c.next = (c.next + 1) % len(c.lines)
	if c.next == 0 {
		c.full = true
	}
	return len(p), nil
}

// Last returns the most recent line, or "" if nothing was written.
func (c *Capture) Last() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.full && c.next == 0 {
		return ""
	}
	return c.lines[(c.next-1+len(c.lines))%len(c.lines)]
}

// Lines returns the retained lines, oldest first.
func (c *Capture) Lines() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.full {
		return append([]string(nil), c.lines[:c.next]...)
	}
	out := make([]string, 0, len(c.lines))
	out = append(out, c.lines[c.next:]...)
	return append(out, c.lines[:c.next]...)
}
