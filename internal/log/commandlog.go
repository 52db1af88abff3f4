package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// CommandLogger writes one line per command crossing the tank link.
type CommandLogger interface {
	Log(in bool, line string)
}

type commandLogger struct {
	w   io.Writer
	now func() time.Time
	mu  sync.Mutex
}

// NewCommandLogger returns a CommandLogger writing to w. A nil w discards.
func NewCommandLogger(w io.Writer) CommandLogger {
	return &commandLogger{w: w, now: time.Now}
}

// OpenCommandLog opens path for appending and returns a logger over it.
func OpenCommandLog(path string) (CommandLogger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open command log: %w", err)
	}
	return NewCommandLogger(f), f, nil
}

// Log emits "<timestamp> <dir> <command>". in=true is tank to panel,
// in=false is panel to tank.
func (c *commandLogger) Log(in bool, line string) {
	if c.w == nil {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	dir := "->"
	if in {
		dir = "<-"
	}
	out := fmt.Sprintf("%s %s %s\n", c.now().Format("2006/01/02 15:04:05.000"), dir, line)

	c.mu.Lock()
	_, _ = io.WriteString(c.w, out)
	c.mu.Unlock()
}
