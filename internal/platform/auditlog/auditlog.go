package auditlog

import (
	"fmt"
	"os"
	"time"
)

// TimestampLayout is the fixed audit timestamp format:
// Year-AbbreviatedMonth-Day-Hour:Minute:Second.
const TimestampLayout = "2006-Jan-02-15:04:05"

// Logger appends pipeline milestones to a plain text file, one line per
// milestone. The file is never truncated or rotated; it grows across runs.
type Logger struct {
	path string
	now  func() time.Time
}

// New creates a Logger appending to the file at path.
func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// Log appends one "<timestamp> : <message>" line.
func (l *Logger) Log(message string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log %s: %w", l.path, err)
	}

	_, werr := fmt.Fprintf(f, "%s : %s\n", l.now().Format(TimestampLayout), message)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("failed to append to audit log %s: %w", l.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("failed to close audit log %s: %w", l.path, cerr)
	}
	return nil
}
