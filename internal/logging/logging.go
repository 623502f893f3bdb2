// Package logging configures the application logger. The TUI owns the
// terminal, so logs go to a file under the data directory instead of
// stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Setup directs the default logger to remind.log inside dataDir and
// returns a closer for the file. On failure the logger is silenced and
// the application carries on; logging is never fatal.
func Setup(dataDir string) (io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, "remind.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	log.SetOutput(f)
	log.SetReportTimestamp(true)
	if os.Getenv("REMIND_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	return f, nil
}
