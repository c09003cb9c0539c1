// Package logging writes crewdesk's log files under .crewdesk/logs:
// a structured diagnostic log for debugging and a plain-text session
// journal the TUI tails into its side panel.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/crewdesk/crewdesk/internal/config"
)

// Logger appends structured lines to .crewdesk/logs/crewdesk.log so
// users can inspect failures after the terminal session is gone.
type Logger struct {
	zerolog.Logger

	file *os.File
}

// New creates (or reuses) the diagnostic log file for the current
// project directory.
func New(projectDir string) (*Logger, error) {
	logDir := filepath.Join(projectDir, config.CrewdeskDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "crewdesk.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	zl := zerolog.New(f).With().Timestamp().Logger()
	return &Logger{Logger: zl, file: f}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
