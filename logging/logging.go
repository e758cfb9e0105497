package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logFileName = "space-invasion.log"
	maxLogSize  = 10 * 1024 * 1024 // rotate beyond 10MB
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns the application logger and the file backing it
// Logging is disabled unless debug is set, the terminal owns stdout and stderr
// The returned closer is never nil
func Setup(debug bool, logsDir string) (zerolog.Logger, io.Closer, error) {
	if !debug {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logPath := filepath.Join(logsDir, logFileName)
	if err := rotate(logPath); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	log := zerolog.New(f).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
	log.Info().Str("path", logPath).Msg("logging started")
	return log, f, nil
}

// rotate renames an oversized log file with a timestamp suffix
func rotate(logPath string) error {
	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.Size() <= maxLogSize {
		return nil
	}

	ext := filepath.Ext(logPath)
	base := logPath[:len(logPath)-len(ext)]
	rotated := fmt.Sprintf("%s.%s%s", base, time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(logPath, rotated); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}
