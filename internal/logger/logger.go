package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var (
	log     = logrus.New()
	logFile *os.File
)

const maxLogSize = 5 * 1024 * 1024 // 5MB

// Init points the logger at ~/.config/tandem/tandem.log. The terminal belongs
// to the TUI, so nothing may be written to stdout/stderr after startup.
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".config", "tandem")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "tandem.log")

	// Rotate by renaming to .old once the file grows past the limit
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		oldPath := logPath + ".old"
		os.Remove(oldPath)
		os.Rename(logPath, oldPath)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	logFile = file
	log.SetOutput(file)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(logrus.InfoLevel)
	return nil
}

// Close closes the log file.
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	log.SetOutput(io.Discard)
}

// Disable silences the logger (useful for tests).
func Disable() {
	log.SetOutput(io.Discard)
}

// WithField returns an entry carrying one structured field.
func WithField(key string, value any) *logrus.Entry {
	return log.WithField(key, value)
}

func Info(format string, args ...any) {
	log.Infof(format, args...)
}

func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

func Error(format string, args ...any) {
	log.Errorf(format, args...)
}
