// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup creates a text logger writing to logFile and installs it as the
// default. logFile may be "stdout", "stderr" or a path opened for append.
// Console output omits the time key. The returned closer releases the log
// file; it is a no-op for console output.
func Setup(logLevel string, logFile string) (*slog.Logger, io.Closer, error) {
	handlerOptions := &slog.HandlerOptions{Level: getLogLevel(logLevel)}

	var (
		logWriter io.Writer
		closer    io.Closer = nopCloser{}
	)
	switch strings.ToLower(logFile) {
	case "", "stderr":
		logWriter = os.Stderr
	case "stdout":
		logWriter = os.Stdout
	default:
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logWriter = f
		closer = f
	}

	if logWriter == os.Stdout || logWriter == os.Stderr {
		handlerOptions.ReplaceAttr = func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		}
	}

	logger := slog.New(slog.NewTextHandler(logWriter, handlerOptions))
	slog.SetDefault(logger)
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func getLogLevel(logLevel string) slog.Level {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return level
}
