// Package logging provides the zerolog-backed avatax.Logger used by the
// client and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/rs/zerolog"
)

// Logger implements avatax.Logger on zerolog.
type Logger struct {
	logger zerolog.Logger
}

// New creates a JSON logger writing to w. Debug records are dropped unless
// debug is set.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{
		logger: zerolog.New(w).Level(level(debug)).With().
			Timestamp().
			Str("component", constants.DefaultAppName).
			Logger(),
	}
}

// NewConsole creates a human readable logger for terminals.
func NewConsole(w io.Writer, debug bool) *Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}

	return &Logger{
		logger: zerolog.New(output).Level(level(debug)).With().Timestamp().Logger(),
	}
}

// Nop creates a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}

	return zerolog.InfoLevel
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

// OpenDebugSink opens path for appending debug records, creating it with
// owner-only permissions when missing.
func OpenDebugSink(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.ConfigFilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}

	return file, nil
}
