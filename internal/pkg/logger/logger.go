package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
)

// SlogLogger implements ports.Logger on top of log/slog.
type SlogLogger struct {
	l *slog.Logger
}

// New writes text records to w. Verbose lowers the level to debug; otherwise
// only warnings and errors are emitted.
func New(w io.Writer, verbose bool) *SlogLogger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{l: slog.New(h)}
}

// NewStd creates a logger on stderr.
func NewStd(verbose bool) *SlogLogger {
	return New(os.Stderr, verbose)
}

// Discard drops every record.
func Discard() *SlogLogger {
	return New(io.Discard, false)
}

func (s *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	s.l.Debug(msg, attrs(fields)...)
}

func (s *SlogLogger) Info(msg string, fields map[string]interface{}) {
	s.l.Info(msg, attrs(fields)...)
}

func (s *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	s.l.Warn(msg, attrs(fields)...)
}

func (s *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append([]any{"error", err}, args...)
	}
	s.l.Error(msg, args...)
}

// attrs flattens fields into key-value pairs in key order so output is stable.
func attrs(fields map[string]interface{}) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
