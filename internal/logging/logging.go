// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Warn level).
	// Diagnostics go to stderr so they never mix with converted output.
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// TextMismatch logs a span whose stored text differs from the document
// text at its offsets. This is common noise in source corpora and is
// never fatal.
func TextMismatch(annType, docID string, start, end int, docText, annText string, args ...any) {
	allArgs := []any{
		"type", annType,
		"doc_id", docID,
		"start", start,
		"end", end,
		"document_text", docText,
		"annotation_text", annText,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Warn("text_mismatch", allArgs...)
}

// RecordSkipped logs a malformed record that was discarded by error
// recovery. Line indices are 1-based and cover the discarded span.
func RecordSkipped(source string, startLine, endLine int, err error, args ...any) {
	allArgs := []any{
		"source", source,
		"start_line", startLine,
		"end_line", endLine,
		"error", err.Error(),
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Warn("record_skipped", allArgs...)
}

// NotConverting logs an annotation the target format cannot represent.
func NotConverting(format, kind, docID string, args ...any) {
	allArgs := []any{
		"format", format,
		"annotation", kind,
		"doc_id", docID,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Warn("not_converting", allArgs...)
}

// Progress logs periodic progress through an input stream.
func Progress(source string, count int, args ...any) {
	allArgs := []any{
		"source", source,
		"processed", count,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("progress", allArgs...)
}

// RunCompleted logs the final counts for one conversion run.
func RunCompleted(source string, documents, failed int, args ...any) {
	allArgs := []any{
		"source", source,
		"documents", documents,
		"failed", failed,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("run_completed", allArgs...)
}
