package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	closer io.Closer
}

// Options configures a Logger built with New
type Options struct {
	// Verbose enables DEBUG level and source locations
	Verbose bool
	// Writer receives console output; defaults to os.Stderr
	Writer io.Writer
	// File, when set, additionally writes plain records to a rotating log file
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// DEBUG=1 enables debug output regardless of Options.Verbose
var isDebug = os.Getenv("DEBUG")

// New creates a Logger from opts. The console handler is coloured only when
// the writer is a terminal.
func New(opts Options) (*Logger, error) {
	level := slog.LevelInfo
	if opts.Verbose || isDebug == "1" {
		level = slog.LevelDebug
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	console := NewHandler(w, handlerOpts)
	console.color = isTerminal(w)

	if opts.File == "" {
		return &Logger{Logger: slog.New(console)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	rotating := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	}
	file := NewHandler(rotating, handlerOpts)
	return &Logger{
		Logger: slog.New(fanout{console, file}),
		closer: rotating,
	}, nil
}

// Discard returns a Logger that drops every record
func Discard() *Logger {
	return &Logger{Logger: slog.New(NewHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// withError enhances log attributes with error details if present
func withError(err error, attrs []slog.Attr) []slog.Attr {

	if err == nil {
		return attrs
	}

	return append(attrs, slog.String("error", err.Error()))
}

// Info logs a message at INFO level without context
func (l *Logger) Info(msg string, attrs ...slog.Attr) {
	l.Logger.Info(msg, slog.Any("data", attrs))
}

// InfoContext logs a message at INFO level with context
func (l *Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Logger.InfoContext(ctx, msg, slog.Any("data", attrs))
}

// Warn logs a message at WARN level without context
func (l *Logger) Warn(msg string, attrs ...slog.Attr) {
	l.Logger.Warn(msg, slog.Any("data", attrs))
}

// Error logs a message at ERROR level with error details without context
func (l *Logger) Error(msg string, err error, attrs ...slog.Attr) {
	l.Logger.Error(msg, slog.Any("data", withError(err, attrs)))
}

// ErrorContext logs a message at ERROR level with error details and context
func (l *Logger) ErrorContext(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	l.Logger.ErrorContext(ctx, msg, slog.Any("data", withError(err, attrs)))
}

// Debug logs a message at DEBUG level without context
func (l *Logger) Debug(msg string, attrs ...slog.Attr) {
	l.Logger.Debug(msg, slog.Any("data", attrs))
}

// DebugContext logs a message at DEBUG level with context
func (l *Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Logger.DebugContext(ctx, msg, slog.Any("data", attrs))
}

// With creates a new Logger with the given attributes that will be included in all log messages
func (l *Logger) With(attrs ...slog.Attr) *Logger {
	return &Logger{Logger: l.Logger.With(slog.Any("context", attrs)), closer: l.closer}
}
