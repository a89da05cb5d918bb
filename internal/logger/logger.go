package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a small slog wrapper that carries the package, file and function
// the message originates from.
type Logger struct {
	log      *slog.Logger
	pkg      string
	file     string
	function string
}

// Init installs the process-wide handler. Level is one of debug, info, warn,
// error; anything else falls back to info.
func Init(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	slog.SetDefault(slog.New(handler))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(pkg string) Logger {
	return Logger{pkg: pkg}
}

// NewWithHandler is used by tests that want to capture output.
func NewWithHandler(pkg string, handler slog.Handler) Logger {
	return Logger{pkg: pkg, log: slog.New(handler)}
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

func (l Logger) Function(function string) Logger {
	l.function = function
	return l
}

func (l Logger) logger() *slog.Logger {
	base := l.log
	if base == nil {
		base = slog.Default()
	}

	attrs := []any{"package", l.pkg}
	if l.file != "" {
		attrs = append(attrs, "file", l.file)
	}
	if l.function != "" {
		attrs = append(attrs, "function", l.function)
	}
	return base.With(attrs...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger().Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, args...)
}

// Er logs err without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger().Error(msg, append([]any{"error", err}, args...)...)
}

// Err logs err and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	if err == nil {
		return errors.New(msg)
	}
	return &wrappedError{msg: msg, err: err}
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.logger().Error(msg, args...)
	return errors.New(msg)
}

func (l Logger) ErMsg(msg string) {
	l.logger().Error(msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
