package logging

import (
	"context"
	"io"

	clog "github.com/charmbracelet/log"

	"github.com/revelare/toolbelt/internal/ports"
)

// CharmLogger mirrors log lines to the terminal through charmbracelet/log.
type CharmLogger struct {
	l *clog.Logger
}

// NewCharmLogger creates a terminal logger writing to w at level.
func NewCharmLogger(w io.Writer, level ports.Level) *CharmLogger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           toCharmLevel(level),
	})
	return &CharmLogger{l: l}
}

// Debug logs a debug message.
func (c *CharmLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	c.l.Debug(msg, keyvals(fields)...)
}

// Info logs an informational message.
func (c *CharmLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	c.l.Info(msg, keyvals(fields)...)
}

// Warn logs a warning message.
func (c *CharmLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	c.l.Warn(msg, keyvals(fields)...)
}

// Error logs an error message.
func (c *CharmLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	c.l.Error(msg, keyvals(fields)...)
}

// With returns a new logger with additional fields.
func (c *CharmLogger) With(fields ...ports.Field) ports.Logger {
	return &CharmLogger{l: c.l.With(keyvals(fields)...)}
}

// Level returns the minimum log level.
func (c *CharmLogger) Level() ports.Level {
	switch c.l.GetLevel() {
	case clog.DebugLevel:
		return ports.LevelDebug
	case clog.InfoLevel:
		return ports.LevelInfo
	case clog.WarnLevel:
		return ports.LevelWarn
	default:
		return ports.LevelError
	}
}

// SetLevel sets the minimum log level.
func (c *CharmLogger) SetLevel(level ports.Level) {
	c.l.SetLevel(toCharmLevel(level))
}

func toCharmLevel(level ports.Level) clog.Level {
	switch level {
	case ports.LevelDebug:
		return clog.DebugLevel
	case ports.LevelInfo:
		return clog.InfoLevel
	case ports.LevelWarn:
		return clog.WarnLevel
	default:
		return clog.ErrorLevel
	}
}

func keyvals(fields []ports.Field) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	kv := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}

// Ensure CharmLogger implements Logger.
var _ ports.Logger = (*CharmLogger)(nil)
