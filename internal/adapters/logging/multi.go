package logging

import (
	"context"

	"github.com/revelare/toolbelt/internal/ports"
)

// MultiLogger sends every message to all of its sinks. Each sink applies its
// own level.
type MultiLogger struct {
	sinks []ports.Logger
}

// NewMultiLogger creates a logger fanning out to sinks. Nil sinks are ignored.
func NewMultiLogger(sinks ...ports.Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Debug logs a debug message.
func (m *MultiLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range m.sinks {
		s.Debug(ctx, msg, fields...)
	}
}

// Info logs an informational message.
func (m *MultiLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range m.sinks {
		s.Info(ctx, msg, fields...)
	}
}

// Warn logs a warning message.
func (m *MultiLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range m.sinks {
		s.Warn(ctx, msg, fields...)
	}
}

// Error logs an error message.
func (m *MultiLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range m.sinks {
		s.Error(ctx, msg, fields...)
	}
}

// With returns a MultiLogger whose sinks all carry fields.
func (m *MultiLogger) With(fields ...ports.Field) ports.Logger {
	out := &MultiLogger{sinks: make([]ports.Logger, len(m.sinks))}
	for i, s := range m.sinks {
		out.sinks[i] = s.With(fields...)
	}
	return out
}

// Level returns the most verbose level among the sinks.
func (m *MultiLogger) Level() ports.Level {
	level := ports.LevelError
	for _, s := range m.sinks {
		if l := s.Level(); l < level {
			level = l
		}
	}
	return level
}

// SetLevel sets level on every sink.
func (m *MultiLogger) SetLevel(level ports.Level) {
	for _, s := range m.sinks {
		s.SetLevel(level)
	}
}

// Ensure MultiLogger implements Logger.
var _ ports.Logger = (*MultiLogger)(nil)
