// Package logging provides the ports.Logger sinks of a session: ConsoleLogger
// writes the install_debug_*.log file, CharmLogger mirrors warnings to the
// terminal, and MultiLogger fans out to both. NopLogger stands in when no
// sink is configured.
package logging

import (
	"context"

	"github.com/revelare/toolbelt/internal/ports"
)

// NopLogger drops every message. app.NewSession falls back to it when no
// session logger is given, which keeps library use and tests quiet.
// The level is stored only so that Level reports what SetLevel was given.
type NopLogger struct {
	level ports.Level
}

// NewNopLogger returns a NopLogger at info level.
func NewNopLogger() *NopLogger {
	return &NopLogger{level: ports.LevelInfo}
}

func (l *NopLogger) Debug(context.Context, string, ...ports.Field) {}
func (l *NopLogger) Info(context.Context, string, ...ports.Field)  {}
func (l *NopLogger) Warn(context.Context, string, ...ports.Field)  {}
func (l *NopLogger) Error(context.Context, string, ...ports.Field) {}

// With returns l; there is nowhere to attach the fields.
func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

func (l *NopLogger) Level() ports.Level { return l.level }

func (l *NopLogger) SetLevel(level ports.Level) { l.level = level }

var _ ports.Logger = (*NopLogger)(nil)
