package install

import (
	"context"

	"github.com/revelare/toolbelt/internal/ports"
)

// loggerFor returns l, the logger carried by ctx, or a logger that drops everything.
func loggerFor(ctx context.Context, l ports.Logger) ports.Logger {
	if l != nil {
		return l
	}
	if fromCtx := ports.LoggerFromContext(ctx); fromCtx != nil {
		return fromCtx
	}
	return discard{}
}

type discard struct{}

func (discard) Debug(context.Context, string, ...ports.Field) {}
func (discard) Info(context.Context, string, ...ports.Field)  {}
func (discard) Warn(context.Context, string, ...ports.Field)  {}
func (discard) Error(context.Context, string, ...ports.Field) {}
func (d discard) With(...ports.Field) ports.Logger             { return d }
func (discard) Level() ports.Level                             { return ports.LevelError }
func (discard) SetLevel(ports.Level)                           {}
