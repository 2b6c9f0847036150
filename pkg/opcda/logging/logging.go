package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logger defines the small structured-logging surface used by the opcda
// wrapper. The interface is intentionally tiny so applications can provide
// their own sink; arguments alternate key/value like log/slog.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

// New returns a Logger backed by the provided zerolog.Logger.
func New(l zerolog.Logger) Logger {
	return &zlog{l: l}
}

// Nop returns a Logger that discards everything. It is the library default
// so the wrapper stays silent unless a caller opts in.
func Nop() Logger {
	return &zlog{l: zerolog.Nop()}
}

type zlog struct {
	l zerolog.Logger
}

func (z *zlog) Debug(msg string, kv ...any) { emit(z.l.Debug(), msg, kv) }
func (z *zlog) Info(msg string, kv ...any)  { emit(z.l.Info(), msg, kv) }
func (z *zlog) Warn(msg string, kv ...any)  { emit(z.l.Warn(), msg, kv) }
func (z *zlog) Error(msg string, kv ...any) { emit(z.l.Error(), msg, kv) }

func (z *zlog) With(kv ...any) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(kv); i += 2 {
		ctx = ctx.Interface(key(kv[i]), kv[i+1])
	}
	return &zlog{l: ctx.Logger()}
}

func emit(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.Interface(key(kv[i]), kv[i+1])
	}
	e.Msg(msg)
}

func key(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
