package logging

import (
	"context"
	"fmt"
	"log/slog"
)

// Wrap exposes l as a *slog.Logger. Records below the level of l are
// dropped.
func Wrap(l Log) *slog.Logger {
	if h, ok := l.(*levelLogger); ok {
		return slog.New(h)
	}
	return slog.Default()
}

// Enabled reports whether the handler handles records at the given level.
func (ll *levelLogger) Enabled(_ context.Context, level slog.Level) bool {
	return ll.LogEnabled(fromSlogLevel(level))
}

// Handle writes the message followed by key=value pairs of the record's
// attributes.
func (ll *levelLogger) Handle(_ context.Context, r slog.Record) error {
	args := []any{r.Message}
	r.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			args = append(args, fmt.Sprintf("%v=%v", a.Key, a.Value))
		}
		return true
	})
	ll._log(fromSlogLevel(r.Level), args)
	return nil
}

func (ll *levelLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	ret := *ll
	ret.attrs = append(append([]slog.Attr{}, ll.attrs...), attrs...)
	return &ret
}

// WithGroup names the returned handler after the group, so that groups
// show up as sub loggers.
func (ll *levelLogger) WithGroup(name string) slog.Handler {
	if name == "" {
		return ll
	}
	ret := *ll
	ret.name = ll.name + "." + name
	return &ret
}

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelDebug:
		return LevelTrace
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}
