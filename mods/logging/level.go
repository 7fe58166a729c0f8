package logging

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/machbase/neo-noise/mods/util/glob"
	gometrics "github.com/rcrowley/go-metrics"
)

type Level int

// UnmarshalText accepts the level names, so a Level can be read from
// yaml or flags.
func (lvl *Level) UnmarshalText(b []byte) error {
	*lvl = ParseLogLevel(string(b))
	return nil
}

const (
	LevelAll Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var logLevelNames = []string{"ALL", "TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

func ParseLogLevel(name string) Level {
	lvl, _ := ParseLogLevelP(name)
	return lvl
}

// ParseLogLevelP reports false for unknown names and for NONE, which
// still maps to a level above ERROR.
func ParseLogLevelP(name string) (Level, bool) {
	switch strings.ToUpper(name) {
	default:
		return LevelAll, false
	case "TRACE":
		return LevelTrace, true
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "NONE":
		return LevelError + 1, false
	}
}

func LogLevelName(level Level) string {
	if level >= 0 && int(level) < len(logLevelNames) {
		return logLevelNames[level]
	}
	return "UNKNOWN"
}

type Log interface {
	io.Writer

	TraceEnabled() bool
	Tracef(format string, args ...any)
	DebugEnabled() bool
	Debug(...any)
	Debugf(format string, args ...any)
	InfoEnabled() bool
	Info(...any)
	Infof(format string, args ...any)
	WarnEnabled() bool
	Warn(...any)
	Warnf(format string, args ...any)
	ErrorEnabled() bool
	Error(...any)
	Errorf(format string, args ...any)

	LogEnabled(level Level) bool
	Logf(level Level, format string, args ...any)

	SetLevel(level Level)
	Level() Level
}

type levelLogger struct {
	name        string
	level       Level
	underlying  []*logWriter
	prefixWidth int
	// slog compat
	attrs []slog.Attr
}

func (l *levelLogger) SetLevel(level Level) { l.level = level }
func (l *levelLogger) Level() Level         { return l.level }

func (l *levelLogger) TraceEnabled() bool { return l.level <= LevelTrace }
func (l *levelLogger) DebugEnabled() bool { return l.level <= LevelDebug }
func (l *levelLogger) InfoEnabled() bool  { return l.level <= LevelInfo }
func (l *levelLogger) WarnEnabled() bool  { return l.level <= LevelWarn }
func (l *levelLogger) ErrorEnabled() bool { return l.level <= LevelError }

func (l *levelLogger) LogEnabled(lvl Level) bool { return l.level <= lvl }

func (l *levelLogger) Debug(m ...any) { l._log(LevelDebug, m) }
func (l *levelLogger) Info(m ...any)  { l._log(LevelInfo, m) }
func (l *levelLogger) Warn(m ...any)  { l._log(LevelWarn, m) }
func (l *levelLogger) Error(m ...any) { l._log(LevelError, m) }

func (l *levelLogger) Tracef(format string, args ...any)          { l._logf(LevelTrace, format, args) }
func (l *levelLogger) Debugf(format string, args ...any)          { l._logf(LevelDebug, format, args) }
func (l *levelLogger) Infof(format string, args ...any)           { l._logf(LevelInfo, format, args) }
func (l *levelLogger) Warnf(format string, args ...any)           { l._logf(LevelWarn, format, args) }
func (l *levelLogger) Errorf(format string, args ...any)          { l._logf(LevelError, format, args) }
func (l *levelLogger) Logf(lvl Level, format string, args ...any) { l._logf(lvl, format, args) }

// Write passes raw bytes through to every output, for use as the
// output of another logger.
func (l *levelLogger) Write(buff []byte) (n int, err error) {
	for _, w := range l.underlying {
		n, err = w.Write(buff)
	}
	return
}

const (
	yellow = "\033[90;43m"
	red    = "\033[97;41m"
	reset  = "\033[0m"
)

var (
	warnCounter  gometrics.Counter
	errorCounter gometrics.Counter
	totalCounter gometrics.Counter
)

func init() {
	totalCounter = gometrics.NewRegisteredCounter("log.total", gometrics.DefaultRegistry)
	warnCounter = gometrics.NewRegisteredCounter("log.warns", gometrics.DefaultRegistry)
	errorCounter = gometrics.NewRegisteredCounter("log.errors", gometrics.DefaultRegistry)
}

// Counts reports how many lines were written in total and how many of
// them were warnings and errors.
func Counts() (total, warns, errors int64) {
	return totalCounter.Count(), warnCounter.Count(), errorCounter.Count()
}

var (
	levelMutex         sync.RWMutex
	levelConfig        = make(map[string]Level)
	levelDefault       = LevelWarn
	prefixWidthDefault = 12
)

func SetDefaultLevel(lvl Level) {
	levelMutex.Lock()
	levelDefault = lvl
	levelMutex.Unlock()
}

func DefaultLevel() Level {
	levelMutex.RLock()
	defer levelMutex.RUnlock()
	return levelDefault
}

func SetDefaultPrefixWidth(width int) {
	if width > 0 {
		prefixWidthDefault = width
	} else {
		prefixWidthDefault = 12
	}
}

// SetLevel sets the level of every logger whose name matches pattern.
func SetLevel(pattern string, lvl Level) {
	levelMutex.Lock()
	levelConfig[pattern] = lvl
	levelMutex.Unlock()
}

// GetLevel returns the level of the longest pattern matching name, or the
// default level.
func GetLevel(name string) Level {
	levelMutex.RLock()
	defer levelMutex.RUnlock()

	var matchedPattern string
	var matchedLevel Level
	for pattern, level := range levelConfig {
		if match, err := glob.Match(pattern, name); match && err == nil {
			if len(matchedPattern) < len(pattern) {
				matchedPattern = pattern
				matchedLevel = level
			}
		}
	}
	if matchedPattern != "" {
		return matchedLevel
	}
	return levelDefault
}
