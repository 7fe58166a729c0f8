package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

/*
	Log rotation schedule

	"0 30 * * * *"             Every hour on the half hour
	"@hourly"                  Every hour
	"@every 1h30m"             Every hour thirty

	@daily
	@midnight
*/

type Config struct {
	Console        bool          `yaml:"console"`
	Filename       string        `yaml:"filename"`
	Append         bool          `yaml:"append"`
	RotateSchedule string        `yaml:"rotateSchedule"`
	MaxSize        int           `yaml:"maxSize"`
	MaxBackups     int           `yaml:"maxBackups"`
	MaxAge         int           `yaml:"maxAge"`
	Compress       bool          `yaml:"compress"`
	UTC            bool          `yaml:"utc"`
	Levels         []LevelConfig `yaml:"levels"`
	PrefixWidth    int           `yaml:"prefixWidth"`
	DefaultLevel   string        `yaml:"defaultLevel"`
}

type LevelConfig struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
}

// DefaultConfig writes WARN and above to stderr, so that command output
// on stdout stays clean.
func DefaultConfig() Config {
	return Config{
		Filename:     "-",
		Append:       true,
		MaxSize:      10,
		MaxBackups:   1,
		MaxAge:       7,
		PrefixWidth:  12,
		DefaultLevel: "WARN",
	}
}

var (
	rotateCron    = cron.New()
	rotateStarted sync.Once

	defaultWriter = []*logWriter{{Writer: os.Stderr, isTerm: true}}
)

// Configure replaces the output and the levels of loggers obtained by
// GetLog afterwards.
//
// Filename "-" is stderr, "." discards everything and any other value is
// a file rotated by size and, with RotateSchedule, by time.
func Configure(cfg *Config) error {
	for _, c := range cfg.Levels {
		lvl, ok := ParseLogLevelP(c.Level)
		if !ok {
			return fmt.Errorf("logging: invalid level %q for %q", c.Level, c.Pattern)
		}
		SetLevel(c.Pattern, lvl)
	}
	if cfg.DefaultLevel != "" {
		lvl, ok := ParseLogLevelP(cfg.DefaultLevel)
		if !ok {
			return fmt.Errorf("logging: invalid default level %q", cfg.DefaultLevel)
		}
		SetDefaultLevel(lvl)
	}
	SetDefaultPrefixWidth(cfg.PrefixWidth)

	switch cfg.Filename {
	case ".":
		defaultWriter = []*logWriter{}
	case "", "-":
		defaultWriter = []*logWriter{{Writer: os.Stderr, isTerm: true}}
	default:
		lj := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  !cfg.UTC,
		}
		if !cfg.Append {
			if err := lj.Rotate(); err != nil {
				return fmt.Errorf("logging: %w", err)
			}
		}
		if len(cfg.RotateSchedule) > 0 {
			if _, err := rotateCron.AddFunc(cfg.RotateSchedule, func() { lj.Rotate() }); err != nil {
				return fmt.Errorf("logging: rotate schedule %q: %w", cfg.RotateSchedule, err)
			}
			rotateStarted.Do(rotateCron.Start)
		}
		if cfg.Console {
			defaultWriter = []*logWriter{
				{Writer: lj, isTerm: false},
				{Writer: os.Stderr, isTerm: true},
			}
		} else {
			defaultWriter = []*logWriter{{Writer: lj, isTerm: false}}
		}
	}
	return nil
}

func GetLog(name string) Log {
	return &levelLogger{
		name:        name,
		level:       GetLevel(name),
		underlying:  defaultWriter,
		prefixWidth: prefixWidthDefault,
	}
}

// NewLog is a logger that writes plain lines to writer, regardless of
// the configured output.
func NewLog(name string, writer io.Writer) Log {
	return &levelLogger{
		name:        name,
		level:       GetLevel(name),
		underlying:  []*logWriter{{Writer: writer, isTerm: false}},
		prefixWidth: prefixWidthDefault,
	}
}

type logWriter struct {
	io.Writer
	isTerm bool
}
