package logging

import (
	"fmt"
	"strings"
	"time"
)

func (l *levelLogger) _log(lvl Level, args []any) {
	l._logf(lvl, "", args)
}

func (l *levelLogger) _logf(lvl Level, format string, args []any) {
	if lvl < l.level {
		return
	}

	totalCounter.Inc(1)
	if lvl == LevelWarn {
		warnCounter.Inc(1)
	} else if lvl == LevelError {
		errorCounter.Inc(1)
	}

	name := fmt.Sprintf(fmt.Sprintf("%%-%ds", l.prefixWidth), l.name)

	levelColorBegin, levelColorEnd := "", ""
	if lvl == LevelWarn {
		levelColorBegin, levelColorEnd = yellow, reset
	} else if lvl == LevelError {
		levelColorBegin, levelColorEnd = red, reset
	}

	var msg string
	if format == "" {
		toks := make([]string, 0, len(args)+len(l.attrs))
		for _, a := range args {
			if s, ok := a.(string); ok {
				toks = append(toks, s)
			} else {
				toks = append(toks, fmt.Sprintf("%v", a))
			}
		}
		for _, a := range l.attrs {
			toks = append(toks, fmt.Sprintf("%s=%v", a.Key, a.Value))
		}
		msg = strings.Join(toks, " ")
	} else {
		msg = fmt.Sprintf(format, args...)
	}

	timestamp := time.Now().Format("2006/01/02 15:04:05.000")
	levelName := fmt.Sprintf("%-5s", LogLevelName(lvl))

	for _, w := range l.underlying {
		var line string
		if w.isTerm {
			line = fmt.Sprintf("%s %s%s%s %s %s\n", timestamp, levelColorBegin, levelName, levelColorEnd, name, msg)
		} else {
			line = removeEscape(fmt.Sprintf("%s %s %s %s\n", timestamp, levelName, name, msg))
		}
		w.Write([]byte(line))
	}
}

func removeEscape(str string) string {
	for {
		idx := strings.Index(str, "\033[")
		if idx == -1 {
			break
		}
		period := strings.Index(str[idx:], "m")
		if period == -1 {
			break
		}
		str = str[0:idx] + str[idx+period+1:]
	}
	return str
}
