package cbs

import (
	golog "github.com/cybergarage/go-logger/log"
)

// LogLevel mirrors the levels a caller-supplied sink is expected to
// understand; the default adapter maps these onto go-logger's level
// functions, sending both LevelTrace and LevelDebug to Debugf.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelWarn
	LevelError
)

// Logger is the single contact point between the core and the outside
// world's logging transport (§6: "Logging is delegated to a
// caller-supplied sink"). Implementations must be non-blocking; the
// core performs no other I/O.
type Logger interface {
	Log(level LogLevel, msg string)
}

// defaultLogger adapts go-logger, the logging library the rest of the
// dependency pack standardizes on, into the Logger contract so callers
// who don't supply their own sink still get leveled, structured output
// instead of silence.
type defaultLogger struct{}

func (defaultLogger) Log(level LogLevel, msg string) {
	switch level {
	case LevelTrace, LevelDebug:
		golog.Debugf("%s", msg)
	case LevelWarn:
		golog.Warnf("%s", msg)
	case LevelError:
		golog.Errorf("%s", msg)
	default:
		golog.Infof("%s", msg)
	}
}
