package logger

import (
	"fmt"
	"sync/atomic"
)

// Logger is a subsystem logger. It filters entries below its level and
// forwards the rest to its Backend.
type Logger struct {
	lvl Level // atomic
	tag string
	b   *Backend
}

func (l *Logger) write(level Level, message func() string) {
	if l.Level() > level {
		return
	}
	l.b.write(level, l.tag, message())
}

// Trace formats message using the default formats for its operands and
// writes it at LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.write(LevelTrace, func() string { return fmt.Sprint(args...) })
}

// Tracef formats message according to format specifier and writes it at
// LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.write(LevelTrace, func() string { return fmt.Sprintf(format, args...) })
}

// Debug writes at LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.write(LevelDebug, func() string { return fmt.Sprint(args...) })
}

// Debugf writes at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(LevelDebug, func() string { return fmt.Sprintf(format, args...) })
}

// Info writes at LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.write(LevelInfo, func() string { return fmt.Sprint(args...) })
}

// Infof writes at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(LevelInfo, func() string { return fmt.Sprintf(format, args...) })
}

// Warn writes at LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.write(LevelWarn, func() string { return fmt.Sprint(args...) })
}

// Warnf writes at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(LevelWarn, func() string { return fmt.Sprintf(format, args...) })
}

// Error writes at LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.write(LevelError, func() string { return fmt.Sprint(args...) })
}

// Errorf writes at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(LevelError, func() string { return fmt.Sprintf(format, args...) })
}

// Critical writes at LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.write(LevelCritical, func() string { return fmt.Sprint(args...) })
}

// Criticalf writes at LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, func() string { return fmt.Sprintf(format, args...) })
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.b
}
