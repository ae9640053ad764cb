// Package gormlogger routes gorm's logging through zerolog.
package gormlogger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/artify-go/artify/internal/logger/adapter/stdlogger"
)

// Logger implements gorm's logger.Interface.
// Warn and Error keep their level, executed statements are logged at debug.
type Logger struct {
	log                       *stdlogger.Logger
	level                     glogger.LogLevel
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
}

// New returns a Logger tagging every event with component gorm.
func New(level glogger.LogLevel, slowThreshold time.Duration) *Logger {
	return &Logger{
		log:                       stdlogger.NewComponent("gorm"),
		level:                     level,
		slowThreshold:             slowThreshold,
		ignoreRecordNotFoundError: true,
	}
}

// LogMode returns a copy logging at level.
func (l *Logger) LogMode(level glogger.LogLevel) glogger.Interface {
	c := *l
	c.level = level

	return &c
}

// Info logs at info level.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= glogger.Info {
		l.log.Infof(msg, args...)
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= glogger.Warn {
		l.log.Warningf(msg, args...)
	}
}

// Error logs at error level.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= glogger.Error {
		l.log.Errorf(msg, args...)
	}
}

// Trace logs a statement: failures as errors, slow ones as warnings, the rest at debug.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= glogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= glogger.Error &&
		(!l.ignoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		l.log.Errorf("%s [%s] [rows:%d] %s", err, elapsed, rows, sql)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= glogger.Warn:
		sql, rows := fc()
		l.log.Warningf("slow query >= %s [%s] [rows:%d] %s", l.slowThreshold, elapsed, rows, sql)
	case l.level >= glogger.Info:
		sql, rows := fc()
		l.log.Debugf("[%s] [rows:%d] %s", elapsed, rows, sql)
	}
}
