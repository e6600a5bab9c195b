package receipt

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger routes the GORM log output through the application logger so
// catalog activity shows up in the structured service logs.
type gormLogger struct {
	log *zap.SugaredLogger
}

func newGormLogger(log *zap.SugaredLogger) *gormLogger {
	return &gormLogger{log: log}
}

// LogMode implements the GORM logger interface. The level is controlled by
// the zap configuration, not by GORM.
func (l *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

// Info logs info level messages.
func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.log.Infow(msg, "data", data)
}

// Warn logs warning level messages.
func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.log.Warnw(msg, "data", data)
}

// Error logs error level messages.
func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.log.Errorw(msg, "data", data)
}

// Trace logs executed statements with their timing. Record not found is
// expected during lookups and stays out of the error log.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.log.Errorw("catalog query failed", "sql", sql, "rows", rows, "since", elapsed, "ERROR", err)
		return
	}

	l.log.Debugw("catalog query", "sql", sql, "rows", rows, "since", elapsed)
}
