package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel_reservation/internal/adapters/observability"
)

const slowQuery = 200 * time.Millisecond

// gormLogger routes GORM output to zerolog and query latency to Prometheus.
type gormLogger struct{ level logger.LogLevel }

// NewLogger logs every statement when zerolog is at debug, otherwise only slow queries and errors.
func NewLogger() logger.Interface {
	lv := logger.Warn
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		lv = logger.Info
	}
	return gormLogger{level: lv}
}

func (l gormLogger) LogMode(lv logger.LogLevel) logger.Interface {
	l.level = lv
	return l
}

func (l gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		log.Info().Msgf(msg, args...)
	}
}

func (l gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		log.Warn().Msgf(msg, args...)
	}
}

func (l gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		log.Error().Msgf(msg, args...)
	}
}

func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	stmt, rows := fc()
	observability.ObserveDB(statementKind(stmt), elapsed)

	switch {
	case l.level <= logger.Silent:
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		log.Error().Err(err).Str("sql", stmt).Dur("elapsed", elapsed).Msg("db query failed")
	case elapsed > slowQuery && l.level >= logger.Warn:
		log.Warn().Str("sql", stmt).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow db query")
	case l.level >= logger.Info:
		log.Debug().Str("sql", stmt).Int64("rows", rows).Dur("elapsed", elapsed).Msg("db query")
	}
}

func statementKind(stmt string) string {
	f := strings.Fields(stmt)
	if len(f) == 0 {
		return "other"
	}
	switch k := strings.ToLower(f[0]); k {
	case "select", "insert", "update", "delete":
		return k
	}
	return "other"
}
