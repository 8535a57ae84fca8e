package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGorm(level gormlogger.LogLevel, slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, slow), logs
}

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("error is logged with sql", func(t *testing.T) {
		l, logs := newObservedGorm(gormlogger.Warn, 0)
		l.Trace(context.Background(), time.Now(), sqlFn("UPDATE stock_items SET quantity = 1", 0), errors.New("deadlock detected"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "SQL Error", entry.Message)
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "UPDATE stock_items SET quantity = 1", entry.ContextMap()["sql"])
		assert.Equal(t, "gorm", entry.LoggerName)
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, logs := newObservedGorm(gormlogger.Warn, 0)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, logs := newObservedGorm(gormlogger.Warn, time.Millisecond)
		l.Trace(context.Background(), time.Now().Add(-50*time.Millisecond), sqlFn("SELECT * FROM orders", 3), nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "Slow SQL", logs.All()[0].Message)
		assert.Equal(t, int64(3), logs.All()[0].ContextMap()["rows"])
	})

	t.Run("fast query only at info", func(t *testing.T) {
		l, logs := newObservedGorm(gormlogger.Warn, time.Second)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), nil)
		assert.Equal(t, 0, logs.Len())

		l.LogMode(gormlogger.Info).Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), nil)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, logs := newObservedGorm(gormlogger.Silent, 0)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), errors.New("x"))
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("request id is carried", func(t *testing.T) {
		l, logs := newObservedGorm(gormlogger.Error, 0)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-7")
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 0), errors.New("boom"))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-7", logs.All()[0].ContextMap()["request_id"])
	})
}

func TestGormLogger_LogModeDoesNotMutate(t *testing.T) {
	l, _ := newObservedGorm(gormlogger.Warn, 0)
	_ = l.LogMode(gormlogger.Info)
	assert.Equal(t, gormlogger.Warn, l.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	l, logs := newObservedGorm(gormlogger.Info, 0)
	l.Info(context.Background(), "migrated %d tables", 3)
	l.Warn(context.Background(), "careful")
	l.Error(context.Background(), "failed: %s", "x")

	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "migrated 3 tables", logs.All()[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[2].Level)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
