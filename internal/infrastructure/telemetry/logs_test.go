package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, enabler: zapcore.WarnLevel}

	l := zap.New(core).With(zap.String("service", "tradecore"))
	l.Info("dropped")
	l.Warn("kept")

	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "tradecore", logs.All()[0].ContextMap()["service"])
}
