package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &ZapLogger{logger: zap.New(core).Sugar()}

	log.With("runID", "abc").Info("Consistency report built", "findings", 3)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "Consistency report built", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"runID": "abc", "findings": int64(3)}, entries[0].ContextMap())
}

func TestNewLoggerWithOptions_Level(t *testing.T) {
	log := NewLoggerWithOptions("production", "warn")
	assert.False(t, log.logger.Desugar().Core().Enabled(zap.InfoLevel))
	assert.True(t, log.logger.Desugar().Core().Enabled(zap.WarnLevel))

	log = NewLoggerWithOptions("development", "not-a-level")
	assert.True(t, log.logger.Desugar().Core().Enabled(zap.DebugLevel), "development config defaults to debug")
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Debug("ignored")
		log.With("k", "v").Warn("ignored")
	})
	assert.NoError(t, log.Sync())
}
