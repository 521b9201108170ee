package logger

import (
	"context"
	"testing"

	kratoslog "github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	tracecontext "nightlife-portal/pkg/context"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core)), logs
}

func TestLoggerAddsRequestFields(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)
	ctx := tracecontext.WithRequestID(context.Background(), "req-1")
	ctx = tracecontext.WithAccount(ctx, "acc-9", "admin")

	log.Info(ctx, "Blog created", F("blog_id", "b1"))
	log.WithContext(ctx).Warn(context.Background(), "slow")

	entries := logs.All()
	require.Len(t, entries, 2)
	first := entries[0].ContextMap()
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "b1", first["blog_id"])
	assert.Equal(t, "acc-9", entries[1].ContextMap()["account_id"])
}

func TestLoggerLevelFilter(t *testing.T) {
	log, logs := observed(parseLevel("warn"))
	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	log.Error(context.Background(), "shown")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestKratosAdapter(t *testing.T) {
	base, logs := observed(zapcore.DebugLevel)
	kl := NewKratosLogger(base)

	require.NoError(t, kl.Log(kratoslog.LevelError, "msg", "Redis ping failed", "addr", "localhost:6379", "dangling"))
	require.NoError(t, kl.Log(kratoslog.LevelInfo))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "Redis ping failed", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"addr": "localhost:6379"}, entries[0].ContextMap())
}
