package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestGlobalProviderExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig("portal-test")
	cfg.Environment = "test"
	cfg.Writer = &buf
	require.NoError(t, InitGlobal(cfg))

	_, span := StartSpan(context.Background(), "portal.service.ListBlogs")
	span.SetAttributes(attribute.Int("list.page", 2))
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, ShutdownGlobal(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "portal.service.ListBlogs")
	assert.Contains(t, out, "portal-test")
	assert.Contains(t, out, "list.page")

	_, after := StartSpan(context.Background(), "after.shutdown")
	assert.False(t, after.IsRecording())
	after.End()
	assert.NotContains(t, buf.String(), "after.shutdown")
}

func TestStartSpanWithoutProvider(t *testing.T) {
	require.NoError(t, ShutdownGlobal(context.Background()))
	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	assert.NotNil(t, ctx)
	assert.False(t, span.IsRecording())
}
