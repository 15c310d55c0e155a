package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"

	"github.com/imasker/warden/tracing"
)

func TestStartLockSpan(t *testing.T) {
	tracer := mocktracer.New()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	span, ctx := tracing.StartLockSpan(context.Background(), "noop", "orders")
	assert.Equal(t, span, opentracing.SpanFromContext(ctx))
	tracing.LogError(span, errors.New("boom"))
	tracing.LogError(span, nil)
	span.Finish()

	finished := tracer.FinishedSpans()
	if assert.Len(t, finished, 1) {
		assert.Equal(t, "lock", finished[0].OperationName)
		assert.Equal(t, "orders", finished[0].Tag("lock.key"))
		assert.Equal(t, "noop", finished[0].Tag("lock.backend"))
		assert.Equal(t, "warden", finished[0].Tag("component"))
		assert.Equal(t, true, finished[0].Tag("error"))
		assert.Len(t, finished[0].Logs(), 1)
	}
}
