package tracing

import (
	"context"

	"github.com/opentracing/opentracing-go"
	opentracing_ext "github.com/opentracing/opentracing-go/ext"
	opentracing_log "github.com/opentracing/opentracing-go/log"
)

// opentracing tags
var (
	WardenTag = opentracing.Tag{Key: string(opentracing_ext.Component), Value: "warden"}
)

// StartLockSpan starts a span covering acquisition, the guarded operation and release.
// It becomes a child of any span already carried by ctx.
func StartLockSpan(ctx context.Context, backend, key string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "lock", WardenTag)
	span.SetTag("lock.key", key)
	span.SetTag("lock.backend", backend)
	return span, ctx
}

// LogError marks the span as failed and records err on it
func LogError(span opentracing.Span, err error) {
	if err == nil {
		return
	}
	opentracing_ext.Error.Set(span, true)
	span.LogFields(opentracing_log.Error(err))
}
