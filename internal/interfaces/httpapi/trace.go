package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("cricket-widget/internal/interfaces/httpapi")

// Detached non-recording span. Handed out where no span should be opened,
// so the caller's deferred End never touches the real parent.
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a span for route handlers only. Middleware and envelope
// helpers run on every request and would triple the span count of a poll
// without adding signal.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// No parent span in context (e.g. filtered route like /healthz).
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
