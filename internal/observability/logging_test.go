package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestWrapSlogHandlerAddsRequestAndDeliveryFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(WrapSlogHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithRequestMetadata(context.Background(), "req-1", "/webhook")
	ctx = WithDelivery(ctx, "push", "d-42")
	logger.InfoContext(ctx, "webhook_received")

	line := buf.String()
	for _, field := range []string{"http_request_id=req-1", "route=/webhook", "github_event=push", "delivery_id=d-42"} {
		if !strings.Contains(line, field) {
			t.Fatalf("log line %q missing %q", line, field)
		}
	}

	kind, ok := EventKindFromContext(ctx)
	if !ok || kind != "push" {
		t.Fatalf("unexpected event kind: %q ok=%v", kind, ok)
	}
}

func TestWrapSlogHandlerSkipsAbsentFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(WrapSlogHandler(slog.NewTextHandler(&buf, nil)))
	logger.InfoContext(WithDelivery(context.Background(), " ", ""), "plain")

	if strings.Contains(buf.String(), "delivery_id") || strings.Contains(buf.String(), "http_request_id") || strings.Contains(buf.String(), "github_event") {
		t.Fatalf("unexpected context fields: %q", buf.String())
	}
}

func TestWrapSlogHandlerAddsTraceIDs(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	logger := slog.New(WrapSlogHandler(slog.NewTextHandler(&buf, nil))).With("component", "webhook")
	logger.InfoContext(ctx, "traced")

	for _, field := range []string{"component=webhook", "trace_id=4bf92f3577b34da6a3ce929d0e0e4736", "span_id=00f067aa0ba902b7"} {
		if !strings.Contains(buf.String(), field) {
			t.Fatalf("log line %q missing %q", buf.String(), field)
		}
	}
}
