package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// deliveryLogHandler stamps each record with the webhook delivery it belongs to.
type deliveryLogHandler struct {
	slog.Handler
}

// WrapSlogHandler adds the HTTP request, GitHub delivery, and trace ids
// carried by ctx to every record.
func WrapSlogHandler(next slog.Handler) slog.Handler {
	if next == nil {
		next = slog.NewTextHandler(io.Discard, nil)
	}
	return deliveryLogHandler{Handler: next}
}

func (h deliveryLogHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(contextAttrs(ctx)...)
	return h.Handler.Handle(ctx, record)
}

func (h deliveryLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return deliveryLogHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h deliveryLogHandler) WithGroup(name string) slog.Handler {
	return deliveryLogHandler{Handler: h.Handler.WithGroup(name)}
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if requestID, ok := RequestIDFromContext(ctx); ok {
		attrs = append(attrs, slog.String("http_request_id", requestID))
	}
	if route, ok := RouteFromContext(ctx); ok {
		attrs = append(attrs, slog.String("route", route))
	}
	if kind, ok := EventKindFromContext(ctx); ok {
		attrs = append(attrs, slog.String("github_event", kind))
	}
	if deliveryID, ok := DeliveryIDFromContext(ctx); ok {
		attrs = append(attrs, slog.String("delivery_id", deliveryID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return attrs
}
