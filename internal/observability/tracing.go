package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const dbTracerName = "ghevents/db"

type contextKey string

const (
	deliveryIDKey contextKey = "observability.delivery_id"
	eventKindKey  contextKey = "observability.event_kind"
	requestIDKey  contextKey = "observability.request_id"
	routeKey      contextKey = "observability.route"
)

// Span is the application-level tracing span contract.
type Span interface {
	End()
	RecordError(error)
}

type otelSpan struct {
	inner trace.Span
}

// StartDBSpan starts a database tracing span for one query operation.
func StartDBSpan(ctx context.Context, queryName, operation string) (context.Context, Span) {
	queryName = strings.TrimSpace(queryName)
	if queryName == "" {
		queryName = "other"
	}
	attrs := []attribute.KeyValue{
		attribute.String("db.system.name", "sqlite"),
		attribute.String("db.query_name", queryName),
		attribute.String("db.operation", strings.TrimSpace(operation)),
	}
	if deliveryID, ok := DeliveryIDFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("github.delivery_id", deliveryID))
	}

	ctx, span := otel.Tracer(dbTracerName).Start(ctx, "db."+queryName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, otelSpan{inner: span}
}

// WithDelivery enriches context and current span with the GitHub delivery identity.
func WithDelivery(ctx context.Context, eventKind, deliveryID string) context.Context {
	eventKind = strings.TrimSpace(eventKind)
	deliveryID = strings.TrimSpace(deliveryID)
	if eventKind != "" {
		ctx = context.WithValue(ctx, eventKindKey, eventKind)
	}
	if deliveryID != "" {
		ctx = context.WithValue(ctx, deliveryIDKey, deliveryID)
	}
	setSpanDeliveryAttributes(ctx, eventKind, deliveryID)
	return ctx
}

// WithRequestMetadata enriches context and current span with request metadata.
func WithRequestMetadata(ctx context.Context, requestID, route string) context.Context {
	requestID = strings.TrimSpace(requestID)
	route = strings.TrimSpace(route)
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if route != "" {
		ctx = context.WithValue(ctx, routeKey, route)
	}
	setSpanRequestAttributes(ctx, requestID, route)
	return ctx
}

// DeliveryIDFromContext extracts the X-GitHub-Delivery value.
func DeliveryIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, deliveryIDKey)
}

// EventKindFromContext extracts the X-GitHub-Event value.
func EventKindFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, eventKindKey)
}

// RequestIDFromContext extracts the HTTP request id.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey)
}

// RouteFromContext extracts normalized route path.
func RouteFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, routeKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	value, ok := ctx.Value(key).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func setSpanDeliveryAttributes(ctx context.Context, eventKind, deliveryID string) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, 2)
	if eventKind != "" {
		attrs = append(attrs, attribute.String("github.event", eventKind))
	}
	if deliveryID != "" {
		attrs = append(attrs, attribute.String("github.delivery_id", deliveryID))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func setSpanRequestAttributes(ctx context.Context, requestID, route string) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, 2)
	if requestID != "" {
		attrs = append(attrs, attribute.String("request.id", requestID))
	}
	if route != "" {
		attrs = append(attrs, attribute.String("http.route", route))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func (s otelSpan) End() {
	if s.inner == nil {
		return
	}
	s.inner.End()
}

func (s otelSpan) RecordError(err error) {
	if s.inner == nil || err == nil {
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}
