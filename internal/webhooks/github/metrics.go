package github

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type webhookMetrics struct {
	requests metric.Int64Counter
	accepted metric.Int64Counter
	rejected metric.Int64Counter
}

func newWebhookMetrics() webhookMetrics {
	meter := otel.Meter("github.com/fr0stylo/ghevents/internal/webhooks/github")
	requests, _ := meter.Int64Counter("ghevents.webhook.requests")
	accepted, _ := meter.Int64Counter("ghevents.webhook.accepted")
	rejected, _ := meter.Int64Counter("ghevents.webhook.rejected")
	return webhookMetrics{
		requests: requests,
		accepted: accepted,
		rejected: rejected,
	}
}

func (m webhookMetrics) recordRequest(ctx context.Context, eventKind string) {
	m.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("event", eventKind)))
}

func (m webhookMetrics) recordAccepted(ctx context.Context, eventKind, status string) {
	m.accepted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", eventKind),
		attribute.String("status", status),
	))
}

func (m webhookMetrics) recordRejected(ctx context.Context, eventKind, reason string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", eventKind),
		attribute.String("reason", reason),
	))
}
