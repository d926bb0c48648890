package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v81/github"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/services"
	"github.com/fr0stylo/ghevents/internal/githubbridge"
	"github.com/fr0stylo/ghevents/internal/observability"
)

// maxPayloadBytes matches GitHub's webhook payload ceiling.
const maxPayloadBytes = 25 << 20

const statusError = "error"

// OutcomeObserver receives one call per handled delivery. eventKind is
// always one of the githubbridge.MetricKind labels.
type OutcomeObserver interface {
	ObserveWebhook(eventKind, status string)
}

// Response is the JSON body written for every delivery.
type Response struct {
	Status    string        `json:"status"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
	Action    domain.Action `json:"action,omitempty"`
}

// Handler receives GitHub webhook deliveries.
type Handler struct {
	intake   *services.WebhookIntakeService
	metrics  webhookMetrics
	observer OutcomeObserver
}

// NewHandler constructs a GitHub webhook handler. observer may be nil.
func NewHandler(intake *services.WebhookIntakeService, observer OutcomeObserver) *Handler {
	return &Handler{
		intake:   intake,
		metrics:  newWebhookMetrics(),
		observer: observer,
	}
}

// Handle reads one delivery, stores its event record, and writes the outcome.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) error {
	eventKind := gh.WebHookType(r)
	deliveryID := gh.DeliveryID(r)
	label := githubbridge.MetricKind(eventKind)
	ctx := observability.WithDelivery(r.Context(), eventKind, deliveryID)
	h.metrics.recordRequest(ctx, label)
	slog.InfoContext(ctx, "webhook_received", "event", eventKind)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(ctx, w, label, http.StatusRequestEntityTooLarge, "payload_too_large", "Payload too large")
			return nil
		}
		h.reject(ctx, w, label, http.StatusBadRequest, "read_failed", "Invalid JSON payload")
		return nil
	}

	result, err := h.intake.Intake(ctx, services.IntakeCommand{
		EventKind:  eventKind,
		DeliveryID: deliveryID,
		Payload:    body,
	})
	if err != nil {
		kind := services.ClassifyIntakeError(err)
		switch kind {
		case services.IntakeErrorMissingPayload:
			h.reject(ctx, w, label, http.StatusBadRequest, string(kind), "No JSON payload received")
		case services.IntakeErrorInvalidPayload:
			h.reject(ctx, w, label, http.StatusBadRequest, string(kind), "Invalid JSON payload")
		case services.IntakeErrorNotApplicable:
			h.reject(ctx, w, label, http.StatusBadRequest, string(kind), "Failed to parse event payload")
		default:
			slog.ErrorContext(ctx, "webhook_intake_failed", "event", eventKind, "error", err)
			h.reject(ctx, w, label, http.StatusInternalServerError, "internal", "Internal server error")
		}
		return nil
	}

	h.metrics.recordAccepted(ctx, label, string(result.Status))
	h.observe(label, string(result.Status))
	if result.RequestID != "" {
		slog.InfoContext(ctx, "webhook_stored", "event", eventKind, "status", result.Status, "event_request_id", result.RequestID)
	}
	return writeJSON(w, http.StatusOK, Response{
		Status:    string(result.Status),
		Message:   result.Message,
		RequestID: result.RequestID,
		Action:    result.Action,
	})
}

// reject takes the bounded metric label, never the raw header value.
func (h *Handler) reject(ctx context.Context, w http.ResponseWriter, label string, code int, reason, message string) {
	h.metrics.recordRejected(ctx, label, reason)
	h.observe(label, statusError)
	if err := writeJSON(w, code, Response{Status: statusError, Message: message}); err != nil {
		slog.ErrorContext(ctx, "webhook_response_failed", "error", err)
	}
}

func (h *Handler) observe(label, status string) {
	if h.observer != nil {
		h.observer.ObserveWebhook(label, status)
	}
}

func writeJSON(w http.ResponseWriter, code int, body Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(body)
}
