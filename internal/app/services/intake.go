package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/ports"
	"github.com/fr0stylo/ghevents/internal/githubbridge"
)

var (
	// ErrMissingPayload indicates an absent or JSON-falsy request body.
	ErrMissingPayload = errors.New("missing payload")
	// ErrInvalidPayload indicates a body that is not JSON.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrNotApplicable indicates a supported event the normalizer could not map.
	ErrNotApplicable = errors.New("payload not applicable")
)

// IntakeStatus is the outcome label reported to webhook senders.
type IntakeStatus string

const (
	IntakeStatusSuccess   IntakeStatus = "success"
	IntakeStatusDuplicate IntakeStatus = "duplicate"
	IntakeStatusIgnored   IntakeStatus = "ignored"
)

// IntakeErrorKind classifies intake failures for transport-specific mapping.
type IntakeErrorKind string

const (
	// IntakeErrorUnknown is used when error is nil or not classified.
	IntakeErrorUnknown IntakeErrorKind = "unknown"
	// IntakeErrorMissingPayload indicates an empty body.
	IntakeErrorMissingPayload IntakeErrorKind = "missing_payload"
	// IntakeErrorInvalidPayload indicates malformed JSON.
	IntakeErrorInvalidPayload IntakeErrorKind = "invalid_payload"
	// IntakeErrorNotApplicable indicates a payload without the fields a record needs.
	IntakeErrorNotApplicable IntakeErrorKind = "not_applicable"
)

// IntakeCommand is transport-agnostic webhook intake input.
type IntakeCommand struct {
	EventKind  string
	DeliveryID string
	Payload    []byte
}

// IntakeResult describes a handled delivery.
type IntakeResult struct {
	Status    IntakeStatus
	Message   string
	RequestID string
	Action    domain.Action
}

// WebhookIntakeService normalizes GitHub deliveries and stores them once.
type WebhookIntakeService struct {
	normalizer   ports.PayloadNormalizer
	storeFactory ports.EventStoreFactory
}

// NewWebhookIntakeService constructs an intake service.
func NewWebhookIntakeService(normalizer ports.PayloadNormalizer, storeFactory ports.EventStoreFactory) *WebhookIntakeService {
	return &WebhookIntakeService{normalizer: normalizer, storeFactory: storeFactory}
}

// ClassifyIntakeError classifies a returned intake error.
func ClassifyIntakeError(err error) IntakeErrorKind {
	switch {
	case err == nil:
		return IntakeErrorUnknown
	case errors.Is(err, ErrMissingPayload):
		return IntakeErrorMissingPayload
	case errors.Is(err, ErrInvalidPayload):
		return IntakeErrorInvalidPayload
	case errors.Is(err, ErrNotApplicable):
		return IntakeErrorNotApplicable
	default:
		return IntakeErrorUnknown
	}
}

// Intake validates one delivery and inserts its record if absent.
func (s *WebhookIntakeService) Intake(ctx context.Context, cmd IntakeCommand) (IntakeResult, error) {
	payload := bytes.TrimSpace(cmd.Payload)
	if payloadMissing(payload) {
		return IntakeResult{}, ErrMissingPayload
	}
	if !gjson.ValidBytes(payload) {
		return IntakeResult{}, ErrInvalidPayload
	}

	kind := strings.TrimSpace(cmd.EventKind)
	if kind == githubbridge.EventPing {
		return IntakeResult{Status: IntakeStatusSuccess, Message: "Pong! Webhook configured successfully."}, nil
	}
	if !githubbridge.Supports(kind) {
		return IntakeResult{
			Status:  IntakeStatusIgnored,
			Message: fmt.Sprintf("Event type '%s' is not supported", kind),
		}, nil
	}

	record, ok := s.normalizer.Normalize(kind, payload)
	if !ok {
		return IntakeResult{}, ErrNotApplicable
	}

	store, err := s.storeFactory.Open()
	if err != nil {
		return IntakeResult{}, fmt.Errorf("open event store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	outcome, err := store.Insert(ctx, record)
	if err != nil {
		return IntakeResult{}, fmt.Errorf("store %s delivery %s: %w", kind, cmd.DeliveryID, err)
	}

	result := IntakeResult{RequestID: record.RequestID, Action: record.Action}
	if outcome == domain.DuplicateSkipped {
		result.Status = IntakeStatusDuplicate
		result.Message = "Event already exists"
		return result, nil
	}
	result.Status = IntakeStatusSuccess
	result.Message = fmt.Sprintf("%s event saved successfully", record.Action)
	return result, nil
}

// payloadMissing reports an empty body or a JSON value that is falsy:
// null, false, 0, "", {} or [].
func payloadMissing(payload []byte) bool {
	if len(payload) == 0 {
		return true
	}
	if !gjson.ValidBytes(payload) {
		return false
	}
	value := gjson.ParseBytes(payload)
	switch value.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return value.Float() == 0
	case gjson.String:
		return value.Str == ""
	case gjson.JSON:
		empty := true
		value.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	default:
		return false
	}
}
