package export

import (
	"encoding/json"
	"fmt"
	"strings"

	ceevent "github.com/cloudevents/sdk-go/v2/event"

	"github.com/fr0stylo/ghevents/internal/app/domain"
)

const cloudEventTypePrefix = "com.github.ghevents."

// CloudEvent wraps a record in a structured-mode CloudEvents 1.0 JSON envelope.
func CloudEvent(record domain.EventRecord, source string) ([]byte, error) {
	event := ceevent.New()
	event.SetID(record.RequestID)
	event.SetSource(source)
	event.SetType(cloudEventTypePrefix + strings.ToLower(record.Action.String()))
	event.SetSubject(record.ToBranch)
	event.SetTime(record.Timestamp)
	if err := event.SetData(ceevent.ApplicationJSON, record.Document()); err != nil {
		return nil, fmt.Errorf("set cloudevent data: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate cloudevent: %w", err)
	}
	return json.Marshal(event)
}
