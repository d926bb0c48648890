package export

import (
	"fmt"
	"time"

	cdeventsapi "github.com/cdevents/sdk-go/pkg/api"
	cdeventsv05 "github.com/cdevents/sdk-go/pkg/api/v05"

	"github.com/fr0stylo/ghevents/internal/app/domain"
)

type changeEventWriter interface {
	cdeventsapi.CDEventReader
	SetId(string)
	SetSource(string)
	SetTimestamp(time.Time)
	SetSubjectId(string)
	SetCustomData(string, interface{}) error
}

// CDEvent maps a record to a CDEvents change event: PULL_REQUEST to
// change.created, PUSH to change.updated, MERGE to change.merged.
func CDEvent(record domain.EventRecord, source string) ([]byte, error) {
	event, err := changeEventForAction(record.Action)
	if err != nil {
		return nil, err
	}

	event.SetId(record.RequestID)
	event.SetSource(source)
	event.SetTimestamp(record.Timestamp.UTC())
	event.SetSubjectId(fmt.Sprintf("%s/%s", record.ToBranch, record.RequestID))
	if err := event.SetCustomData("application/json", record.Document()); err != nil {
		return nil, fmt.Errorf("set cdevent custom data: %w", err)
	}
	return cdeventsapi.AsJsonBytes(event)
}

func changeEventForAction(action domain.Action) (changeEventWriter, error) {
	switch action {
	case domain.ActionPullRequest:
		return cdeventsv05.NewChangeCreatedEvent()
	case domain.ActionPush:
		return cdeventsv05.NewChangeUpdatedEvent()
	case domain.ActionMerge:
		return cdeventsv05.NewChangeMergedEvent()
	default:
		return nil, fmt.Errorf("no cdevent mapping for action %q", action)
	}
}
