package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Action is the normalized kind of a stored GitHub event.
type Action string

const (
	ActionPush        Action = "PUSH"
	ActionPullRequest Action = "PULL_REQUEST"
	ActionMerge       Action = "MERGE"
)

const (
	// DefaultLimit is used when a read does not ask for a page size.
	DefaultLimit = 50
	// MinLimit and MaxLimit bound every read page size.
	MinLimit = 1
	MaxLimit = 100
	// DefaultRecentWindow is the trailing interval used when a read has no since filter.
	DefaultRecentWindow = 15 * time.Second
	// UnknownValue fills author and branch fields the payload does not carry.
	UnknownValue = "unknown"
)

// ErrInvalidRecord marks an event record that fails field validation.
var ErrInvalidRecord = errors.New("invalid event record")

// ParseAction maps a stored or serialized action name to an Action.
func ParseAction(value string) (Action, error) {
	action := Action(strings.ToUpper(strings.TrimSpace(value)))
	if !action.Valid() {
		return "", fmt.Errorf("unknown action %q", value)
	}
	return action, nil
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionPush, ActionPullRequest, ActionMerge:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	return string(a)
}

// EventRecord is one normalized push or pull request occurrence.
type EventRecord struct {
	RequestID  string
	Author     string
	Action     Action
	FromBranch string
	ToBranch   string
	Timestamp  time.Time
}

// Validate checks the record field constraints.
func (r EventRecord) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"request_id", r.RequestID},
		{"author", r.Author},
		{"from_branch", r.FromBranch},
		{"to_branch", r.ToBranch},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRecord, field.name)
		}
	}
	if !r.Action.Valid() {
		return fmt.Errorf("%w: action %q is not supported", ErrInvalidRecord, r.Action)
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidRecord)
	}
	return nil
}

// EventDocument is the wire shape of an event record.
type EventDocument struct {
	RequestID  string `json:"request_id"`
	Author     string `json:"author"`
	Action     Action `json:"action"`
	FromBranch string `json:"from_branch"`
	ToBranch   string `json:"to_branch"`
	Timestamp  string `json:"timestamp"`
}

// Document renders the record for JSON responses.
func (r EventRecord) Document() EventDocument {
	return EventDocument{
		RequestID:  r.RequestID,
		Author:     r.Author,
		Action:     r.Action,
		FromBranch: r.FromBranch,
		ToBranch:   r.ToBranch,
		Timestamp:  FormatTimestamp(r.Timestamp),
	}
}

// InsertOutcome reports what an idempotent insert did.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota + 1
	DuplicateSkipped
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case DuplicateSkipped:
		return "duplicate_skipped"
	default:
		return "unknown"
	}
}

// ClampLimit bounds a requested page size to [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
