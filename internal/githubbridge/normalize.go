package githubbridge

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/ports"
)

// GitHub event kinds carried in the X-GitHub-Event header.
const (
	EventPing        = "ping"
	EventPush        = "push"
	EventPullRequest = "pull_request"
)

// EventOther labels every event kind outside ping, push, and pull_request.
const EventOther = "other"

const branchRefPrefix = "refs/heads/"

// Normalizer maps GitHub push and pull_request payloads to event records.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer constructs a normalizer that stamps missing timestamps with the wall clock.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithClock(time.Now)
}

// NewNormalizerWithClock constructs a normalizer with an injected clock.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// MetricKind folds eventKind into the bounded set used as a metric label.
func MetricKind(eventKind string) string {
	kind := strings.TrimSpace(eventKind)
	if kind == EventPing || Supports(kind) {
		return kind
	}
	return EventOther
}

// Supports reports whether eventKind produces event records.
func Supports(eventKind string) bool {
	switch eventKind {
	case EventPush, EventPullRequest:
		return true
	default:
		return false
	}
}

// Normalize converts one delivery into an event record. ok is false when the
// payload is malformed, irrelevant, or lacks the fields a record needs.
func (n *Normalizer) Normalize(eventKind string, payload []byte) (record domain.EventRecord, ok bool) {
	defer func() {
		if recover() != nil {
			record, ok = domain.EventRecord{}, false
		}
	}()

	if !gjson.ValidBytes(payload) {
		return domain.EventRecord{}, false
	}
	root := gjson.ParseBytes(payload)

	switch strings.TrimSpace(eventKind) {
	case EventPush:
		record, ok = n.normalizePush(root)
	case EventPullRequest:
		record, ok = n.normalizePullRequest(root)
	default:
		return domain.EventRecord{}, false
	}
	if !ok || record.Validate() != nil {
		return domain.EventRecord{}, false
	}
	return record, true
}

func (n *Normalizer) normalizePush(root gjson.Result) (domain.EventRecord, bool) {
	requestID, ok := stringField(root, "head_commit.id")
	if !ok {
		requestID, ok = stringField(root, "after")
	}
	if !ok {
		return domain.EventRecord{}, false
	}

	branch := branchFromRef(root.Get("ref"))
	return domain.EventRecord{
		RequestID:  requestID,
		Author:     stringOr(root, "pusher.name", domain.UnknownValue),
		Action:     domain.ActionPush,
		FromBranch: branch,
		ToBranch:   branch,
		Timestamp:  n.timestamp(root, "head_commit.timestamp"),
	}, true
}

func (n *Normalizer) normalizePullRequest(root gjson.Result) (domain.EventRecord, bool) {
	pr := root.Get("pull_request")
	if !pr.IsObject() {
		return domain.EventRecord{}, false
	}

	upstreamAction, _ := stringField(root, "action")
	merged := pr.Get("merged").Type == gjson.True

	var (
		action    domain.Action
		prefix    string
		timestamp time.Time
	)
	switch {
	case upstreamAction == "closed" && merged:
		action, prefix = domain.ActionMerge, "MERGE-"
		timestamp = n.timestamp(pr, "merged_at")
	case upstreamAction == "opened" || upstreamAction == "reopened" || upstreamAction == "synchronize":
		action, prefix = domain.ActionPullRequest, "PR-"
		if _, ok := stringField(pr, "created_at"); ok {
			timestamp = n.timestamp(pr, "created_at")
		} else {
			timestamp = n.timestamp(pr, "updated_at")
		}
	default:
		return domain.EventRecord{}, false
	}

	number, ok := identifierField(pr, "number", "id")
	if !ok {
		return domain.EventRecord{}, false
	}

	return domain.EventRecord{
		RequestID:  prefix + number,
		Author:     stringOr(pr, "user.login", domain.UnknownValue),
		Action:     action,
		FromBranch: stringOr(pr, "head.ref", domain.UnknownValue),
		ToBranch:   stringOr(pr, "base.ref", domain.UnknownValue),
		Timestamp:  timestamp,
	}, true
}

func (n *Normalizer) timestamp(obj gjson.Result, path string) time.Time {
	raw, _ := stringField(obj, path)
	return domain.ParseTimestamp(raw, n.now)
}

func branchFromRef(ref gjson.Result) string {
	if ref.Type != gjson.String || !strings.HasPrefix(ref.Str, branchRefPrefix) {
		return domain.UnknownValue
	}
	branch := strings.TrimSpace(strings.TrimPrefix(ref.Str, branchRefPrefix))
	if branch == "" {
		return domain.UnknownValue
	}
	return branch
}

// stringField returns a non-blank string at path. Values of any other JSON
// type count as absent.
func stringField(obj gjson.Result, path string) (string, bool) {
	value := obj.Get(path)
	if value.Type != gjson.String {
		return "", false
	}
	trimmed := strings.TrimSpace(value.Str)
	return trimmed, trimmed != ""
}

func stringOr(obj gjson.Result, path, fallback string) string {
	if value, ok := stringField(obj, path); ok {
		return value
	}
	return fallback
}

// identifierField returns the first numeric or non-blank string value among paths.
func identifierField(obj gjson.Result, paths ...string) (string, bool) {
	for _, path := range paths {
		value := obj.Get(path)
		switch value.Type {
		case gjson.Number:
			return value.String(), true
		case gjson.String:
			if trimmed := strings.TrimSpace(value.Str); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

var _ ports.PayloadNormalizer = (*Normalizer)(nil)
