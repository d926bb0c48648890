package domain

import (
	"errors"
	"testing"
	"time"
)

func validRecord() EventRecord {
	return EventRecord{
		RequestID:  "abc123",
		Author:     "alice",
		Action:     ActionPush,
		FromBranch: "main",
		ToBranch:   "main",
		Timestamp:  time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
	}
}

func TestEventRecordValidate(t *testing.T) {
	t.Parallel()

	if err := validRecord().Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	cases := map[string]func(*EventRecord){
		"blank request id": func(r *EventRecord) { r.RequestID = "   " },
		"blank author":     func(r *EventRecord) { r.Author = "" },
		"blank from":       func(r *EventRecord) { r.FromBranch = "\t" },
		"blank to":         func(r *EventRecord) { r.ToBranch = "" },
		"bad action":       func(r *EventRecord) { r.Action = "DELETE" },
		"zero timestamp":   func(r *EventRecord) { r.Timestamp = time.Time{} },
	}
	for name, mutate := range cases {
		record := validRecord()
		mutate(&record)
		err := record.Validate()
		if !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("%s: expected ErrInvalidRecord, got %v", name, err)
		}
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	action, err := ParseAction(" pull_request ")
	if err != nil {
		t.Fatalf("parse action: %v", err)
	}
	if action != ActionPullRequest {
		t.Fatalf("unexpected action: %q", action)
	}
	if _, err := ParseAction("CLOSED"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	cases := map[int]int{-5: 1, 0: 1, 1: 1, 50: 50, 100: 100, 500: 100}
	for input, want := range cases {
		if got := ClampLimit(input); got != want {
			t.Fatalf("ClampLimit(%d): got=%d want=%d", input, got, want)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	t.Parallel()

	parsed, err := ParseInstant("2024-01-26T15:30:00Z")
	if err != nil {
		t.Fatalf("parse instant: %v", err)
	}
	want := time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) || parsed.Location() != time.UTC {
		t.Fatalf("unexpected instant: %v", parsed)
	}
	if got := FormatTimestamp(parsed); got != "2024-01-26T15:30:00Z" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestParseInstantConvertsOffsetsToUTC(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Time{
		"2024-01-26T21:00:00+05:30":      time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
		"2024-01-26T10:30:00-05:00":      time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
		"2024-01-26T15:30:00":            time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
		"2024-01-26 15:30:00":            time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
		"2024-01-26T15:30:00.123456Z":    time.Date(2024, 1, 26, 15, 30, 0, 123000000, time.UTC),
		"2024-01-26":                     time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC),
		"2024-01-26T15:30:00.5+00:00":    time.Date(2024, 1, 26, 15, 30, 0, 500000000, time.UTC),
		"  2024-01-26T15:30:00+0000  ":   time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
		"2024-01-26T15:30+01:00":         time.Date(2024, 1, 26, 14, 30, 0, 0, time.UTC),
		"2024-01-26T15:30:00.000000001Z": time.Date(2024, 1, 26, 15, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		got, err := ParseInstant(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: got=%v want=%v", raw, got, want)
		}
	}
}

func TestParseInstantRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-a-date", "2024-13-01T00:00:00Z", "26/01/2024"} {
		if _, err := ParseInstant(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseTimestampFallsBackToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 8, 0, 0, 987654321, time.FixedZone("CET", 3600))
	clock := func() time.Time { return now }

	for _, raw := range []string{"", "garbage"} {
		got := ParseTimestamp(raw, clock)
		want := time.Date(2025, 3, 1, 7, 0, 0, 987000000, time.UTC)
		if !got.Equal(want) || got.Location() != time.UTC {
			t.Fatalf("fallback for %q: got=%v want=%v", raw, got, want)
		}
	}
}

func TestFormatTimestampWithFraction(t *testing.T) {
	t.Parallel()

	value := time.Date(2024, 1, 26, 15, 30, 0, 123000000, time.UTC)
	if got := FormatTimestamp(value); got != "2024-01-26T15:30:00.123000Z" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestDocumentUsesWireNames(t *testing.T) {
	t.Parallel()

	doc := validRecord().Document()
	if doc.Timestamp != "2024-01-26T15:30:00Z" || doc.Action != ActionPush || doc.RequestID != "abc123" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}
