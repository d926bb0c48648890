package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/ports"
)

// ErrInvalidSince indicates a since filter that is not an ISO-8601 instant.
var ErrInvalidSince = errors.New("invalid since timestamp")

// EventQuery is a parsed read request.
type EventQuery struct {
	Since *time.Time
	All   bool
	Limit int
}

// EventPage is one page of stored events plus store totals.
type EventPage struct {
	Events        []domain.EventRecord
	Count         int
	LastTimestamp *time.Time
	TotalInDB     int64
}

// EventStats summarizes the store.
type EventStats struct {
	TotalEvents int64
}

// EventQueryService serves polling reads over the event store.
type EventQueryService struct {
	storeFactory ports.EventStoreFactory
}

// NewEventQueryService constructs a query service.
func NewEventQueryService(storeFactory ports.EventStoreFactory) *EventQueryService {
	return &EventQueryService{storeFactory: storeFactory}
}

// ParseEventQuery parses raw since, all, and limit query values.
func ParseEventQuery(since, all, limit string) (EventQuery, error) {
	query := EventQuery{
		All:   strings.EqualFold(strings.TrimSpace(all), "true"),
		Limit: domain.DefaultLimit,
	}

	if trimmed := strings.TrimSpace(limit); trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil {
			query.Limit = domain.ClampLimit(parsed)
		}
	}

	if trimmed := strings.TrimSpace(since); trimmed != "" {
		instant, err := domain.ParseInstant(trimmed)
		if err != nil {
			return EventQuery{}, fmt.Errorf("%w: %s", ErrInvalidSince, since)
		}
		query.Since = &instant
	}

	return query, nil
}

// List returns recent or all events, newest first.
func (s *EventQueryService) List(ctx context.Context, query EventQuery) (EventPage, error) {
	store, err := s.storeFactory.Open()
	if err != nil {
		return EventPage{}, fmt.Errorf("open event store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	var events []domain.EventRecord
	if query.All {
		events, err = store.QueryAll(ctx, query.Limit)
	} else {
		events, err = store.QueryRecent(ctx, query.Since, query.Limit)
	}
	if err != nil {
		return EventPage{}, err
	}

	total, err := store.Count(ctx)
	if err != nil {
		return EventPage{}, err
	}

	page := EventPage{Events: events, Count: len(events), TotalInDB: total}
	if len(events) > 0 {
		last := events[0].Timestamp
		page.LastTimestamp = &last
	}
	return page, nil
}

// Stats returns the total stored event count.
func (s *EventQueryService) Stats(ctx context.Context) (EventStats, error) {
	store, err := s.storeFactory.Open()
	if err != nil {
		return EventStats{}, fmt.Errorf("open event store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	total, err := store.Count(ctx)
	if err != nil {
		return EventStats{}, err
	}
	return EventStats{TotalEvents: total}, nil
}
