package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/ports"
	"github.com/fr0stylo/ghevents/internal/db/queries"
)

type eventStore struct {
	db           eventDatabase
	closeFn      func() error
	recentWindow time.Duration
	now          func() time.Time
}

func newEventStore(database eventDatabase, closeFn func() error, recentWindow time.Duration, now func() time.Time) *eventStore {
	if now == nil {
		now = time.Now
	}
	return &eventStore{db: database, closeFn: closeFn, recentWindow: normalizeWindow(recentWindow), now: now}
}

func (s *eventStore) Insert(ctx context.Context, record domain.EventRecord) (domain.InsertOutcome, error) {
	if err := record.Validate(); err != nil {
		return 0, err
	}
	inserted, err := s.db.InsertEvent(ctx, queries.InsertEventParams{
		RequestID:  record.RequestID,
		Author:     record.Author,
		Action:     record.Action.String(),
		FromBranch: record.FromBranch,
		ToBranch:   record.ToBranch,
		EventTsMs:  domain.NormalizeInstant(record.Timestamp).UnixMilli(),
	})
	if err != nil {
		return 0, fmt.Errorf("insert event %s: %w", record.RequestID, err)
	}
	if !inserted {
		return domain.DuplicateSkipped, nil
	}
	return domain.Inserted, nil
}

func (s *eventStore) QueryRecent(ctx context.Context, since *time.Time, limit int) ([]domain.EventRecord, error) {
	cutoff := s.now().Add(-s.recentWindow)
	if since != nil {
		cutoff = *since
	}
	rows, err := s.db.ListEventsSince(ctx, domain.NormalizeInstant(cutoff).UnixMilli(), domain.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	return mapEventRows(rows)
}

func (s *eventStore) QueryAll(ctx context.Context, limit int) ([]domain.EventRecord, error) {
	rows, err := s.db.ListEvents(ctx, domain.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return mapEventRows(rows)
}

func (s *eventStore) Count(ctx context.Context) (int64, error) {
	count, err := s.db.CountEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (s *eventStore) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func mapEventRows(rows []queries.GithubEvent) ([]domain.EventRecord, error) {
	out := make([]domain.EventRecord, 0, len(rows))
	for _, row := range rows {
		action, err := domain.ParseAction(row.Action)
		if err != nil {
			return nil, fmt.Errorf("stored event %s: %w", row.RequestID, err)
		}
		out = append(out, domain.EventRecord{
			RequestID:  row.RequestID,
			Author:     row.Author,
			Action:     action,
			FromBranch: row.FromBranch,
			ToBranch:   row.ToBranch,
			Timestamp:  time.UnixMilli(row.EventTsMs).UTC(),
		})
	}
	return out, nil
}

var _ ports.EventStore = (*eventStore)(nil)
