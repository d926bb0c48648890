package ports

import (
	"context"
	"time"

	"github.com/fr0stylo/ghevents/internal/app/domain"
)

// EventStore persists normalized GitHub events.
type EventStore interface {
	// Insert stores record unless its request id already exists.
	Insert(ctx context.Context, record domain.EventRecord) (domain.InsertOutcome, error)
	// QueryRecent lists records newer than since, or newer than the recent
	// window when since is nil. Newest first.
	QueryRecent(ctx context.Context, since *time.Time, limit int) ([]domain.EventRecord, error)
	// QueryAll lists records newest first without a time filter.
	QueryAll(ctx context.Context, limit int) ([]domain.EventRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

// EventStoreFactory creates request-scoped event stores.
type EventStoreFactory interface {
	Open() (EventStore, error)
}

// PayloadNormalizer maps a raw webhook delivery to an event record.
type PayloadNormalizer interface {
	Normalize(eventKind string, payload []byte) (domain.EventRecord, bool)
}
