package sqlite

import (
	"time"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/ports"
	"github.com/fr0stylo/ghevents/internal/db"
)

// EventStoreFactory opens sqlite-backed event stores.
type EventStoreFactory struct {
	dbPath       string
	handle       *db.Handle
	recentWindow time.Duration
	now          func() time.Time
}

// NewEventStoreFactory creates a factory backed by a database path.
// Opened stores own and close their DB handle.
func NewEventStoreFactory(dbPath string, recentWindow time.Duration) *EventStoreFactory {
	return &EventStoreFactory{dbPath: dbPath, recentWindow: normalizeWindow(recentWindow), now: time.Now}
}

// NewSharedEventStoreFactory creates a factory backed by the process-wide lazy handle.
// Opened stores do not close the shared handle.
func NewSharedEventStoreFactory(handle *db.Handle, recentWindow time.Duration) *EventStoreFactory {
	return &EventStoreFactory{handle: handle, recentWindow: normalizeWindow(recentWindow), now: time.Now}
}

// Open creates a request-scoped sqlite event store.
func (f *EventStoreFactory) Open() (ports.EventStore, error) {
	if f.handle != nil {
		database, err := f.handle.Get()
		if err != nil {
			return nil, err
		}
		return newEventStore(database, nil, f.recentWindow, f.now), nil
	}
	database, err := db.New(f.dbPath)
	if err != nil {
		return nil, err
	}
	return newEventStore(database, database.Close, f.recentWindow, f.now), nil
}

func normalizeWindow(window time.Duration) time.Duration {
	if window <= 0 {
		return domain.DefaultRecentWindow
	}
	return window
}

var _ ports.EventStoreFactory = (*EventStoreFactory)(nil)
