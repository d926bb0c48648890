package sqlite

import (
	"context"

	"github.com/fr0stylo/ghevents/internal/db/queries"
)

type eventDatabase interface {
	InsertEvent(ctx context.Context, params queries.InsertEventParams) (bool, error)
	ListEventsSince(ctx context.Context, sinceMs int64, limit int) ([]queries.GithubEvent, error)
	ListEvents(ctx context.Context, limit int) ([]queries.GithubEvent, error)
	CountEvents(ctx context.Context) (int64, error)
}
