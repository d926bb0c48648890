package db

import (
	"context"

	"github.com/fr0stylo/ghevents/internal/db/queries"
)

// InsertEvent appends an event unless its request id exists and reports
// whether a row was written.
func (c *Database) InsertEvent(ctx context.Context, params queries.InsertEventParams) (bool, error) {
	affected, err := c.Queries.InsertEvent(ctx, params)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListEventsSince returns events newer than sinceMs, newest first.
func (c *Database) ListEventsSince(ctx context.Context, sinceMs int64, limit int) ([]queries.GithubEvent, error) {
	return c.Queries.ListEventsSince(ctx, queries.ListEventsSinceParams{EventTsMs: sinceMs, Limit: int64(limit)})
}

// ListEvents returns the newest events.
func (c *Database) ListEvents(ctx context.Context, limit int) ([]queries.GithubEvent, error) {
	return c.Queries.ListEvents(ctx, int64(limit))
}
