package db

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fr0stylo/ghevents/internal/db/queries"
	"github.com/fr0stylo/ghevents/internal/observability"
)

// OtherStatement labels any SQL that is not one of the github_events queries.
const OtherStatement = "other"

// latencyWindow is the number of recent samples kept per statement.
const latencyWindow = 256

// eventStatements maps each sqlc query in sql/events.sql to its span operation.
var eventStatements = map[string]string{
	"InsertEvent":     "insert",
	"ListEventsSince": "select",
	"ListEvents":      "select",
	"CountEvents":     "count",
}

// QueryObserver receives the duration of every github_events statement.
type QueryObserver func(name string, duration time.Duration)

// QueryStats summarizes the recent latency of one statement.
type QueryStats struct {
	Name  string
	Count int
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

// classifyStatement reads the sqlc "-- name:" header. Unknown names fold into
// OtherStatement so metric and span names stay bounded.
func classifyStatement(query string) (name, operation string) {
	header, _, _ := strings.Cut(strings.TrimSpace(query), "\n")
	rest, ok := strings.CutPrefix(strings.TrimSpace(header), "-- name:")
	if !ok {
		return OtherStatement, "exec"
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return OtherStatement, "exec"
	}
	if op, known := eventStatements[fields[0]]; known {
		return fields[0], op
	}
	return OtherStatement, "exec"
}

type ring struct {
	samples []time.Duration
	next    int
	total   int
}

func (r *ring) add(d time.Duration) {
	r.total++
	if len(r.samples) < latencyWindow {
		r.samples = append(r.samples, d)
		return
	}
	r.samples[r.next] = d
	r.next = (r.next + 1) % latencyWindow
}

type statementTracker struct {
	mu        sync.Mutex
	rings     map[string]*ring
	observers []QueryObserver
}

func newStatementTracker() *statementTracker {
	return &statementTracker{rings: make(map[string]*ring, len(eventStatements)+1)}
}

func (t *statementTracker) record(name string, d time.Duration) {
	t.mu.Lock()
	r, ok := t.rings[name]
	if !ok {
		r = &ring{}
		t.rings[name] = r
	}
	r.add(d)
	observers := t.observers
	t.mu.Unlock()

	for _, observe := range observers {
		observe(name, d)
	}
}

func (t *statementTracker) subscribe(observer QueryObserver) {
	if observer == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(slices.Clip(t.observers), observer)
}

// stats orders statements slowest first by P95.
func (t *statementTracker) stats() []QueryStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]QueryStats, 0, len(t.rings))
	for name, r := range t.rings {
		sorted := slices.Clone(r.samples)
		slices.Sort(sorted)
		last := len(sorted) - 1
		out = append(out, QueryStats{
			Name:  name,
			Count: r.total,
			P50:   sorted[last/2],
			P95:   sorted[last*95/100],
			Max:   sorted[last],
		})
	}
	slices.SortFunc(out, func(a, b QueryStats) int {
		return cmp.Or(cmp.Compare(b.P95, a.P95), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// tracedDBTX times and traces every statement sqlc issues.
type tracedDBTX struct {
	inner   queries.DBTX
	tracker *statementTracker
}

func (d *tracedDBTX) begin(ctx context.Context, query string) (context.Context, func(error)) {
	name, operation := classifyStatement(query)
	ctx, span := observability.StartDBSpan(ctx, name, operation)
	start := time.Now()
	return ctx, func(err error) {
		d.tracker.record(name, time.Since(start))
		span.RecordError(err)
		span.End()
	}
}

func (d *tracedDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctx, done := d.begin(ctx, query)
	result, err := d.inner.ExecContext(ctx, query, args...)
	done(err)
	return result, err
}

func (d *tracedDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	ctx, done := d.begin(ctx, query)
	stmt, err := d.inner.PrepareContext(ctx, query)
	done(err)
	return stmt, err
}

func (d *tracedDBTX) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	ctx, done := d.begin(ctx, query)
	rows, err := d.inner.QueryContext(ctx, query, args...)
	done(err)
	return rows, err
}

func (d *tracedDBTX) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	ctx, done := d.begin(ctx, query)
	row := d.inner.QueryRowContext(ctx, query, args...)
	done(row.Err())
	return row
}

// QueryLatencyStats returns the recent latency of each statement run so far.
func (c *Database) QueryLatencyStats() []QueryStats {
	if c == nil || c.tracker == nil {
		return nil
	}
	return c.tracker.stats()
}

// ObserveQueries forwards every statement duration to observer.
func (c *Database) ObserveQueries(observer QueryObserver) {
	if c == nil || c.tracker == nil {
		return
	}
	c.tracker.subscribe(observer)
}
