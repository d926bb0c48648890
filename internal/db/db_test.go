package db

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fr0stylo/ghevents/internal/db/queries"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "events-test"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

func TestSQLiteDSNIncludesPragmasAndExtraParams(t *testing.T) {
	t.Parallel()

	dsn := sqliteDSN("data/test", "&_txlock=immediate", "broken", "  ")
	if !strings.HasPrefix(dsn, "file:data/test.sqlite?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	values, err := url.ParseQuery(strings.SplitN(dsn, "?", 2)[1])
	if err != nil {
		t.Fatalf("parse dsn query: %v", err)
	}
	if values.Get("_txlock") != "immediate" {
		t.Fatalf("expected extra param, got %v", values)
	}
	pragmas := strings.Join(values["_pragma"], ",")
	for _, want := range []string{"journal_mode(WAL)", "busy_timeout(5000)"} {
		if !strings.Contains(pragmas, want) {
			t.Fatalf("expected pragma %s in %s", want, pragmas)
		}
	}
}

func TestInsertEventIgnoresDuplicateRequestID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	first := queries.InsertEventParams{
		RequestID:  "abc123",
		Author:     "alice",
		Action:     "PUSH",
		FromBranch: "main",
		ToBranch:   "main",
		EventTsMs:  1706283000000,
	}
	inserted, err := database.InsertEvent(ctx, first)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if !inserted {
		t.Fatal("expected first insert to write a row")
	}

	second := first
	second.Author = "mallory"
	inserted, err = database.InsertEvent(ctx, second)
	if err != nil {
		t.Fatalf("insert duplicate: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate insert to be skipped")
	}

	stored, err := database.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(stored) != 1 || stored[0].RequestID != "abc123" || stored[0].Author != "alice" {
		t.Fatalf("duplicate altered stored rows: %+v", stored)
	}

	count, err := database.CountEvents(ctx)
	if err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("unexpected count: got=%d want=1", count)
	}
}

func TestInsertEventRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	_, err := database.InsertEvent(context.Background(), queries.InsertEventParams{
		RequestID:  "x",
		Author:     "a",
		Action:     "DELETE",
		FromBranch: "main",
		ToBranch:   "main",
		EventTsMs:  1,
	})
	if err == nil {
		t.Fatal("expected check constraint violation")
	}
}

func TestListEventsOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	for i, ts := range []int64{1000, 3000, 2000, 3000} {
		_, err := database.InsertEvent(ctx, queries.InsertEventParams{
			RequestID:  "evt-" + string(rune('a'+i)),
			Author:     "alice",
			Action:     "PUSH",
			FromBranch: "main",
			ToBranch:   "main",
			EventTsMs:  ts,
		})
		if err != nil {
			t.Fatalf("insert event %d: %v", i, err)
		}
	}

	rows, err := database.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.RequestID)
	}
	if strings.Join(got, ",") != "evt-d,evt-b,evt-c,evt-a" {
		t.Fatalf("unexpected order: %v", got)
	}

	since, err := database.ListEventsSince(ctx, 2000, 10)
	if err != nil {
		t.Fatalf("list events since: %v", err)
	}
	if len(since) != 2 || since[0].RequestID != "evt-d" || since[1].RequestID != "evt-b" {
		t.Fatalf("unexpected since rows: %+v", since)
	}
}

func TestQueryObserverReceivesStatementNames(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)

	var mu sync.Mutex
	seen := map[string]int{}
	database.ObserveQueries(func(name string, _ time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		seen[name]++
	})

	if _, err := database.CountEvents(context.Background()); err != nil {
		t.Fatalf("count events: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if seen["CountEvents"] != 1 {
		t.Fatalf("expected CountEvents observation, got %v", seen)
	}

	stats := database.QueryLatencyStats()
	if len(stats) != 1 || stats[0].Name != "CountEvents" || stats[0].Count != 1 {
		t.Fatalf("unexpected latency stats: %+v", stats)
	}
}

func TestClassifyStatementKnowsEventQueries(t *testing.T) {
	t.Parallel()

	cases := map[string][2]string{
		"-- name: InsertEvent :execrows\nINSERT INTO x": {"InsertEvent", "insert"},
		"\n-- name: ListEvents :many\n":                 {"ListEvents", "select"},
		"-- name: ListEventsSince :many":                {"ListEventsSince", "select"},
		"-- name: CountEvents :one":                     {"CountEvents", "count"},
		"-- name: DropEverything :exec":                 {OtherStatement, "exec"},
		"SELECT 1":                                      {OtherStatement, "exec"},
		"-- name:":                                      {OtherStatement, "exec"},
	}
	for query, want := range cases {
		name, op := classifyStatement(query)
		if name != want[0] || op != want[1] {
			t.Fatalf("classifyStatement(%q): got=%s/%s want=%s/%s", query, name, op, want[0], want[1])
		}
	}
}

func TestStatementTrackerKeepsBoundedWindow(t *testing.T) {
	t.Parallel()

	tracker := newStatementTracker()
	for i := range latencyWindow + 10 {
		tracker.record("ListEvents", time.Duration(i+1)*time.Microsecond)
	}
	tracker.record("CountEvents", time.Second)

	stats := tracker.stats()
	if len(stats) != 2 || stats[0].Name != "CountEvents" {
		t.Fatalf("expected slowest statement first: %+v", stats)
	}
	list := stats[1]
	if list.Count != latencyWindow+10 {
		t.Fatalf("count should include evicted samples: %d", list.Count)
	}
	if list.Max != time.Duration(latencyWindow+10)*time.Microsecond {
		t.Fatalf("unexpected max: %v", list.Max)
	}
	if list.P50 <= 10*time.Microsecond {
		t.Fatalf("oldest samples should be evicted, p50=%v", list.P50)
	}
	if len(tracker.rings["ListEvents"].samples) != latencyWindow {
		t.Fatalf("window grew past %d", latencyWindow)
	}
}

func TestHandleOpensOnceAndReopensAfterClose(t *testing.T) {
	t.Parallel()

	handle := NewHandle(filepath.Join(t.TempDir(), "lazy"))
	if handle.Opened() {
		t.Fatal("handle must not open before first use")
	}

	opens := 0
	handle.OnOpen(func(*Database) { opens++ })

	var wg sync.WaitGroup
	results := make([]*Database, 8)
	for i := range results {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			database, err := handle.Get()
			if err != nil {
				t.Errorf("get handle: %v", err)
				return
			}
			results[index] = database
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent first use opened more than one database")
		}
	}
	if opens != 1 {
		t.Fatalf("unexpected open count: got=%d want=1", opens)
	}

	if err := handle.Close(); err != nil {
		t.Fatalf("close handle: %v", err)
	}
	if handle.Opened() {
		t.Fatal("expected handle to be closed")
	}

	reopened, err := handle.Get()
	if err != nil {
		t.Fatalf("reopen handle: %v", err)
	}
	t.Cleanup(func() {
		_ = handle.Close()
	})
	if reopened == results[0] {
		t.Fatal("expected a fresh database after close")
	}
	if opens != 2 {
		t.Fatalf("unexpected open count after reopen: got=%d want=2", opens)
	}
}
