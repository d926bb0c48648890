package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gh "github.com/google/go-github/v81/github"
	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/ghevents/internal/adapters/sqlite"
	portmocks "github.com/fr0stylo/ghevents/internal/app/ports/mocks"
	"github.com/fr0stylo/ghevents/internal/app/services"
	"github.com/fr0stylo/ghevents/internal/db"
	"github.com/fr0stylo/ghevents/internal/githubbridge"
)

type routeFixture struct {
	e *echo.Echo
}

func newRouteFixture(t *testing.T) routeFixture {
	t.Helper()

	handle := db.NewHandle(filepath.Join(t.TempDir(), "routes"))
	t.Cleanup(func() {
		_ = handle.Close()
	})
	factory := sqlite.NewSharedEventStoreFactory(handle, 15*time.Second)
	e := echo.New()
	NewWebhookRoutes(services.NewWebhookIntakeService(githubbridge.NewNormalizer(), factory), nil).RegisterRoutes(e)
	NewEventRoutes(services.NewEventQueryService(factory)).RegisterRoutes(e)
	NewSystemRoutes(http.NotFoundHandler()).RegisterRoutes(e)
	return routeFixture{e: e}
}

func (f routeFixture) do(t *testing.T, method, target, kind, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if kind != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(gh.EventTypeHeader, kind)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func pushBody(commitID, timestamp string) string {
	return fmt.Sprintf(`{"ref": "refs/heads/main", "head_commit": {"id": %q, "timestamp": %q}, "pusher": {"name": "alice"}}`, commitID, timestamp)
}

func TestWebhookThenEventsEndToEnd(t *testing.T) {
	t.Parallel()

	f := newRouteFixture(t)

	rec := f.do(t, http.MethodPost, "/webhook", "push", pushBody("abc123", "2024-01-26T15:30:00Z"))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected webhook status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	first := decodeBody[map[string]string](t, rec)
	if first["status"] != "success" || first["request_id"] != "abc123" || first["action"] != "PUSH" {
		t.Fatalf("unexpected first response: %v", first)
	}

	rec = f.do(t, http.MethodPost, "/webhook", "push", pushBody("abc123", "2024-01-26T15:30:00Z"))
	if second := decodeBody[map[string]string](t, rec); second["status"] != "duplicate" {
		t.Fatalf("unexpected second response: %v", second)
	}

	rec = f.do(t, http.MethodGet, "/events?all=true", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected events status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	page := decodeBody[EventsResponse](t, rec)
	if page.Status != "success" || page.Count != 1 || page.TotalInDB != 1 || len(page.Events) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	event := page.Events[0]
	if event.RequestID != "abc123" || event.Author != "alice" || event.Action != "PUSH" || event.FromBranch != "main" || event.ToBranch != "main" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Timestamp != "2024-01-26T15:30:00Z" {
		t.Fatalf("unexpected timestamp: %q", event.Timestamp)
	}
	if page.LastTimestamp == nil || *page.LastTimestamp != "2024-01-26T15:30:00Z" {
		t.Fatalf("unexpected last timestamp: %v", page.LastTimestamp)
	}

	rec = f.do(t, http.MethodGet, "/events/stats", "", "")
	stats := decodeBody[StatsResponse](t, rec)
	if rec.Code != http.StatusOK || stats.Status != "success" || stats.TotalEvents != 1 {
		t.Fatalf("unexpected stats: code=%d %+v", rec.Code, stats)
	}
}

func TestEventsRecentWindowIsDefault(t *testing.T) {
	t.Parallel()

	f := newRouteFixture(t)
	f.do(t, http.MethodPost, "/webhook", "push", pushBody("old", "2024-01-26T15:30:00Z"))

	rec := f.do(t, http.MethodGet, "/events", "", "")
	page := decodeBody[EventsResponse](t, rec)
	if page.Count != 0 || page.TotalInDB != 1 || page.LastTimestamp != nil {
		t.Fatalf("old events must fall outside the recent window: %+v", page)
	}
	if page.Events == nil {
		t.Fatal("events must serialize as an empty list")
	}

	rec = f.do(t, http.MethodGet, "/events?since=2024-01-01T00:00:00Z", "", "")
	if page = decodeBody[EventsResponse](t, rec); page.Count != 1 {
		t.Fatalf("since filter should include the event: %+v", page)
	}
}

func TestEventsRejectsInvalidSince(t *testing.T) {
	t.Parallel()

	f := newRouteFixture(t)
	rec := f.do(t, http.MethodGet, "/events?since=not-a-date", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["status"] != "error" || body["message"] != "Invalid timestamp format: not-a-date" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestEventsLimitIsClamped(t *testing.T) {
	t.Parallel()

	f := newRouteFixture(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 102; i++ {
		ts := base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
		rec := f.do(t, http.MethodPost, "/webhook", "push", pushBody(fmt.Sprintf("c%03d", i), ts))
		if rec.Code != http.StatusOK {
			t.Fatalf("seed %d: unexpected status %d", i, rec.Code)
		}
	}

	cases := map[string]int{
		"/events?all=true&limit=0":   1,
		"/events?all=true&limit=500": 100,
		"/events?all=true&limit=abc": 50,
		"/events?all=true":           50,
	}
	for target, want := range cases {
		page := decodeBody[EventsResponse](t, f.do(t, http.MethodGet, target, "", ""))
		if page.Count != want || page.TotalInDB != 102 {
			t.Fatalf("%s: got count=%d total=%d want count=%d", target, page.Count, page.TotalInDB, want)
		}
		if page.Events[0].RequestID != "c101" {
			t.Fatalf("%s: newest event should lead, got %s", target, page.Events[0].RequestID)
		}
	}
}

func TestEventsStoreFaultsReturnGenericErrors(t *testing.T) {
	t.Parallel()

	factory := portmocks.NewMockEventStoreFactory(t)
	factory.EXPECT().Open().Return(nil, errors.New("unable to open database file")).Times(2)

	e := echo.New()
	NewEventRoutes(services.NewEventQueryService(factory)).RegisterRoutes(e)

	for target, message := range map[string]string{
		"/events":       "Failed to fetch events",
		"/events/stats": "Failed to fetch statistics",
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: unexpected status: got=%d want=%d", target, rec.Code, http.StatusInternalServerError)
		}
		body := decodeBody[map[string]string](t, rec)
		if body["status"] != "error" || body["message"] != message {
			t.Fatalf("%s: unexpected body: %v", target, body)
		}
	}
}

func TestWebhookInfoAndHealth(t *testing.T) {
	t.Parallel()

	f := newRouteFixture(t)

	rec := f.do(t, http.MethodGet, "/webhook", "", "")
	info := decodeBody[WebhookInfo](t, rec)
	if rec.Code != http.StatusOK || info.Endpoint != "/webhook" || info.Method != http.MethodPost {
		t.Fatalf("unexpected webhook info: code=%d %+v", rec.Code, info)
	}
	if strings.Join(info.SupportedEvents, ",") != "push,pull_request" || len(info.Headers.Required) != 2 {
		t.Fatalf("unexpected webhook info details: %+v", info)
	}

	rec = f.do(t, http.MethodGet, "/health", "", "")
	health := decodeBody[map[string]string](t, rec)
	if rec.Code != http.StatusOK || health["status"] != "healthy" || health["service"] != "github-webhook-receiver" {
		t.Fatalf("unexpected health: code=%d %v", rec.Code, health)
	}
}

func TestSystemRoutesSkipMetricsWhenDisabled(t *testing.T) {
	t.Parallel()

	e := echo.New()
	NewSystemRoutes(nil).RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}
