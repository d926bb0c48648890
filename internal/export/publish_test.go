package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	cdeventsv05 "github.com/cdevents/sdk-go/pkg/api/v05"
	cebinding "github.com/cloudevents/sdk-go/v2/binding"
	ceevent "github.com/cloudevents/sdk-go/v2/event"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/fr0stylo/ghevents/internal/app/domain"
)

func TestPublisherPostsStructuredCloudEvents(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		received []ceevent.Event
	)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event, err := cebinding.ToEvent(r.Context(), cehttp.NewMessageFromHttpRequest(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = append(received, *event)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(sink.Close)

	sent, err := Publisher{Endpoint: sink.URL, Source: "tests/source", Format: FormatCloudEvents}.Publish(context.Background(), sampleRecords())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected two published records, got %d", sent)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("expected two received events, got %d", len(received))
	}
	if received[0].ID() != "MERGE-7" || received[0].Type() != "com.github.ghevents.merge" {
		t.Fatalf("unexpected first event: %s", received[0])
	}
	var doc domain.EventDocument
	if err := received[1].DataAs(&doc); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if doc.RequestID != "abc123" || doc.Author != "alice" {
		t.Fatalf("unexpected data: %+v", doc)
	}
}

func TestPublisherPostsCDEvents(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		types []string
	)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		event, err := cdeventsv05.NewFromJsonBytes(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		types = append(types, event.GetType().String())
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(sink.Close)

	if _, err := (Publisher{Endpoint: sink.URL, Format: FormatCDEvents}).Publish(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(types) != 2 || !strings.HasPrefix(types[0], "dev.cdevents.change.merged.") || !strings.HasPrefix(types[1], "dev.cdevents.change.updated.") {
		t.Fatalf("unexpected types: %v", types)
	}
}

func TestPublisherStopsAtRejection(t *testing.T) {
	t.Parallel()

	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(sink.Close)

	sent, err := Publisher{Endpoint: sink.URL}.Publish(context.Background(), sampleRecords())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected sink rejection, got %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected no accepted records, got %d", sent)
	}

	if _, err := (Publisher{Endpoint: sink.URL, Format: FormatTable}).Publish(context.Background(), sampleRecords()); err == nil {
		t.Fatal("expected table format to be unpublishable")
	}
	if _, err := (Publisher{}).Publish(context.Background(), nil); err == nil {
		t.Fatal("expected missing endpoint error")
	}
}
