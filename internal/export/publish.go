package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fr0stylo/ghevents/internal/app/domain"
)

const contentTypeCloudEvents = "application/cloudevents+json"

// Publisher posts records to an HTTP sink, one request per record.
// cloudevents uses structured-mode CloudEvents; cdevents posts the CDEvent JSON.
type Publisher struct {
	Endpoint   string
	Source     string
	Format     Format
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Publish delivers records in order and stops at the first rejected one.
// It returns how many records were accepted.
func (p Publisher) Publish(ctx context.Context, records []domain.EventRecord) (int, error) {
	endpoint := strings.TrimSpace(p.Endpoint)
	if endpoint == "" {
		return 0, fmt.Errorf("sink endpoint is required")
	}
	source := strings.TrimSpace(p.Source)
	if source == "" {
		source = DefaultSource
	}

	httpClient := p.HTTPClient
	if httpClient == nil {
		timeout := p.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	for index, record := range records {
		body, contentType, err := p.encode(record, source)
		if err != nil {
			return index, fmt.Errorf("encode %s: %w", record.RequestID, err)
		}
		if err := post(ctx, httpClient, endpoint, contentType, body); err != nil {
			return index, fmt.Errorf("publish %s: %w", record.RequestID, err)
		}
	}
	return len(records), nil
}

func (p Publisher) encode(record domain.EventRecord, source string) ([]byte, string, error) {
	switch p.Format {
	case FormatCloudEvents, "":
		body, err := CloudEvent(record, source)
		return body, contentTypeCloudEvents, err
	case FormatCDEvents:
		body, err := CDEvent(record, source)
		return body, "application/json", err
	default:
		return nil, "", fmt.Errorf("format %q cannot be published", p.Format)
	}
}

func post(ctx context.Context, client *http.Client, endpoint, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sink rejected: status=%s body=%s", resp.Status, strings.TrimSpace(string(payload)))
	}
	return nil
}
