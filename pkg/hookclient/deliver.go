package hookclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v81/github"
	"github.com/google/uuid"
)

const webhookPath = "/webhook"

// Deliver posts payload as a GitHub delivery of the given event kind.
// Receiver responses of 300 and above are returned with an error.
func (c Client) Deliver(ctx context.Context, eventKind string, payload []byte) (Delivery, error) {
	endpoint := strings.TrimSpace(c.Endpoint)
	eventKind = strings.TrimSpace(eventKind)
	if endpoint == "" || eventKind == "" {
		return Delivery{}, fmt.Errorf("endpoint and event kind are required")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	requestURL := strings.TrimRight(endpoint, "/")
	if !strings.HasSuffix(requestURL, webhookPath) {
		requestURL += webhookPath
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return Delivery{}, fmt.Errorf("build request: %w", err)
	}

	delivery := Delivery{ID: uuid.NewString()}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "GitHub-Hookshot/ghevents")
	req.Header.Set(gh.EventTypeHeader, eventKind)
	req.Header.Set(gh.DeliveryIDHeader, delivery.ID)

	resp, err := httpClient.Do(req)
	if err != nil {
		return delivery, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	delivery.Status = resp.StatusCode
	delivery.Body, _ = io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= http.StatusMultipleChoices {
		return delivery, fmt.Errorf("webhook rejected: status=%s body=%s", resp.Status, strings.TrimSpace(string(delivery.Body)))
	}
	return delivery, nil
}
