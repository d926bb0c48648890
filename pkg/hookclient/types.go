package hookclient

import (
	"net/http"
	"time"
)

// Client posts GitHub-style webhook deliveries to a receiver.
type Client struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Delivery is the receiver's answer to one posted payload.
type Delivery struct {
	ID     string
	Status int
	Body   []byte
}

// PushSample describes a synthetic push delivery.
type PushSample struct {
	Branch    string
	CommitID  string
	Author    string
	Timestamp time.Time
}

// PullRequestSample describes a synthetic pull_request delivery.
type PullRequestSample struct {
	Action    string
	Number    int
	Merged    bool
	Author    string
	Head      string
	Base      string
	Timestamp time.Time
}
