package db

import (
	"fmt"
	"sync"
)

// Handle is a process-wide database connection opened on first use.
type Handle struct {
	path       string
	openParams []string

	mu       sync.Mutex
	database *Database
	onOpen   []func(*Database)
}

// NewHandle prepares a lazily opened database at path. Nothing is opened
// until Get is called.
func NewHandle(path string, openParams ...string) *Handle {
	return &Handle{path: path, openParams: openParams}
}

// OnOpen registers fn to run each time the handle opens a connection.
func (h *Handle) OnOpen(fn func(*Database)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOpen = append(h.onOpen, fn)
	if h.database != nil {
		fn(h.database)
	}
}

// Get returns the shared database, opening and migrating it on first use.
// Concurrent first callers share a single open.
func (h *Handle) Get() (*Database, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.database != nil {
		return h.database, nil
	}
	database, err := New(h.path, h.openParams...)
	if err != nil {
		return nil, fmt.Errorf("open shared database: %w", err)
	}
	for _, fn := range h.onOpen {
		fn(database)
	}
	h.database = database
	return database, nil
}

// Opened reports whether the connection has been established.
func (h *Handle) Opened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.database != nil
}

// Current returns the open database without opening one.
func (h *Handle) Current() (*Database, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.database, h.database != nil
}

// Close tears down the shared connection. A later Get opens a new one.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.database == nil {
		return nil
	}
	err := h.database.Close()
	h.database = nil
	return err
}
