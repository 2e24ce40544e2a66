package collectors

import (
	"context"
	"sync"
	"sync/atomic"

	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
)

// MockSource implements Source for testing. All fields are configurable
// and it tracks how many times Fetch has been called.
type MockSource struct {
	name   string
	record stats.Record
	err    error

	mu        sync.RWMutex
	callCount atomic.Int64
	lastUser  atomic.Value

	// FetchFunc, if set, overrides the default Fetch behavior. This allows
	// tests to inject dynamic behavior (e.g., block until a signal).
	FetchFunc func(ctx context.Context, username string) (stats.Record, error)
}

// MockSourceOption configures a MockSource.
type MockSourceOption func(*MockSource)

// WithRecord sets the record returned by Fetch.
func WithRecord(r stats.Record) MockSourceOption {
	return func(m *MockSource) { m.record = r }
}

// WithError sets the error returned by Fetch.
func WithError(err error) MockSourceOption {
	return func(m *MockSource) { m.err = err }
}

// WithFetchFunc sets a custom function for Fetch.
func WithFetchFunc(fn func(ctx context.Context, username string) (stats.Record, error)) MockSourceOption {
	return func(m *MockSource) { m.FetchFunc = fn }
}

// NewMockSource creates a mock source with the given name and options.
func NewMockSource(name string, opts ...MockSourceOption) *MockSource {
	m := &MockSource{name: name}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *MockSource) Name() string { return m.name }

// SetRecord updates the returned record (thread-safe).
func (m *MockSource) SetRecord(r stats.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = r
}

// SetError updates the returned error (thread-safe).
func (m *MockSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Fetch performs a mock fetch. It increments the call counter and returns
// the configured record and error, or delegates to FetchFunc if set.
func (m *MockSource) Fetch(ctx context.Context, username string) (stats.Record, error) {
	m.callCount.Add(1)
	m.lastUser.Store(username)

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, username)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record, m.err
}

// CallCount returns how many times Fetch has been called.
func (m *MockSource) CallCount() int64 {
	return m.callCount.Load()
}

// LastUsername returns the username passed to the most recent Fetch.
func (m *MockSource) LastUsername() string {
	v, _ := m.lastUser.Load().(string)
	return v
}
