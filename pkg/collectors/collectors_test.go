package collectors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
)

// --- MockSource ---

func TestMockSourceReturnsRecord(t *testing.T) {
	m := NewMockSource("mock", WithRecord(stats.Record{Repos: 7}))
	rec, err := m.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rec.Repos != 7 {
		t.Errorf("Repos = %d, want 7", rec.Repos)
	}
	if m.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", m.CallCount())
	}
	if m.LastUsername() != "octocat" {
		t.Errorf("LastUsername = %q, want %q", m.LastUsername(), "octocat")
	}
}

func TestMockSourceError(t *testing.T) {
	m := NewMockSource("mock", WithError(fmt.Errorf("mock: %w", ErrUserNotFound)))
	_, err := m.Fetch(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestMockSourceFetchFunc(t *testing.T) {
	m := NewMockSource("mock", WithFetchFunc(func(ctx context.Context, u string) (stats.Record, error) {
		return stats.Record{TopLanguage: u}, nil
	}))
	rec, _ := m.Fetch(context.Background(), "Zig")
	if rec.TopLanguage != "Zig" {
		t.Errorf("TopLanguage = %q, want %q", rec.TopLanguage, "Zig")
	}
}

func TestMockSourceConcurrentSetters(t *testing.T) {
	m := NewMockSource("mock")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			m.SetRecord(stats.Record{Stars: n})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = m.Fetch(context.Background(), "x")
		}()
	}
	wg.Wait()
	if m.CallCount() != 10 {
		t.Errorf("CallCount = %d, want 10", m.CallCount())
	}
}

// --- Tracked ---

func TestTrackedRecordsStatus(t *testing.T) {
	m := NewMockSource("github", WithRecord(stats.Record{Followers: 3}))
	tr := Track(m)

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	tr.now = func() time.Time {
		calls++
		return clock.Add(time.Duration(calls) * 150 * time.Millisecond)
	}

	if _, err := tr.Fetch(context.Background(), "octocat"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	st := tr.Status()
	if st.Name != "github" || !st.Healthy || st.RunCount != 1 || st.ErrorCount != 0 {
		t.Errorf("status after success = %+v", st)
	}
	if st.LastLatency != 150*time.Millisecond {
		t.Errorf("LastLatency = %v, want 150ms", st.LastLatency)
	}

	m.SetError(ErrUserNotFound)
	if _, err := tr.Fetch(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Fetch err = %v", err)
	}
	st = tr.Status()
	if st.Healthy || st.RunCount != 2 || st.ErrorCount != 1 {
		t.Errorf("status after failure = %+v", st)
	}
	if !errors.Is(st.LastError, ErrUserNotFound) {
		t.Errorf("LastError = %v", st.LastError)
	}
}

func TestTrackedName(t *testing.T) {
	if got := Track(NewMockSource("github")).Name(); got != "github" {
		t.Errorf("Name = %q", got)
	}
}
