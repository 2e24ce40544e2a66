// Package github aggregates a user's public GitHub statistics from the REST
// API into a single stats.Record. Requests are unauthenticated.
//
// The profile request is the only one that can fail the fetch. The
// repository, event and search requests run concurrently once the profile
// is known; each of them degrades to zero values on failure.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/tinyland/lab/profile-banner/pkg/collectors"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "profile-banner/1.0"
	DefaultTimeout   = 10 * time.Second

	// pushEventWeight is the number of contributions attributed to each
	// public PushEvent of the current year.
	pushEventWeight = 3
)

// Client fetches statistics from the GitHub REST API. It implements
// collectors.Source.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger degraded sub-fetches are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used to decide the current calendar year.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the source name.
func (c *Client) Name() string {
	return "github"
}

type ghUser struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type ghRepo struct {
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language"`
}

type ghEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type ghSearch struct {
	TotalCount int `json:"total_count"`
}

// Fetch retrieves the statistics of username. The only error it returns
// wraps collectors.ErrUserNotFound.
func (c *Client) Fetch(ctx context.Context, username string) (stats.Record, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return stats.Record{}, fmt.Errorf("github: fetch profile: empty username: %w", collectors.ErrUserNotFound)
	}
	user := url.PathEscape(username)

	var profile ghUser
	if err := c.getJSON(ctx, "/users/"+user, &profile); err != nil {
		return stats.Record{}, fmt.Errorf("github: fetch profile %q: %w: %w", username, collectors.ErrUserNotFound, err)
	}

	rec := stats.Record{
		Repos:       profile.PublicRepos,
		Followers:   profile.Followers,
		Following:   profile.Following,
		Gists:       profile.PublicGists,
		TopLanguage: stats.NoLanguage,
	}

	// Each goroutine owns distinct fields of rec; Wait orders the writes
	// before the return.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var repos []ghRepo
		if err := c.getJSON(gctx, "/users/"+user+"/repos?per_page=100&sort=updated", &repos); err != nil {
			c.degraded(username, "repos", err)
			return nil
		}
		rec.Stars, rec.TopLanguage = summarizeRepos(repos)
		return nil
	})
	g.Go(func() error {
		var events []ghEvent
		if err := c.getJSON(gctx, "/users/"+user+"/events/public?per_page=100", &events); err != nil {
			c.degraded(username, "events", err)
			return nil
		}
		n := countPushEvents(events, c.now())
		rec.Contributions = n * pushEventWeight
		rec.TotalCommits = rec.Contributions
		return nil
	})
	g.Go(func() error {
		var res ghSearch
		if err := c.getJSON(gctx, searchPath(username, "issue"), &res); err != nil {
			c.degraded(username, "issues", err)
			return nil
		}
		rec.Issues = res.TotalCount
		return nil
	})
	g.Go(func() error {
		var res ghSearch
		if err := c.getJSON(gctx, searchPath(username, "pr"), &res); err != nil {
			c.degraded(username, "pull requests", err)
			return nil
		}
		rec.PullRequests = res.TotalCount
		return nil
	})
	// Sub-fetches never return errors.
	_ = g.Wait()

	return rec, nil
}

// searchPath builds an issue-search query; the "+" separators are literal
// query syntax.
func searchPath(username, kind string) string {
	return "/search/issues?q=author:" + url.QueryEscape(username) + "+type:" + kind
}

// summarizeRepos sums stars and picks the language declared by the most
// repositories. Ties go to the language seen first in fetch order.
func summarizeRepos(repos []ghRepo) (stars int, top string) {
	counts := make(map[string]int)
	var order []string
	for _, r := range repos {
		stars += r.StargazersCount
		if r.Language == "" {
			continue
		}
		if counts[r.Language] == 0 {
			order = append(order, r.Language)
		}
		counts[r.Language]++
	}
	top = stats.NoLanguage
	best := 0
	for _, lang := range order {
		if counts[lang] > best {
			top, best = lang, counts[lang]
		}
	}
	return stars, top
}

// countPushEvents counts PushEvents created in now's calendar year.
func countPushEvents(events []ghEvent, now time.Time) int {
	n := 0
	for _, ev := range events {
		if ev.Type == "PushEvent" && ev.CreatedAt.In(now.Location()).Year() == now.Year() {
			n++
		}
	}
	return n
}

func (c *Client) degraded(username, what string, err error) {
	c.logger.Warn("github sub-fetch degraded",
		"user", username,
		"fetch", what,
		"error", fmt.Errorf("%w: %w", collectors.ErrSubFetchDegraded, err))
}

// StatusError is a non-2xx response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Path, e.StatusCode)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// getJSON performs a GET against the API and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if rem := resp.Header.Get("X-RateLimit-Remaining"); rem != "" {
		c.logger.Debug("github rate limit", "path", path, "remaining", rem)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
}
