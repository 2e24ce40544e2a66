// Package stats defines the closed set of GitHub statistics a banner can
// display, their presentation metadata, and the value formatting shared by
// every renderer.
package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one displayable statistic.
type Kind int

const (
	Repos Kind = iota
	Stars
	Followers
	Following
	Gists
	Contributions
	TopLanguage
	TotalCommits
	PullRequests
	Issues

	numKinds
)

// kindKeys are the stable identifiers used in config files and CLI flags.
var kindKeys = [...]string{
	Repos:         "repos",
	Stars:         "stars",
	Followers:     "followers",
	Following:     "following",
	Gists:         "gists",
	Contributions: "contributions",
	TopLanguage:   "topLanguage",
	TotalCommits:  "totalCommits",
	PullRequests:  "pullRequests",
	Issues:        "issues",
}

// String returns the stable key for the kind.
func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindKeys[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// ParseKind resolves a key (case-insensitive) to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, key := range kindKeys {
		if strings.EqualFold(key, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("stats: unknown stat kind %q", s)
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Descriptor is the presentation metadata for a kind.
type Descriptor struct {
	Kind        Kind
	Label       string
	Icon        string
	Description string
}

var catalog = [...]Descriptor{
	Repos:         {Repos, "Public repos", "📦", "Number of public repositories"},
	Stars:         {Stars, "Stars", "⭐", "Stars received across all repositories"},
	Followers:     {Followers, "Followers", "👥", "Number of followers"},
	Following:     {Following, "Following", "👤", "Number of accounts followed"},
	Gists:         {Gists, "Gists", "📝", "Number of public gists"},
	Contributions: {Contributions, "Contributions", "🔥", "Estimated contributions this year"},
	TopLanguage:   {TopLanguage, "Top language", "💻", "Most used language across repositories"},
	TotalCommits:  {TotalCommits, "Commits", "📊", "Estimated commits this year"},
	PullRequests:  {PullRequests, "Pull requests", "🔀", "Pull requests opened"},
	Issues:        {Issues, "Issues", "🐛", "Issues opened"},
}

// Describe returns the descriptor for k. It panics on a value outside the
// enumeration, which cannot come from ParseKind.
func Describe(k Kind) Descriptor {
	if !k.Valid() {
		panic(fmt.Sprintf("stats: describe invalid kind %d", int(k)))
	}
	return catalog[k]
}

// Format renders a raw statistic value for display. Numeric values of one
// thousand or more are abbreviated to one decimal with a "k" suffix; the
// top language is returned unchanged.
func Format(k Kind, raw any) string {
	if k == TopLanguage {
		return fmt.Sprint(raw)
	}
	n := toNumber(raw)
	if n >= 1000 {
		return strconv.FormatFloat(n/1000, 'f', 1, 64) + "k"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Text returns the full display string for k, e.g. "⭐ 12.0k stars".
func Text(k Kind, r *Record) string {
	d := Describe(k)
	return d.Icon + " " + Format(k, r.Value(k)) + " " + strings.ToLower(d.Label)
}

func toNumber(raw any) float64 {
	switch v := raw.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
