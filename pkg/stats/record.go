package stats

// NoLanguage is the TopLanguage value when no repository declares one.
const NoLanguage = "N/A"

// Record is one normalized snapshot of a user's statistics. A Record is
// replaced wholesale on every fetch and never mutated in place.
type Record struct {
	Repos         int    `json:"repos"`
	Stars         int    `json:"stars"`
	Followers     int    `json:"followers"`
	Following     int    `json:"following"`
	Gists         int    `json:"gists"`
	Contributions int    `json:"contributions"`
	TopLanguage   string `json:"topLanguage"`
	TotalCommits  int    `json:"totalCommits"`
	PullRequests  int    `json:"pullRequests"`
	Issues        int    `json:"issues"`
}

// Value returns the raw value for k: a string for TopLanguage, an int for
// every other kind. A nil record yields zero values.
func (r *Record) Value(k Kind) any {
	if r == nil {
		if k == TopLanguage {
			return NoLanguage
		}
		return 0
	}
	switch k {
	case Repos:
		return r.Repos
	case Stars:
		return r.Stars
	case Followers:
		return r.Followers
	case Following:
		return r.Following
	case Gists:
		return r.Gists
	case Contributions:
		return r.Contributions
	case TopLanguage:
		return r.TopLanguage
	case TotalCommits:
		return r.TotalCommits
	case PullRequests:
		return r.PullRequests
	case Issues:
		return r.Issues
	default:
		return 0
	}
}
