// Package perf holds benchmarks for the banner render paths and the
// budgets they are held to. All private helpers are prefixed with "pf".
package perf

import (
	"sort"
	"testing"
)

// Budget is the performance ceiling for one named operation.
type Budget struct {
	// Name matches the key the benchmark result is reported under.
	Name string

	// MaxNs is the maximum nanoseconds per operation. Zero disables it.
	MaxNs int64

	// MaxAlloc is the maximum bytes allocated per operation. Zero
	// disables it.
	MaxAlloc int64
}

// Violation records one budget breach.
type Violation struct {
	Budget Budget
	Actual int64
	Field  string // "ns" or "alloc"
}

// DefaultBudgets returns the ceilings for the interactive paths. The
// preview repaints on every keystroke, so layout and preview stay well
// under a frame; export runs once per click.
func DefaultBudgets() []Budget {
	return []Budget{
		{Name: "reduce", MaxNs: 20_000, MaxAlloc: 2048},
		{Name: "layout_build", MaxNs: 2_000_000, MaxAlloc: 262_144},
		{Name: "preview_render", MaxNs: 8_000_000, MaxAlloc: 4_194_304},
		{Name: "export_render", MaxNs: 500_000_000, MaxAlloc: 67_108_864},
		{Name: "inline_halfblocks", MaxNs: 20_000_000, MaxAlloc: 8_388_608},
	}
}

// CheckRegression compares named benchmark results against budgets.
// Results without a budget and budgets without a result are ignored.
// Violations are returned sorted by budget name.
func CheckRegression(results map[string]testing.BenchmarkResult, budgets []Budget) []Violation {
	var out []Violation
	for _, b := range budgets {
		r, ok := results[b.Name]
		if !ok || r.N == 0 {
			continue
		}
		if ns := r.NsPerOp(); b.MaxNs > 0 && ns > b.MaxNs {
			out = append(out, Violation{Budget: b, Actual: ns, Field: "ns"})
		}
		if alloc := r.AllocedBytesPerOp(); b.MaxAlloc > 0 && alloc > b.MaxAlloc {
			out = append(out, Violation{Budget: b, Actual: alloc, Field: "alloc"})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Budget.Name < out[j].Budget.Name
	})
	return out
}
