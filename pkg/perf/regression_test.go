package perf

import (
	"testing"
	"time"
)

func pfResult(n int, total time.Duration, bytes uint64) testing.BenchmarkResult {
	return testing.BenchmarkResult{N: n, T: total, MemBytes: bytes}
}

func TestCheckRegressionWithinBudget(t *testing.T) {
	results := map[string]testing.BenchmarkResult{
		"layout_build": pfResult(1000, time.Millisecond, 1000*1024),
	}
	budgets := []Budget{{Name: "layout_build", MaxNs: 2_000, MaxAlloc: 2048}}
	if v := CheckRegression(results, budgets); len(v) != 0 {
		t.Errorf("expected no violations, got %+v", v)
	}
}

func TestCheckRegressionBothFields(t *testing.T) {
	results := map[string]testing.BenchmarkResult{
		"export_render": pfResult(10, 10*time.Second, 10*100_000_000),
	}
	budgets := []Budget{{Name: "export_render", MaxNs: 500_000_000, MaxAlloc: 67_108_864}}
	v := CheckRegression(results, budgets)
	if len(v) != 2 {
		t.Fatalf("expected 2 violations, got %d: %+v", len(v), v)
	}
	if v[0].Field != "ns" || v[0].Actual != 1_000_000_000 {
		t.Errorf("got first violation %+v, want ns 1000000000", v[0])
	}
	if v[1].Field != "alloc" || v[1].Actual != 100_000_000 {
		t.Errorf("got second violation %+v, want alloc 100000000", v[1])
	}
}

func TestCheckRegressionMatchesByName(t *testing.T) {
	results := map[string]testing.BenchmarkResult{
		"reduce":        pfResult(100, time.Second, 0),
		"unbudgeted":    pfResult(100, time.Hour, 0),
		"preview_empty": pfResult(0, 0, 0),
	}
	budgets := []Budget{
		{Name: "reduce", MaxNs: 1_000},
		{Name: "preview_empty", MaxNs: 1},
		{Name: "missing", MaxNs: 1},
	}
	v := CheckRegression(results, budgets)
	if len(v) != 1 || v[0].Budget.Name != "reduce" {
		t.Fatalf("got %+v, want a single reduce violation", v)
	}
}

func TestCheckRegressionZeroDisables(t *testing.T) {
	results := map[string]testing.BenchmarkResult{
		"reduce": pfResult(1, time.Hour, 1<<40),
	}
	if v := CheckRegression(results, []Budget{{Name: "reduce"}}); len(v) != 0 {
		t.Errorf("zero budget should never fire, got %+v", v)
	}
}

func TestCheckRegressionSorted(t *testing.T) {
	results := map[string]testing.BenchmarkResult{
		"b": pfResult(1, time.Second, 0),
		"a": pfResult(1, time.Second, 0),
	}
	v := CheckRegression(results, []Budget{{Name: "b", MaxNs: 1}, {Name: "a", MaxNs: 1}})
	if len(v) != 2 || v[0].Budget.Name != "a" || v[1].Budget.Name != "b" {
		t.Errorf("got %+v, want violations sorted a, b", v)
	}
}

func TestDefaultBudgetsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range DefaultBudgets() {
		if seen[b.Name] {
			t.Errorf("duplicate budget %q", b.Name)
		}
		seen[b.Name] = true
		if b.MaxNs <= 0 {
			t.Errorf("budget %q has no time ceiling", b.Name)
		}
	}
}
