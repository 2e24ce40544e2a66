package perf

import (
	"os"
	"testing"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/export"
	"gitlab.com/tinyland/lab/profile-banner/pkg/fonts"
	"gitlab.com/tinyland/lab/profile-banner/pkg/inline"
	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/preview"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// pfFullState is a banner with every optional part present: eight skills
// and four stats.
func pfFullState() banner.State {
	s := banner.Default().
		SetGitHubUsername("octocat").
		SetStatsEnabled(true).
		SetTheme(theme.Cyberpunk)
	for _, sk := range []string{"Go", "Kubernetes", "PostgreSQL", "Rust"} {
		s = s.AddSkill(sk)
	}
	return s.ToggleStat(stats.TopLanguage)
}

func pfRecord() *stats.Record {
	return &stats.Record{
		Repos: 42, Stars: 12_345, Followers: 980, Following: 12,
		Gists: 7, Contributions: 312, TopLanguage: "Go",
		TotalCommits: 312, PullRequests: 88, Issues: 21,
	}
}

func pfPlan() layout.Plan {
	s := pfFullState()
	return layout.Build(s, pfRecord(), theme.Get(s.Theme).Geometry, fonts.Default())
}

func benchReduce(b *testing.B) {
	s := banner.NewSession(pfFullState())
	b.ReportAllocs()
	for b.Loop() {
		_ = banner.Reduce(s, banner.SetTitle{Value: "Staff Engineer"})
	}
}

func benchLayoutBuild(b *testing.B) {
	s := pfFullState()
	rec := pfRecord()
	geo := theme.Get(s.Theme).Geometry
	fs := fonts.Default()
	b.ReportAllocs()
	for b.Loop() {
		_ = layout.Build(s, rec, geo, fs)
	}
}

func benchPreviewRender(b *testing.B) {
	p := pfPlan()
	th := theme.Get(theme.Cyberpunk)
	b.ReportAllocs()
	for b.Loop() {
		_ = preview.Render(p, th, 120)
	}
}

func benchExportRender(b *testing.B) {
	p := pfPlan()
	th := theme.Get(theme.Cyberpunk)
	r := export.New(fonts.Default())
	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Render(p, th); err != nil {
			b.Fatal(err)
		}
	}
}

func benchInlineHalfblocks(b *testing.B) {
	img, err := export.New(fonts.Default()).Render(pfPlan(), theme.Get(theme.Gradient))
	if err != nil {
		b.Fatal(err)
	}
	small := inline.Fit(img, 150, 50)
	b.ReportAllocs()
	for b.Loop() {
		_ = inline.Halfblocks(small)
	}
}

// pfBenchmarks maps budget names to the benchmarks that report them.
var pfBenchmarks = map[string]func(*testing.B){
	"reduce":            benchReduce,
	"layout_build":      benchLayoutBuild,
	"preview_render":    benchPreviewRender,
	"export_render":     benchExportRender,
	"inline_halfblocks": benchInlineHalfblocks,
}

func BenchmarkReduce(b *testing.B)           { benchReduce(b) }
func BenchmarkLayoutBuild(b *testing.B)      { benchLayoutBuild(b) }
func BenchmarkPreviewRender120(b *testing.B) { benchPreviewRender(b) }
func BenchmarkExportRender(b *testing.B)     { benchExportRender(b) }
func BenchmarkInlineHalfblocks(b *testing.B) { benchInlineHalfblocks(b) }

// TestRenderPathsWithinBudget runs every benchmark and fails on a budget
// breach. Timings depend on the machine, so it only runs when
// PBANNER_PERF is set.
func TestRenderPathsWithinBudget(t *testing.T) {
	if os.Getenv("PBANNER_PERF") == "" {
		t.Skip("set PBANNER_PERF=1 to check performance budgets")
	}
	results := make(map[string]testing.BenchmarkResult, len(pfBenchmarks))
	for name, fn := range pfBenchmarks {
		results[name] = testing.Benchmark(fn)
	}
	for _, v := range CheckRegression(results, DefaultBudgets()) {
		t.Errorf("%s: %s per op %d exceeds budget", v.Budget.Name, v.Field, v.Actual)
	}
}

func TestEveryBudgetHasBenchmark(t *testing.T) {
	for _, b := range DefaultBudgets() {
		if _, ok := pfBenchmarks[b.Name]; !ok {
			t.Errorf("budget %q has no benchmark", b.Name)
		}
	}
}
