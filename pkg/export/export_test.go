package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/fonts"
	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

var testFonts = fonts.Default()

func testPlan(s banner.State, rec *stats.Record) layout.Plan {
	return layout.Build(s, rec, theme.Get(s.Theme).Geometry, testFonts)
}

func rgbAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func closeTo(a, b color.NRGBA, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol
}

func TestRenderSize(t *testing.T) {
	img, err := New(testFonts).Render(testPlan(banner.Default(), nil), theme.Get(theme.Gradient))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Errorf("bounds = %v, want %dx%d", b, Width, Height)
	}
}

func TestRenderGradientCorners(t *testing.T) {
	img, err := New(testFonts).Render(layout.Plan{Aspect: layout.Aspect}, theme.Get(theme.Gradient))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := rgbAt(img, 0, 0); !closeTo(got, theme.MustHex("#9333ea"), 3) {
		t.Errorf("top-left = %v, want ~#9333ea", got)
	}
	if got := rgbAt(img, Width-1, Height-1); !closeTo(got, theme.MustHex("#2563eb"), 3) {
		t.Errorf("bottom-right = %v, want ~#2563eb", got)
	}
}

func TestRenderSolidCyberpunk(t *testing.T) {
	s := banner.Default().SetTheme(theme.Cyberpunk)
	img, err := New(testFonts).Render(testPlan(s, nil), theme.Get(theme.Cyberpunk))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := rgbAt(img, 2, Height-2); !closeTo(got, color.NRGBA{A: 255}, 0) {
		t.Errorf("corner = %v, want black", got)
	}
}

func TestRenderBadgeFill(t *testing.T) {
	s := banner.State{Skills: []string{"Go", "Rust"}, Theme: theme.Minimal}
	p := testPlan(s, nil)
	img, err := New(testFonts).Render(p, theme.Get(theme.Minimal))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := p.Badges()[1]
	x := int(b.Box.Right()*Width) - 8
	y := int((b.Box.Y + b.Box.H/2) * Height)
	if got := rgbAt(img, x, y); !closeTo(got, theme.MustHex("#374151"), 2) {
		t.Errorf("badge interior = %v, want ~#374151", got)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	_, err := New(testFonts).WithSize(0, 0).Render(layout.Plan{}, theme.Get(theme.Minimal))
	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if ee.Op != "render" {
		t.Errorf("Op = %q, want %q", ee.Op, "render")
	}
}

func TestWithSizeScales(t *testing.T) {
	img, err := New(testFonts).WithSize(750, 250).Render(testPlan(banner.Default(), nil), theme.Get(theme.Glassmorphism))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 750 || b.Dy() != 250 {
		t.Errorf("bounds = %v, want 750x250", b)
	}
}

func TestExportWritesNamedPNG(t *testing.T) {
	dir := t.TempDir()
	s := banner.Default().SetTheme(theme.Minimal).SetStatsEnabled(true).SetGitHubUsername("jane")
	rec := &stats.Record{Repos: 12, Stars: 12000, Followers: 340}

	path, err := New(testFonts).Export(testPlan(s, rec), theme.Get(theme.Minimal), dir)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "profile-banner-minimal.png" {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != Width || cfg.Height != Height {
		t.Errorf("PNG is %dx%d, want %dx%d", cfg.Width, cfg.Height, Width, Height)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".banner-tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestExportWriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(testFonts).Export(testPlan(banner.Default(), nil), theme.Get(theme.Gradient), blocker)
	var ee *Error
	if !errors.As(err, &ee) || ee.Op != "write" {
		t.Fatalf("err = %v, want *Error{Op: write}", err)
	}
}

func TestEncodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestFileName(t *testing.T) {
	for _, n := range theme.Names() {
		want := "profile-banner-" + string(n) + ".png"
		if got := FileName(n); got != want {
			t.Errorf("FileName(%q) = %q, want %q", n, got, want)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	r := New(testFonts)
	p := testPlan(banner.Default(), nil)
	th := theme.Get(theme.Gradient)
	for b.Loop() {
		if _, err := r.Render(p, th); err != nil {
			b.Fatal(err)
		}
	}
}
