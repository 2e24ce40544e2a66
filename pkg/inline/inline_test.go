package inline

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/profile-banner/pkg/terminal"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestHalfblocksPair(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})

	want := "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀\x1b[0m"
	if got := Halfblocks(img); got != want {
		t.Errorf("Halfblocks = %q, want %q", got, want)
	}
}

func TestHalfblocksOddHeight(t *testing.T) {
	out := Halfblocks(solid(2, 3, color.White))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "\x1b[49m▀") {
		t.Errorf("last row should have default background: %q", lines[1])
	}
}

func TestHalfblocksEmpty(t *testing.T) {
	if got := Halfblocks(image.NewNRGBA(image.Rect(0, 0, 0, 0))); got != "" {
		t.Errorf("empty image = %q", got)
	}
}

func TestFitKeepsAspect(t *testing.T) {
	got := Fit(solid(1500, 500, color.Black), 60, 60)
	if b := got.Bounds(); b.Dx() != 60 || b.Dy() != 20 {
		t.Errorf("Fit = %dx%d, want 60x20", b.Dx(), b.Dy())
	}
	// Smaller images are not enlarged.
	small := Fit(solid(10, 5, color.Black), 60, 60)
	if b := small.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("Fit small = %dx%d, want 10x5", b.Dx(), b.Dy())
	}
}

func TestRows(t *testing.T) {
	r := New(terminal.ProtocolHalfblocks, terminal.Size{})
	if got := r.Rows(1500, 500, 60); got != 10 {
		t.Errorf("Rows = %d, want 10", got)
	}
	if got := r.Rows(0, 0, 60); got != 1 {
		t.Errorf("Rows(degenerate) = %d, want 1", got)
	}

	// A reported pixel size replaces the default cell box.
	r = New(terminal.ProtocolKitty, terminal.Size{Cols: 100, Rows: 50, PixelW: 1000, PixelH: 1000})
	if got := r.Rows(1500, 500, 60); got != 10 {
		t.Errorf("Rows with 10x20 cells = %d, want 10", got)
	}
}

func TestRenderHalfblocks(t *testing.T) {
	r := New(terminal.ProtocolHalfblocks, terminal.Size{})
	out, err := r.Render(solid(1500, 500, color.NRGBA{G: 200, A: 255}), 60)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(out, "\n") + 1; n != 10 {
		t.Errorf("rows = %d, want 10", n)
	}
	if strings.Count(out, "▀") != 600 {
		t.Errorf("cells = %d, want 600", strings.Count(out, "▀"))
	}
}

func TestRenderDisabled(t *testing.T) {
	r := New(terminal.ProtocolNone, terminal.Size{})
	if _, err := r.Render(solid(4, 4, color.Black), 10); !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	r := New(terminal.ProtocolHalfblocks, terminal.Size{})
	if _, err := r.Render(nil, 10); err == nil {
		t.Error("nil image accepted")
	}
	if _, err := r.Render(solid(4, 4, color.Black), 0); err == nil {
		t.Error("zero width accepted")
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.png")
	if err := imaging.Save(solid(300, 100, color.White), path); err != nil {
		t.Fatal(err)
	}
	r := New(terminal.ProtocolHalfblocks, terminal.Size{})
	out, err := r.RenderFile(path, 30)
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if n := strings.Count(out, "\n") + 1; n != 5 {
		t.Errorf("rows = %d, want 5", n)
	}

	if _, err := r.RenderFile(filepath.Join(t.TempDir(), "missing.png"), 30); err == nil {
		t.Error("missing file rendered")
	}
}
