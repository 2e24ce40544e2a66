package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/profile-banner/pkg/collectors"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"PBANNER_THEME", "PBANNER_GITHUB_API", "PBANNER_EXPORT_DIR", "PBANNER_PROTOCOL", "PBANNER_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeConfig writes a config.toml pointing at apiURL and exportDir.
func writeConfig(t *testing.T, apiURL, exportDir, extra string) string {
	t.Helper()
	if apiURL == "" {
		apiURL = "https://api.github.com"
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf("[github]\nbase_url = %q\n\n[export]\ndir = %q\n%s", apiURL, exportDir, extra)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/jane", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"login": "jane", "public_repos": 12, "public_gists": 3,
			"followers": 340, "following": 7,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--config", writeConfig(t, "", t.TempDir(), ""))
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "profile-banner "+version) {
		t.Errorf("got %q, want profile-banner %s prefix", out, version)
	}
}

func TestThemesList(t *testing.T) {
	out, err := execute(t, "themes", "--config", writeConfig(t, "", t.TempDir(), ""))
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(theme.Names()) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(theme.Names()), out)
	}
	if !strings.HasPrefix(lines[2], "cyberpunk") || !strings.Contains(lines[2], "Cyberpunk") {
		t.Errorf("got %q for the third theme", lines[2])
	}
}

func TestThemesTOMLRoundTrip(t *testing.T) {
	out, err := execute(t, "themes", "--toml", "cyberpunk", "--config", writeConfig(t, "", t.TempDir(), ""))
	if err != nil {
		t.Fatalf("themes --toml: %v", err)
	}
	got, err := theme.LoadFromTOML([]byte(out))
	if err != nil {
		t.Fatalf("LoadFromTOML: %v\n%s", err, out)
	}
	if got.Name != theme.Cyberpunk {
		t.Errorf("got theme %q, want %q", got.Name, theme.Cyberpunk)
	}
}

func TestThemesUnknown(t *testing.T) {
	if _, err := execute(t, "themes", "sepia", "--config", writeConfig(t, "", t.TempDir(), "")); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestRenderExportsPNG(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, "", filepath.Join(dir, "unused"), "")
	out, err := execute(t, "render", "--config", cfg,
		"--out", dir, "--theme", "minimal", "--name", "Ada", "--skill", "Go", "--skill", "Rust", "--print")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := filepath.Join(dir, "profile-banner-minimal.png")
	if got := lines[len(lines)-1]; got != want {
		t.Errorf("got path %q, want %q", got, want)
	}
	if len(lines) < 2 {
		t.Errorf("expected preview lines before the path, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("preview written to a buffer should carry no escape sequences")
	}

	f, err := os.Open(want)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	pc, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pc.Width != 1500 || pc.Height != 500 {
		t.Errorf("got %dx%d, want 1500x500", pc.Width, pc.Height)
	}
}

func TestRenderRejectsBadFlags(t *testing.T) {
	cfg := writeConfig(t, "", t.TempDir(), "")
	tests := [][]string{
		{"--theme", "sepia"},
		{"--stat", "karma"},
	}
	for _, args := range tests {
		if _, err := execute(t, append([]string{"render", "--config", cfg}, args...)...); err == nil {
			t.Errorf("render %v: expected error", args)
		}
	}
}

func TestRenderFetchesStats(t *testing.T) {
	srv := fakeGitHub(t)
	dir := t.TempDir()
	out, err := execute(t, "render", "--config", writeConfig(t, srv.URL, dir, ""),
		"--user", "jane", "--stats", "--stat", "followers")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := filepath.Join(dir, "profile-banner-gradient.png"); strings.TrimSpace(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderFetchFailure(t *testing.T) {
	srv := fakeGitHub(t)
	_, err := execute(t, "render", "--config", writeConfig(t, srv.URL, t.TempDir(), ""),
		"--user", "ghost", "--stats")
	if !errors.Is(err, collectors.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestStatsJSON(t *testing.T) {
	srv := fakeGitHub(t)
	out, err := execute(t, "stats", "--json", "jane", "--config", writeConfig(t, srv.URL, t.TempDir(), ""))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var rec stats.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if rec.Repos != 12 || rec.Followers != 340 || rec.Gists != 3 {
		t.Errorf("got %+v", rec)
	}
	if rec.TopLanguage != stats.NoLanguage {
		t.Errorf("got top language %q, want %q", rec.TopLanguage, stats.NoLanguage)
	}
}

func TestStatsText(t *testing.T) {
	srv := fakeGitHub(t)
	out, err := execute(t, "stats", "jane", "--config", writeConfig(t, srv.URL, t.TempDir(), ""))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(stats.Kinds()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(stats.Kinds()))
	}
	if want := "📦 12 public repos"; lines[0] != want {
		t.Errorf("got %q, want %q", lines[0], want)
	}
}

func TestStatsNeedsUser(t *testing.T) {
	if _, err := execute(t, "stats", "--config", writeConfig(t, "", t.TempDir(), "")); err == nil {
		t.Fatal("expected error without a username")
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "", t.TempDir(), "\n[preview]\nmin_cols = 10\n")
	_, err := execute(t, "version", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "preview.min_cols") {
		t.Fatalf("got %v, want preview.min_cols validation error", err)
	}
}

func TestMissingThemeFile(t *testing.T) {
	cfg := writeConfig(t, "", t.TempDir(), "\n[theme]\nfile = \"/nonexistent/palette.toml\"\n")
	_, err := execute(t, "themes", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "theme file") {
		t.Fatalf("got %v, want theme file error", err)
	}
}

func TestPreviewNeedsTerminal(t *testing.T) {
	_, err := execute(t, "preview", "--config", writeConfig(t, "", t.TempDir(), ""))
	if !errors.Is(err, errNotInteractive) {
		t.Fatalf("got %v, want errNotInteractive", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{"debug": "DEBUG", "WARN": "WARN", "error": "ERROR", "": "INFO", "loud": "INFO"}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
