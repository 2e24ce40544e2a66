package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// Config is the full configuration file.
type Config struct {
	General GeneralConfig `toml:"general"`
	Banner  BannerConfig  `toml:"banner"`
	GitHub  GitHubConfig  `toml:"github"`
	Export  ExportConfig  `toml:"export"`
	Fonts   FontsConfig   `toml:"fonts"`
	Preview PreviewConfig `toml:"preview"`
	Theme   ThemeConfig   `toml:"theme"`
}

type GeneralConfig struct {
	LogLevel string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `toml:"log_file"`
}

// BannerConfig seeds the banner a session starts with.
type BannerConfig struct {
	Name          string   `toml:"name"`
	Title         string   `toml:"title"`
	Skills        []string `toml:"skills" validate:"max=8,dive,required"`
	Theme         string   `toml:"theme" validate:"theme"`
	ShowStats     bool     `toml:"show_stats"`
	GitHubUser    string   `toml:"github_user"`
	SelectedStats []string `toml:"selected_stats" validate:"max=4,dive,statkind"`
}

type GitHubConfig struct {
	BaseURL   string   `toml:"base_url" validate:"required,url"`
	UserAgent string   `toml:"user_agent" validate:"required"`
	Timeout   Duration `toml:"timeout"`
}

type ExportConfig struct {
	Dir        string `toml:"dir"`
	OpenInline bool   `toml:"open_inline"`
}

// FontsConfig names TTF/OTF files replacing the embedded Go fonts. An
// empty path keeps the embedded face.
type FontsConfig struct {
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
}

type PreviewConfig struct {
	MinCols  int    `toml:"min_cols" validate:"min=24"`
	MaxCols  int    `toml:"max_cols" validate:"gtefield=MinCols"`
	Protocol string `toml:"protocol" validate:"oneof=auto kitty iterm2 sixel halfblocks none"`
}

// ThemeConfig points at a TOML palette that overrides one built-in theme.
type ThemeConfig struct {
	File string `toml:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	def := banner.Default()
	sel := make([]string, len(def.SelectedStats))
	for i, k := range def.SelectedStats {
		sel[i] = k.String()
	}
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  DefaultLogFile(),
		},
		Banner: BannerConfig{
			Name:          def.DisplayName,
			Title:         def.Title,
			Skills:        append([]string(nil), def.Skills...),
			Theme:         string(def.Theme),
			ShowStats:     def.StatsEnabled,
			SelectedStats: sel,
		},
		GitHub: GitHubConfig{
			BaseURL:   "https://api.github.com",
			UserAgent: "profile-banner",
			Timeout:   Duration{10 * time.Second},
		},
		Export: ExportConfig{Dir: "."},
		Preview: PreviewConfig{
			MinCols:  40,
			MaxCols:  160,
			Protocol: "auto",
		},
	}
}

// Validate checks field constraints and returns one error listing every
// violation by its TOML key.
func (c *Config) Validate() error {
	err := cfValidator().Struct(c)
	if err == nil {
		if c.GitHub.Timeout.Duration <= 0 {
			return errors.New("config: github.timeout: must be positive")
		}
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.banner.theme"; drop the root.
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", key, cfTag(fe), fe.Value()))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

// BannerState converts the [banner] section into the starting state.
// Unknown stat names are skipped; Validate reports them.
func (c *Config) BannerState() banner.State {
	b := c.Banner
	s := banner.State{
		DisplayName:    b.Name,
		Title:          b.Title,
		Theme:          theme.Gradient,
		StatsEnabled:   b.ShowStats,
		GitHubUsername: b.GitHubUser,
	}
	if n, err := theme.ParseName(b.Theme); err == nil {
		s.Theme = n
	}
	for _, sk := range b.Skills {
		s = s.AddSkill(sk)
	}
	for _, name := range b.SelectedStats {
		if k, err := stats.ParseKind(name); err == nil && !s.IsSelected(k) {
			s = s.ToggleStat(k)
		}
	}
	return s
}

// DefaultLogFile returns $XDG_STATE_HOME/profile-banner/profile-banner.log.
func DefaultLogFile() string {
	home, _ := os.UserHomeDir()
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "profile-banner", "profile-banner.log")
}

func cfValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		_, err := theme.ParseName(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("statkind", func(fl validator.FieldLevel) bool {
		_, err := stats.ParseKind(fl.Field().String())
		return err == nil
	})
	return v
}

func cfTag(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}
