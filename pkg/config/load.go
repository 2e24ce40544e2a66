package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the first config file found in the search path:
//
//  1. $XDG_CONFIG_HOME/profile-banner/config.toml
//  2. ~/.config/profile-banner/config.toml
//
// With no file it returns DefaultConfig with environment overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from path. A missing file yields the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML over the defaults and applies environment
// overrides. Unknown keys are rejected so typos surface at startup.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("unknown key %q", undec[0].String())
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from the named files (".env" when none
// are given) into the process environment without replacing variables
// that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// applyEnvOverrides lets PBANNER_* variables replace file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PBANNER_THEME"); v != "" {
		cfg.Banner.Theme = v
	}
	if v := os.Getenv("PBANNER_GITHUB_API"); v != "" {
		cfg.GitHub.BaseURL = v
	}
	if v := os.Getenv("PBANNER_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("PBANNER_PROTOCOL"); v != "" {
		cfg.Preview.Protocol = v
	}
	if v := os.Getenv("PBANNER_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	xdg := xdgConfigHome(home)
	paths := []string{filepath.Join(xdg, "profile-banner", "config.toml")}

	if def := filepath.Join(home, ".config"); xdg != def {
		paths = append(paths, filepath.Join(def, "profile-banner", "config.toml"))
	}
	return paths
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
