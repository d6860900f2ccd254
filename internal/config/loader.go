package config

import (
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Explicit config path, usually from a flag
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration. SCRAWL_* environment
// variables override whatever the file provides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg, err = Parse(f)
		if err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Explicit override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".scrawlrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG config path
	home, _ := os.UserHomeDir()
	xdgPath := filepath.Join(home, ".config", "scrawl", "config.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	// Fallback name
	xdgPath = filepath.Join(home, ".config", "scrawl", "scrawl.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

// DefaultPath is where `config init` writes and what `config path`
// reports when no file exists yet.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scrawl", "config.rc")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCRAWL_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("SCRAWL_SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := os.Getenv("SCRAWL_DEFAULT_TOOL"); v != "" {
		cfg.DefaultTool = v
	}
	if v := os.Getenv("SCRAWL_SUMMARY_ENDPOINT"); v != "" {
		cfg.Summary.Endpoint = v
	}
	if v := os.Getenv("SCRAWL_SUMMARY_MODEL"); v != "" {
		cfg.Summary.Model = v
	}
}
