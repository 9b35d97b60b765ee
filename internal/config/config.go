package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults used when config.toml is missing or a key is unset.
const (
	DefaultThreshold         = 0.6
	DefaultLimit             = 20
	DefaultHistoryMaxEntries = 200
)

// DefaultKeys are the World Info fields searched when none are configured.
var DefaultKeys = []string{"comment", "key"}

// Config holds the top-level lorefind configuration.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	History HistoryConfig `toml:"history"`
	Display DisplayConfig `toml:"display"`
}

type SearchConfig struct {
	Threshold float64  `toml:"threshold"`
	Keys      []string `toml:"keys"`
	Limit     int      `toml:"limit"` // 0 = no limit
}

// HistoryConfig controls the local search history.
type HistoryConfig struct {
	// Enabled defaults to true when not set in config.
	Enabled    *bool `toml:"enabled,omitempty"`
	MaxEntries int   `toml:"max_entries"`
}

// IsEnabled treats nil (missing from config) as true.
func (h HistoryConfig) IsEnabled() bool {
	if h.Enabled == nil {
		return true
	}
	return *h.Enabled
}

type DisplayConfig struct {
	RenderMarkdown *bool `toml:"render_markdown,omitempty"`
}

// MarkdownEnabled treats nil (missing from config) as true.
func (d DisplayConfig) MarkdownEnabled() bool {
	if d.RenderMarkdown == nil {
		return true
	}
	return *d.RenderMarkdown
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	appConfig := filepath.Join(configDir, "lorefind")
	appData := filepath.Join(dataDir, "lorefind")

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     filepath.Join(appData, "lorefind.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.ConfigDir, p.DataDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. Keys missing
// from the file keep their defaults.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", paths.ConfigFile, err)
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if a config file exists.
func Initialized() bool {
	_, err := os.Stat(GetPaths().ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

// validate checks values that a hand-edited file could get wrong.
func (c *Config) validate() error {
	t := c.Search.Threshold
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("search.threshold %v out of range (use a value from 0 to 1)", t)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit must not be negative, got %d", c.Search.Limit)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Threshold: DefaultThreshold,
			Keys:      append([]string(nil), DefaultKeys...),
			Limit:     DefaultLimit,
		},
		History: HistoryConfig{
			Enabled:    BoolPtr(true),
			MaxEntries: DefaultHistoryMaxEntries,
		},
		Display: DisplayConfig{
			RenderMarkdown: BoolPtr(true),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
