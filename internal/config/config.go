package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-tunable knobs for the chat client.
type Config struct {
	DatabasePath   string `toml:"database_path"`
	HistoryCap     int    `toml:"draft_history_cap"`
	CoalesceMs     int    `toml:"draft_coalesce_ms"`
	WindowLimit    int    `toml:"render_window_limit"`
	WindowBatch    int    `toml:"render_window_batch"`
	SettleMs       int    `toml:"scroll_settle_ms"`
	AutoScroll     bool   `toml:"auto_scroll"`
	RenderMarkdown bool   `toml:"render_markdown"`
}

const AppDir = "speedytavern"

const DefaultConfigToml = `# SpeedyTavern configuration

# Where conversation trees are stored. Empty means
# <user config dir>/speedytavern/chats.db.
database_path = ""

# Composer undo history.
draft_history_cap = 100
draft_coalesce_ms = 750

# How many trailing messages of the active path render by default, and
# how many more each "show older" adds.
render_window_limit = 50
render_window_batch = 25

# Settle animation for branch-switch scroll corrections.
scroll_settle_ms = 300

auto_scroll = true
render_markdown = true
`

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	// The embedded default is the source of truth for defaults.
	_ = toml.Unmarshal([]byte(DefaultConfigToml), &cfg)
	return cfg
}

// Load reads the user config file, creating it with defaults on first
// run. A missing or unreadable config dir degrades to defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr == nil {
			raw = []byte(DefaultConfigToml)
		} else {
			return Default(), nil
		}
	} else if err != nil {
		return Default(), err
	}
	cfg := Default()
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Default(), err
	}
	cfg.sanitize()
	return cfg, nil
}

// Path returns the config file location under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDir, "config.toml"), nil
}

// DatabaseFile resolves the database location. The SPEEDYTAVERN_DB
// environment variable wins over the config file.
func (c Config) DatabaseFile() (string, error) {
	if v := os.Getenv("SPEEDYTAVERN_DB"); v != "" {
		return v, nil
	}
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDir, "chats.db"), nil
}

func (c *Config) sanitize() {
	d := Default()
	if c.HistoryCap < 2 {
		c.HistoryCap = d.HistoryCap
	}
	if c.CoalesceMs < 0 {
		c.CoalesceMs = d.CoalesceMs
	}
	if c.WindowLimit < 1 {
		c.WindowLimit = d.WindowLimit
	}
	if c.WindowBatch < 1 {
		c.WindowBatch = d.WindowBatch
	}
	if c.SettleMs < 0 {
		c.SettleMs = d.SettleMs
	}
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(DefaultConfigToml), 0o644)
}
