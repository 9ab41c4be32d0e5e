// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for orderline.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.orderline/config.toml
//   - ~/.orderline/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete orderline configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Verification workflow policy
	Verification VerificationConfig `toml:"verification" json:"verification"`

	// Data source configuration
	Data DataConfig `toml:"data" json:"data"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// VerificationConfig tunes the order verification workflow.
type VerificationConfig struct {
	// MaxAttempts is the number of failed verifications before lockout.
	MaxAttempts int `toml:"max_attempts" json:"max_attempts"`
	// LockoutDurationSecs is how long a lockout lasts, in seconds.
	// Valid range is 60-3600; values outside are clamped.
	LockoutDurationSecs int `toml:"lockout_duration_secs" json:"lockout_duration_secs"`
	// SessionTimeoutSecs is the inactivity timeout in seconds.
	// Valid range is 60-3600; values outside are clamped.
	SessionTimeoutSecs int `toml:"session_timeout_secs" json:"session_timeout_secs"`
	// HistoryCap bounds the resolved-order history per session.
	HistoryCap int `toml:"history_cap" json:"history_cap"`
	// MinNameLength is the minimum accepted customer name length.
	MinNameLength int `toml:"min_name_length" json:"min_name_length"`
	// MinOrderIDLength is the minimum accepted order id length.
	MinOrderIDLength int `toml:"min_order_id_length" json:"min_order_id_length"`
}

// DataConfig selects and tunes the record provider.
type DataConfig struct {
	// CSVPath is the salesline CSV export to load. Empty uses the
	// embedded sample data unless SQLitePath is set.
	CSVPath string `toml:"csv_path" json:"csv_path"`
	// SQLitePath is the local order database. When set it takes
	// precedence over CSVPath.
	SQLitePath string `toml:"sqlite_path" json:"sqlite_path"`
	// Watch reloads the CSV file automatically when it changes.
	Watch bool `toml:"watch" json:"watch"`
	// WatchDebounceMs coalesces rapid file change events.
	WatchDebounceMs int `toml:"watch_debounce_ms" json:"watch_debounce_ms"`
	// LookupRate is the sustained lookups-per-second budget shared by
	// all sessions.
	LookupRate float64 `toml:"lookup_rate" json:"lookup_rate"`
	// LookupBurst is the lookup burst allowance.
	LookupBurst int `toml:"lookup_burst" json:"lookup_burst"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders order summaries with glamour in line mode.
	Markdown bool `toml:"markdown" json:"markdown"`
	// SearchDelayMs is the artificial pause shown while "searching",
	// so instant lookups do not read as broken.
	SearchDelayMs int `toml:"search_delay_ms" json:"search_delay_ms"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Verification: VerificationConfig{
			MaxAttempts:         3,
			LockoutDurationSecs: 300,
			SessionTimeoutSecs:  900,
			HistoryCap:          20,
			MinNameLength:       2,
			MinOrderIDLength:    1,
		},
		Data: DataConfig{
			Watch:           true,
			WatchDebounceMs: 500,
			LookupRate:      5,
			LookupBurst:     10,
		},
		UI: UIConfig{
			Theme:         "dark",
			Markdown:      true,
			SearchDelayMs: 600,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the orderline configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".orderline"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DefaultDatabasePath returns the default SQLite database location.
func DefaultDatabasePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "orderline.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s). Tries TOML first,
// then JSON, and falls back to defaults. Environment overrides are
// applied last, then clamping and validation.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finalize(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finalize(cfg)
		}
	}

	return finalize(cfg)
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension, defaulting to TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finalize(cfg)
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func finalize(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the TOML config file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path as TOML. The write is atomic so an
// interrupted save never leaves a truncated config behind.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS, CLAMPING, VALIDATION
// =============================================================================

// SetDefaults fills zero-valued fields and clamps out-of-range values.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}

	v := &c.Verification
	if v.MaxAttempts <= 0 {
		v.MaxAttempts = d.Verification.MaxAttempts
	}
	if v.LockoutDurationSecs <= 0 {
		v.LockoutDurationSecs = d.Verification.LockoutDurationSecs
	}
	v.LockoutDurationSecs = clampInt(v.LockoutDurationSecs, 60, 3600)
	if v.SessionTimeoutSecs <= 0 {
		v.SessionTimeoutSecs = d.Verification.SessionTimeoutSecs
	}
	v.SessionTimeoutSecs = clampInt(v.SessionTimeoutSecs, 60, 3600)
	if v.HistoryCap <= 0 {
		v.HistoryCap = d.Verification.HistoryCap
	}
	if v.MinNameLength <= 0 {
		v.MinNameLength = d.Verification.MinNameLength
	}
	if v.MinOrderIDLength <= 0 {
		v.MinOrderIDLength = d.Verification.MinOrderIDLength
	}

	if c.Data.WatchDebounceMs <= 0 {
		c.Data.WatchDebounceMs = d.Data.WatchDebounceMs
	}
	if c.Data.LookupRate <= 0 {
		c.Data.LookupRate = d.Data.LookupRate
	}
	if c.Data.LookupBurst <= 0 {
		c.Data.LookupBurst = d.Data.LookupBurst
	}

	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.SearchDelayMs < 0 {
		c.UI.SearchDelayMs = 0
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme must be %q or %q, got %q", "dark", "light", c.UI.Theme)
	}
	if c.Verification.MaxAttempts > 10 {
		return fmt.Errorf("verification.max_attempts must be at most 10, got %d", c.Verification.MaxAttempts)
	}
	if c.Data.CSVPath != "" {
		if strings.ContainsRune(c.Data.CSVPath, 0) {
			return fmt.Errorf("data.csv_path contains invalid characters")
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ORDERLINE_* environment variables on top of
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("ORDERLINE_CSV"); path != "" {
		c.Data.CSVPath = path
	}
	if path := os.Getenv("ORDERLINE_DB"); path != "" {
		c.Data.SQLitePath = path
	}
	if theme := os.Getenv("ORDERLINE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if watch := os.Getenv("ORDERLINE_WATCH"); watch != "" {
		c.Data.Watch = watch == "1" || strings.ToLower(watch) == "true"
	}
	if v := os.Getenv("ORDERLINE_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Verification.MaxAttempts = n
		}
	}
	if v := os.Getenv("ORDERLINE_LOCKOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Verification.LockoutDurationSecs = n
		}
	}
	if v := os.Getenv("ORDERLINE_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Verification.SessionTimeoutSecs = n
		}
	}
}

// =============================================================================
// DERIVED CONFIGURATION
// =============================================================================

// Workflow converts the verification section into the session machine's
// configuration.
func (c *Config) Workflow() session.Config {
	v := c.Verification
	return session.Config{
		MaxAttempts:      v.MaxAttempts,
		LockoutDuration:  time.Duration(v.LockoutDurationSecs) * time.Second,
		SessionTimeout:   time.Duration(v.SessionTimeoutSecs) * time.Second,
		HistoryCap:       v.HistoryCap,
		MinNameLength:    v.MinNameLength,
		MinOrderIDLength: v.MinOrderIDLength,
	}
}

// SearchDelay returns the UI search pause as a duration.
func (c *Config) SearchDelay() time.Duration {
	return time.Duration(c.UI.SearchDelayMs) * time.Millisecond
}

// WatchDebounce returns the file watch debounce as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Data.WatchDebounceMs) * time.Millisecond
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation, for the
// `orderline config get` command.
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "verification.max_attempts":
		return c.Verification.MaxAttempts, nil
	case "verification.lockout_duration_secs":
		return c.Verification.LockoutDurationSecs, nil
	case "verification.session_timeout_secs":
		return c.Verification.SessionTimeoutSecs, nil
	case "verification.history_cap":
		return c.Verification.HistoryCap, nil
	case "verification.min_name_length":
		return c.Verification.MinNameLength, nil
	case "verification.min_order_id_length":
		return c.Verification.MinOrderIDLength, nil
	case "data.csv_path":
		return c.Data.CSVPath, nil
	case "data.sqlite_path":
		return c.Data.SQLitePath, nil
	case "data.watch":
		return c.Data.Watch, nil
	case "data.lookup_rate":
		return c.Data.LookupRate, nil
	case "data.lookup_burst":
		return c.Data.LookupBurst, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.markdown":
		return c.UI.Markdown, nil
	case "ui.search_delay_ms":
		return c.UI.SearchDelayMs, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value using dot notation, for the
// `orderline config set` command. The value is parsed according to the
// field's type.
func (c *Config) Set(key, value string) error {
	setInt := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s requires an integer, got %q", key, value)
		}
		*dst = n
		return nil
	}
	setBool := func(dst *bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s requires a boolean, got %q", key, value)
		}
		*dst = b
		return nil
	}

	switch key {
	case "verification.max_attempts":
		return setInt(&c.Verification.MaxAttempts)
	case "verification.lockout_duration_secs":
		return setInt(&c.Verification.LockoutDurationSecs)
	case "verification.session_timeout_secs":
		return setInt(&c.Verification.SessionTimeoutSecs)
	case "verification.history_cap":
		return setInt(&c.Verification.HistoryCap)
	case "verification.min_name_length":
		return setInt(&c.Verification.MinNameLength)
	case "verification.min_order_id_length":
		return setInt(&c.Verification.MinOrderIDLength)
	case "data.csv_path":
		c.Data.CSVPath = value
		return nil
	case "data.sqlite_path":
		c.Data.SQLitePath = value
		return nil
	case "data.watch":
		return setBool(&c.Data.Watch)
	case "data.lookup_rate":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s requires a number, got %q", key, value)
		}
		c.Data.LookupRate = f
		return nil
	case "data.lookup_burst":
		return setInt(&c.Data.LookupBurst)
	case "ui.theme":
		c.UI.Theme = value
		return nil
	case "ui.markdown":
		return setBool(&c.UI.Markdown)
	case "ui.search_delay_ms":
		return setInt(&c.UI.SearchDelayMs)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// Keys returns all recognized dot-notation keys, sorted by section.
func Keys() []string {
	return []string{
		"verification.max_attempts",
		"verification.lockout_duration_secs",
		"verification.session_timeout_secs",
		"verification.history_cap",
		"verification.min_name_length",
		"verification.min_order_id_length",
		"data.csv_path",
		"data.sqlite_path",
		"data.watch",
		"data.lookup_rate",
		"data.lookup_burst",
		"ui.theme",
		"ui.markdown",
		"ui.search_delay_ms",
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets global config state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
