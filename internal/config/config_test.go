// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Verification.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Verification.MaxAttempts)
	}
	if cfg.Verification.LockoutDurationSecs != 300 {
		t.Errorf("LockoutDurationSecs = %d, want 300", cfg.Verification.LockoutDurationSecs)
	}
	if cfg.Verification.SessionTimeoutSecs != 900 {
		t.Errorf("SessionTimeoutSecs = %d, want 900", cfg.Verification.SessionTimeoutSecs)
	}
	if cfg.Verification.HistoryCap != 20 {
		t.Errorf("HistoryCap = %d, want 20", cfg.Verification.HistoryCap)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0"

[verification]
max_attempts = 5
lockout_duration_secs = 120

[data]
csv_path = "/tmp/salesline.csv"
watch = false

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Verification.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Verification.MaxAttempts)
	}
	if cfg.Verification.LockoutDurationSecs != 120 {
		t.Errorf("LockoutDurationSecs = %d, want 120", cfg.Verification.LockoutDurationSecs)
	}
	// Unset fields fall back to defaults.
	if cfg.Verification.SessionTimeoutSecs != 900 {
		t.Errorf("SessionTimeoutSecs = %d, want default 900", cfg.Verification.SessionTimeoutSecs)
	}
	if cfg.Data.CSVPath != "/tmp/salesline.csv" {
		t.Errorf("CSVPath = %q", cfg.Data.CSVPath)
	}
	if cfg.Data.Watch {
		t.Error("Watch should be false")
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"verification": {"max_attempts": 4}, "ui": {"theme": "dark"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Verification.MaxAttempts != 4 {
		t.Errorf("MaxAttempts = %d, want 4", cfg.Verification.MaxAttempts)
	}
}

func TestSetDefaultsClamps(t *testing.T) {
	cfg := &Config{}
	cfg.Verification.LockoutDurationSecs = 10
	cfg.Verification.SessionTimeoutSecs = 100000
	cfg.SetDefaults()

	if cfg.Verification.LockoutDurationSecs != 60 {
		t.Errorf("LockoutDurationSecs = %d, want clamped 60", cfg.Verification.LockoutDurationSecs)
	}
	if cfg.Verification.SessionTimeoutSecs != 3600 {
		t.Errorf("SessionTimeoutSecs = %d, want clamped 3600", cfg.Verification.SessionTimeoutSecs)
	}
}

func TestValidateRejectsBadTheme(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "solarized"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ORDERLINE_CSV", "/data/export.csv")
	t.Setenv("ORDERLINE_MAX_ATTEMPTS", "5")
	t.Setenv("ORDERLINE_WATCH", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Data.CSVPath != "/data/export.csv" {
		t.Errorf("CSVPath = %q", cfg.Data.CSVPath)
	}
	if cfg.Verification.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Verification.MaxAttempts)
	}
	if cfg.Data.Watch {
		t.Error("Watch should be overridden to false")
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Verification.MaxAttempts = 6
	cfg.Data.CSVPath = "/data/orders.csv"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Verification.MaxAttempts != 6 {
		t.Errorf("MaxAttempts = %d, want 6", loaded.Verification.MaxAttempts)
	}
	if loaded.Data.CSVPath != "/data/orders.csv" {
		t.Errorf("CSVPath = %q", loaded.Data.CSVPath)
	}
}

func TestWorkflowConversion(t *testing.T) {
	cfg := Default()
	wf := cfg.Workflow()

	if wf.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d", wf.MaxAttempts)
	}
	if wf.LockoutDuration != 5*time.Minute {
		t.Errorf("LockoutDuration = %v, want 5m", wf.LockoutDuration)
	}
	if wf.SessionTimeout != 15*time.Minute {
		t.Errorf("SessionTimeout = %v, want 15m", wf.SessionTimeout)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("verification.max_attempts", "7"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, err := cfg.Get("verification.max_attempts")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v.(int) != 7 {
		t.Errorf("value = %v, want 7", v)
	}

	if err := cfg.Set("verification.max_attempts", "lots"); err == nil {
		t.Error("expected error for non-integer value")
	}
	if _, err := cfg.Get("no.such.key"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestKeysAllGettable(t *testing.T) {
	cfg := Default()
	for _, key := range Keys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) failed: %v", key, err)
		}
	}
}
