// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/orderline-tui/internal/config"
)

// HandleStatus shows the data source and configuration summary.
func HandleStatus(args Args) {
	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Orderline Status")
	fmt.Println("================")
	fmt.Println()

	if path, err := config.ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			fmt.Printf("Config:        %s\n", path)
		} else {
			fmt.Printf("Config:        defaults (no file at %s)\n", path)
		}
	}

	switch {
	case cfg.Data.SQLitePath != "":
		fmt.Printf("Data source:   sqlite %s\n", cfg.Data.SQLitePath)
	case cfg.Data.CSVPath != "":
		fmt.Printf("Data source:   csv %s (watch: %v)\n", cfg.Data.CSVPath, cfg.Data.Watch)
	default:
		fmt.Println("Data source:   embedded sample data")
	}

	prov, err := buildProvider(cfg, true)
	if err != nil {
		fmt.Printf("Data:          unavailable (%v)\n", err)
	} else {
		defer prov.close()
		snap := prov.Snapshot()
		fmt.Printf("Data:          %d record(s), %d order(s)\n", snap.Len(), snap.OrderCount())
		if !snap.LoadedAt().IsZero() {
			fmt.Printf("Loaded:        %s\n", snap.LoadedAt().Format("2006-01-02 15:04:05"))
		}
	}

	fmt.Println()
	fmt.Printf("Max attempts:  %d\n", cfg.Verification.MaxAttempts)
	fmt.Printf("Lockout:       %ds\n", cfg.Verification.LockoutDurationSecs)
	fmt.Printf("Idle timeout:  %ds\n", cfg.Verification.SessionTimeoutSecs)
	fmt.Printf("History cap:   %d\n", cfg.Verification.HistoryCap)
	fmt.Printf("Theme:         %s\n", cfg.UI.Theme)
}
