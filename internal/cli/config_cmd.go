// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command handler.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/orderline-tui/internal/config"
)

// HandleConfig processes config subcommands: show, get, set, path.
func HandleConfig(args Args) {
	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch args.Subcommand {
	case "", "show":
		configShow(cfg)

	case "get":
		if args.ConfigKey == "" {
			fmt.Fprintln(os.Stderr, "Usage: orderline config get KEY")
			os.Exit(1)
		}
		val, err := cfg.Get(args.ConfigKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(val)

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			fmt.Fprintln(os.Stderr, "Usage: orderline config set KEY VALUE")
			os.Exit(1)
		}
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Set %s = %s\n", args.ConfigKey, args.ConfigVal)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: orderline config [show|get KEY|set KEY VALUE|path]")
		os.Exit(1)
	}
}

// configShow prints every settable key and its current value.
func configShow(cfg *config.Config) {
	fmt.Println("Configuration:")
	for _, key := range config.Keys() {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("  %-35s %v\n", key, val)
	}
}
