// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// data_cmd.go - Data command handler: CSV import and database inspection.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/orderline-tui/internal/config"
	"github.com/jeranaias/orderline-tui/internal/store"
)

// HandleData processes data subcommands: import, show.
func HandleData(args Args) {
	switch args.Subcommand {
	case "import":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, "Usage: orderline data import FILE [--db PATH]")
			os.Exit(1)
		}
		dataImport(args, args.Raw[0])

	case "show":
		dataShow(args)

	default:
		fmt.Fprintln(os.Stderr, "Usage: orderline data [import FILE|show]")
		os.Exit(1)
	}
}

// dataImport loads a salesline CSV export into the SQLite database,
// replacing its contents.
func dataImport(args Args, csvPath string) {
	dbPath := args.DBPath
	if dbPath == "" {
		if err := config.EnsureConfigDir(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		var err error
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	defer f.Close()

	items, err := store.ParseCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	if len(items) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s contains no usable rows\n", csvPath)
		os.Exit(1)
	}

	db, err := store.NewSQLiteProvider(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Import(items); err != nil {
		fmt.Fprintf(os.Stderr, "Error: import failed: %v\n", err)
		os.Exit(1)
	}

	snap := db.Snapshot()
	fmt.Printf("Imported %d record(s) across %d order(s) into %s\n",
		snap.Len(), snap.OrderCount(), dbPath)
}

// dataShow prints a per-order summary of the configured data source.
func dataShow(args Args) {
	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prov, err := buildProvider(cfg, args.Quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer prov.close()

	snap := prov.Snapshot()
	if snap.Len() == 0 {
		fmt.Println("No order data loaded.")
		return
	}

	ids := snap.OrderIDs()
	fmt.Printf("%d record(s) across %d order(s):\n\n", snap.Len(), len(ids))
	for _, id := range ids {
		rows := snap.OrderRows(id)
		if len(rows) == 0 {
			continue
		}
		var total = rows[0].NetAmount
		for _, r := range rows[1:] {
			total = total.Add(r.NetAmount)
		}
		fmt.Printf("  %-14s %-28s %2d item(s)  total %s\n",
			id, truncate(rows[0].DeliveryAddress, 28), len(rows), total.String())
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
