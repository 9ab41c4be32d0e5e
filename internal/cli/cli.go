// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for orderline.
package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/orderline-tui/internal/config"
	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/store"
	"github.com/jeranaias/orderline-tui/internal/ui/assistant"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdStatus
	CmdConfig
	CmdData
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	CSVPath    string
	DBPath     string
	Quiet      bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `orderline %s - order verification assistant

Orderline authenticates a customer to a purchase order before revealing
order data: name, order id, then the invoice account as the second
factor. Failed verifications are attempt-limited with a temporary
lockout, and idle sessions expire automatically.

Usage:
  orderline                    Start the TUI (default)
  orderline chat               Line-mode assistant (plain terminals)
  orderline status, s          Show data source and config summary
  orderline config [show|get|set|path]
                               Configuration management
  orderline data import FILE   Import a salesline CSV into the database
  orderline data show          Show database contents summary
  orderline version, -v        Print version
  orderline help, -h           Show this help

Global flags:
  --config PATH    Use a specific config file
  --csv PATH       Load order data from this CSV export
  --db PATH        Use this SQLite database
  -q, --quiet      Minimal output

Interactive commands (during chat):
  /help        Show available commands
  /back        Return to order id entry
  /next        Check another order after verification
  /restart     Start over from name entry
  /history     Show resolved orders this session
  /status      Show session status
  /quit        Exit

Data is loaded from, in order of precedence: --csv / --db flags,
ORDERLINE_CSV / ORDERLINE_DB environment variables, the config file,
and finally an embedded sample data set.
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("orderline version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "chat":
		return CmdChat, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		if len(remaining) > 0 {
			args.Subcommand = remaining[0]
		}
		switch args.Subcommand {
		case "get":
			if len(remaining) > 1 {
				args.ConfigKey = remaining[1]
			}
		case "set":
			if len(remaining) > 1 {
				args.ConfigKey = remaining[1]
			}
			if len(remaining) > 2 {
				args.ConfigVal = remaining[2]
			}
		}
		return CmdConfig, args

	case "data":
		if len(remaining) > 0 {
			args.Subcommand = remaining[0]
			args.Raw = remaining[1:]
		}
		return CmdData, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--config":
			if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		case "--csv":
			if i+1 < len(argv) {
				i++
				args.CSVPath = argv[i]
			}
		case "--db":
			if i+1 < len(argv) {
				i++
				args.DBPath = argv[i]
			}
		case "-q", "--quiet":
			args.Quiet = true
		default:
			remaining = append(remaining, argv[i])
		}
	}

	return remaining, args
}

// =============================================================================
// SETUP HELPERS
// =============================================================================

// loadConfig loads configuration honoring the --config flag and applies
// data-source flag overrides.
func loadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.CSVPath != "" {
		cfg.Data.CSVPath = args.CSVPath
		cfg.Data.SQLitePath = ""
	}
	if args.DBPath != "" {
		cfg.Data.SQLitePath = args.DBPath
	}

	config.SetGlobal(cfg)
	return cfg, nil
}

// provider is the record provider plus its cleanup function.
type provider struct {
	store.Provider
	close func() error
}

// buildProvider constructs the record provider from config: SQLite when
// configured, otherwise CSV (with optional file watching), otherwise the
// embedded sample data.
func buildProvider(cfg *config.Config, quiet bool) (*provider, error) {
	if cfg.Data.SQLitePath != "" {
		p, err := store.NewSQLiteProvider(cfg.Data.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open order database: %w", err)
		}
		return &provider{Provider: p, close: p.Close}, nil
	}

	p, err := store.NewCSVProvider(cfg.Data.CSVPath)
	if err != nil && !quiet {
		fmt.Fprintf(os.Stderr, "Warning: %v; using embedded sample data\n", err)
	}
	if cfg.Data.CSVPath != "" && cfg.Data.Watch {
		if err := p.Watch(cfg.WatchDebounce()); err != nil && !quiet {
			fmt.Fprintf(os.Stderr, "Warning: file watching unavailable: %v\n", err)
		}
	}
	return &provider{Provider: p, close: p.Close}, nil
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleTUI starts the full-screen assistant.
func HandleTUI(args Args) {
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

	engine := store.NewEngine(prov)
	guard := store.NewGuard(cfg.Data.LookupRate, cfg.Data.LookupBurst)
	machine := session.NewMachine(engine, cfg.Workflow())

	m := assistant.New(cfg, machine, prov, guard)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp prints usage.
func HandleHelp() {
	PrintUsage()
}
