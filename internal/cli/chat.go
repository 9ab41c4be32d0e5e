// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode assistant for plain terminals.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/orderline-tui/internal/config"
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/store"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// ChatCLI is the line-mode verification assistant. It drives the same
// workflow as the TUI over a plain readline loop, for terminals where a
// full-screen program is unwelcome (ssh, screen readers, logging).
type ChatCLI struct {
	cfg         *config.Config
	machine     *session.Machine
	sess        *session.Session
	provider    store.Provider
	guard       *store.Guard
	line        *liner.State
	historyFile string
	renderer    *glamour.TermRenderer
	quiet       bool
}

// NewChatCLI creates a line-mode assistant.
func NewChatCLI(cfg *config.Config, machine *session.Machine, prov store.Provider, guard *store.Guard, quiet bool) *ChatCLI {
	c := &ChatCLI{
		cfg:      cfg,
		machine:  machine,
		sess:     session.New(),
		provider: prov,
		guard:    guard,
		quiet:    quiet,
	}

	if err := config.EnsureConfigDir(); err == nil {
		if dir, derr := config.ConfigDir(); derr == nil {
			c.historyFile = filepath.Join(dir, "chat_history")
		}
	}

	if IsStdoutTTY() && cfg.UI.Markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(GetTerminalWidth(), 100)),
		)
		if err == nil {
			c.renderer = r
		}
	}

	return c
}

// Run starts the interactive loop. Blocks until the user quits.
func (c *ChatCLI) Run() error {
	c.line = liner.NewLiner()
	defer c.close()

	c.line.SetCtrlCAborts(true)
	c.loadHistory()

	if !c.quiet {
		c.printWelcome()
	}

	for {
		input, err := c.readInput()
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if c.handleCommand(input) {
				return nil
			}
			continue
		}

		c.handleInput(input)
	}
}

// close saves readline history and restores the terminal.
func (c *ChatCLI) close() {
	if c.historyFile != "" {
		var buf bytes.Buffer
		if _, err := c.line.WriteHistory(&buf); err == nil {
			util.AtomicWriteFile(c.historyFile, buf.Bytes(), 0600)
		}
	}
	c.line.Close()
}

func (c *ChatCLI) loadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// readInput prompts according to the current stage. Account ids are read
// without echo and are never written to readline history.
func (c *ChatCLI) readInput() (string, error) {
	if c.timedOut() {
		fmt.Println("Session timed out after inactivity. Starting over.")
	}

	switch c.sess.Stage() {
	case session.AwaitingName:
		input, err := c.line.Prompt("name> ")
		if err == nil && input != "" {
			c.line.AppendHistory(input)
		}
		return input, err

	case session.AwaitingOrderId:
		input, err := c.line.Prompt("order> ")
		if err == nil && input != "" {
			c.line.AppendHistory(input)
		}
		return input, err

	default:
		// Second factor: masked, kept out of history.
		return c.line.PasswordPrompt("account> ")
	}
}

// timedOut applies the inactivity timeout and reports whether it fired.
func (c *ChatCLI) timedOut() bool {
	now := time.Now()
	if !c.machine.Monitor().Expired(c.sess, now) {
		return false
	}
	return c.machine.Monitor().CheckTimeout(c.sess, now)
}

// handleCommand processes a slash command. Returns true to exit.
func (c *ChatCLI) handleCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	now := time.Now()

	switch cmd {
	case "/quit", "/exit", "/q":
		fmt.Println("Goodbye!")
		return true

	case "/help", "/h":
		c.printHelp()

	case "/back", "/b":
		ev := c.machine.Back(c.sess, now)
		c.report(ev, "Back to order id entry.")

	case "/next", "/n":
		ev := c.machine.NextOrder(c.sess, now)
		c.report(ev, "Enter the next order id.")

	case "/restart", "/r":
		ev := c.machine.Restart(c.sess, now)
		c.report(ev, "Starting over. What is your name?")

	case "/history":
		c.printHistory()

	case "/status":
		c.printStatus()

	default:
		fmt.Printf("Unknown command: %s (try /help)\n", cmd)
	}
	return false
}

// handleInput feeds plain input to the stage the session is in.
func (c *ChatCLI) handleInput(input string) {
	now := time.Now()

	switch c.sess.Stage() {
	case session.AwaitingName:
		c.report(c.machine.ConfirmName(c.sess, input, now), "")

	case session.AwaitingOrderId:
		c.report(c.machine.SubmitOrderID(c.sess, input, now), "")

	case session.AwaitingVerification:
		// Honor the shared lookup budget before touching the data set.
		if d := c.guard.Delay(); d > 0 {
			time.Sleep(d)
		}
		c.report(c.machine.Verify(c.sess, input, now), "")
	}
}

// report prints the outcome of an action. fallback covers nil events from
// navigation actions.
func (c *ChatCLI) report(ev session.Event, fallback string) {
	switch e := ev.(type) {
	case nil:
		if fallback != "" {
			fmt.Println(fallback)
		}

	case session.NameAccepted:
		fmt.Printf("Hello, %s. Which sales order would you like to check?\n", e.Name)

	case session.NameRejected:
		fmt.Printf("Sorry: %s\n", e.Reason)

	case session.OrderIDAccepted:
		fmt.Printf("Order %s. Please enter the invoice account to verify.\n", e.OrderID)

	case session.OrderIDRejected:
		fmt.Printf("Sorry: %s\n", e.Reason)

	case session.VerificationSucceeded:
		fmt.Println("Verified.")
		c.printOrder(e.Order)
		fmt.Println("Type /next to check another order, or /quit to exit.")

	case session.AccountMismatch:
		fmt.Printf("That account does not match this order. Attempt %d of %d.\n", e.Attempt, e.Max)

	case session.OrderNotFound:
		fmt.Printf("No order found for that id and account. Attempt %d of %d.\n", e.Attempt, e.Max)

	case session.LockedOut:
		fmt.Printf("Too many failed attempts. Try again in %s.\n", formatDuration(e.Remaining))

	case session.SessionTimedOut:
		fmt.Println("Session timed out after inactivity. Starting over. What is your name?")

	case session.ValidationError:
		fmt.Printf("Sorry: %s\n", e.Reason)
	}
}

// printOrder renders the verified order, as markdown when a renderer is
// available.
func (c *ChatCLI) printOrder(o model.Order) {
	md := orderMarkdown(o)
	if c.renderer != nil {
		if out, err := c.renderer.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(WrapText(md, GetTerminalWidth()))
}

// orderMarkdown builds the markdown summary of a verified order.
func orderMarkdown(o model.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Order %s\n\n", o.SalesOrder)
	fmt.Fprintf(&b, "- **Status:** %s\n", orDash(o.OrderStatus))
	fmt.Fprintf(&b, "- **Delivery date:** %s\n", orDash(o.DeliveryDate))
	fmt.Fprintf(&b, "- **Shipping date:** %s\n", orDash(o.ShippingDate))
	fmt.Fprintf(&b, "- **Delivery address:** %s\n", orDash(o.DeliveryAddress))
	fmt.Fprintf(&b, "- **Delivery mode:** %s\n", orDash(o.DeliveryMode))
	fmt.Fprintf(&b, "- **Delivery terms:** %s\n\n", orDash(o.DeliveryTerms))

	b.WriteString("| Item | Product | Qty | Unit price | Net amount |\n")
	b.WriteString("|------|---------|----:|-----------:|-----------:|\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "| %s | %s | %s %s | %s | %s |\n",
			orDash(it.ItemNumber), orDash(it.ProductName),
			it.QuantityOrdered.String(), it.Unit,
			it.UnitPrice.String(), it.NetAmount.String())
	}

	fmt.Fprintf(&b, "\n**Total: %s across %d line item(s)**\n",
		o.TotalNetAmount().String(), o.ItemCount())
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func (c *ChatCLI) printWelcome() {
	snap := c.provider.Snapshot()
	fmt.Println("Orderline verification assistant (line mode)")
	fmt.Printf("Loaded %d record(s) across %d order(s). Type /help for commands.\n\n",
		snap.Len(), snap.OrderCount())
	fmt.Println("What is your name?")
}

func (c *ChatCLI) printHelp() {
	fmt.Println(`Commands:
  /back      Return to order id entry
  /next      Check another order after verification
  /restart   Start over from name entry
  /history   Show orders resolved this session
  /status    Show session status
  /quit      Exit`)
}

func (c *ChatCLI) printHistory() {
	history := c.sess.History()
	if len(history) == 0 {
		fmt.Println("No orders resolved yet this session.")
		return
	}
	fmt.Printf("Resolved orders (%d, most recent first):\n", len(history))
	for _, h := range history {
		fmt.Printf("  %s  %s  %d item(s)  total %s\n",
			h.Timestamp.Format("15:04:05"), h.OrderID, h.ItemCount, h.TotalAmount.String())
	}
}

func (c *ChatCLI) printStatus() {
	now := time.Now()
	snap := c.provider.Snapshot()

	fmt.Printf("Session:   %s (started %s)\n",
		c.sess.ID()[:8], c.sess.StartTime().Format("15:04:05"))
	fmt.Printf("Stage:     %s\n", c.sess.Stage())
	if name := c.sess.CustomerName(); name != "" {
		fmt.Printf("Customer:  %s\n", name)
	}
	if id := c.sess.PendingOrderID(); id != "" {
		fmt.Printf("Order:     %s\n", id)
	}
	fmt.Printf("Attempts:  %d of %d\n", c.sess.FailedAttempts(), c.machine.Limiter().MaxAttempts())
	if locked, remaining := c.machine.Limiter().IsLocked(c.sess, now); locked {
		fmt.Printf("Locked:    %s remaining\n", formatDuration(remaining))
	}
	fmt.Printf("Timeout:   %s of inactivity remaining\n",
		formatDuration(c.machine.Monitor().Remaining(c.sess, now)))
	fmt.Printf("Data:      %d record(s), %d order(s)\n",
		snap.Len(), snap.OrderCount())
}

// formatDuration renders a duration as m:ss for user-facing countdowns.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// HandleChat starts the line-mode assistant.
func HandleChat(args Args) {
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

	chat := NewChatCLI(cfg, machine, prov, guard, args.Quiet)
	if err := chat.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
