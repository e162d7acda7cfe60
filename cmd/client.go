package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/itiky/game-console/export"
	"github.com/itiky/game-console/service/client"
)

const (
	FlagOutput = "output"
	FlagYes    = "yes"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputCSV   = "csv"
	outputYAML  = "yaml"
)

var (
	stdinOnce    sync.Once
	stdinScanner *bufio.Scanner
)

// console bundles the client side objects a single command works with.
type console struct {
	dispatcher *client.Dispatcher
	monitor    *client.Monitor
}

// close stops the call monitor and logs the call statistics.
func (c *console) close() {
	c.monitor.Stop()
	slog.Debug("Console calls", "avg_dur_ms", c.monitor.AvgDuration(""))
}

// newConsole builds the client stack from appConfig.
// Without a configured token the admin credentials are used to log in.
func newConsole(ctx context.Context) (*console, error) {
	cfg := appConfig

	session := client.NewSession(cfg.Token)
	session.OnInvalidate(func() {
		fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
	})

	monitor := client.NewMonitor(slog.Default(), cfg.MonitorPeriod)
	gateway, err := client.NewGateway(cfg.ServerURL, session,
		client.WithTimeout(cfg.Timeout),
		client.WithUnwrap(cfg.Unwrap),
		client.WithMonitor(monitor),
	)
	if err != nil {
		return nil, fmt.Errorf("gateway init: %w", err)
	}

	if !session.Valid() {
		if err := gateway.Authenticate(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
	}

	dispatcher, err := client.NewDispatcher(gateway,
		client.WithRuntimeErrorInvalidation(cfg.InvalidateOnRuntimeError),
		client.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("dispatcher init: %w", err)
	}
	monitor.Start()

	return &console{
		dispatcher: dispatcher,
		monitor:    monitor,
	}, nil
}

// readLine reads a single stdin line, ok is false on EOF.
func readLine() (string, bool) {
	stdinOnce.Do(func() {
		stdinScanner = bufio.NewScanner(os.Stdin)
	})

	if !stdinScanner.Scan() {
		return "", false
	}

	return strings.TrimSpace(stdinScanner.Text()), true
}

// newConfirm returns the destructive action prompt, --yes approves everything.
func newConfirm(cmd *cobra.Command) client.ConfirmFunc {
	yes, _ := cmd.Flags().GetBool(FlagYes)

	return func(prompt string) bool {
		if yes {
			return true
		}

		fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
		answer, ok := readLine()
		if !ok {
			return false
		}

		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	}
}

// writeItems prints items in the requested format, table rows are built by the caller.
func writeItems[T any](w io.Writer, format string, items []T, header []string, row func(item T) []string) error {
	switch format {
	case outputJSON:
		return export.JSON(w, items)
	case outputCSV:
		return export.CSV(w, items)
	case outputYAML:
		return export.YAML(w, items)
	case outputTable, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for _, item := range items {
			fmt.Fprintln(tw, strings.Join(row(item), "\t"))
		}
		return tw.Flush()
	}

	return fmt.Errorf("%s: unknown format %q", FlagOutput, format)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(FlagOutput, "o", outputTable, "(optional) output format: table|json|csv|yaml")
}

func addConfirmFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP(FlagYes, "y", false, "(optional) skip the confirmation prompt")
}
