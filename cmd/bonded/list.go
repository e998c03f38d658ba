package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/bonded/enumerator"
	"github.com/srg/bonded/internal/devicefactory"
	"github.com/srg/bonded/pkg/config"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bonded Bluetooth devices",
	Long: `List the devices bonded to the default Bluetooth adapter.

Each device is printed with its display name and hardware address. Devices
without a name are shown with an empty name. The list reflects the adapter's
state at the time of the call.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listFormat  string
	listAdapter string
	listTimeout time.Duration
	listLong    bool
)

func init() {
	initListFlags()
}

func initListFlags() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "auto", "Output format (auto, table, json)")
	listCmd.Flags().StringVarP(&listAdapter, "adapter", "a", "", "Adapter to query, e.g. hci1 (default: first adapter)")
	listCmd.Flags().DurationVarP(&listTimeout, "timeout", "t", 5*time.Second, "Maximum time to wait for the Bluetooth stack (0 for none)")
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Include alias, connection state and services")
}

// applyListFlags overrides configuration values with explicitly set flags
func applyListFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("format") {
		cfg.OutputFormat = listFormat
	}
	if cmd.Flags().Changed("adapter") {
		cfg.Adapter = listAdapter
	}
	if cmd.Flags().Changed("timeout") {
		cfg.QueryTimeout = listTimeout
	}
	return cfg.Validate()
}

// newEnumerator builds an Enumerator over the platform provider
func newEnumerator(cfg *config.Config, logger *logrus.Logger) (*enumerator.Enumerator, error) {
	provider, err := devicefactory.ProviderFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bluetooth provider: %w", err)
	}
	return enumerator.NewEnumerator(provider, logger)
}

// queryContext bounds a query by timeout and cancels it on Ctrl+C
func queryContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	if err := applyListFlags(cmd, cfg); err != nil {
		return err
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	e, err := newEnumerator(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := queryContext(cfg.QueryTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	format := resolveFormat(cfg.OutputFormat, out)

	if listLong {
		details, err := e.BondedDetails(ctx)
		if err != nil {
			return err
		}
		if format == "json" {
			return writeJSON(out, details)
		}
		return writeDetailsTable(out, details)
	}

	records, err := e.BondedDevices(ctx)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(out, records)
	}
	return writeRecordsTable(out, records)
}
