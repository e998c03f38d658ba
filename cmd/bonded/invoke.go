package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/srg/bonded/bridge"
)

// invokeCmd represents the invoke command
var invokeCmd = &cobra.Command{
	Use:   "invoke <method>",
	Short: "Invoke a bridge method and print the settled payload",
	Long: `Invoke a method of a registered bridge module the way the host runtime
does, and print the settled promise as JSON:

  {"result": [{"name": "...", "address": "..."}]}
  {"error": {"code": "NO_BT", "message": "Bluetooth no disponible"}}

The command exits with a non-zero status when the promise is rejected.`,
	Example: `  bonded invoke getBondedDevices
  bonded invoke --module BondedDevicesModule getBondedDevices`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoke,
}

var (
	invokeModule  string
	invokeTimeout time.Duration
)

func init() {
	initInvokeFlags()
}

func initInvokeFlags() {
	invokeCmd.Flags().StringVarP(&invokeModule, "module", "m", bridge.ModuleName, "Bridge module name")
	invokeCmd.Flags().DurationVarP(&invokeTimeout, "timeout", "t", 5*time.Second, "Maximum time to wait for the promise to settle (0 for none)")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	cfg, logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.QueryTimeout = invokeTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd.SilenceUsage = true

	e, err := newEnumerator(cfg, logger)
	if err != nil {
		return err
	}
	module, err := bridge.NewBondedDevicesModule(e, logger)
	if err != nil {
		return err
	}
	registry := bridge.NewRegistry(logger)
	if err := registry.Register(module); err != nil {
		return err
	}

	ctx, cancel := queryContext(cfg.QueryTimeout)
	defer cancel()

	future := bridge.NewFuture()
	registry.Invoke(ctx, invokeModule, args[0], future)
	if _, err := future.Await(ctx); err != nil {
		if _, settled := future.Settled(); !settled {
			return err
		}
	}

	payload, _ := future.Settled()
	if err := writeJSON(cmd.OutOrStdout(), payload); err != nil {
		return err
	}
	if payload.Error != nil {
		return fmt.Errorf("%w: %w", ErrRejected, payload.Error)
	}
	return nil
}
