package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// formatVersion adds 'v' prefix if version starts with a digit
func formatVersion(ver string) string {
	if len(ver) > 0 && unicode.IsDigit(rune(ver[0])) {
		return "v" + ver
	}
	return ver
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bonded",
	Short: "List Bluetooth devices bonded to this host",
	Long: `Bonded lists the Bluetooth devices remembered (bonded) by the host's
default adapter:

- list prints the bonded set as a table or JSON
- invoke runs a bridge method and prints the settled promise payload

No scanning, pairing or connecting is ever performed.`,
	Version: formatVersion(version),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Ctrl+C is a normal exit, not an error - exit silently
		if errors.Is(err, context.Canceled) {
			return
		}
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %s\n", red("ERROR:"), FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	// Silence Cobra's "Error:" prefix - main() prints clean errors
	rootCmd.SilenceErrors = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("bonded {{.Version}} (commit %s, built %s)\n", commit, date))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(invokeCmd)

	initRootFlags()
}

func initRootFlags() {
	// Global flags
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")

	// Add -v as a short flag for --version
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
}
