// Gazscan is a parameter scanner for GazModem heating controllers.
//
// It passively sniffs an RS-485 bus for device addresses, then actively
// probes each device's parameter table, decoding names, values, units
// and types from the read responses. The bus is reached over a TCP
// serial bridge or a local serial port.
//
// Usage:
//
//	gazscan [command] [flags]
//
// Running without arguments starts a scan with the default settings.
// See 'gazscan --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/gazscan/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gazscan",
	Short: "GazModem Parameter Scanner",
	Long: `A scanner for GazModem heating controller buses.

Discovers devices by passively sniffing bus traffic, then probes each
device's parameter index space and decodes every assigned parameter:
name, current value, unit, type and access.

If no command is specified, a scan starts with the default settings.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run a scan when no subcommand provided
		return runScan(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gazscan %s (commit: %s)\n", version.Version, version.Commit)
	},
}
