package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/gazscan/internal/config"
	"github.com/muurk/gazscan/internal/discovery"
	"github.com/muurk/gazscan/internal/export"
	"github.com/muurk/gazscan/internal/logging"
	"github.com/muurk/gazscan/internal/protocol"
	"github.com/muurk/gazscan/internal/scanner"
	"github.com/muurk/gazscan/internal/transport"
	"github.com/muurk/gazscan/internal/ui"
)

// Scan command flags
var (
	endpoint    string
	serialPort  string
	baudRate    int
	sourceAddr  uint16
	sniffWindow int
	streakLimit int
	indexStart  int
	indexEnd    int
	profileName string
	csvPath     string
	noTUI       bool

	discoverTimeout int
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(profilesCmd)

	for _, cmd := range []*cobra.Command{rootCmd, scanCmd} {
		cmd.Flags().StringVar(&endpoint, "endpoint", "", "TCP host:port of the serial bridge")
		cmd.Flags().StringVar(&serialPort, "serial", "", "Local serial port (e.g. /dev/ttyUSB0); overrides --endpoint")
		cmd.Flags().IntVar(&baudRate, "baud", transport.DefaultBaudRate, "Serial baud rate")
		cmd.Flags().Uint16Var(&sourceAddr, "source-addr", 0, "Bus address the scanner claims")
		cmd.Flags().IntVar(&sniffWindow, "sniff-window", 30, "Passive sniffing window in seconds")
		cmd.Flags().IntVar(&streakLimit, "streak-limit", scanner.DefaultStreakLimit, "Consecutive empty probes before skipping a device")
		cmd.Flags().IntVar(&indexStart, "index-start", 0, "First parameter index to probe")
		cmd.Flags().IntVar(&indexEnd, "index-end", scanner.DefaultIndexEnd, "One past the last parameter index to probe")
		cmd.Flags().StringVar(&profileName, "profile", "", "Named scan profile from the config file")
		cmd.Flags().StringVar(&csvPath, "csv", "", "Export decoded parameters to this CSV file")
		cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Plain line output instead of the interactive UI")
	}
}

// scanCmd runs a full bus scan
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the bus for devices and their parameters",
	Long: `Scan a GazModem bus in two phases.

Phase 1 passively sniffs bus traffic for device addresses. Phase 2
actively probes each discovered device across the parameter index
range, decoding every response. Devices whose parameter tables end
early are skipped once a long run of empty indices is seen.

If no traffic appears during the sniffing window, the common addresses
1 and 100 are probed anyway.`,
	Example: `  # Scan via the default TCP bridge
  gazscan scan

  # Scan through a specific bridge and export the results
  gazscan scan --endpoint 192.168.1.38:8899 --csv boiler.csv

  # Scan a local RS-485 adapter
  gazscan scan --serial /dev/ttyUSB0

  # Use a saved profile, plain output for piping
  gazscan scan --profile boiler-room --no-tui`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := resolveScanConfig(cmd)
	if err != nil {
		return err
	}

	target := cfg.Endpoint
	if cfg.SerialPort != "" {
		target = cfg.SerialPort
	}

	scan := scanner.New(cfg, logging.GetLogger())
	start := time.Now()

	if noTUI || !ui.IsInteractive() {
		return runScanPlain(scan, target)
	}

	records, err := ui.RunScan(scan, target, csvPath)
	if err != nil {
		return err
	}

	exported := ""
	if csvPath != "" && len(records) > 0 {
		if err := export.SaveCSV(csvPath, records); err != nil {
			return err
		}
		exported = csvPath
	}

	fmt.Println(ui.RenderScanSummary(records, time.Since(start), exported, ui.GetTerminalWidth()))
	return nil
}

// runScanPlain streams records as plain lines, one per parameter, with
// status messages on stderr. Suitable for piping and scripting.
func runScanPlain(scan *scanner.Scanner, target string) error {
	fmt.Fprintf(os.Stderr, "Scanning %s\n", target)

	scan.Start()

	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		for st := range scan.Status() {
			fmt.Fprintln(os.Stderr, st.Message)
		}
	}()

	var records []protocol.ParameterRecord
	for rec := range scan.Records() {
		records = append(records, rec)
		fmt.Println(ui.PrintRecordLine(rec))
	}
	<-statusDone

	if csvPath != "" && len(records) > 0 {
		if err := export.SaveCSV(csvPath, records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", len(records), csvPath)
	}

	fmt.Fprintf(os.Stderr, "%d parameters found\n", len(records))
	return nil
}

// resolveScanConfig builds the scan configuration from the profile (if
// any) overlaid with explicitly set flags.
func resolveScanConfig(cmd *cobra.Command) (scanner.Config, error) {
	cfg := scanner.DefaultConfig()

	registry, err := config.LoadRegistry()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if profileName != "" {
		profile := registry.GetProfile(profileName)
		if profile == nil {
			return cfg, fmt.Errorf("profile %q not found; see 'gazscan profiles'", profileName)
		}
		overlayProfile(&cfg, profile)
		registry.TouchProfile(profileName)
		if err := registry.Save(); err != nil {
			logging.Warn("failed to update profile timestamp")
		}
	} else if profile := registry.DefaultProfile(); profile != nil {
		overlayProfile(&cfg, profile)
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("serial") {
		cfg.SerialPort = serialPort
	}
	if flags.Changed("baud") {
		cfg.BaudRate = baudRate
	}
	if flags.Changed("source-addr") {
		cfg.SourceAddr = sourceAddr
	}
	if flags.Changed("sniff-window") {
		cfg.SniffWindow = time.Duration(sniffWindow) * time.Second
	}
	if flags.Changed("streak-limit") {
		cfg.StreakLimit = streakLimit
	}
	if flags.Changed("index-start") {
		cfg.IndexStart = indexStart
	}
	if flags.Changed("index-end") {
		cfg.IndexEnd = indexEnd
	}

	return cfg, nil
}

// overlayProfile copies the profile's non-zero fields onto cfg.
func overlayProfile(cfg *scanner.Config, profile *config.Profile) {
	pc := profile.ScannerConfig()
	if pc.Endpoint != "" {
		cfg.Endpoint = pc.Endpoint
	}
	if pc.SerialPort != "" {
		cfg.SerialPort = pc.SerialPort
	}
	if pc.BaudRate != 0 {
		cfg.BaudRate = pc.BaudRate
	}
	if pc.SourceAddr != 0 {
		cfg.SourceAddr = pc.SourceAddr
	}
	if pc.SniffWindow != 0 {
		cfg.SniffWindow = pc.SniffWindow
	}
	if pc.StreakLimit != 0 {
		cfg.StreakLimit = pc.StreakLimit
	}
	if pc.IndexStart != 0 {
		cfg.IndexStart = pc.IndexStart
	}
	if pc.IndexEnd != 0 {
		cfg.IndexEnd = pc.IndexEnd
	}
	if len(pc.Fallback) != 0 {
		cfg.Fallback = pc.Fallback
	}
}

// discoverCmd browses the network for serial bridges
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover serial bridges on the network",
	Long: `Discover serial-over-TCP bridges using mDNS/DNS-SD.

ser2net and similar bridge daemons advertise their TCP ports as
"_iostream._tcp" services. Discovered bridges can be used directly as
scan endpoints.`,
	Example: `  # Browse for 10 seconds (default)
  gazscan discover

  # Quick 3-second browse
  gazscan discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 10, "Browse timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	fmt.Printf("Browsing for serial bridges (timeout: %ds)...\n\n", discoverTimeout)

	bridges, err := discovery.Browse(time.Duration(discoverTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(bridges) == 0 {
		fmt.Println("No bridges found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the bridge host is powered on")
		fmt.Println("  - Check that ser2net has mDNS enabled")
		fmt.Println("  - Verify your computer is on the same network segment")
		fmt.Println("  - Use --endpoint to specify the bridge address manually")
		return nil
	}

	fmt.Printf("Found %d bridge(s):\n\n", len(bridges))

	for i, bridge := range bridges {
		fmt.Printf("%d. %s\n", i+1, bridge.Name)
		fmt.Printf("   Host:     %s\n", bridge.Hostname)
		fmt.Printf("   Endpoint: %s\n", bridge.Endpoint())
		if len(bridge.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", bridge.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'gazscan scan --endpoint <host:port>' to scan through a bridge")

	return nil
}

// profilesCmd lists saved scan profiles
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved scan profiles",
	Long: `List the scan profiles saved in the configuration file.

Profiles pin a bus endpoint and scan settings under a name, so repeat
scans of the same installation are a single flag:

  gazscan scan --profile boiler-room`,
	RunE: runProfiles,
}

func runProfiles(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(registry.Profiles) == 0 {
		path, _ := config.GetConfigPath()
		fmt.Println("No profiles saved.")
		fmt.Printf("\nAdd profiles to %s\n", path)
		return nil
	}

	defaultName := ""
	if registry.Preferences != nil {
		defaultName = registry.Preferences.DefaultProfile
	}

	for name, profile := range registry.Profiles {
		marker := " "
		if name == defaultName {
			marker = "*"
		}
		target := profile.Endpoint
		if profile.SerialPort != "" {
			target = profile.SerialPort
		}
		if target == "" {
			target = "(default endpoint)"
		}
		fmt.Printf("%s %-20s %s\n", marker, name, target)
		if !profile.LastUsed.IsZero() {
			fmt.Printf("  %-20s last used %s\n", "", profile.LastUsed.Format("2006-01-02 15:04"))
		}
	}

	if defaultName != "" {
		fmt.Printf("\n* default profile\n")
	}
	return nil
}
