// Package ui provides the terminal UI for the gazscan CLI.
//
// This package uses Bubble Tea and Lipgloss to render the live scan
// screen: a phase line with spinner, a progress bar driven by scanner
// status updates, and a growing table of decoded parameters. It also
// renders the post-scan summary and error boxes shared by the
// interactive and plain output modes.
//
// # Architecture
//
// The package provides three component groups:
//
//   - ScanModel: the interactive Bubble Tea model for a running scan
//   - Summary rendering: RenderScanSummary / RenderScanError boxes
//   - Plain mode: PrintRecordLine for line-oriented output when stdout
//     is not a terminal
//
// # Usage Pattern
//
// The scan command hands a configured (but not yet started) scanner to
// RunScan, which starts it, consumes both scanner channels as Bubble
// Tea messages, and returns the decoded records when the scan ends or
// the user quits:
//
//	scan := scanner.New(cfg, logging.GetLogger())
//	records, err := ui.RunScan(scan, cfg.Endpoint, csvPath)
//
// # Logging Integration
//
// This package expects logging to be controlled via the GAZSCAN_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent,
// allowing the curated UI output to be displayed cleanly. Logs go to
// stderr, so enabling them does not corrupt the alternate screen on
// exit.
package ui
