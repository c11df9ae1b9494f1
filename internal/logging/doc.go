// Package logging provides structured logging for gazscan.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the scanner. It provides both general logging
// functions and specialized functions for protocol-specific logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, frame parsing, probe traffic)
//   - Info: Normal operations (connections, discovered devices, phase changes)
//   - Warn: Non-fatal issues (dropped records, retries)
//   - Error: Fatal issues (connection failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("device discovered",
//	    zap.Uint16("addr", 5),
//	    zap.String("endpoint", "192.168.1.38:8899"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
// Frame Logging:
//
//	logging.LogFrame("sent", dest, src, command, raw)
//	logging.LogRawBytes("sniffed chunk", data)
//
// # Configuration
//
// Logging is silent by default so scan output stays clean. Set the
// GAZSCAN_LOG_LEVEL environment variable to enable it:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Logs go to stderr so they never interleave with records printed on
// stdout.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
