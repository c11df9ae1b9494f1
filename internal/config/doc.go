// Package config provides user configuration management for gazscan.
//
// This package manages a YAML-based configuration file that stores named
// scan profiles (bus endpoint, sniff window, probe limits) and application
// preferences. The configuration follows OS-specific conventions for
// storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/gazscan/config.yaml or $HOME/.config/gazscan/config.yaml
//   - macOS: $HOME/.config/gazscan/config.yaml
//   - Windows: %LOCALAPPDATA%\gazscan\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add or update a scan profile
//	profile := registry.EnsureProfile("boiler-room")
//	profile.Endpoint = "192.168.1.38:8899"
//	profile.SniffWindow = 20
//	registry.SetDefaultProfile("boiler-room")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
