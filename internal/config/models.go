package config

import (
	"time"

	"github.com/muurk/gazscan/internal/scanner"
)

// Registry represents the entire user configuration file.
// This stores named scan profiles and application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profiles    map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by profile name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Profile represents one saved scan setup: where the bus is reached and
// how aggressively it is scanned. Zero-valued fields fall back to the
// scanner defaults, so a profile only needs to pin what differs.
type Profile struct {
	Endpoint    string    `yaml:"endpoint,omitempty"`     // TCP host:port of the RS-485 bridge
	SerialPort  string    `yaml:"serial_port,omitempty"`  // Direct serial device; takes precedence over Endpoint
	BaudRate    int       `yaml:"baud_rate,omitempty"`    // Serial baud rate
	SourceAddr  uint16    `yaml:"source_addr,omitempty"`  // Address the scanner claims on the bus
	SniffWindow int       `yaml:"sniff_window,omitempty"` // Passive listening window in seconds
	StreakLimit int       `yaml:"streak_limit,omitempty"` // Consecutive empty probes before skipping a device
	IndexStart  int       `yaml:"index_start,omitempty"`  // First parameter index to probe
	IndexEnd    int       `yaml:"index_end,omitempty"`    // One past the last parameter index
	Fallback    []uint16  `yaml:"fallback,omitempty"`     // Device addresses probed when the bus is silent
	LastUsed    time.Time `yaml:"last_used,omitempty"`    // Last scan started with this profile
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool   `yaml:"auto_discover"`             // Enable automatic mDNS bridge discovery on startup
	DiscoverTimeout int    `yaml:"discover_timeout"`          // mDNS discovery timeout in seconds
	DefaultProfile  string `yaml:"default_profile,omitempty"` // Profile used when none is named
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Profiles: make(map[string]*Profile),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
		},
	}
}

// ScannerConfig converts a profile to a scan configuration. Unset
// profile fields stay zero and pick up the scanner defaults.
func (p *Profile) ScannerConfig() scanner.Config {
	return scanner.Config{
		Endpoint:    p.Endpoint,
		SerialPort:  p.SerialPort,
		BaudRate:    p.BaudRate,
		SourceAddr:  p.SourceAddr,
		SniffWindow: time.Duration(p.SniffWindow) * time.Second,
		StreakLimit: p.StreakLimit,
		IndexStart:  p.IndexStart,
		IndexEnd:    p.IndexEnd,
		Fallback:    p.Fallback,
	}
}

// GetProfile retrieves a profile by name.
// Returns nil if the profile doesn't exist in the registry.
func (r *Registry) GetProfile(name string) *Profile {
	return r.Profiles[name]
}

// EnsureProfile ensures a profile entry exists in the registry.
// If the profile doesn't exist, creates a new empty entry.
// Returns the profile entry (existing or newly created).
func (r *Registry) EnsureProfile(name string) *Profile {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}

	if profile, exists := r.Profiles[name]; exists {
		return profile
	}

	profile := &Profile{}
	r.Profiles[name] = profile
	return profile
}

// TouchProfile updates the last-used timestamp for a profile.
func (r *Registry) TouchProfile(name string) {
	profile := r.EnsureProfile(name)
	profile.LastUsed = time.Now()
}

// SetDefaultProfile marks a profile as the one used when no profile is
// named on the command line.
func (r *Registry) SetDefaultProfile(name string) {
	if r.Preferences == nil {
		r.Preferences = &Preferences{}
	}
	r.Preferences.DefaultProfile = name
}

// DefaultProfile resolves the profile to use when none is named.
// Returns nil when no default is configured or the named profile is
// missing.
func (r *Registry) DefaultProfile() *Profile {
	if r.Preferences == nil || r.Preferences.DefaultProfile == "" {
		return nil
	}
	return r.GetProfile(r.Preferences.DefaultProfile)
}
