package scanner

import "time"

// Defaults for the scan configuration. Source address 0 impersonates
// the touch panel master; 100 (room thermostat) and 250 (computer) are
// the documented alternates when devices ignore requests from 0.
const (
	DefaultEndpoint     = "192.168.1.38:8899"
	DefaultSourceAddr   = 0
	DefaultSniffWindow  = 30 * time.Second
	DefaultStreakLimit  = 100
	DefaultIndexEnd     = 1000
	DefaultDialTimeout  = time.Second
	DefaultProbeTimeout = 200 * time.Millisecond
	DefaultProbeDelay   = 10 * time.Millisecond
)

// Config carries the tunable surface of one scan.
type Config struct {
	// Endpoint is the TCP converter address (host:port).
	Endpoint string

	// SerialPort selects a directly attached serial port instead of the
	// TCP endpoint when non-empty.
	SerialPort string
	BaudRate   int

	// SourceAddr is the scanner's own bus address.
	SourceAddr uint16

	// SniffWindow is the passive listening duration before probing.
	SniffWindow time.Duration

	// StreakLimit is the number of consecutive empty probes after which
	// the rest of a device's index range is abandoned.
	StreakLimit int

	// IndexStart (inclusive) and IndexEnd (exclusive) bound the
	// parameter index range probed per device.
	IndexStart int
	IndexEnd   int

	// Fallback is probed when the sniffing window sees no traffic at
	// all. Defaults to {1, 100}: boiler controller and room thermostat.
	Fallback []uint16

	DialTimeout  time.Duration
	ProbeTimeout time.Duration // per-probe response wait
	ProbeDelay   time.Duration // inter-probe throttle
}

// DefaultConfig returns the configuration matching a stock EcoNet
// converter installation.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields. Zero values are never meaningful
// for these fields, so filling them keeps partial configs usable.
func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.SniffWindow == 0 {
		c.SniffWindow = DefaultSniffWindow
	}
	if c.StreakLimit == 0 {
		c.StreakLimit = DefaultStreakLimit
	}
	if c.IndexEnd <= c.IndexStart {
		c.IndexEnd = c.IndexStart + DefaultIndexEnd
	}
	if c.Fallback == nil {
		c.Fallback = []uint16{1, 100}
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.ProbeDelay == 0 {
		c.ProbeDelay = DefaultProbeDelay
	}
}
