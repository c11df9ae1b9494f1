package discovery

import (
	"fmt"
	"time"
)

// Bridge represents a discovered serial-over-TCP bridge on the network.
// Hardware GazModem converters and ser2net hosts both show up this way.
type Bridge struct {
	// Name is the mDNS instance name (e.g., "ser2net-boilerroom")
	Name string

	// Hostname is the mDNS hostname (e.g., "boilerpi.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.38")
	IP string

	// Port is the TCP port the serial stream is exposed on
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "devicetype=RFC2217", "device=/dev/ttyUSB0"
	Metadata map[string]string

	// DiscoveredAt is when the bridge was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the bridge
func (b *Bridge) String() string {
	return fmt.Sprintf("Bridge %s (%s) at %s:%d", b.Name, b.Hostname, b.IP, b.Port)
}

// Endpoint returns the host:port address suitable for a scan profile
func (b *Bridge) Endpoint() string {
	return fmt.Sprintf("%s:%d", b.IP, b.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Bridge) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
