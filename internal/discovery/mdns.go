package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type for serial-over-TCP bridges.
	// ser2net advertises its TCP ports as "_iostream._tcp" services.
	ServiceType = "_iostream._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultBrowseTimeout is the default timeout for bridge discovery
	DefaultBrowseTimeout = 10 * time.Second
)

// Browser handles mDNS bridge discovery
type Browser struct {
	// Timeout is the maximum time to wait for bridge discovery
	Timeout time.Duration
}

// NewBrowser creates a new mDNS browser with default settings
func NewBrowser() *Browser {
	return &Browser{
		Timeout: DefaultBrowseTimeout,
	}
}

// Browse discovers all serial bridges on the local network
// Returns a list of discovered bridges or an error
func (b *Browser) Browse() ([]*Bridge, error) {
	return b.BrowseWithContext(context.Background())
}

// BrowseWithContext discovers bridges with a custom context
func (b *Browser) BrowseWithContext(ctx context.Context) ([]*Bridge, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	bridges := make([]*Bridge, 0)
	done := make(chan struct{})

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect entries in a goroutine; the channel closes when browsing ends
	go func() {
		defer close(done)
		for entry := range entries {
			bridge := parseServiceEntry(entry)
			if bridge != nil {
				bridges = append(bridges, bridge)
			}
		}
	}()

	// Start browsing for iostream services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()
	<-done

	return bridges, nil
}

// parseServiceEntry converts a zeroconf service entry to a Bridge
// Returns nil if the entry carries no usable address
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Bridge {
	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" || entry.Port == 0 {
		return nil
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			// Key without value
			metadata[parts[0]] = ""
		}
	}

	return &Bridge{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Browse is a convenience function to browse for bridges with a custom timeout
func Browse(timeout time.Duration) ([]*Bridge, error) {
	browser := NewBrowser()
	browser.Timeout = timeout
	return browser.Browse()
}

// QuickBrowse performs a fast browse with a 3-second timeout
func QuickBrowse() ([]*Bridge, error) {
	browser := NewBrowser()
	browser.Timeout = 3 * time.Second
	return browser.Browse()
}
