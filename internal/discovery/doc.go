// Package discovery provides mDNS-based discovery of serial-over-TCP bridges.
//
// GazModem buses are usually reached through a TCP converter: either a
// hardware serial server or a ser2net instance on a nearby host. ser2net
// advertises its ports over multicast DNS (mDNS) using the
// "_iostream._tcp" service type, which lets gazscan find a bus endpoint
// without the user knowing the bridge's IP address.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for "_iostream._tcp" service advertisements
//  3. Collects bridge information (instance name, hostname, IP, port)
//  4. Returns a list of discovered bridges after the timeout period
//
// # Usage Example
//
//	// Discover bridges with 10-second timeout
//	bridges, err := discovery.Browse(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Print discovered bridges
//	for _, bridge := range bridges {
//	    fmt.Printf("Found: %s at %s\n", bridge.Name, bridge.Endpoint())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Bridges must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
