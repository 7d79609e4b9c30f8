// Package discovery provides mDNS-based discovery of Nutriplan backends.
//
// This package implements multicast DNS (mDNS) service discovery to
// automatically locate self-hosted Nutriplan backends on the local network.
// Backends advertise themselves using the "_nutriplan._tcp" service type.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for "_nutriplan._tcp" service advertisements
//  3. Collects backend information (instance name, IP, port, TXT metadata)
//  4. Returns a list of discovered backends after the timeout period
//
// # Usage Example
//
//	// Discover backends with 10-second timeout
//	services, err := discovery.ScanForServices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Print discovered backends
//	for _, svc := range services {
//	    fmt.Printf("Found: %s at %s (version: %s)\n",
//	        svc.Name, svc.BaseURL(), svc.Version())
//	}
//
// # Backend Information
//
// Each discovered backend includes:
//   - Name: mDNS instance name (e.g., "kitchen-pi")
//   - IP: IPv4 address (IPv6 as fallback)
//   - Port: HTTP port (typically 5000)
//   - Metadata: TXT record key/value pairs ("path", "ver")
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Backends must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
