package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Service represents a discovered Nutriplan backend on the network
type Service struct {
	// Name is the mDNS instance name (e.g., "kitchen-pi")
	Name string

	// Hostname is the mDNS hostname (e.g., "kitchen-pi.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.50")
	IP string

	// Port is the HTTP port (typically 5000)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "path=/", "ver=1.2.0"
	Metadata map[string]string

	// DiscoveredAt is when the backend was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the backend
func (s *Service) String() string {
	return fmt.Sprintf("Nutriplan backend %q at %s:%d", s.Name, s.IP, s.Port)
}

// BaseURL returns the HTTP base URL for the backend. An advertised TXT
// "path" is appended when it names anything other than the root.
func (s *Service) BaseURL() string {
	base := fmt.Sprintf("http://%s:%d", s.IP, s.Port)
	if path := s.GetMetadata("path"); path != "" && path != "/" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		base += strings.TrimRight(path, "/")
	}
	return base
}

// Version returns the advertised backend version, or empty string if the
// TXT records don't carry one
func (s *Service) Version() string {
	return s.GetMetadata("ver")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
