package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type Nutriplan backends advertise
	ServiceType = "_nutriplan._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for backend discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default HTTP port for Nutriplan backends
	DefaultPort = 5000
)

// Scanner handles mDNS backend discovery
type Scanner struct {
	// Timeout is the maximum time to wait for backend discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForServices discovers all Nutriplan backends on the local network
// Returns a list of discovered backends or an error
func (s *Scanner) ScanForServices() ([]*Service, error) {
	return s.ScanForServicesWithContext(context.Background())
}

// ScanForServicesWithContext discovers backends with a custom context
func (s *Scanner) ScanForServicesWithContext(ctx context.Context) ([]*Service, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	services := make([]*Service, 0)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Browse for services in a goroutine
	go func() {
		for entry := range entries {
			service := s.parseServiceEntry(entry)
			if service != nil {
				services = append(services, service)
			}
		}
	}()

	// Start browsing for Nutriplan services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return services, nil
}

// WaitForService waits for a specific backend by instance name
// Returns the backend or an error if not found within timeout
func (s *Scanner) WaitForService(name string) (*Service, error) {
	return s.WaitForServiceWithContext(context.Background(), name)
}

// WaitForServiceWithContext waits for a specific backend with a custom context
func (s *Scanner) WaitForServiceWithContext(ctx context.Context, name string) (*Service, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	serviceChan := make(chan *Service, 1)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Browse for services in a goroutine
	go func() {
		for entry := range entries {
			service := s.parseServiceEntry(entry)
			if service != nil && service.Name == name {
				serviceChan <- service
				cancel() // Found the backend, cancel context
				return
			}
		}
	}()

	// Start browsing for Nutriplan services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for backend or timeout
	select {
	case service := <-serviceChan:
		return service, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("backend %q not found within timeout", name)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Service
// Returns nil if the entry lacks a usable address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Service {
	if entry.Instance == "" {
		return nil
	}

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

	if ip == "" {
		return nil
	}

	// Get port (default to 5000 if not specified)
	port := entry.Port
	if port == 0 {
		port = DefaultPort
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

	return &Service{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForServices is a convenience function to scan for backends with a custom timeout
func ScanForServices(timeout time.Duration) ([]*Service, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForServices()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Service, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForServices()
}

// FindService searches for a specific backend by instance name with default timeout
func FindService(name string) (*Service, error) {
	scanner := NewScanner()
	return scanner.WaitForService(name)
}
