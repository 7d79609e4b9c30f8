package discovery

import (
	"testing"
	"time"
)

func TestService_String(t *testing.T) {
	service := &Service{
		Name:     "kitchen-pi",
		Hostname: "kitchen-pi.local.",
		IP:       "192.168.1.50",
		Port:     5000,
	}

	expected := `Nutriplan backend "kitchen-pi" at 192.168.1.50:5000`
	if service.String() != expected {
		t.Errorf("Service.String() = %v, want %v", service.String(), expected)
	}
}

func TestService_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		service  *Service
		expected string
	}{
		{
			name: "default port",
			service: &Service{
				IP:   "192.168.1.50",
				Port: 5000,
			},
			expected: "http://192.168.1.50:5000",
		},
		{
			name: "custom port",
			service: &Service{
				IP:   "10.0.0.5",
				Port: 8080,
			},
			expected: "http://10.0.0.5:8080",
		},
		{
			name: "root path metadata ignored",
			service: &Service{
				IP:       "192.168.1.50",
				Port:     5000,
				Metadata: map[string]string{"path": "/"},
			},
			expected: "http://192.168.1.50:5000",
		},
		{
			name: "advertised path appended",
			service: &Service{
				IP:       "192.168.1.50",
				Port:     5000,
				Metadata: map[string]string{"path": "/planner/"},
			},
			expected: "http://192.168.1.50:5000/planner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.service.BaseURL(); got != tt.expected {
				t.Errorf("Service.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestService_Version(t *testing.T) {
	service := &Service{
		Metadata: map[string]string{"ver": "1.2.0"},
	}
	if got := service.Version(); got != "1.2.0" {
		t.Errorf("Service.Version() = %v, want 1.2.0", got)
	}

	bare := &Service{}
	if got := bare.Version(); got != "" {
		t.Errorf("Service.Version() without metadata = %v, want empty", got)
	}
}

func TestService_GetMetadata(t *testing.T) {
	service := &Service{
		Metadata: map[string]string{
			"path": "/",
			"ver":  "1.2.0",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "existing key",
			key:      "path",
			expected: "/",
		},
		{
			name:     "another existing key",
			key:      "ver",
			expected: "1.2.0",
		},
		{
			name:     "non-existent key",
			key:      "missing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Service.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestService_GetMetadata_NilMap(t *testing.T) {
	service := &Service{
		Metadata: nil,
	}

	if got := service.GetMetadata("anything"); got != "" {
		t.Errorf("Service.GetMetadata() with nil map = %v, want empty string", got)
	}
}

func TestService_DiscoveredAt(t *testing.T) {
	now := time.Now()
	service := &Service{
		Name:         "kitchen-pi",
		DiscoveredAt: now,
	}

	if service.DiscoveredAt != now {
		t.Errorf("Service.DiscoveredAt = %v, want %v", service.DiscoveredAt, now)
	}
}
