package config

import "time"

// DefaultBackendURL is used when no backend has been configured or selected.
const DefaultBackendURL = "http://127.0.0.1:5000"

// Registry represents the entire user configuration file.
// This stores known backends, the active selection, form prefill defaults,
// and application preferences.
type Registry struct {
	Version       int                 `yaml:"version"`
	ActiveBackend string              `yaml:"active_backend,omitempty"` // Name of the backend to use
	Backends      map[string]*Backend `yaml:"backends,omitempty"`       // Keyed by backend name
	Profile       *Profile            `yaml:"profile,omitempty"`
	Preferences   *Preferences        `yaml:"preferences,omitempty"`
}

// Backend represents one known Nutriplan backend.
// This is keyed by a user-chosen (or mDNS instance) name in the Registry.
type Backend struct {
	URL      string    `yaml:"url"`                 // Base URL (e.g., "http://192.168.1.50:5000")
	Version  string    `yaml:"version,omitempty"`   // Last advertised backend version
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Profile holds form prefill defaults. Values are stored exactly as they
// would be typed into the form; empty fields are not prefilled.
type Profile struct {
	Age           string `yaml:"age,omitempty"`
	Gender        string `yaml:"gender,omitempty"`
	Height        string `yaml:"height,omitempty"`
	CurrentWeight string `yaml:"current_weight,omitempty"`
	ActivityLevel string `yaml:"activity_level,omitempty"`
	WorkoutType   string `yaml:"workout_type,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool `yaml:"auto_discover"`    // Enable automatic mDNS discovery on startup
	DiscoverTimeout int  `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Backends: make(map[string]*Backend),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
		},
	}
}

// GetBackend retrieves backend metadata by name.
// Returns nil if the backend doesn't exist in the registry.
func (r *Registry) GetBackend(name string) *Backend {
	return r.Backends[name]
}

// EnsureBackend ensures a backend entry exists in the registry.
// If the backend doesn't exist, creates a new entry.
// Returns the backend entry (existing or newly created).
func (r *Registry) EnsureBackend(name string) *Backend {
	if r.Backends == nil {
		r.Backends = make(map[string]*Backend)
	}

	if backend, exists := r.Backends[name]; exists {
		return backend
	}

	backend := &Backend{}
	r.Backends[name] = backend
	return backend
}

// SetActiveBackend records a backend and marks it as the active selection.
func (r *Registry) SetActiveBackend(name, url string) {
	backend := r.EnsureBackend(name)
	backend.URL = url
	r.ActiveBackend = name
}

// UpdateBackendLastSeen updates the last seen timestamp, URL and version for
// a backend. Used after discovery or a successful submission.
func (r *Registry) UpdateBackendLastSeen(name, url, version string) {
	backend := r.EnsureBackend(name)
	backend.LastSeen = time.Now()
	backend.URL = url
	if version != "" {
		backend.Version = version
	}
}

// ActiveBackendURL resolves the URL to submit plans to. Falls back to
// DefaultBackendURL when nothing is configured.
func (r *Registry) ActiveBackendURL() string {
	if r.ActiveBackend != "" {
		if backend := r.GetBackend(r.ActiveBackend); backend != nil && backend.URL != "" {
			return backend.URL
		}
	}
	return DefaultBackendURL
}

// GetProfile returns the stored form prefill defaults, never nil.
func (r *Registry) GetProfile() *Profile {
	if r.Profile == nil {
		r.Profile = &Profile{}
	}
	return r.Profile
}

// FormDefaults returns the non-empty prefill values keyed by form field name.
func (p *Profile) FormDefaults() map[string]string {
	defaults := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			defaults[key] = value
		}
	}
	set("age", p.Age)
	set("gender", p.Gender)
	set("height", p.Height)
	set("current_weight", p.CurrentWeight)
	set("activity_level", p.ActivityLevel)
	set("workout_type", p.WorkoutType)
	return defaults
}
