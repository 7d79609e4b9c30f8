// Package config provides user configuration management for Nutriplan.
//
// This package manages a YAML-based configuration file that stores known
// planning backends, the active backend selection, form prefill defaults,
// and application preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/nutriplan/config.yaml or $HOME/.config/nutriplan/config.yaml
//   - macOS: $HOME/.config/nutriplan/config.yaml
//   - Windows: %LOCALAPPDATA%\nutriplan\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a discovered backend and make it the active one
//	registry.SetActiveBackend("kitchen-pi", "http://192.168.1.50:5000")
//
//	// Save form prefill defaults
//	registry.GetProfile().Age = "30"
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
