package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry resolves folder type strings to their capability flags. Folder
// types are an open set; unknown types resolve to the configured default
// (no attachments, no job cascade).
type Registry struct {
	defaults TypeCapabilities
	types    map[string]TypeCapabilities
	mu       sync.RWMutex
}

// NewRegistry creates a registry from the embedded folder type YAML.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		types: make(map[string]TypeCapabilities),
	}

	if err := r.loadConfigFile("folder_types"); err != nil {
		return nil, fmt.Errorf("failed to load folder type capabilities: %w", err)
	}

	return r, nil
}

// loadConfigFile loads one embedded capability YAML file into the registry.
func (r *Registry) loadConfigFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg folderTypeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	r.defaults = cfg.Default
	for t, caps := range cfg.Types {
		r.types[t] = caps
	}
	r.mu.Unlock()

	return nil
}

// ForType returns the capability flags for a folder type. Unknown types get
// the default flag set.
func (r *Registry) ForType(folderType string) TypeCapabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if caps, ok := r.types[folderType]; ok {
		return caps
	}
	return r.defaults
}

// Types returns the explicitly configured folder types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.types))
	for t := range r.types {
		types = append(types, t)
	}
	return types
}
