package profile

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Registry holds profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range []Profile{C(), Python()} {
		if err := r.Register(p); err != nil {
			panic(fmt.Sprintf("built-in profile '%s' is invalid: %v", p.Name, err))
		}
	}
	return r
}

// Register validates p and adds it under p.Name.
func (r *Registry) Register(p Profile) error {
	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("profile '%s' is already registered", p.Name)
	}
	if err := Validate(p); err != nil {
		return err
	}
	slog.Debug("Registering profile.", "name", p.Name)
	r.profiles[p.Name] = p
	return nil
}

// Get returns a copy of the profile called name.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile '%s' (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
