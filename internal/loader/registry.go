package loader

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a mod instance.
type Factory func() (any, error)

// Registry maps factory names (manifest spec.factory) to constructors.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register installs a factory. Returns an error if the name already exists.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("loader: factory name is required")
	}
	if factory == nil {
		return fmt.Errorf("loader: factory is required for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("loader: factory %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds an instance with the named factory.
func (r *Registry) New(name string) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("loader: unknown factory %s", name)
	}
	instance, err := factory()
	if err != nil {
		return nil, fmt.Errorf("loader: factory %s: %w", name, err)
	}
	return instance, nil
}

// Names returns the registered factory names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
