package provide

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is the provider table visible to a set of handlers: a mapping from
// dependency field name to Provider. Registration happens at application
// startup; lookups during resolution are read-only.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*Provider)}
}

// Register adds a provider under name. Names must be unique; a duplicate
// registration is a configuration error.
func (r *Registry) Register(name string, p *Provider) error {
	if name == "" {
		return ErrEmptyProviderName
	}
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNilProvider, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
	}
	r.providers[name] = p
	return nil
}

// MustRegister is like Register but panics on error, for startup wiring.
func (r *Registry) MustRegister(name string, p *Provider) {
	if err := r.Register(name, p); err != nil {
		panic(err)
	}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (*Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Has reports whether a provider is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate walks the provider graph and reports cyclic dependencies,
// including self-references. Run it at route-registration time so a cyclic
// registration fails before the first request instead of during resolution.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	const (
		white = iota // unvisited
		gray         // on the current path
		black        // fully explored
	)
	colors := make(map[string]int, len(r.providers))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		colors[name] = gray
		path = append(path, name)
		for _, dep := range r.providers[name].Fields().Names() {
			if _, ok := r.providers[dep]; !ok {
				continue
			}
			switch colors[dep] {
			case gray:
				return fmt.Errorf("%w: %s", ErrCyclicProvider, strings.Join(append(path, dep), " -> "))
			case white:
				if err := visit(dep, path); err != nil {
					return err
				}
			}
		}
		colors[name] = black
		return nil
	}

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if colors[name] == white {
			if err := visit(name, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
