package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/kinetree/pkg/domain"
)

// ReferenceFunction builds a function-form reference from declarative arguments.
type ReferenceFunction func(args map[string]any) (domain.SpatialReference, error)

// Registry manages the reference functions available to declarative templates.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]ReferenceFunction
	defaults  map[string]any
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]ReferenceFunction),
		defaults:  make(map[string]any),
	}
}

// Default returns a registry with the built-in functions registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register("offset_below", OffsetBelow)
	r.Register("offset", OffsetFunc)
	return r
}

// Register adds a function to the registry.
// If a function with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn ReferenceFunction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = fn
}

// SetDefault provides an argument to every call that does not set it itself,
// e.g. the subject height.
func (r *Registry) SetDefault(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[key] = value
}

// Build looks up a function by name and builds the reference.
// An unknown name or bad arguments are authoring errors.
func (r *Registry) Build(name string, args map[string]any) (domain.SpatialReference, error) {
	r.mu.RLock()
	fn, ok := r.functions[name]
	merged := make(map[string]any, len(r.defaults)+len(args))
	for k, v := range r.defaults {
		merged[k] = v
	}
	r.mu.RUnlock()

	if !ok {
		return domain.SpatialReference{}, fmt.Errorf("%w: function not found: %s", domain.ErrInvalidReference, name)
	}
	for k, v := range args {
		merged[k] = v
	}
	ref, err := fn(merged)
	if err != nil {
		return domain.SpatialReference{}, fmt.Errorf("%w: function %s: %v", domain.ErrInvalidReference, name, err)
	}
	return ref, nil
}

// Names lists registered functions, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for n := range r.functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
