// Package blueprint assembles pinflow systems from declarative YAML
// documents: named system inputs, nodes built by registered behavior
// factories, and connections addressed as "node.pin" paths.
package blueprint

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/config"
)

// Factory builds a behavior from its node's configuration block.
type Factory func(cfg config.Config) (pinflow.Behavior, error)

// Registry maps behavior kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a behavior kind.
func (r *Registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return errors.New("behavior kind is required")
	}
	if factory == nil {
		return errors.New("factory is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("factory for kind %q already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

// MustRegister registers a factory, panicking on error.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for a kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Default is the process-wide registry used by the package-level Build
// functions. Builtin kinds are registered here at init time.
var Default = NewRegistry()

// Register adds a factory to the default registry.
func Register(kind string, factory Factory) error {
	return Default.Register(kind, factory)
}

// MustRegister adds a factory to the default registry, panicking on error.
func MustRegister(kind string, factory Factory) {
	Default.MustRegister(kind, factory)
}
