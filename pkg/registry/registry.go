package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name.
// Names are reported in registration order.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New creates a new Registry instance
func New[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register adds an item to the registry
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}

	r.items[name] = item
	r.order = append(r.order, name)
	return nil
}

// Get retrieves an item from the registry
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}

	return item, nil
}

// Has checks if an item is registered
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

// Names returns registered names in registration order
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Sorted returns registered names in lexicographic order
func (r *Registry[T]) Sorted() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

// Each calls fn for every item in registration order, stopping at the first error
func (r *Registry[T]) Each(fn func(name string, item T) error) error {
	for _, name := range r.Names() {
		item, err := r.Get(name)
		if err != nil {
			return err
		}
		if err := fn(name, item); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of registered items
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails
// This is useful at process start where registration errors are programming errors
func MustRegister[T any](reg *Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
