package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// Registry manages the registration and retrieval of store adapters.
type Registry struct {
	adapters map[dbcapabilities.DatabaseID]StoreAdapter
	mu       sync.RWMutex
}

// NewRegistry creates a new adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[dbcapabilities.DatabaseID]StoreAdapter),
	}
}

// Register registers a store adapter.
// If an adapter for the same store type is already registered, it will be replaced.
func (r *Registry) Register(adapter StoreAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters[adapter.Type()] = adapter
}

// Get retrieves a registered adapter by store type.
// Returns ErrAdapterNotFound if the adapter is not registered.
func (r *Registry) Get(storeType dbcapabilities.DatabaseID) (StoreAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[storeType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAdapterNotFound, storeType)
	}

	return adapter, nil
}

// GetByName retrieves a registered adapter by store name or alias.
// Returns ErrAdapterNotFound if the adapter is not registered.
func (r *Registry) GetByName(name string) (StoreAdapter, error) {
	storeType, ok := dbcapabilities.ParseID(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown store type '%s'", ErrAdapterNotFound, name)
	}

	return r.Get(storeType)
}

// IsRegistered checks if an adapter is registered for the given store type.
func (r *Registry) IsRegistered(storeType dbcapabilities.DatabaseID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.adapters[storeType]
	return exists
}

// ListRegistered returns a list of all registered store types.
func (r *Registry) ListRegistered() []dbcapabilities.DatabaseID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]dbcapabilities.DatabaseID, 0, len(r.adapters))
	for storeType := range r.adapters {
		types = append(types, storeType)
	}

	return types
}

// Connect creates a new store connection using the registered adapter
// matching the config's connection type.
func (r *Registry) Connect(ctx context.Context, config ConnectionConfig) (Connection, error) {
	adapter, err := r.GetByName(config.ConnectionType)
	if err != nil {
		return nil, err
	}

	return adapter.Connect(ctx, config)
}

// defaultRegistry is the global registry used by package-level functions.
var defaultRegistry = NewRegistry()

// Register registers a store adapter with the global registry.
func Register(adapter StoreAdapter) {
	defaultRegistry.Register(adapter)
}

// Get retrieves an adapter from the global registry.
func Get(storeType dbcapabilities.DatabaseID) (StoreAdapter, error) {
	return defaultRegistry.Get(storeType)
}

// GetByName retrieves an adapter from the global registry by name or alias.
func GetByName(name string) (StoreAdapter, error) {
	return defaultRegistry.GetByName(name)
}

// Connect creates a connection using the global registry.
func Connect(ctx context.Context, config ConnectionConfig) (Connection, error) {
	return defaultRegistry.Connect(ctx, config)
}
