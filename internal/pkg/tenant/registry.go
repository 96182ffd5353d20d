package tenant

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"

	"gorm.io/gorm"
)

// ErrStoreUnavailable is returned when a tenant store cannot be reached or
// the requested store name was never minted by the provisioner.
var ErrStoreUnavailable = errors.New("tenant store unavailable")

// Only names minted by DeriveStoreName are routable.
var storeNamePattern = regexp.MustCompile(`^tenant_[a-z0-9_]*_[0-9]+$`)

// ValidStoreName reports whether the name matches the provisioner's format.
func ValidStoreName(name string) bool {
	return storeNamePattern.MatchString(name)
}

// OpenFunc opens a gorm handle to the named tenant store.
type OpenFunc func(storeName string) (*gorm.DB, error)

// Registry caches one shared connection per tenant store. First access from
// concurrent requests is insert-if-absent: exactly one connection is opened
// per store name, later callers reuse it.
type Registry struct {
	mu    sync.RWMutex
	open  OpenFunc
	conns map[string]*gorm.DB
}

func NewRegistry(open OpenFunc) *Registry {
	return &Registry{
		open:  open,
		conns: make(map[string]*gorm.DB),
	}
}

// ConnectionFor returns the cached connection for the store, opening it on
// first use. A dial failure surfaces as ErrStoreUnavailable and nothing is
// cached, so the next request retries.
func (r *Registry) ConnectionFor(storeName string) (*gorm.DB, error) {
	if !ValidStoreName(storeName) {
		return nil, fmt.Errorf("%w: invalid store name %q", ErrStoreUnavailable, storeName)
	}

	r.mu.RLock()
	db, ok := r.conns[storeName]
	r.mu.RUnlock()
	if ok {
		return db, nil
	}

	// Double-checked under the write lock so racing first accesses for the
	// same store open a single connection.
	r.mu.Lock()
	defer r.mu.Unlock()
	if db, ok := r.conns[storeName]; ok {
		return db, nil
	}

	db, err := r.open(storeName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, storeName, err)
	}
	r.conns[storeName] = db

	return db, nil
}

// Evict closes and drops the cached connection for a store, if any.
func (r *Registry) Evict(storeName string) {
	r.mu.Lock()
	db, ok := r.conns[storeName]
	delete(r.conns, storeName)
	r.mu.Unlock()

	if ok {
		closeConn(storeName, db)
	}
}

// Shutdown closes every cached connection. Part of the application's
// shutdown sequence.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]*gorm.DB)
	r.mu.Unlock()

	for name, db := range conns {
		closeConn(name, db)
	}
}

func closeConn(name string, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing tenant store connection %s: %v", name, err)
	}
}

var registry *Registry

// SetupRegistry initializes the process-wide registry. Called once from main.
func SetupRegistry(open OpenFunc) {
	registry = NewRegistry(open)
}

// GetRegistry returns the process-wide registry instance.
func GetRegistry() *Registry {
	if registry == nil {
		panic("Tenant registry not initialized. Call SetupRegistry first.")
	}
	return registry
}

// ShutdownRegistry closes all tenant store connections.
func ShutdownRegistry() {
	if registry != nil {
		registry.Shutdown()
	}
}
