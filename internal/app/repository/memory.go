package repository

import (
	"context"
	"sync"

	"port_registry/internal/app/ds"
)

// MemoryRepository keeps ships in insertion order. Nothing is persisted.
type MemoryRepository struct {
	mu    sync.RWMutex
	ships []ds.Ship
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]ds.Ship, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ds.Ship(nil), r.ships...), nil
}

// FindByRegistrationID scans in insertion order; the earliest match wins.
func (r *MemoryRepository) FindByRegistrationID(ctx context.Context, id string) (ds.Ship, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.ships {
		if s.RegistrationID() == id {
			return s, true, nil
		}
	}
	return nil, false, nil
}

// Insert always appends.
func (r *MemoryRepository) Insert(ctx context.Context, ship ds.Ship) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ships = append(r.ships, ship)
	return true, nil
}
