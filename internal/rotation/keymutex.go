package rotation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/types"
)

// KeyMutex serializes mutations per (staff, date) cell. Rapid repeat clicks
// on the same cell would otherwise race their read-plan-write round trips and
// lose updates; locking the cell for the duration of the remote call keeps
// cycling linear.
type KeyMutex struct {
	mu    sync.Mutex
	cells map[string]*cellLock
}

type cellLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyMutex builds an empty lock table.
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{cells: make(map[string]*cellLock)}
}

// Lock acquires the lock for the cell and returns its release func. Entries
// are removed once the last holder releases, so the table stays bounded by
// in-flight mutations.
func (k *KeyMutex) Lock(staffID uuid.UUID, date types.Date) func() {
	key := staffID.String() + "|" + date.String()

	k.mu.Lock()
	lock, ok := k.cells[key]
	if !ok {
		lock = &cellLock{}
		k.cells[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			lock.mu.Unlock()
			k.mu.Lock()
			lock.refs--
			if lock.refs == 0 {
				delete(k.cells, key)
			}
			k.mu.Unlock()
		})
	}
}
