package artifact

import (
	"fmt"
	"sync"

	"github.com/hupe1980/scriptmesh/core"
)

// InMemoryStore is a trivial in‑process ArtifactStore. It keeps all drafts in
// per-role maps guarded by an RWMutex, plus the ids of each role in the order
// they were first stored. Data is copied on save / retrieval.
//
// Layout: role -> artifactID -> raw bytes
//
// It does not enforce retention limits, size quotas, or eviction.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[core.Role]map[string][]byte
	order     map[core.Role][]string
	seq       map[core.Role]int
}

// NewInMemoryStore returns an empty in‑memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		artifacts: make(map[core.Role]map[string][]byte),
		order:     make(map[core.Role][]string),
		seq:       make(map[core.Role]int),
	}
}

// DraftID formats the sequential id assigned by Add.
func DraftID(n int) string { return fmt.Sprintf("draft-%04d", n) }

// Add stores data under the next sequential draft id of the role.
func (a *InMemoryStore) Add(role core.Role, data []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq[role]++
	id := DraftID(a.seq[role])
	a.saveLocked(role, id, data)
	return id, nil
}

// Save stores (or overwrites) the artifact bytes for the given role and id.
// Overwriting keeps the artifact's position. The input slice is copied.
func (a *InMemoryStore) Save(role core.Role, artifactID string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saveLocked(role, artifactID, data)
	return nil
}

func (a *InMemoryStore) saveLocked(role core.Role, artifactID string, data []byte) {
	m, exists := a.artifacts[role]
	if !exists {
		m = make(map[string][]byte)
		a.artifacts[role] = m
	}
	if _, known := m[artifactID]; !known {
		a.order[role] = append(a.order[role], artifactID)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m[artifactID] = cp
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (a *InMemoryStore) Get(role core.Role, artifactID string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.artifacts[role][artifactID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Latest returns the id and bytes of the most recently added artifact.
func (a *InMemoryStore) Latest(role core.Role) (string, []byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := a.order[role]
	if len(ids) == 0 {
		return "", nil, ErrNotFound
	}
	id := ids[len(ids)-1]
	data := a.artifacts[role][id]
	cp := make([]byte, len(data))
	copy(cp, data)
	return id, cp, nil
}

// List returns the artifact ids of the role in insertion order. The slice is
// a snapshot and safe for caller mutation.
func (a *InMemoryStore) List(role core.Role) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := make([]string, len(a.order[role]))
	copy(ids, a.order[role])
	return ids, nil
}
