// Package favorites keeps the vehicles a visitor has starred.
package favorites

import (
	"slices"
	"sync"

	"github.com/SscSPs/vehicle_export_storefront/internal/clientstate"
)

const (
	StorageKey    = "v_favorites"
	SchemaVersion = 0
)

type state struct {
	Favorites []string `json:"favorites"`
}

// Store is one visitor's favorites list, in the order they were added.
type Store struct {
	storage clientstate.Storage

	mu  sync.RWMutex
	ids []string
}

func Load(storage clientstate.Storage) *Store {
	s := &Store{storage: storage, ids: []string{}}
	if saved, ok := clientstate.Restore[state](storage, SchemaVersion); ok && saved.Favorites != nil {
		s.ids = saved.Favorites
	}
	return s
}

// List returns a copy of the favorite vehicle ids.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// Toggle adds or removes id and reports whether it is now a favorite.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	var now bool
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(slices.Clone(s.ids), i, i+1)
	} else {
		s.ids = append(slices.Clone(s.ids), id)
		now = true
	}
	snapshot := state{Favorites: slices.Clone(s.ids)}
	s.mu.Unlock()

	return now, clientstate.Persist(s.storage, snapshot, SchemaVersion)
}
