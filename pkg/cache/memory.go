package cache

import (
	"sync"

	"github.com/itohio/nexusvision/pkg/vision/sift"
)

// MemoryCache is an in-process Cache backed by a map, safe for concurrent
// use by multiple pipeline goroutines. Entries never expire; callers that
// need bounded memory should wrap or replace it.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[Key][]byte)}
}

func (c *MemoryCache) GetStore(key Key) (*sift.Store, bool, error) {
	c.mu.RLock()
	data, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	store, err := DecodeStore(data)
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

func (c *MemoryCache) PutStore(key Key, store *sift.Store) error {
	data := EncodeStore(store)
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	return nil
}

// Len reports the number of entries currently held.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
