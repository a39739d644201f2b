package cache

import "github.com/itohio/nexusvision/pkg/vision/sift"

// Cache is the contract every result cache implementation satisfies: given a
// content-hash Key, consult the cache and skip computation on a hit, or
// compute and write back on a miss. A Cache must never change the outcome
// of a computation, only whether it is repeated.
type Cache interface {
	// GetStore returns the cached Store for key, or ok==false on a miss.
	GetStore(key Key) (store *sift.Store, ok bool, err error)
	// PutStore writes back a Store for key.
	PutStore(key Key, store *sift.Store) error
}

// DetectWithCache consults c for key before running detect; on a miss it
// runs detect and writes the result back before returning it. A nil cache
// (or any error reading it) falls through to detect directly, so a cache
// outage never blocks the pipeline.
func DetectWithCache(c Cache, key Key, detect func() (*sift.Store, error)) (*sift.Store, error) {
	if c != nil {
		if store, ok, err := c.GetStore(key); err == nil && ok {
			return store, nil
		}
	}

	store, err := detect()
	if err != nil {
		return nil, err
	}

	if c != nil {
		_ = c.PutStore(key, store)
	}
	return store, nil
}
