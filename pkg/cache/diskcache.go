package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/itohio/nexusvision/pkg/vision/sift"
)

// DiskCache is a flat-file Cache: one file per content-hash key, named by
// its base58 rendering directly under dir. Storage layout beyond this is
// not part of the contract and may change.
type DiskCache struct {
	dir string
}

// NewDiskCache returns a DiskCache rooted at dir, creating it if it does
// not already exist.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk cache: failed to create %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) path(key Key) string {
	return filepath.Join(c.dir, string(key))
}

func (c *DiskCache) GetStore(key Key) (*sift.Store, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("disk cache: read %s: %w", key, err)
	}

	store, err := DecodeStore(data)
	if err != nil {
		return nil, false, fmt.Errorf("disk cache: decode %s: %w", key, err)
	}
	return store, true, nil
}

func (c *DiskCache) PutStore(key Key, store *sift.Store) error {
	data := EncodeStore(store)

	tmp, err := os.CreateTemp(c.dir, "."+string(key)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("disk cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("disk cache: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("disk cache: close %s: %w", key, err)
	}

	// Rename is atomic on POSIX filesystems, so a concurrent reader never
	// observes a partially written entry.
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("disk cache: rename %s: %w", key, err)
	}
	return nil
}
