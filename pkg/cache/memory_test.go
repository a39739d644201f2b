package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itohio/nexusvision/pkg/vision/sift"
)

func TestMemoryCache_MissThenHitAfterPut(t *testing.T) {
	c := NewMemoryCache()
	key := Key("some-key")

	_, ok, err := c.GetStore(key)
	require.NoError(t, err)
	require.False(t, ok)

	store := sampleStore()
	require.NoError(t, c.PutStore(key, store))

	got, ok, err := c.GetStore(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, store.Len(), got.Len())
	require.Equal(t, 1, c.Len())
}

func TestMemoryCache_PutOverwritesExistingKey(t *testing.T) {
	c := NewMemoryCache()
	key := Key("k")

	require.NoError(t, c.PutStore(key, sift.NewStore(0)))
	require.NoError(t, c.PutStore(key, sampleStore()))

	got, ok, err := c.GetStore(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, got.Len())
	require.Equal(t, 1, c.Len())
}

func TestDetectWithCache_SkipsComputeOnHit(t *testing.T) {
	c := NewMemoryCache()
	key := Key("detect-key")
	calls := 0

	detect := func() (*sift.Store, error) {
		calls++
		return sampleStore(), nil
	}

	_, err := DetectWithCache(c, key, detect)
	require.NoError(t, err)
	_, err = DetectWithCache(c, key, detect)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
}

func TestDetectWithCache_NilCacheAlwaysComputes(t *testing.T) {
	calls := 0
	detect := func() (*sift.Store, error) {
		calls++
		return sampleStore(), nil
	}

	_, err := DetectWithCache(nil, Key("k"), detect)
	require.NoError(t, err)
	_, err = DetectWithCache(nil, Key("k"), detect)
	require.NoError(t, err)

	require.Equal(t, 2, calls)
}
