package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itohio/nexusvision/pkg/vision/sift"
)

func sampleStore() *sift.Store {
	store := sift.NewStore(3)
	for i := 0; i < 3; i++ {
		kp := sift.Keypoint{
			X: 10 + i, Y: 20 + i,
			Xs: 10.5 + float32(i), Ys: 20.25 + float32(i),
			Octave: i, Scale: 1.0 + float32(i)*0.5,
			Sigma: 1.6, Response: 0.02, Orientation: 1.23,
		}
		desc := make([]byte, sift.DescriptorLength)
		for j := range desc {
			desc[j] = byte((i*7 + j) % 256)
		}
		store.Append(kp, desc)
	}
	return store
}

func TestEncodeDecodeStore_RoundTrips(t *testing.T) {
	store := sampleStore()
	data := EncodeStore(store)

	decoded, err := DecodeStore(data)
	require.NoError(t, err)
	require.Equal(t, store.Len(), decoded.Len())

	for i := 0; i < store.Len(); i++ {
		require.Equal(t, store.Keypoints()[i].X, decoded.Keypoints()[i].X)
		require.Equal(t, store.Keypoints()[i].Y, decoded.Keypoints()[i].Y)
		require.InDelta(t, store.Keypoints()[i].Xs, decoded.Keypoints()[i].Xs, 1e-6)
		require.InDelta(t, store.Keypoints()[i].Ys, decoded.Keypoints()[i].Ys, 1e-6)
		require.Equal(t, store.Keypoints()[i].Octave, decoded.Keypoints()[i].Octave)
		require.InDelta(t, store.Keypoints()[i].Scale, decoded.Keypoints()[i].Scale, 1e-6)
		require.InDelta(t, store.Keypoints()[i].Sigma, decoded.Keypoints()[i].Sigma, 1e-6)
		require.InDelta(t, store.Keypoints()[i].Response, decoded.Keypoints()[i].Response, 1e-6)
		require.InDelta(t, store.Keypoints()[i].Orientation, decoded.Keypoints()[i].Orientation, 1e-6)
		require.Equal(t, store.Descriptor(i), decoded.Descriptor(i))
	}
}

func TestEncodeDecodeStore_IDsAreMonotoneOnDecode(t *testing.T) {
	store := sampleStore()
	data := EncodeStore(store)

	decoded, err := DecodeStore(data)
	require.NoError(t, err)
	for i, kp := range decoded.Keypoints() {
		require.Equal(t, i, kp.ID)
	}
}

func TestEncodeStore_EmptyStoreRoundTrips(t *testing.T) {
	store := sift.NewStore(0)
	data := EncodeStore(store)
	decoded, err := DecodeStore(data)
	require.NoError(t, err)
	require.Equal(t, 0, decoded.Len())
}

func TestDecodeStore_RejectsTruncatedPayload(t *testing.T) {
	store := sampleStore()
	data := EncodeStore(store)

	_, err := DecodeStore(data[:len(data)-1])
	require.ErrorIs(t, err, ErrTruncated)

	_, err = DecodeStore(data[:2])
	require.ErrorIs(t, err, ErrTruncated)
}
