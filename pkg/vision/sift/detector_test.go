package sift

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/image"
	"github.com/stretchr/testify/require"
)

func gaussianBlob(t *testing.T, w, h int, cx, cy, radius float32) *image.Image {
	t.Helper()
	img, err := image.New(w, h, 1, image.UChar)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float32(x) - cx
			dy := float32(y) - cy
			d2 := dx*dx + dy*dy
			v := 255.0 * math32.Exp(-d2/(2*radius*radius))
			img.Set(x, y, 0, v)
		}
	}
	return img
}

func TestDetect_EmptyOnTinyInput(t *testing.T) {
	img, err := image.New(4, 4, 1, image.UChar)
	require.NoError(t, err)

	det := NewDetector()
	store := det.Detect(img)
	require.NotNil(t, store)
	require.Equal(t, 0, store.Len())
}

func TestDetect_DescriptorsAreWellFormed(t *testing.T) {
	img := gaussianBlob(t, 128, 128, 64, 64, 8)

	det := NewDetector(
		WithNScalesPerOctave(3),
		WithSigma0(1.6),
		WithBorderDistance(5),
		WithPeakThreshold(0.01),
	)
	store := det.Detect(img)

	for i := 0; i < store.Len(); i++ {
		kp := store.Keypoints()[i]
		require.Greater(t, kp.Sigma, float32(0))
		require.GreaterOrEqual(t, kp.Orientation, -math32.Pi)
		require.LessOrEqual(t, kp.Orientation, math32.Pi+1e-4)
		require.Len(t, store.Descriptor(i), DescriptorLength)
	}
}
