package sift

import (
	"testing"

	"github.com/itohio/nexusvision/pkg/core/image"
	"github.com/stretchr/testify/require"
)

func flatDoG(t *testing.T, w, h int, v float32) *image.Image {
	t.Helper()
	img, err := image.New(w, h, 1, image.Float32)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, 0, v)
		}
	}
	return img
}

func TestIsExtremum_DetectsLocalMaximum(t *testing.T) {
	below := flatDoG(t, 5, 5, 0)
	mid := flatDoG(t, 5, 5, 0)
	above := flatDoG(t, 5, 5, 0)
	mid.Set(2, 2, 0, 10)

	dogs := []*image.Image{below, mid, above}
	require.True(t, isExtremum(dogs, 1, 2, 2))
}

func TestIsExtremum_RejectsFlatRegion(t *testing.T) {
	below := flatDoG(t, 5, 5, 1)
	mid := flatDoG(t, 5, 5, 1)
	above := flatDoG(t, 5, 5, 1)

	dogs := []*image.Image{below, mid, above}
	require.False(t, isExtremum(dogs, 1, 2, 2))
}

func TestCheckEdgeThreshold_AcceptsIsotropicBlob(t *testing.T) {
	mid := flatDoG(t, 5, 5, 0)
	mid.Set(2, 2, 0, 10)
	mid.Set(1, 2, 0, 5)
	mid.Set(3, 2, 0, 5)
	mid.Set(2, 1, 0, 5)
	mid.Set(2, 3, 0, 5)

	dogs := []*image.Image{mid, mid, mid}
	require.True(t, checkEdgeThreshold(dogs, 0, 2, 2, 10))
}

func TestCheckEdgeThreshold_RejectsEdgeLikeRidge(t *testing.T) {
	mid := flatDoG(t, 5, 5, 0)
	// strong response along a single row only -> anisotropic, edge-like
	mid.Set(1, 2, 0, 10)
	mid.Set(2, 2, 0, 10)
	mid.Set(3, 2, 0, 10)

	dogs := []*image.Image{mid, mid, mid}
	require.False(t, checkEdgeThreshold(dogs, 0, 2, 2, 10))
}
