package sift

import "github.com/itohio/nexusvision/pkg/core/image"

// computeGradients returns the central-difference x and y gradient images
// of a single-channel Float32 image, zero at the one-pixel border where the
// difference cannot be formed.
func computeGradients(level *image.Image) (gx, gy *image.Image) {
	w, h := level.Width, level.Height
	gx, err := image.New(w, h, 1, image.Float32)
	if err != nil {
		panic(err)
	}
	gy, err = image.New(w, h, 1, image.Float32)
	if err != nil {
		panic(err)
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			dx := (level.At(x+1, y, 0) - level.At(x-1, y, 0)) * 0.5
			dy := (level.At(x, y+1, 0) - level.At(x, y-1, 0)) * 0.5
			gx.Set(x, y, 0, dx)
			gy.Set(x, y, 0, dy)
		}
	}
	return gx, gy
}
