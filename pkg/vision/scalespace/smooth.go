package scalespace

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/image"
)

// ErrKernelTooLarge is returned when the Gaussian kernel needed to reach a
// target sigma cannot fit within the image's current dimensions. Per the
// scale-space builder's contract, the caller must stop producing further
// octaves rather than treat this as a fatal error.
var ErrKernelTooLarge = errors.New("scalespace: gaussian kernel does not fit image")

// incrementalSigma returns the standard deviation of the kernel needed to
// advance a Gaussian level blurred at sigmaCurrent to sigmaTarget, or an
// error if sigmaTarget is not larger than sigmaCurrent.
func incrementalSigma(sigmaCurrent, sigmaTarget float32) (float32, error) {
	d := sigmaTarget*sigmaTarget - sigmaCurrent*sigmaCurrent
	if d <= 0 {
		return 0, errors.New("scalespace: target sigma must exceed current sigma")
	}
	return math32.Sqrt(d), nil
}

// smoothGaussian convolves img (a single-channel Float32 image) in place
// with a separable Gaussian kernel of standard deviation sigma, truncated
// per truncationFactor. It fails with ErrKernelTooLarge if the kernel's
// mirror border does not fit within the image.
func smoothGaussian(img *image.Image, sigma, truncationFactor float32) error {
	half, radius := gaussianKernel(sigma, truncationFactor)
	if radius >= img.Width || radius >= img.Height {
		return ErrKernelTooLarge
	}

	samples := img.Float32()
	spr := img.Stride()
	convolveRowsInPlace(samples, img.Width, img.Height, spr, half)
	convolveColsInPlace(samples, img.Width, img.Height, spr, half)
	return nil
}
