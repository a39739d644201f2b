// Package scalespace builds the Gaussian / difference-of-Gaussian image
// pyramid the SIFT detector operates on.
package scalespace

import "github.com/chewxy/math32"

// erf is the Abramowitz & Stegun 7.1.26 rational approximation, accurate to
// about 1.5e-7, which is all the precision a kernel-truncation decision
// needs.
func erf(x float32) float32 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := float32(1)
	if x < 0 {
		sign = -1
		x = -x
	}

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t)+a4)*t+a3)*t+a2)*t+a1)*t*math32.Exp(-x*x)

	return sign * y
}

// kernelLossGaussian returns the fraction of the area under a Gaussian of
// the given sigma that falls outside a symmetric kernel of total width n.
func kernelLossGaussian(n int, sigma float32) float32 {
	erfF := float32(1.0) / (math32.Sqrt(2.0) * sigma)
	gNPlus := 0.5 * erf(float32(n)*0.5*erfF)
	gN := 2.0 * gNPlus
	return 1.0 - gN
}

// kernelSizeMinGaussian returns the smallest odd kernel width whose lost
// mass is at or below lossThreshold, growing by 2 from a width-3 minimum.
func kernelSizeMinGaussian(sigma, lossThreshold float32) int {
	n := 3
	for kernelLossGaussian(n, sigma) > lossThreshold {
		n += 2
	}
	return n
}

// kernelValueSymGaussian returns the unnormalized Gaussian weight at offset
// i from the kernel center.
func kernelValueSymGaussian(i int, sigma float32) float32 {
	fi := float32(i)
	return math32.Exp(-0.5 * fi * fi / (sigma * sigma))
}

// symmetricGaussianKernel returns the center-and-right half of a normalized
// symmetric Gaussian kernel: kernel[0] is the center tap, kernel[1:] are the
// successive right-side taps (mirrored for the left side by the caller).
// The full kernel sums to 1.
func symmetricGaussianKernel(nK int, sigma float32) []float32 {
	kernel := make([]float32, nK)
	kernel[0] = kernelValueSymGaussian(0, sigma)
	sum := kernel[0]
	for i := 1; i < nK; i++ {
		kernel[i] = kernelValueSymGaussian(i, sigma)
		sum += 2.0 * kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianKernel builds a normalized, truncated symmetric Gaussian kernel
// for standard deviation sigma. truncationFactor controls the maximum lost
// mass tolerated (larger factor => wider kernel): the loss threshold is
// `1/truncationFactor` when truncationFactor > 0, following the ratio the
// scale-space builder exposes as `kernel_truncation_factor`.
//
// It returns the half-kernel (center + right side, as symmetricGaussianKernel
// does) together with the kernel radius (half-width) n_k-1.
func gaussianKernel(sigma, truncationFactor float32) (half []float32, radius int) {
	if truncationFactor <= 0 {
		truncationFactor = 1
	}
	lossThreshold := 1.0 / truncationFactor
	n := kernelSizeMinGaussian(sigma, lossThreshold)
	nK := n/2 + 1
	return symmetricGaussianKernel(nK, sigma), nK - 1
}
