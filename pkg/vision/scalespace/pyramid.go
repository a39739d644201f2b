package scalespace

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/image"
	"github.com/itohio/nexusvision/pkg/core/logger"
)

// ErrInvalidParams is returned when the builder's parameters cannot produce
// a single octave.
var ErrInvalidParams = errors.New("scalespace: invalid parameters")

// Params configures the scale-space builder. NScales is the number of
// scales per octave (the number of Gaussian levels is NScales+3, DoG levels
// NScales+2). Sigma0 is the target blur of the first Gaussian level of the
// first octave. KernelTruncationFactor controls how aggressively Gaussian
// kernels are truncated (see gaussianKernel). BorderDistance is the margin,
// in pixels, that octave production must keep clear on all sides; octave
// production stops once `min(width,height) <= 2*BorderDistance+2`.
type Params struct {
	DoubleImage            bool
	NScales                int
	Sigma0                 float32
	KernelTruncationFactor float32
	BorderDistance         int
}

// assumedInputSigma is the blur assumed already present in the raw input
// image before any smoothing is applied.
const assumedInputSigma = 0.5

// Level is one Gaussian-blurred image within an octave.
type Level struct {
	Image *image.Image
	// Sigma is the cumulative blur of this level in its octave's own pixel
	// units; the first level of every octave has Sigma equal to Params.Sigma0.
	Sigma float32
	// Scale is the linear downsample factor relative to the input image.
	Scale float32
}

// Octave holds one octave's Gaussian levels (NScales+3 of them) and the
// pixelwise-difference DoG levels derived from them (NScales+2).
type Octave struct {
	Gaussian []Level
	DoG      []*image.Image
}

// Pyramid is the finite, ordered sequence of octaves produced for one input
// image.
type Pyramid struct {
	Octaves []Octave
	Params  Params
}

// Build constructs the full Gaussian/DoG pyramid for src following Params.
// Octave production stops once the working image becomes too small, or the
// Gaussian kernel needed for the next smoothing step no longer fits; neither
// condition is an error, it simply bounds how many octaves are returned.
func Build(src *image.Image, params Params) (*Pyramid, error) {
	if params.NScales <= 0 || params.Sigma0 <= 0 {
		return nil, ErrInvalidParams
	}

	base := src.ToFloat32()
	sigmaC := float32(assumedInputSigma)
	scale := float32(1.0)

	if params.DoubleImage {
		base = base.Upsample2()
		sigmaC *= 2
		scale = 0.5
	}

	if sigma, err := incrementalSigma(sigmaC, params.Sigma0); err == nil {
		if err := smoothGaussian(base, sigma, params.KernelTruncationFactor); err != nil {
			logger.Log.Warn().Msg("scalespace: initial smoothing kernel does not fit, returning empty pyramid")
			return &Pyramid{Params: params}, nil
		}
	}

	minDim := 2*params.BorderDistance + 2

	pyr := &Pyramid{Params: params}

	octaveBase := base
	for octaveBase.Width > minDim && octaveBase.Height > minDim {
		octave, nextSeed, err := buildOctave(octaveBase, params, params.Sigma0, scale)
		if err != nil {
			logger.Log.Warn().Msg("scalespace: octave kernel does not fit, stopping pyramid early")
			break
		}
		pyr.Octaves = append(pyr.Octaves, octave)

		octaveBase = nextSeed.Downsample2()
		scale *= 2
	}

	return pyr, nil
}

// buildOctave produces the NScales+3 Gaussian levels and NScales+2 DoG
// levels of one octave, starting from baseImg already blurred to sigma0.
// It returns the last Gaussian level before the doubling point, used by the
// caller to seed the next octave.
func buildOctave(baseImg *image.Image, params Params, sigma0, scale float32) (Octave, *image.Image, error) {
	n := params.NScales
	levels := make([]Level, n+3)
	levels[0] = Level{Image: baseImg, Sigma: sigma0, Scale: scale}

	scaleMultiplier := math32.Pow(2, 1.0/float32(n))
	sigmaPrev := sigma0
	for i := 1; i < n+3; i++ {
		sigmaTarget := sigmaPrev * scaleMultiplier
		delta, err := incrementalSigma(sigmaPrev, sigmaTarget)
		if err != nil {
			return Octave{}, nil, err
		}

		next := levels[i-1].Image.Clone()
		if err := smoothGaussian(next, delta, params.KernelTruncationFactor); err != nil {
			return Octave{}, nil, err
		}

		levels[i] = Level{Image: next, Sigma: sigmaTarget, Scale: scale}
		sigmaPrev = sigmaTarget
	}

	dogs := make([]*image.Image, n+2)
	for i := 0; i < n+2; i++ {
		dst, err := image.New(baseImg.Width, baseImg.Height, 1, image.Float32)
		if err != nil {
			return Octave{}, nil, err
		}
		if err := levels[i+1].Image.Sub(levels[i].Image, dst); err != nil {
			return Octave{}, nil, err
		}
		dogs[i] = dst
	}

	// The level whose sigma has doubled relative to the octave base seeds
	// the next octave; with n_scales steps of 2^(1/n_scales) per level,
	// that is exactly levels[n].
	seed := levels[n].Image

	return Octave{Gaussian: levels, DoG: dogs}, seed, nil
}
