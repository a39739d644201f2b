package sift

import "github.com/itohio/nexusvision/pkg/core/options"

// Options bundles every tunable of the detection pipeline. It is built from
// DefaultOptions and functional With* overrides, the same way the rest of
// the repo configures its components.
type Options struct {
	DoubleImage            bool
	NScalesPerOctave       int
	Sigma0                 float32
	KernelTruncationFactor float32
	BorderDistance         int
	PeakThreshold          float32
	EdgeThreshold          float32
	MagnificationFactor    float32
	InitialCapacity        int
}

// DefaultOptions returns the parameter set the reference implementation
// this detector is modeled on uses by default.
func DefaultOptions() Options {
	return Options{
		DoubleImage:            true,
		NScalesPerOctave:       3,
		Sigma0:                 1.6,
		KernelTruncationFactor: 4.0,
		BorderDistance:         5,
		PeakThreshold:          0.08,
		EdgeThreshold:          10.0,
		MagnificationFactor:    3.0,
		InitialCapacity:        256,
	}
}

// WithDoubleImage sets whether the input is upsampled 2x before processing.
func WithDoubleImage(b bool) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.DoubleImage = b
		}
	}
}

// WithNScalesPerOctave sets the number of scales sampled per octave.
func WithNScalesPerOctave(n int) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.NScalesPerOctave = n
		}
	}
}

// WithSigma0 sets the target blur of the first Gaussian level of the first
// octave.
func WithSigma0(sigma float32) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.Sigma0 = sigma
		}
	}
}

// WithKernelTruncationFactor sets how aggressively Gaussian kernels are
// truncated.
func WithKernelTruncationFactor(f float32) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.KernelTruncationFactor = f
		}
	}
}

// WithBorderDistance sets the pixel margin kept clear of extremum
// candidates and octave production.
func WithBorderDistance(d int) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.BorderDistance = d
		}
	}
}

// WithPeakThreshold sets the minimum accepted DoG response magnitude.
func WithPeakThreshold(t float32) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.PeakThreshold = t
		}
	}
}

// WithEdgeThreshold sets the principal-curvature ratio bound used to reject
// edge-like candidates.
func WithEdgeThreshold(r float32) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.EdgeThreshold = r
		}
	}
}

// WithMagnificationFactor sets the descriptor patch size relative to a
// keypoint's sigma.
func WithMagnificationFactor(m float32) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.MagnificationFactor = m
		}
	}
}

// WithInitialCapacity sets the initial keypoint/descriptor store capacity.
func WithInitialCapacity(n int) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.InitialCapacity = n
		}
	}
}
