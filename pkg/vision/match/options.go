// Package match implements brute-force nearest-neighbor matching of SIFT
// descriptors, with Lowe's ratio test as the standard acceptance filter.
package match

import "github.com/itohio/nexusvision/pkg/core/options"

// Options bundles the matcher's single tunable.
type Options struct {
	// RatioThreshold enables Lowe's ratio test when in (0,1): a match is
	// kept only if its best distance squared is less than RatioThreshold
	// squared times its second-best distance squared. A value <=0 or >=1
	// disables the ratio test, keeping the nearest neighbor unconditionally.
	RatioThreshold float32
}

// DefaultOptions returns the commonly used ratio-test threshold.
func DefaultOptions() Options {
	return Options{RatioThreshold: 0.8}
}

// WithRatioThreshold sets the ratio-test threshold.
func WithRatioThreshold(t float32) options.Option {
	return func(o interface{}) {
		if opt, ok := o.(*Options); ok {
			opt.RatioThreshold = t
		}
	}
}
