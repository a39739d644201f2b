package match

import (
	"github.com/itohio/nexusvision/pkg/core/options"
	"github.com/itohio/nexusvision/pkg/vision/geometry"
	"github.com/itohio/nexusvision/pkg/vision/sift"
)

// sigmaFactor scales a keypoint's detection scale into the per-point
// localization standard deviation normalization uses.
const sigmaFactor = 0.3

// Matcher finds, for every descriptor in a query store, its nearest and
// second-nearest neighbor in a train store by squared-L2 byte distance,
// optionally gating acceptance with Lowe's ratio test.
type Matcher struct {
	opts Options
}

// NewMatcher builds a Matcher from DefaultOptions, overridden by opts.
func NewMatcher(opts ...options.Option) *Matcher {
	cfg := DefaultOptions()
	options.ApplyOptions(&cfg, opts...)
	return &Matcher{opts: cfg}
}

// Match returns, in query order, one PointMatch per query keypoint that
// passed the ratio test (or every query keypoint, if the ratio test is
// disabled). An empty train store yields no matches. The caller is free to
// sort the result by Cost; Match does not.
func (m *Matcher) Match(query, train *sift.Store) []geometry.PointMatch {
	qkps := query.Keypoints()
	tkps := train.Keypoints()

	ratioMode := m.opts.RatioThreshold > 0 && m.opts.RatioThreshold < 1
	tau2 := m.opts.RatioThreshold * m.opts.RatioThreshold

	out := make([]geometry.PointMatch, 0, len(qkps))

	for qi := range qkps {
		qd := query.Descriptor(qi)

		best, second := -1, -1
		bestD, secondD := int32(1<<30), int32(1<<30)

		for ti := range tkps {
			d := squaredL2(qd, train.Descriptor(ti))
			if d < bestD {
				second, secondD = best, bestD
				best, bestD = ti, d
			} else if d < secondD {
				second, secondD = ti, d
			}
		}

		if best < 0 {
			continue
		}
		if ratioMode && second >= 0 {
			if !(float32(bestD) < tau2*float32(secondD)) {
				continue
			}
		}

		qk := qkps[qi]
		tk := tkps[best]

		out = append(out, geometry.PointMatch{
			X:       [2]float32{qk.Xs, qk.Ys},
			XP:      [2]float32{tk.Xs, tk.Ys},
			Cost:    float32(bestD),
			SigmaX:  sigmaFactor * qk.Scale,
			SigmaXP: sigmaFactor * tk.Scale,
			ID:      qk.ID,
			IDP:     tk.ID,
		})
	}

	return out
}

// squaredL2 returns the squared Euclidean distance between two equal-length
// byte descriptors, computed in int32 to avoid overflow across 128 terms of
// up to 255*255 each.
func squaredL2(a, b []byte) int32 {
	var sum int32
	for i := range a {
		d := int32(a[i]) - int32(b[i])
		sum += d * d
	}
	return sum
}
