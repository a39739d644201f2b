package usac

import "github.com/itohio/nexusvision/pkg/vision/geometry"

// FundamentalEstimator drives USAC over uniformly sampled correspondences to
// fit a robust fundamental matrix. Unlike the homography path this has no
// reference implementation to follow -- the original library's epipolar
// module leaves its RANSAC driver unimplemented -- so the shape here is
// built from the homography driver's pattern with uniform sampling in place
// of PROSAC and a minimal sample size of 8.
type FundamentalEstimator struct {
	matches   []geometry.PointMatch
	tolerance float32
	maxNIter  int

	nIterations int
	sampler     *Sampler
}

// NewFundamentalEstimator copies matches and prepares an estimator ready
// for Estimate. An optional seed makes the sampling sequence reproducible;
// omitting it seeds from the current time.
func NewFundamentalEstimator(matches []geometry.PointMatch, tolerance float32, maxNIter int, seed ...int64) *FundamentalEstimator {
	cp := make([]geometry.PointMatch, len(matches))
	copy(cp, matches)

	sampler := NewSampler()
	if len(seed) > 0 {
		sampler = NewSamplerWithSeed(seed[0])
	}

	return &FundamentalEstimator{matches: cp, tolerance: tolerance, maxNIter: maxNIter, sampler: sampler}
}

// Estimate runs the USAC loop and returns the best fundamental matrix found
// and its inlier count. Fewer than 8 matches yields the zero Model and zero
// inliers.
func (e *FundamentalEstimator) Estimate() (geometry.Model, int) {
	if len(e.matches) < geometry.MinFundamentalSample {
		return geometry.Model{}, 0
	}

	cfg := Config{
		MinSampleSize: geometry.MinFundamentalSample,
		Sample: func(s *Sampler) []int {
			return s.DistinctIndices(geometry.MinFundamentalSample, len(e.matches))
		},
		SampleCheck: func(sampleIDs []int) bool { return true },
		ModelFit:    e.modelFit,
		ModelCheck:  func(model geometry.Model, sampleIDs []int) bool { return true },
		ModelScore: func(model geometry.Model, sampleIDs []int) float32 {
			return float32(geometry.MarkInliersFundamental(e.matches, model, e.tolerance))
		},
		DegeneracyCheck: func(model geometry.Model, sampleIDs []int) bool { return true },
		LocalRefinement: func(model geometry.Model, sampleIDs []int) (geometry.Model, bool) {
			return geometry.Model{}, false
		},
		GlobalRefinement: e.globalRefinement,
		Terminate:        e.terminate,
	}

	best, _ := Run(cfg, e.sampler)
	return best, geometry.MarkInliersFundamental(e.matches, best, e.tolerance)
}

func (e *FundamentalEstimator) modelFit(sampleIDs []int) []geometry.Model {
	sample := make([]geometry.PointMatch, len(sampleIDs))
	for i, id := range sampleIDs {
		sample[i] = e.matches[id]
	}
	model, err := geometry.EstimateFundamental(sample)
	if err != nil {
		return nil
	}
	return []geometry.Model{model}
}

// globalRefinement alternates re-fitting by the 8-point algorithm over the
// current inlier set until the inlier count stops improving by more than 5,
// then tries one inhomogeneous linear least-squares polish
// (geometry.RefineFundamental) against the converged inlier set, keeping it
// only if it scores at least as well.
func (e *FundamentalEstimator) globalRefinement(model geometry.Model) geometry.Model {
	current := model
	nInliersBest := geometry.MarkInliersFundamental(e.matches, current, e.tolerance)
	nInliers := 1
	for nInliersBest > nInliers+5 {
		inliers := inlierSubset(e.matches)
		if len(inliers) < geometry.MinFundamentalSample {
			break
		}
		refit, err := geometry.EstimateFundamental(inliers)
		if err != nil {
			break
		}
		current = refit
		nInliers = nInliersBest
		nInliersBest = geometry.MarkInliersFundamental(e.matches, current, e.tolerance)
	}

	if inliers := inlierSubset(e.matches); len(inliers) >= geometry.MinFundamentalSample {
		if polished, err := geometry.RefineFundamental(inliers); err == nil {
			if n := geometry.MarkInliersFundamental(e.matches, polished, e.tolerance); n >= nInliersBest {
				current = polished
				nInliersBest = n
			} else {
				geometry.MarkInliersFundamental(e.matches, current, e.tolerance)
			}
		}
	}

	return current
}

func (e *FundamentalEstimator) terminate(_ geometry.Model, bestScore float32) bool {
	e.nIterations++
	nInliers := int(bestScore)
	return e.nIterations >= e.maxNIter || nInliers >= terminationInlierGoal
}
