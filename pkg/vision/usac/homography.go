package usac

import (
	"sort"

	"github.com/itohio/nexusvision/pkg/vision/geometry"
)

const (
	prosacStart           = 10
	prosacIncrement       = 1
	terminationInlierGoal = 200
)

// HomographyEstimator drives USAC over a PROSAC-ordered, growing-window
// sample of correspondences to fit a robust homography.
type HomographyEstimator struct {
	matches   []geometry.PointMatch
	tolerance float32
	maxNIter  int
	maxAbsCos float32

	nTopHypo    int
	nIterations int
	sampler     *Sampler
}

// NewHomographyEstimator copies and cost-sorts matches (ascending, so
// PROSAC's growing window draws from the most trustworthy correspondences
// first) and prepares an estimator ready for Estimate. An optional seed
// makes the sampling sequence reproducible; omitting it seeds from the
// current time.
func NewHomographyEstimator(matches []geometry.PointMatch, tolerance float32, maxNIter int, seed ...int64) *HomographyEstimator {
	sorted := make([]geometry.PointMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cost < sorted[j].Cost })

	nTop := prosacStart
	if nTop > len(sorted) {
		nTop = len(sorted)
	}

	sampler := NewSampler()
	if len(seed) > 0 {
		sampler = NewSamplerWithSeed(seed[0])
	}

	return &HomographyEstimator{
		matches:   sorted,
		tolerance: tolerance,
		maxNIter:  maxNIter,
		maxAbsCos: geometry.DefaultMaxAbsCos,
		nTopHypo:  nTop,
		sampler:   sampler,
	}
}

// Estimate runs the USAC loop and returns the best homography found and its
// inlier count. Fewer than 4 matches, or a best model that fails the final
// degeneracy check, yields the zero Model and zero inliers -- RANSAC never
// errors, it reports "nothing found".
func (e *HomographyEstimator) Estimate() (geometry.Model, int) {
	if len(e.matches) < 4 {
		return geometry.Model{}, 0
	}

	cfg := Config{
		MinSampleSize: 4,
		Sample: func(s *Sampler) []int {
			return s.DistinctIndices(4, e.nTopHypo)
		},
		SampleCheck: func(sampleIDs []int) bool { return true },
		ModelFit:    e.modelFit,
		ModelCheck: func(model geometry.Model, sampleIDs []int) bool {
			return geometry.CheckUnitSquare(model, e.maxAbsCos)
		},
		ModelScore: func(model geometry.Model, sampleIDs []int) float32 {
			return float32(geometry.MarkInliersHomography(e.matches, model, e.tolerance))
		},
		DegeneracyCheck: func(model geometry.Model, sampleIDs []int) bool { return true },
		LocalRefinement: func(model geometry.Model, sampleIDs []int) (geometry.Model, bool) {
			return geometry.Model{}, false
		},
		GlobalRefinement: e.globalRefinement,
		Terminate:        e.terminate,
	}

	best, _ := Run(cfg, e.sampler)

	if !geometry.CheckUnitSquare(best, e.maxAbsCos) {
		return geometry.Model{}, 0
	}
	return best, geometry.MarkInliersHomography(e.matches, best, e.tolerance)
}

func (e *HomographyEstimator) modelFit(sampleIDs []int) []geometry.Model {
	var src, dst [4][2]float32
	for i, id := range sampleIDs {
		src[i] = e.matches[id].X
		dst[i] = e.matches[id].XP
	}
	model, err := geometry.Estimate4Point(src, dst)
	if err != nil {
		return nil
	}
	return []geometry.Model{model}
}

// globalRefinement alternates re-fitting by DLT over the current inlier set
// and re-marking inliers until the inlier count stops improving by more
// than 5, mirroring the reference driver's global refinement loop. A final
// inhomogeneous linear least-squares polish (geometry.RefineDLT) is tried
// against the converged inlier set and kept only if it scores at least as
// well, since it is cheaper than another SVD refit but not guaranteed to
// improve on it.
func (e *HomographyEstimator) globalRefinement(model geometry.Model) geometry.Model {
	current := model
	nInliersBest := geometry.MarkInliersHomography(e.matches, current, e.tolerance)
	nInliers := 1
	for nInliersBest > nInliers+5 {
		inliers := inlierSubset(e.matches)
		if len(inliers) < 4 {
			break
		}
		refit, err := geometry.EstimateDLT(inliers)
		if err != nil {
			break
		}
		current = refit
		nInliers = nInliersBest
		nInliersBest = geometry.MarkInliersHomography(e.matches, current, e.tolerance)
	}

	if inliers := inlierSubset(e.matches); len(inliers) >= 4 {
		if polished, err := geometry.RefineDLT(inliers); err == nil {
			if n := geometry.MarkInliersHomography(e.matches, polished, e.tolerance); n >= nInliersBest {
				current = polished
				nInliersBest = n
			} else {
				geometry.MarkInliersHomography(e.matches, current, e.tolerance)
			}
		}
	}

	return current
}

func (e *HomographyEstimator) terminate(_ geometry.Model, bestScore float32) bool {
	e.nIterations++
	e.nTopHypo += prosacIncrement
	if e.nTopHypo > len(e.matches) {
		e.nTopHypo = len(e.matches)
	}

	nInliers := int(bestScore)
	return e.nIterations >= e.maxNIter || nInliers >= terminationInlierGoal
}

func inlierSubset(matches []geometry.PointMatch) []geometry.PointMatch {
	out := make([]geometry.PointMatch, 0, len(matches))
	for _, m := range matches {
		if m.IsInlier {
			out = append(out, m)
		}
	}
	return out
}
