package usac

import (
	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/vision/geometry"
)

// Config bundles the nine callbacks the generic driver needs. Every
// instantiation (homography, fundamental) builds one of these around its
// own closed-over state and minimal-sample size, the same split between
// driver and problem-specific callbacks the reference implementation's
// NXUSACConfig uses.
type Config struct {
	// MinSampleSize is the number of correspondences a single model fit
	// consumes (4 for homography, 8 for fundamental).
	MinSampleSize int

	Sample           func(s *Sampler) []int
	SampleCheck      func(sampleIDs []int) bool
	ModelFit         func(sampleIDs []int) []geometry.Model
	ModelCheck       func(model geometry.Model, sampleIDs []int) bool
	ModelScore       func(model geometry.Model, sampleIDs []int) float32
	DegeneracyCheck  func(model geometry.Model, sampleIDs []int) bool
	LocalRefinement  func(model geometry.Model, sampleIDs []int) (geometry.Model, bool)
	GlobalRefinement func(model geometry.Model) geometry.Model
	Terminate        func(bestModel geometry.Model, bestScore float32) bool
}

// Run drives the sample-fit-check-score loop to completion and returns the
// best model found (refined once more using all data) and its score. It
// never returns an error: the search starts from the zero Model with a
// score of -math32.MaxFloat32, and the global refinement of the best model
// (the zero Model when none was accepted) replaces it whenever it scores
// higher, letting the caller treat "zero inliers" as the normal degenerate
// outcome rather than a failure.
func Run(cfg Config, sampler *Sampler) (geometry.Model, float32) {
	var bestModel geometry.Model
	bestScore := float32(-math32.MaxFloat32)

	for !cfg.Terminate(bestModel, bestScore) {
		sampleIDs := cfg.Sample(sampler)
		if !cfg.SampleCheck(sampleIDs) {
			continue
		}

		models := cfg.ModelFit(sampleIDs)
		for _, model := range models {
			if !cfg.ModelCheck(model, sampleIDs) {
				continue
			}

			score := cfg.ModelScore(model, sampleIDs)
			if score <= bestScore {
				continue
			}

			if !cfg.DegeneracyCheck(model, sampleIDs) {
				continue
			}

			if refined, ok := cfg.LocalRefinement(model, sampleIDs); ok {
				localScore := cfg.ModelScore(refined, sampleIDs)
				if localScore > score {
					bestModel, bestScore = refined, localScore
				} else {
					bestModel, bestScore = model, score
				}
			} else {
				bestModel, bestScore = model, score
			}
		}
	}

	refined := cfg.GlobalRefinement(bestModel)
	globalScore := cfg.ModelScore(refined, nil)
	if globalScore > bestScore {
		bestModel, bestScore = refined, globalScore
	}

	return bestModel, bestScore
}
