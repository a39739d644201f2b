package sift

import (
	coreimage "github.com/itohio/nexusvision/pkg/core/image"
	"github.com/itohio/nexusvision/pkg/core/logger"
	"github.com/itohio/nexusvision/pkg/core/options"
	"github.com/itohio/nexusvision/pkg/vision/scalespace"
)

// Detector detects keypoints and samples descriptors over a Gaussian/DoG
// scale-space pyramid, per the configured Options.
type Detector struct {
	opts Options
}

// NewDetector builds a Detector from DefaultOptions, overridden by opts.
func NewDetector(opts ...options.Option) *Detector {
	cfg := DefaultOptions()
	options.ApplyOptions(&cfg, opts...)
	return &Detector{opts: cfg}
}

// Detect runs the full pipeline over img and returns a freshly populated
// Store. An empty or too-small input yields an empty, non-nil store rather
// than an error, matching the scale-space builder's "skip, don't abort"
// failure contract.
func (d *Detector) Detect(img *coreimage.Image) *Store {
	store := NewStore(d.opts.InitialCapacity)

	pyr, err := scalespace.Build(img, scalespace.Params{
		DoubleImage:            d.opts.DoubleImage,
		NScales:                d.opts.NScalesPerOctave,
		Sigma0:                 d.opts.Sigma0,
		KernelTruncationFactor: d.opts.KernelTruncationFactor,
		BorderDistance:         d.opts.BorderDistance,
	})
	if err != nil {
		logger.Log.Warn().Err(err).Msg("sift: scale-space build failed, returning empty store")
		return store
	}

	for octIdx, oct := range pyr.Octaves {
		candidates := detectOctave(oct, octIdx, d.opts.NScalesPerOctave, d.opts)
		d.emitCandidates(store, oct, octIdx, candidates)
	}

	return store
}

// gradientCache avoids recomputing gx/gy for the same Gaussian level more
// than once per octave.
type gradientCache struct {
	gx, gy map[int]*coreimage.Image
}

func newGradientCache() gradientCache {
	return gradientCache{gx: map[int]*coreimage.Image{}, gy: map[int]*coreimage.Image{}}
}

func (c gradientCache) get(oct scalespace.Octave, level int) (*coreimage.Image, *coreimage.Image) {
	if gx, ok := c.gx[level]; ok {
		return gx, c.gy[level]
	}
	gx, gy := computeGradients(oct.Gaussian[level].Image)
	c.gx[level] = gx
	c.gy[level] = gy
	return gx, gy
}

// emitCandidates assigns orientation(s) and samples a descriptor for each
// candidate, appending one keypoint per accepted orientation peak.
func (d *Detector) emitCandidates(store *Store, oct scalespace.Octave, octIdx int, candidates []candidate) {
	grads := newGradientCache()

	for _, c := range candidates {
		gx, gy := grads.get(oct, c.level)

		hist := computeOriHist(gx, gy, c.xs, c.ys, c.sigma)
		peaks := histogramPeaks(hist)

		for _, ori := range peaks {
			fdesc := computeFDescriptor(gx, gy, c.xs, c.ys, c.sigma, ori, d.opts.MagnificationFactor)
			desc := computeDescriptor(fdesc)

			kp := Keypoint{
				X: c.x, Y: c.y,
				Xs: c.xs, Ys: c.ys,
				Octave:      octIdx,
				Scale:       c.scale,
				Sigma:       c.sigma,
				Response:    c.response,
				Orientation: ori,
			}
			store.Append(kp, desc[:])
		}
	}
}
