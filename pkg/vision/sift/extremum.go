package sift

import (
	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/image"
	"github.com/itohio/nexusvision/pkg/core/math/mat"
	"github.com/itohio/nexusvision/pkg/core/math/vec"
	"github.com/itohio/nexusvision/pkg/vision/scalespace"
)

// candidate is a provisional, scale-space-local extremum before orientation
// assignment and descriptor sampling.
type candidate struct {
	x, y     int
	xs, ys   float32
	scaleIdx float32 // refined fractional index within the octave's DoG stack
	level    int     // integer DoG level index the candidate was found at
	sigma    float32
	scale    float32
	response float32
}

// dogAt reads the DoG value at (x,y) of octave dogs[level].
func dogAt(dogs []*image.Image, level, x, y int) float32 {
	return dogs[level].At(x, y, 0)
}

// isExtremum reports whether dogs[level] at (x,y) is a strict extremum
// among all 26 neighbours across the three adjacent DoG levels
// level-1, level, level+1.
func isExtremum(dogs []*image.Image, level, x, y int) bool {
	v := dogAt(dogs, level, x, y)
	isMax, isMin := true, true
	for dl := -1; dl <= 1; dl++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dl == 0 && dx == 0 && dy == 0 {
					continue
				}
				n := dogAt(dogs, level+dl, x+dx, y+dy)
				if n >= v {
					isMax = false
				}
				if n <= v {
					isMin = false
				}
				if !isMax && !isMin {
					return false
				}
			}
		}
	}
	return isMax || isMin
}

// hessianGradient3 computes the finite-difference gradient g (d/dx, d/dy,
// d/dscale) and symmetric Hessian H of the DoG stack at (x,y,level).
func hessianGradient3(dogs []*image.Image, level, x, y int) (g vec.Vector3D, h mat.Matrix3x3) {
	v := dogAt(dogs, level, x, y)

	dx := (dogAt(dogs, level, x+1, y) - dogAt(dogs, level, x-1, y)) * 0.5
	dy := (dogAt(dogs, level, x, y+1) - dogAt(dogs, level, x, y-1)) * 0.5
	ds := (dogAt(dogs, level+1, x, y) - dogAt(dogs, level-1, x, y)) * 0.5
	g = vec.Vector3D{dx, dy, ds}

	dxx := dogAt(dogs, level, x+1, y) + dogAt(dogs, level, x-1, y) - 2*v
	dyy := dogAt(dogs, level, x, y+1) + dogAt(dogs, level, x, y-1) - 2*v
	dss := dogAt(dogs, level+1, x, y) + dogAt(dogs, level-1, x, y) - 2*v

	dxy := (dogAt(dogs, level, x+1, y+1) - dogAt(dogs, level, x+1, y-1) -
		dogAt(dogs, level, x-1, y+1) + dogAt(dogs, level, x-1, y-1)) * 0.25
	dxs := (dogAt(dogs, level+1, x+1, y) - dogAt(dogs, level+1, x-1, y) -
		dogAt(dogs, level-1, x+1, y) + dogAt(dogs, level-1, x-1, y)) * 0.25
	dys := (dogAt(dogs, level+1, x, y+1) - dogAt(dogs, level+1, x, y-1) -
		dogAt(dogs, level-1, x, y+1) + dogAt(dogs, level-1, x, y-1)) * 0.25

	h = mat.New3x3(
		dxx, dxy, dxs,
		dxy, dyy, dys,
		dxs, dys, dss,
	)
	return g, h
}

// refinePeak iteratively solves H*delta = -g for delta in (x,y,scale), up
// to 5 times, re-centering the integer location when a component of delta
// exceeds 0.6 and the new location is still valid. It returns the final
// delta, the integer location it was computed at, and whether the solve
// succeeded numerically at every iteration.
func refinePeak(dogs []*image.Image, level, x, y, border, width, height int) (delta vec.Vector3D, fx, fy, flevel int, ok bool) {
	const maxTries = 5
	var inv mat.Matrix3x3

	for try := 0; try < maxTries; try++ {
		g, h := hessianGradient3(dogs, level, x, y)

		if err := h.Inverse(&inv); err != nil {
			return delta, x, y, level, false
		}
		neg := vec.Vector3D{-g[0], -g[1], -g[2]}
		var d vec.Vector
		d = inv.MulVec(neg, vec.New(3))
		delta = vec.Vector3D{d[0], d[1], d[2]}

		if math32.Abs(delta[0]) < 0.6 && math32.Abs(delta[1]) < 0.6 {
			return delta, x, y, level, true
		}

		nx, ny := x, y
		if delta[0] > 0.6 && x+1 < width-border {
			nx++
		} else if delta[0] < -0.6 && x-1 >= border {
			nx--
		}
		if delta[1] > 0.6 && y+1 < height-border {
			ny++
		} else if delta[1] < -0.6 && y-1 >= border {
			ny--
		}
		if nx == x && ny == y {
			return delta, x, y, level, true
		}
		x, y = nx, ny
	}
	return delta, x, y, level, true
}

// checkEdgeThreshold applies the principal-curvature ratio test on the 2x2
// spatial Hessian at (x,y) of dogs[level], rejecting edge-like responses.
func checkEdgeThreshold(dogs []*image.Image, level, x, y int, edgeThreshold float32) bool {
	v := dogAt(dogs, level, x, y)
	hxx := dogAt(dogs, level, x+1, y) + dogAt(dogs, level, x-1, y) - 2*v
	hyy := dogAt(dogs, level, x, y+1) + dogAt(dogs, level, x, y-1) - 2*v
	hxy := (dogAt(dogs, level, x+1, y+1) - dogAt(dogs, level, x+1, y-1) -
		dogAt(dogs, level, x-1, y+1) + dogAt(dogs, level, x-1, y-1)) * 0.25

	det := hxx*hyy - hxy*hxy
	if det <= 0 {
		return false
	}
	tr := hxx + hyy
	r := edgeThreshold
	return tr*tr*r < det*(r+1)*(r+1)
}

// detectOctave scans the inner DoG levels of oct for extrema, refines and
// rejects them, and returns provisional candidates (no orientation yet).
func detectOctave(oct scalespace.Octave, octaveIdx int, nScales int, opts Options) []candidate {
	dogs := oct.DoG
	width := dogs[0].Width
	height := dogs[0].Height
	border := opts.BorderDistance
	peakThr := opts.PeakThreshold / float32(nScales)

	var out []candidate

	for level := 1; level <= nScales; level++ {
		for y := border; y < height-border; y++ {
			for x := border; x < width-border; x++ {
				v := dogAt(dogs, level, x, y)
				if math32.Abs(v) <= 0.8*peakThr {
					continue
				}
				if !isExtremum(dogs, level, x, y) {
					continue
				}

				delta, fx, fy, flevel, ok := refinePeak(dogs, level, x, y, border, width, height)
				if !ok {
					continue
				}
				if math32.Abs(delta[0]) > 1.5 || math32.Abs(delta[1]) > 1.5 || math32.Abs(delta[2]) > 1.5 {
					continue
				}

				g, _ := hessianGradient3(dogs, flevel, fx, fy)
				refinedVal := v + 0.5*(g[0]*delta[0]+g[1]*delta[1]+g[2]*delta[2])
				if math32.Abs(refinedVal) < peakThr {
					continue
				}

				if !checkEdgeThreshold(dogs, flevel, fx, fy, opts.EdgeThreshold) {
					continue
				}

				sigma0 := oct.Gaussian[0].Sigma
				scaleMult := math32.Pow(2, (float32(flevel)+delta[2])/float32(nScales))

				out = append(out, candidate{
					x: fx, y: fy,
					xs: float32(fx) + delta[0], ys: float32(fy) + delta[1],
					scaleIdx: float32(flevel) + delta[2],
					level:    flevel,
					sigma:    sigma0 * scaleMult,
					scale:    oct.Gaussian[0].Scale,
					response: refinedVal,
				})
			}
		}
	}

	return out
}
