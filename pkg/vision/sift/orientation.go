package sift

import (
	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/image"
)

// nOriBins is the number of bins in the orientation-assignment histogram.
const nOriBins = 36

// computeOriHist builds the 36-bin orientation histogram around (xs,ys) in
// the gradient images gx/gy, using a Gaussian-weighted circular window of
// radius 3*1.5*sigma, and returns it smoothed by six passes of a 3-tap
// cyclic average.
func computeOriHist(gx, gy *image.Image, xs, ys, sigma float32) [nOriBins]float32 {
	var hist [nOriBins]float32

	weightSigma := 1.5 * sigma
	radius := int(weightSigma * 3.0)
	distFactor := -0.5 / (weightSigma * weightSigma)

	cx, cy := int(xs+0.5), int(ys+0.5)

	for dy := -radius; dy <= radius; dy++ {
		y := cy + dy
		if y < 1 || y >= gx.Height-1 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := cx + dx
			if x < 1 || x >= gx.Width-1 {
				continue
			}

			distSq := float32(dx*dx + dy*dy)
			if distSq > float32(radius*radius) {
				continue
			}

			gxv := gx.At(x, y, 0)
			gyv := gy.At(x, y, 0)
			mag := math32.Sqrt(gxv*gxv + gyv*gyv)
			ori := math32.Atan2(gyv, gxv)

			weight := math32.Exp(distFactor*distSq) * mag

			bin := int((ori+math32.Pi)*nOriBins/(2*math32.Pi)) % nOriBins
			if bin < 0 {
				bin += nOriBins
			}
			hist[bin] += weight
		}
	}

	return smoothHistogram(hist)
}

// smoothHistogram applies six passes of a cyclic 3-tap box average.
func smoothHistogram(hist [nOriBins]float32) [nOriBins]float32 {
	buf := hist
	for pass := 0; pass < 6; pass++ {
		var smoothed [nOriBins]float32
		for i := 0; i < nOriBins; i++ {
			prev := buf[(i-1+nOriBins)%nOriBins]
			succ := buf[(i+1)%nOriBins]
			smoothed[i] = (prev + buf[i] + succ) / 3.0
		}
		buf = smoothed
	}
	return buf
}

// histogramPeaks returns one orientation (radians) per histogram bin that
// is a local maximum at or above 80% of the global peak, quadratically
// interpolated from the bin and its two neighbours.
func histogramPeaks(hist [nOriBins]float32) []float32 {
	var peak float32
	for _, v := range hist {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return nil
	}

	var peaks []float32
	for b := 0; b < nOriBins; b++ {
		prev := hist[(b-1+nOriBins)%nOriBins]
		next := hist[(b+1)%nOriBins]
		v := hist[b]
		if v < prev || v < next || v < 0.8*peak {
			continue
		}

		d := 0.5 * (next - prev)
		twoC := prev + next - 2*v
		var offset float32
		if twoC != 0 {
			offset = -d / twoC
		}

		ori := math32.Pi * (2*(float32(b)-0.5+offset)/nOriBins - 1)
		if ori <= -math32.Pi {
			ori += 2 * math32.Pi
		}
		if ori > math32.Pi {
			ori -= 2 * math32.Pi
		}

		peaks = append(peaks, ori)
	}
	return peaks
}
