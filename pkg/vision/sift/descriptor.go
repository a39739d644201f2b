package sift

import (
	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/image"
)

const (
	nSpatialCells = 4
	descClip      = 0.2
	descQuantizer = 512
)

// computeFDescriptor samples the 4x4x8 trilinear histogram around (xs,ys)
// in the gradient images, oriented by orientation and scaled by
// magnificationFactor*sigma, and returns it as a flat length-128
// float32 slice (cell-x major, then cell-y, then orientation bin).
func computeFDescriptor(gx, gy *image.Image, xs, ys, sigma, orientation, magnificationFactor float32) [DescriptorLength]float32 {
	var desc [DescriptorLength]float32

	patchSize := magnificationFactor * sigma
	sampleRadius := int(patchSize*math32.Sqrt2 + 0.5)
	if sampleRadius < 1 {
		sampleRadius = 1
	}

	cori := math32.Cos(orientation)
	sori := math32.Sin(orientation)

	cx, cy := int(xs+0.5), int(ys+0.5)
	const nBinsPerCell = 8
	halfCells := float32(nSpatialCells) / 2.0

	for dy := -sampleRadius; dy <= sampleRadius; dy++ {
		y := cy + dy
		if y < 1 || y >= gx.Height-1 {
			continue
		}
		for dx := -sampleRadius; dx <= sampleRadius; dx++ {
			x := cx + dx
			if x < 1 || x >= gx.Width-1 {
				continue
			}

			// Rotate into patch coordinates, normalized to cell units.
			rx := (float32(dx)*cori + float32(dy)*sori) / patchSize
			ry := (-float32(dx)*sori + float32(dy)*cori) / patchSize

			px := rx*nSpatialCells + halfCells
			py := ry*nSpatialCells + halfCells

			if px <= -1 || px >= nSpatialCells || py <= -1 || py >= nSpatialCells {
				continue
			}

			gxv := gx.At(x, y, 0)
			gyv := gy.At(x, y, 0)
			mag := math32.Sqrt(gxv*gxv + gyv*gyv)
			ori := math32.Atan2(gyv, gxv)

			sampleOri := ori - orientation
			for sampleOri < 0 {
				sampleOri += 2 * math32.Pi
			}
			for sampleOri >= 2*math32.Pi {
				sampleOri -= 2 * math32.Pi
			}

			weight := mag * math32.Exp(-(rx*rx+ry*ry)/(2*halfCells*halfCells))

			ph := sampleOri * nBinsPerCell / (2 * math32.Pi)

			distributeWeighted(&desc, px, py, ph, weight)
		}
	}

	return desc
}

// distributeWeighted trilinearly splats weight into the 2x2x2 neighbourhood
// of (px,py,ph) in the 4x4x8 descriptor histogram, wrapping the orientation
// axis cyclically.
func distributeWeighted(desc *[DescriptorLength]float32, px, py, ph, weight float32) {
	const nBinsPerCell = 8

	pxi := int(math32.Floor(px))
	pyi := int(math32.Floor(py))
	phi := int(math32.Floor(ph))

	xeps := px - float32(pxi)
	yeps := py - float32(pyi)
	heps := ph - float32(phi)

	for dxi := 0; dxi <= 1; dxi++ {
		xi := pxi + dxi
		if xi < 0 || xi >= nSpatialCells {
			continue
		}
		wx := xeps
		if dxi == 0 {
			wx = 1 - xeps
		}

		for dyi := 0; dyi <= 1; dyi++ {
			yi := pyi + dyi
			if yi < 0 || yi >= nSpatialCells {
				continue
			}
			wy := yeps
			if dyi == 0 {
				wy = 1 - yeps
			}

			for dhi := 0; dhi <= 1; dhi++ {
				hi := (phi + dhi) % nBinsPerCell
				if hi < 0 {
					hi += nBinsPerCell
				}
				wh := heps
				if dhi == 0 {
					wh = 1 - heps
				}

				idx := (xi*nSpatialCells+yi)*nBinsPerCell + hi
				desc[idx] += weight * wx * wy * wh
			}
		}
	}
}

// computeDescriptor converts the raw float descriptor into the quantized
// byte form: L2-normalize, clip at descClip, L2-normalize again, quantize
// by floor(descQuantizer*v) clamped to 255.
func computeDescriptor(fdesc [DescriptorLength]float32) [DescriptorLength]byte {
	normalizeL2(&fdesc)
	for i := range fdesc {
		if fdesc[i] > descClip {
			fdesc[i] = descClip
		}
	}
	normalizeL2(&fdesc)

	var out [DescriptorLength]byte
	for i, v := range fdesc {
		q := int(descQuantizer * v)
		if q > 255 {
			q = 255
		}
		if q < 0 {
			q = 0
		}
		out[i] = byte(q)
	}
	return out
}

func normalizeL2(v *[DescriptorLength]float32) {
	var sumSq float32
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq <= 0 {
		return
	}
	norm := math32.Sqrt(sumSq)
	for i := range v {
		v[i] /= norm
	}
}
