package geometry

import "github.com/itohio/nexusvision/pkg/core/math/mat"

// sideTransform builds the 3x3 matrix T such that `x_norm = T * x_orig`,
// given the mean m and average centered distance d of one side of a
// NormalizationStats.
func sideTransform(m [2]float32, d float32) mat.Matrix3x3 {
	return mat.New3x3(
		1/d, 0, -m[0]/d,
		0, 1/d, -m[1]/d,
		0, 0, 1,
	)
}

// DenormalizeHomography maps a homography fit in normalized coordinates
// back to original coordinates: `H = T'^-1 * H_norm * T`, where T, T' are
// the per-side normalization transforms in stats.
func DenormalizeHomography(h Model, stats NormalizationStats) Model {
	t := sideTransform(stats.M, stats.D)
	tp := sideTransform(stats.MP, stats.DP)

	var tpInv mat.Matrix3x3
	if err := tp.Inverse(&tpInv); err != nil {
		// tp is always invertible (diagonal scale + translation); a
		// failure here means stats.DP was zero, a numerical
		// under-determination upstream normalization should have caught.
		return h
	}

	hm := h.toMatrix3x3()
	var tmp, result mat.Matrix3x3
	tmp.Mul(hm, t)
	result.Mul(tpInv, tmp)

	return modelFromMatrix3x3(result)
}

// DenormalizeFundamental maps a fundamental matrix fit in normalized
// coordinates back to original coordinates: `F = T'^T * F_norm * T`. This
// mirrors DenormalizeHomography's closed-form pattern; the epipolar
// constraint `x'_norm^T F_norm x_norm = 0` expands to
// `x'_orig^T (T'^T F_norm T) x_orig = 0` once `x_norm = T x_orig` and
// `x'_norm = T' x'_orig` are substituted in.
func DenormalizeFundamental(f Model, stats NormalizationStats) Model {
	t := sideTransform(stats.M, stats.D)
	tp := sideTransform(stats.MP, stats.DP)

	var tpT mat.Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			tpT[r][c] = tp[c][r]
		}
	}

	fm := f.toMatrix3x3()
	var tmp, result mat.Matrix3x3
	tmp.Mul(fm, t)
	result.Mul(tpT, tmp)

	return modelFromMatrix3x3(result)
}
