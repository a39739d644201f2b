package geometry

import "github.com/chewxy/math32"

// PointMatch is a correspondence between a point in the first image and a
// point in the second, carrying the descriptor distance used to rank it and
// the per-point localization standard deviations normalization depends on.
type PointMatch struct {
	X, XP           [2]float32
	Cost            float32
	SigmaX, SigmaXP float32
	ID, IDP         int
	IsInlier        bool
}

// NormalizationStats holds the per-side mean and average centered distance
// that denormalization of a homography, fundamental matrix, or match list
// back to original coordinates depends on.
type NormalizationStats struct {
	M, MP [2]float32
	D, DP float32
}

// Normalize mean-centers both sides of matches and scales the centered
// coordinates (and sigmas) so the average distance from the origin is 1 on
// each side. It returns the normalized matches and the stats needed to
// invert the transform.
func Normalize(matches []PointMatch) ([]PointMatch, NormalizationStats) {
	n := float32(len(matches))

	var mx, my, mpx, mpy float32
	for _, pm := range matches {
		mx += pm.X[0]
		my += pm.X[1]
		mpx += pm.XP[0]
		mpy += pm.XP[1]
	}
	mx /= n
	my /= n
	mpx /= n
	mpy /= n

	out := make([]PointMatch, len(matches))
	var dSum, dpSum float32
	for i, pm := range matches {
		cx := pm.X[0] - mx
		cy := pm.X[1] - my
		cxp := pm.XP[0] - mpx
		cyp := pm.XP[1] - mpy

		dSum += math32.Sqrt(cx*cx + cy*cy)
		dpSum += math32.Sqrt(cxp*cxp + cyp*cyp)

		out[i] = pm
		out[i].X = [2]float32{cx, cy}
		out[i].XP = [2]float32{cxp, cyp}
	}

	d := dSum / n
	dp := dpSum / n

	for i := range out {
		out[i].X[0] /= d
		out[i].X[1] /= d
		out[i].XP[0] /= dp
		out[i].XP[1] /= dp
		out[i].SigmaX /= d
		out[i].SigmaXP /= dp
	}

	return out, NormalizationStats{M: [2]float32{mx, my}, MP: [2]float32{mpx, mpy}, D: d, DP: dp}
}

// DenormalizeMatches applies the inverse of Normalize's transform, given the
// stats Normalize returned.
func DenormalizeMatches(matches []PointMatch, stats NormalizationStats) []PointMatch {
	out := make([]PointMatch, len(matches))
	for i, pm := range matches {
		out[i] = pm
		out[i].X[0] = stats.D*pm.X[0] + stats.M[0]
		out[i].X[1] = stats.D*pm.X[1] + stats.M[1]
		out[i].XP[0] = stats.DP*pm.XP[0] + stats.MP[0]
		out[i].XP[1] = stats.DP*pm.XP[1] + stats.MP[1]
		out[i].SigmaX = pm.SigmaX * stats.D
		out[i].SigmaXP = pm.SigmaXP * stats.DP
	}
	return out
}
