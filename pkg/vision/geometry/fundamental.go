package geometry

import (
	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/math/mat"
	"github.com/itohio/nexusvision/pkg/core/math/vec"
)

// MinFundamentalSample is the minimal sample size for a fundamental-matrix
// fit (the 8-point algorithm).
const MinFundamentalSample = 8

// EstimateFundamental fits a fundamental matrix to N>=8 correspondences
// using the linear 8-point algorithm: one constraint row per match of the
// form (x*xp, y*xp, xp, x*yp, y*yp, yp, x, y, 1), stacked into an Nx9
// matrix and solved by SVD, taking the right-singular vector of smallest
// singular value as the flattened F. This is the minimal/8-point path the
// reference implementation's epipolar module leaves unimplemented; it is
// built here following the same constraint-row and SVD-solve shape as that
// module's fully worked non-minimal least-squares fit.
func EstimateFundamental(matches []PointMatch) (Model, error) {
	if len(matches) < MinFundamentalSample {
		return Model{}, ErrTooFewMatches
	}

	a := mat.New(maxInt(len(matches), 9), 9)
	for i, m := range matches {
		x, y := m.X[0], m.X[1]
		xp, yp := m.XP[0], m.XP[1]
		a[i] = []float32{x * xp, y * xp, xp, x * yp, y * yp, yp, x, y, 1}
	}
	for i := len(matches); i < len(a); i++ {
		a[i] = make([]float32, 9)
	}

	var svd mat.SVDResult
	if err := a.SVD(&svd); err != nil {
		return Model{}, err
	}

	row := smallestSingularVectorRow(svd)

	var mm mat.Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			mm[r][c] = row[r*3+c]
		}
	}

	return enforceRank2(modelFromMatrix3x3(mm)), nil
}

// RefineFundamental polishes a fundamental-matrix fit by fixing f9=1 and
// solving the remaining 8 parameters as an inhomogeneous linear
// least-squares system via the Moore-Penrose pseudo-inverse, the same
// fixed-scale normal-equations technique RefineDLT uses for homographies.
// Meant to polish an inlier set a RANSAC/USAC loop has already converged
// on. QR decomposition's singular flag gates the attempt, same as RefineDLT.
func RefineFundamental(matches []PointMatch) (Model, error) {
	if len(matches) < MinFundamentalSample {
		return Model{}, ErrTooFewMatches
	}

	n := len(matches)
	a := mat.New(n, 8)
	b := make(vec.Vector, n)
	for i, m := range matches {
		x, y := m.X[0], m.X[1]
		xp, yp := m.XP[0], m.XP[1]
		a[i] = []float32{x * xp, y * xp, xp, x * yp, y * yp, yp, x, y}
		b[i] = -1
	}

	var qr mat.QRResult
	if err := a.QRDecompose(&qr); err != nil {
		return Model{}, err
	}
	if qr.Singular {
		return Model{}, ErrRankDeficient
	}

	pinv := mat.New(8, n)
	if err := a.PseudoInverse(pinv); err != nil {
		return Model{}, err
	}

	x := make(vec.Vector, 8)
	pinv.MulVec(b, x)

	var mm mat.Matrix3x3
	mm[0][0], mm[0][1], mm[0][2] = x[0], x[1], x[2]
	mm[1][0], mm[1][1], mm[1][2] = x[3], x[4], x[5]
	mm[2][0], mm[2][1] = x[6], x[7]
	mm[2][2] = 1
	return enforceRank2(modelFromMatrix3x3(mm)), nil
}

// enforceRank2 projects a fundamental matrix onto the rank-2 manifold by
// zeroing its smallest singular value, the standard post-processing step
// that turns an unconstrained 8-point solution into one with a well-defined
// epipole.
func enforceRank2(f Model) Model {
	rows := mat.New(3, 3)
	for r := 0; r < 3; r++ {
		rows[r] = []float32{f.At(r, 0), f.At(r, 1), f.At(r, 2)}
	}

	var svd mat.SVDResult
	if err := rows.SVD(&svd); err != nil {
		return f
	}

	minIdx := 0
	for i, s := range svd.S {
		if s < svd.S[minIdx] {
			minIdx = i
		}
	}
	svd.S[minIdx] = 0

	var out Model
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var v float32
			for k := 0; k < 3; k++ {
				v += svd.U[r][k] * svd.S[k] * svd.Vt[k][c]
			}
			out.Set(r, c, v)
		}
	}
	return out
}

// MarkInliersFundamental sets IsInlier for each match using the point-to-
// epipolar-line residual against tolerance, returning the inlier count.
func MarkInliersFundamental(matches []PointMatch, f Model, tolerance float32) int {
	n := 0
	for i := range matches {
		d := f.EpipolarResidual(matches[i].X[0], matches[i].X[1], matches[i].XP[0], matches[i].XP[1])
		matches[i].IsInlier = d <= tolerance
		if matches[i].IsInlier {
			n++
		}
	}
	return n
}

// MaxEpipolarResidual returns the largest |x'^T F x| over matches, used by
// exact-correspondence tests to check how close a fit is to satisfying the
// epipolar constraint algebraically rather than geometrically.
func MaxEpipolarResidual(matches []PointMatch, f Model) float32 {
	var worst float32
	for _, m := range matches {
		x, y := m.X[0], m.X[1]
		xp, yp := m.XP[0], m.XP[1]
		a := f.At(0, 0)*x + f.At(0, 1)*y + f.At(0, 2)
		b := f.At(1, 0)*x + f.At(1, 1)*y + f.At(1, 2)
		c := f.At(2, 0)*x + f.At(2, 1)*y + f.At(2, 2)
		val := math32.Abs(a*xp + b*yp + c)
		if val > worst {
			worst = val
		}
	}
	return worst
}
