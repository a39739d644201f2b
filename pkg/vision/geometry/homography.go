package geometry

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/math/mat"
	"github.com/itohio/nexusvision/pkg/core/math/vec"
)

// ErrDegenerateQuad is returned when four points are too close to collinear
// to support a square-to-quad projective mapping.
var ErrDegenerateQuad = errors.New("geometry: degenerate quadrilateral")

// ErrTooFewMatches is returned when a fitter is given fewer correspondences
// than its minimal sample size.
var ErrTooFewMatches = errors.New("geometry: too few matches")

// ErrRankDeficient is returned when a direct linear solve's design matrix is
// too close to singular to trust a fixed-scale inhomogeneous solution.
var ErrRankDeficient = errors.New("geometry: rank-deficient linear system")

// squareToQuad returns the homography mapping the unit square corners
// (0,0),(1,0),(1,1),(0,1) onto p[0],p[1],p[2],p[3], using the closed-form
// construction from Paul Heckbert's "Fundamentals of Texture Mapping and
// Image Warping" (1989) -- the idiomatic Go substitute for transcribing the
// original's Maple-generated algebraic expansion of the same mapping.
func squareToQuad(p [4][2]float32) (mat.Matrix3x3, error) {
	x0, y0 := p[0][0], p[0][1]
	x1, y1 := p[1][0], p[1][1]
	x2, y2 := p[2][0], p[2][1]
	x3, y3 := p[3][0], p[3][1]

	dx1 := x1 - x2
	dx2 := x3 - x2
	dx3 := x0 - x1 + x2 - x3
	dy1 := y1 - y2
	dy2 := y3 - y2
	dy3 := y0 - y1 + y2 - y3

	var a13, a23 float32
	if dx3 == 0 && dy3 == 0 {
		// already an affine (parallelogram) map
		return mat.New3x3(
			x1-x0, x2-x1, x0,
			y1-y0, y2-y1, y0,
			0, 0, 1,
		), nil
	}

	det := dx1*dy2 - dx2*dy1
	if math32.Abs(det) < 1e-12 {
		return mat.Matrix3x3{}, ErrDegenerateQuad
	}
	a13 = (dx3*dy2 - dx2*dy3) / det
	a23 = (dx1*dy3 - dx3*dy1) / det

	return mat.New3x3(
		x1-x0+a13*x1, x3-x0+a23*x3, x0,
		y1-y0+a13*y1, y3-y0+a23*y3, y0,
		a13, a23, 1,
	), nil
}

// EstimateUnitSquare returns the homography mapping quad (given in
// TL,TR,BR,BL order) onto the unit square corners
// {(0,0),(1,0),(1,1),(0,1)}.
func EstimateUnitSquare(quad [4][2]float32) (Model, error) {
	toQuad, err := squareToQuad(quad)
	if err != nil {
		return Model{}, err
	}
	var toUnit mat.Matrix3x3
	if err := toQuad.Inverse(&toUnit); err != nil {
		return Model{}, ErrDegenerateQuad
	}
	return modelFromMatrix3x3(toUnit), nil
}

// Estimate4Point computes the homography mapping src onto dst from exactly
// four correspondences, by reducing both quads to the unit square and
// composing `H = H_dst^-1 * H_src`.
func Estimate4Point(src, dst [4][2]float32) (Model, error) {
	hSrc, err := EstimateUnitSquare(src)
	if err != nil {
		return Model{}, err
	}
	hDstToQuad, err := squareToQuad(dst)
	if err != nil {
		return Model{}, err
	}

	var result mat.Matrix3x3
	result.Mul(hDstToQuad, hSrc.toMatrix3x3())
	return modelFromMatrix3x3(result), nil
}

// unitSquareCorners in TL,TR,BR,BL order, matching EstimateUnitSquare's quad
// convention.
var unitSquareCorners = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// CheckUnitSquare is the homography degeneracy guard: it maps the four unit
// square corners through h and requires (i) the projection of corner B lies
// on the positive side of line A-C and D on the negative side, and (ii) the
// cosine between diagonals A-C and B-D is at most maxAbsCos.
func CheckUnitSquare(h Model, maxAbsCos float32) bool {
	var a, b, c, d [2]float32
	a[0], a[1] = h.ApplyHomography(unitSquareCorners[0][0], unitSquareCorners[0][1])
	b[0], b[1] = h.ApplyHomography(unitSquareCorners[1][0], unitSquareCorners[1][1])
	c[0], c[1] = h.ApplyHomography(unitSquareCorners[2][0], unitSquareCorners[2][1])
	d[0], d[1] = h.ApplyHomography(unitSquareCorners[3][0], unitSquareCorners[3][1])

	// Line A-C: ax + by + c_ = 0, normal (dy, -dx).
	acX, acY := c[0]-a[0], c[1]-a[1]
	lineA, lineB := acY, -acX
	lineC := -(lineA*a[0] + lineB*a[1])

	sideB := lineA*b[0] + lineB*b[1] + lineC
	sideD := lineA*d[0] + lineB*d[1] + lineC
	if !(sideB > 0 && sideD < 0) {
		return false
	}

	bdX, bdY := d[0]-b[0], d[1]-b[1]
	acLen := math32.Sqrt(acX*acX + acY*acY)
	bdLen := math32.Sqrt(bdX*bdX + bdY*bdY)
	if acLen == 0 || bdLen == 0 {
		return false
	}
	cosAngle := (acX*bdX + acY*bdY) / (acLen * bdLen)

	return math32.Abs(cosAngle) <= maxAbsCos
}

// DefaultMaxAbsCos is cos(15 degrees), the default degeneracy-check angle
// bound the original RANSAC/USAC homography drivers use.
var DefaultMaxAbsCos = math32.Cos(15.0 * math32.Pi / 180.0)

// EstimateDLT fits a homography to N>=4 correspondences via the direct
// linear transform: two constraint rows per match stacked into a 2Nx9
// matrix, solved by SVD, taking the right-singular vector of smallest
// singular value as the flattened H.
func EstimateDLT(matches []PointMatch) (Model, error) {
	if len(matches) < 4 {
		return Model{}, ErrTooFewMatches
	}

	nRows := 2 * len(matches)
	a := mat.New(maxInt(nRows, 9), 9)
	for i, m := range matches {
		x, y := m.X[0], m.X[1]
		xp, yp := m.XP[0], m.XP[1]

		a[2*i] = []float32{-x, -y, -1, 0, 0, 0, xp * x, xp * y, xp}
		a[2*i+1] = []float32{0, 0, 0, -x, -y, -1, yp * x, yp * y, yp}
	}
	for i := nRows; i < len(a); i++ {
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
	return modelFromMatrix3x3(mm), nil
}

// RefineDLT polishes a homography fit by fixing h9=1 and solving the
// remaining 8 parameters as an inhomogeneous linear least-squares system --
// a cheaper normal-equations alternative to EstimateDLT's homogeneous SVD
// solve, meant to be applied to an inlier set a RANSAC/USAC loop has already
// pulled into the right basin rather than used as the initial fit. QR
// decomposition's singular flag gates the attempt: a rank-deficient design
// matrix means the fixed-scale parameterization does not apply here, and
// the caller should keep whatever model it already has.
func RefineDLT(matches []PointMatch) (Model, error) {
	if len(matches) < 4 {
		return Model{}, ErrTooFewMatches
	}

	n := len(matches)
	a := mat.New(2*n, 8)
	b := make(vec.Vector, 2*n)
	for i, m := range matches {
		x, y := m.X[0], m.X[1]
		xp, yp := m.XP[0], m.XP[1]

		a[2*i] = []float32{-x, -y, -1, 0, 0, 0, xp * x, xp * y}
		b[2*i] = -xp
		a[2*i+1] = []float32{0, 0, 0, -x, -y, -1, yp * x, yp * y}
		b[2*i+1] = -yp
	}

	var qr mat.QRResult
	if err := a.QRDecompose(&qr); err != nil {
		return Model{}, err
	}
	if qr.Singular {
		return Model{}, ErrRankDeficient
	}

	aT := mat.New(8, 2*n)
	aT.Transpose(a)
	ata := mat.New(8, 8)
	ata.Mul(aT, a)

	atb := make(vec.Vector, 8)
	a.MulVecT(b, atb)

	x := make(vec.Vector, 8)
	if err := ata.CholeskySolve(atb, x); err != nil {
		return Model{}, err
	}

	var mm mat.Matrix3x3
	mm[0][0], mm[0][1], mm[0][2] = x[0], x[1], x[2]
	mm[1][0], mm[1][1], mm[1][2] = x[3], x[4], x[5]
	mm[2][0], mm[2][1] = x[6], x[7]
	mm[2][2] = 1
	return modelFromMatrix3x3(mm), nil
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// smallestSingularVectorRow returns the row of Vt corresponding to the
// smallest singular value in svd.S (Golub-Reinsch SVD does not guarantee
// sorted singular values).
func smallestSingularVectorRow(svd mat.SVDResult) []float32 {
	minIdx := 0
	for i, s := range svd.S {
		if s < svd.S[minIdx] {
			minIdx = i
		}
	}
	return svd.Vt[minIdx]
}

// MarkInliersHomography computes x_hat' = H*x for each match, dehomogenizes,
// and sets IsInlier based on Euclidean distance to x' against tolerance. It
// returns the number of inliers.
func MarkInliersHomography(matches []PointMatch, h Model, tolerance float32) int {
	n := 0
	for i := range matches {
		hx, hy := h.ApplyHomography(matches[i].X[0], matches[i].X[1])
		dx := hx - matches[i].XP[0]
		dy := hy - matches[i].XP[1]
		dist := math32.Sqrt(dx*dx + dy*dy)
		matches[i].IsInlier = dist <= tolerance
		if matches[i].IsInlier {
			n++
		}
	}
	return n
}
