// Package geometry implements point-match normalization and the
// homography / fundamental-matrix estimators built on top of it.
package geometry

import (
	"github.com/chewxy/math32"
	"github.com/itohio/nexusvision/pkg/core/math/mat"
)

// Model is a 3x3 matrix in column-major layout (index 0..8), the wire shape
// the rest of the pipeline exchanges homographies and fundamental matrices
// in. For homographies the convention is `x' = H x` in homogeneous
// coordinates; for fundamental matrices `x'^T F x = 0`.
type Model [9]float32

// At returns the (row,col) entry, both 0-indexed.
func (m Model) At(row, col int) float32 {
	return m[row+col*3]
}

// Set assigns the (row,col) entry.
func (m *Model) Set(row, col int, v float32) {
	m[row+col*3] = v
}

// toMatrix3x3 converts to the row-major representation the core math
// package's SVD/Inverse methods operate on.
func (m Model) toMatrix3x3() mat.Matrix3x3 {
	var out mat.Matrix3x3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m.At(r, c)
		}
	}
	return out
}

// modelFromMatrix3x3 converts a row-major Matrix3x3 back to the column-major
// wire Model.
func modelFromMatrix3x3(mm mat.Matrix3x3) Model {
	var out Model
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, mm[r][c])
		}
	}
	return out
}

// ApplyHomography maps (x,y) through the model as `x' = H x` in homogeneous
// coordinates, dehomogenizing the result.
func (m Model) ApplyHomography(x, y float32) (xp, yp float32) {
	hx := m.At(0, 0)*x + m.At(0, 1)*y + m.At(0, 2)
	hy := m.At(1, 0)*x + m.At(1, 1)*y + m.At(1, 2)
	hw := m.At(2, 0)*x + m.At(2, 1)*y + m.At(2, 2)
	return hx / hw, hy / hw
}

// EpipolarResidual returns the point-to-epipolar-line distance of (xp,yp)
// from the line F*(x,y,1) induces in the second image, the residual used
// for fundamental-matrix inlier marking.
func (m Model) EpipolarResidual(x, y, xp, yp float32) float32 {
	a := m.At(0, 0)*x + m.At(0, 1)*y + m.At(0, 2)
	b := m.At(1, 0)*x + m.At(1, 1)*y + m.At(1, 2)
	c := m.At(2, 0)*x + m.At(2, 1)*y + m.At(2, 2)

	num := math32.Abs(a*xp + b*yp + c)
	den := math32.Sqrt(a*a + b*b)
	if den == 0 {
		return math32.MaxFloat32
	}
	return num / den
}
