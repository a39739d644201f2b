package fp32

import (
	"errors"

	"github.com/chewxy/math32"
)

var (
	// ErrSingularMatrix is returned when trying to factor a singular matrix.
	ErrSingularMatrix = errors.New("fp32: matrix is singular")
	// ErrBadDimensions is returned when dimensions are invalid.
	ErrBadDimensions = errors.New("fp32: bad matrix dimensions")
)

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// getElem returns the element at row i, column j of a row-major matrix
// with leading dimension ldA.
func getElem(a []float32, ldA, i, j int) float32 {
	return a[i*ldA+j]
}

// setElem sets the element at row i, column j of a row-major matrix with
// leading dimension ldA.
func setElem(a []float32, ldA, i, j int, val float32) {
	a[i*ldA+j] = val
}

// swapRows exchanges rows i and j of a row-major matrix with leading
// dimension ldA and N columns.
func swapRows(a []float32, ldA, i, j, N int) {
	for k := 0; k < N; k++ {
		a[i*ldA+k], a[j*ldA+k] = a[j*ldA+k], a[i*ldA+k]
	}
}

// Getrf_IP computes an LU decomposition with partial pivoting in place.
// On input a holds an M x N matrix; on output it holds L below the
// diagonal and U on/above it. ipiv holds the pivot indices
// (length min(M,N)).
func Getrf_IP(a []float32, ipiv []int, ldA, M, N int) error {
	if M <= 0 || N <= 0 {
		return ErrBadDimensions
	}
	if len(a) < M*ldA {
		return ErrBadDimensions
	}
	if len(ipiv) < imin(M, N) {
		return ErrBadDimensions
	}

	minMN := imin(M, N)

	for i := 0; i < minMN; i++ {
		ipiv[i] = i
	}

	for k := 0; k < minMN; k++ {
		p := k
		maxVal := math32.Abs(getElem(a, ldA, k, k))
		for i := k + 1; i < M; i++ {
			val := math32.Abs(getElem(a, ldA, i, k))
			if val > maxVal {
				maxVal = val
				p = i
			}
		}
		ipiv[k] = p

		if p != k {
			swapRows(a, ldA, k, p, N)
		}

		akk := getElem(a, ldA, k, k)
		if math32.Abs(akk) < 1e-6 {
			return ErrSingularMatrix
		}

		for i := k + 1; i < M; i++ {
			aik := getElem(a, ldA, i, k) / akk
			setElem(a, ldA, i, k, aik)

			for j := k + 1; j < N; j++ {
				val := getElem(a, ldA, i, j) - aik*getElem(a, ldA, k, j)
				setElem(a, ldA, i, j, val)
			}
		}
	}

	return nil
}

// Getrf computes A = P*L*U, writing L (unit lower triangular, M x
// min(M,N)) and U (min(M,N) x N) to separate buffers and leaving a
// untouched. ipiv holds the pivot indices (length min(M,N)).
func Getrf(a, l, u []float32, ipiv []int, ldA, ldL, ldU, M, N int) error {
	if M <= 0 || N <= 0 {
		return ErrBadDimensions
	}
	if len(a) < M*ldA {
		return ErrBadDimensions
	}
	if len(l) < M*ldL || len(u) < imin(M, N)*ldU {
		return ErrBadDimensions
	}
	if len(ipiv) < imin(M, N) {
		return ErrBadDimensions
	}

	minMN := imin(M, N)

	work := make([]float32, M*ldA)
	copy(work, a)

	if err := Getrf_IP(work, ipiv, ldA, M, N); err != nil {
		return err
	}

	for i := 0; i < M; i++ {
		for j := 0; j < minMN; j++ {
			if i > j {
				setElem(l, ldL, i, j, getElem(work, ldA, i, j))
			} else if i == j {
				setElem(l, ldL, i, j, 1.0)
				setElem(u, ldU, i, j, getElem(work, ldA, i, j))
			}
		}
	}

	for i := 0; i < minMN; i++ {
		for j := i; j < N; j++ {
			setElem(u, ldU, i, j, getElem(work, ldA, i, j))
		}
	}

	return nil
}
