package fp32

// Gemv_N computes: y = alpha*A*x + beta*y (no transpose)
// This is BLAS GEMV_N operation.
// A: M x N matrix (row-major, ldA >= N)
// x: N x 1 vector
// y: M x 1 vector
func Gemv_N(y []float32, a, x []float32, ldA, M, N int, alpha, beta float32) {
	if M == 0 || N == 0 {
		return
	}

	if beta != 1.0 {
		if beta == 0.0 {
			for i := 0; i < M; i++ {
				y[i] = 0
			}
		} else {
			for i := 0; i < M; i++ {
				y[i] *= beta
			}
		}
	}

	if alpha == 0.0 {
		return
	}

	pa := 0
	for i := 0; i < M; i++ {
		dot := float32(0.0)
		px := 0

		for j := 0; j < N; j++ {
			dot += a[pa+j] * x[px]
			px++
		}

		y[i] += alpha * dot
		pa += ldA
	}
}

// Gemv_T computes: y = alpha*A^T*x + beta*y (transpose)
// This is BLAS GEMV_T operation.
// A: M x N matrix (row-major, ldA >= N), A^T: N x M logical transpose
// x: M x 1 vector
// y: N x 1 vector
func Gemv_T(y []float32, a, x []float32, ldA, M, N int, alpha, beta float32) {
	if M == 0 || N == 0 {
		return
	}

	if beta != 1.0 {
		if beta == 0.0 {
			for j := 0; j < N; j++ {
				y[j] = 0
			}
		} else {
			for j := 0; j < N; j++ {
				y[j] *= beta
			}
		}
	}

	if alpha == 0.0 {
		return
	}

	for j := 0; j < N; j++ {
		dot := float32(0.0)
		px := 0
		pa := j
		for i := 0; i < M; i++ {
			dot += a[pa] * x[px]
			pa += ldA
			px++
		}

		y[j] += alpha * dot
	}
}
