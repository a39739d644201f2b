package fp32

// Gemm_NN computes: C = alpha*A*B + beta*C (neither transposed)
// This is BLAS GEMM_NN operation.
// A: M x K matrix (row-major, ldA >= K)
// B: K x N matrix (row-major, ldB >= N)
// C: M x N matrix (row-major, ldC >= N)
func Gemm_NN(c, a, b []float32, ldC, ldA, ldB, M, N, K int, alpha, beta float32) {
	if M == 0 || N == 0 || K == 0 {
		return
	}

	if beta != 1.0 {
		if beta == 0.0 {
			for i := 0; i < M; i++ {
				pc := i * ldC
				for j := 0; j < N; j++ {
					c[pc+j] = 0
				}
			}
		} else {
			for i := 0; i < M; i++ {
				pc := i * ldC
				for j := 0; j < N; j++ {
					c[pc+j] *= beta
				}
			}
		}
	}

	if alpha == 0.0 {
		return
	}

	pa := 0
	pc := 0
	for i := 0; i < M; i++ {
		for j := 0; j < N; j++ {
			sum := float32(0.0)
			pb := 0

			for k := 0; k < K; k++ {
				sum += a[pa+k] * b[pb+j]
				pb += ldB
			}

			c[pc+j] += alpha * sum
		}
		pa += ldA
		pc += ldC
	}
}
