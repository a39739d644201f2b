package fp32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGemm_NN(t *testing.T) {
	// A = [1 2]  B = [5 6]  A*B = [19 22]
	//     [3 4]      [7 8]       [43 50]
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	c := make([]float32, 4)
	Gemm_NN(c, a, b, 2, 2, 2, 2, 2, 2, 1.0, 0.0)
	require.Equal(t, []float32{19, 22, 43, 50}, c)
}

func TestGemm_NN_NonSquare(t *testing.T) {
	// A: 2x3, B: 3x2, C: 2x2.
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{1, 0, 0, 1, 1, 1}
	c := make([]float32, 4)
	Gemm_NN(c, a, b, 2, 3, 2, 2, 2, 3, 1.0, 0.0)
	require.Equal(t, []float32{4, 5, 10, 11}, c)
}
