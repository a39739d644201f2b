package fp32

// ElemAdd writes the element-wise sum of a and b into dst for the given
// shape/strides.
func ElemAdd(dst, a, b []float32, shape []int, stridesDst, stridesA, stridesB []int) {
	applyElemBinary(dst, a, b, shape, stridesDst, stridesA, stridesB, func(av, bv float32) float32 {
		return av + bv
	})
}

// ElemSub writes the element-wise difference of a and b into dst
// (dst = a - b).
func ElemSub(dst, a, b []float32, shape []int, stridesDst, stridesA, stridesB []int) {
	applyElemBinary(dst, a, b, shape, stridesDst, stridesA, stridesB, func(av, bv float32) float32 {
		return av - bv
	})
}

// ElemMul writes the element-wise product of a and b into dst.
func ElemMul(dst, a, b []float32, shape []int, stridesDst, stridesA, stridesB []int) {
	applyElemBinary(dst, a, b, shape, stridesDst, stridesA, stridesB, func(av, bv float32) float32 {
		return av * bv
	})
}

func applyElemBinary(dst, a, b []float32, shape []int, stridesDst, stridesA, stridesB []int, op func(float32, float32) float32) {
	size := SizeFromShape(shape)
	if len(shape) == 0 || size == 0 {
		return
	}

	stridesDst = EnsureStrides(stridesDst, shape)
	stridesA = EnsureStrides(stridesA, shape)
	stridesB = EnsureStrides(stridesB, shape)

	if IsContiguous(stridesDst, shape) && IsContiguous(stridesA, shape) && IsContiguous(stridesB, shape) {
		for i := 0; i < size; i++ {
			dst[i] = op(a[i], b[i])
		}
		return
	}

	indices := make([]int, len(shape))
	offsets := make([]int, 3)
	strideSet := [][]int{stridesDst, stridesA, stridesB}
	for {
		dIdx := offsets[0]
		aIdx := offsets[1]
		bIdx := offsets[2]
		dst[dIdx] = op(a[aIdx], b[bIdx])
		if !advanceOffsets(shape, indices, offsets, strideSet) {
			break
		}
	}
}
