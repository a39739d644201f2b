// Package image implements the plain pixel-grid value type shared by the
// scale-space builder, SIFT detector and descriptor sampler. It has no
// dependency on gocv or any codec; conversion from/to external image types
// happens at the CLI boundary.
package image

import (
	"errors"
	"fmt"
)

// Type selects the sample representation backing an Image.
type Type int

const (
	// UChar stores samples as bytes in [0,255].
	UChar Type = iota
	// Float32 stores samples as float32, typically in [0,1] or unscaled
	// gradient/DoG response values.
	Float32
)

func (t Type) bytesPerSample() int {
	switch t {
	case Float32:
		return 4
	default:
		return 1
	}
}

func (t Type) String() string {
	switch t {
	case Float32:
		return "float32"
	case UChar:
		return "uchar"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

var (
	// ErrInvalidSize is returned when width, height or channels is not positive.
	ErrInvalidSize = errors.New("image: width, height and channels must be positive")
	// ErrStrideTooSmall is returned when the requested row stride cannot hold
	// one row of samples.
	ErrStrideTooSmall = errors.New("image: row stride too small for width*channels")
)

// Image is a rectangular grid of byte or float32 samples, addressed in
// row-major order with an explicit row stride measured in bytes. The stride
// invariant is `RowStride >= Width*Channels*bytesPerSample`, so a view can be
// taken of a sub-rectangle of a larger backing buffer without copying.
type Image struct {
	Width, Height int
	Channels      int
	RowStride     int
	Typ           Type

	uchar []uint8
	fp32  []float32
}

// New allocates a zero-filled Image with a tightly packed row stride
// (`Width*Channels*bytesPerSample`).
func New(width, height, channels int, typ Type) (*Image, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, ErrInvalidSize
	}
	stride := width * channels * typ.bytesPerSample()
	return NewWithStride(width, height, channels, typ, stride)
}

// NewWithStride allocates a zero-filled Image with an explicit row stride,
// which must be large enough to hold one packed row.
func NewWithStride(width, height, channels int, typ Type, rowStride int) (*Image, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, ErrInvalidSize
	}
	minStride := width * channels * typ.bytesPerSample()
	if rowStride < minStride {
		return nil, ErrStrideTooSmall
	}

	img := &Image{
		Width:     width,
		Height:    height,
		Channels:  channels,
		RowStride: rowStride,
		Typ:       typ,
	}

	samplesPerRow := rowStride / typ.bytesPerSample()
	switch typ {
	case Float32:
		img.fp32 = make([]float32, samplesPerRow*height)
	default:
		img.uchar = make([]uint8, samplesPerRow*height)
	}
	return img, nil
}

// samplesPerRow returns the stride expressed in samples rather than bytes.
func (img *Image) samplesPerRow() int {
	return img.RowStride / img.Typ.bytesPerSample()
}

// Stride returns the row stride expressed in samples (not bytes), i.e. the
// number of elements between the start of consecutive rows in the backing
// slice returned by UChar/Float32.
func (img *Image) Stride() int {
	return img.samplesPerRow()
}

// UChar returns the byte-valued backing storage. It panics if the image is
// not of type UChar.
func (img *Image) UChar() []uint8 {
	if img.Typ != UChar {
		panic("image: UChar called on a non-UChar image")
	}
	return img.uchar
}

// Float32 returns the float-valued backing storage. It panics if the image
// is not of type Float32.
func (img *Image) Float32() []float32 {
	if img.Typ != Float32 {
		panic("image: Float32 called on a non-Float32 image")
	}
	return img.fp32
}

// RowUChar returns the y-th row as a byte slice of length
// Width*Channels, backed by the image's own storage.
func (img *Image) RowUChar(y int) []uint8 {
	spr := img.samplesPerRow()
	off := y * spr
	return img.uchar[off : off+img.Width*img.Channels]
}

// RowFloat32 returns the y-th row as a float32 slice of length
// Width*Channels, backed by the image's own storage.
func (img *Image) RowFloat32(y int) []float32 {
	spr := img.samplesPerRow()
	off := y * spr
	return img.fp32[off : off+img.Width*img.Channels]
}

// At returns the value of channel c of pixel (x,y) as a float32 regardless
// of the underlying storage type; byte samples are returned unscaled, as
// values in [0,255].
func (img *Image) At(x, y, c int) float32 {
	switch img.Typ {
	case Float32:
		return img.RowFloat32(y)[x*img.Channels+c]
	default:
		return float32(img.RowUChar(y)[x*img.Channels+c])
	}
}

// Set writes a float32 value into channel c of pixel (x,y), truncating and
// clamping into [0,255] for UChar images.
func (img *Image) Set(x, y, c int, v float32) {
	switch img.Typ {
	case Float32:
		img.RowFloat32(y)[x*img.Channels+c] = v
	default:
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		img.RowUChar(y)[x*img.Channels+c] = uint8(v)
	}
}

// InBounds reports whether (x,y) is a valid pixel coordinate.
func (img *Image) InBounds(x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

// ToFloat32 returns a new Float32 image with the same dimensions, converting
// UChar samples to their raw numeric value (no [0,1] rescale, matching the
// scale-space builder's expectation of float pixel values in [0,255]).
func (img *Image) ToFloat32() *Image {
	if img.Typ == Float32 {
		return img.Clone()
	}

	out, err := New(img.Width, img.Height, img.Channels, Float32)
	if err != nil {
		panic(err)
	}
	for y := 0; y < img.Height; y++ {
		src := img.RowUChar(y)
		dst := out.RowFloat32(y)
		for i, v := range src {
			dst[i] = float32(v)
		}
	}
	return out
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	out := &Image{
		Width:     img.Width,
		Height:    img.Height,
		Channels:  img.Channels,
		RowStride: img.RowStride,
		Typ:       img.Typ,
	}
	if img.Typ == Float32 {
		out.fp32 = append([]float32(nil), img.fp32...)
	} else {
		out.uchar = append([]uint8(nil), img.uchar...)
	}
	return out
}

// Downsample2 returns a new image sampling every other pixel in each
// dimension, used to seed the next pyramid octave from the last Gaussian
// level of the current one. The result type matches the source.
func (img *Image) Downsample2() *Image {
	w, h := img.Width/2, img.Height/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out, err := New(w, h, img.Channels, img.Typ)
	if err != nil {
		panic(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < img.Channels; c++ {
				out.Set(x, y, c, img.At(x*2, y*2, c))
			}
		}
	}
	return out
}

// Upsample2 returns a new image of twice the size, duplicating each pixel
// into a 2x2 block (nearest-neighbour), used for the `double_image` option
// of the scale-space builder.
func (img *Image) Upsample2() *Image {
	w, h := img.Width*2, img.Height*2
	out, err := New(w, h, img.Channels, img.Typ)
	if err != nil {
		panic(err)
	}
	for y := 0; y < h; y++ {
		sy := y / 2
		for x := 0; x < w; x++ {
			sx := x / 2
			for c := 0; c < img.Channels; c++ {
				out.Set(x, y, c, img.At(sx, sy, c))
			}
		}
	}
	return out
}

// Sub returns pixelwise this-other into dst, which must already have
// matching dimensions and Float32 type. Used to build DoG levels from
// consecutive Gaussian levels.
func (img *Image) Sub(other, dst *Image) error {
	if img.Width != other.Width || img.Height != other.Height || img.Channels != other.Channels {
		return errors.New("image: Sub operands have mismatched dimensions")
	}
	if dst.Width != img.Width || dst.Height != img.Height || dst.Channels != img.Channels {
		return errors.New("image: Sub destination has mismatched dimensions")
	}
	for y := 0; y < img.Height; y++ {
		a := img.RowFloat32(y)
		b := other.RowFloat32(y)
		d := dst.RowFloat32(y)
		for i := range a {
			d[i] = a[i] - b[i]
		}
	}
	return nil
}
