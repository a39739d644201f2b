package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	b58 "github.com/mr-tron/base58/base58"

	"github.com/itohio/nexusvision/pkg/vision/sift"
)

// Key identifies a cached result by content hash, base58-rendered so it is
// safe to use directly as a map key or a filesystem-visible file name.
type Key string

// KeyForDetection derives the cache key for a SIFT detection pass: the hash
// covers the raw image bytes plus every detector option that affects the
// result, so changing an option or the image invalidates the cache entry.
func KeyForDetection(imageBytes []byte, opts sift.Options) Key {
	h := sha256.New()
	h.Write([]byte("sift-detect-v1\x00"))
	h.Write(imageBytes)

	var f [8]byte
	writeFloat := func(v float32) {
		binary.LittleEndian.PutUint32(f[0:4], math.Float32bits(v))
		h.Write(f[0:4])
	}
	writeBool := func(v bool) {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(f[:], uint64(int64(v)))
		h.Write(f[:])
	}

	writeBool(opts.DoubleImage)
	writeInt(opts.NScalesPerOctave)
	writeFloat(opts.Sigma0)
	writeFloat(opts.KernelTruncationFactor)
	writeInt(opts.BorderDistance)
	writeFloat(opts.PeakThreshold)
	writeFloat(opts.EdgeThreshold)
	writeFloat(opts.MagnificationFactor)

	return Key(b58.Encode(h.Sum(nil)))
}

// KeyForMatch derives the cache key for a descriptor-matching pass, covering
// both stores' encoded contents plus the ratio threshold used.
func KeyForMatch(query, train *sift.Store, ratioThreshold float32) Key {
	h := sha256.New()
	h.Write([]byte("sift-match-v1\x00"))
	h.Write(EncodeStore(query))
	h.Write(EncodeStore(train))

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(ratioThreshold))
	h.Write(buf[:])

	return Key(b58.Encode(h.Sum(nil)))
}
