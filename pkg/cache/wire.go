// Package cache implements a content-hash keyed result cache for the
// detector pipeline: a correctness-preserving shortcut only, never a
// source of truth.
package cache

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/itohio/nexusvision/pkg/vision/sift"
)

// keypointRecordSize is the wire size of one keypoint record: int32 x, y;
// float32 xs, ys; int32 octave; float32 scale, sigma, response,
// orientation; int64 id.
const keypointRecordSize = 4 + 4 + 4 + 4 + 4 + 4 + 4 + 4 + 4 + 8

// ErrTruncated is returned when a cached payload is shorter than its
// declared keypoint count implies.
var ErrTruncated = errors.New("cache: truncated payload")

// EncodeStore serializes a Store to the cache/debug wire format: a 4-byte
// keypoint count, then one keypointRecordSize record per keypoint, then one
// sift.DescriptorLength-byte descriptor per keypoint in the same order.
func EncodeStore(store *sift.Store) []byte {
	n := store.Len()
	buf := make([]byte, 4+n*keypointRecordSize+n*sift.DescriptorLength)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(n))
	recordsOff := 4
	descOff := 4 + n*keypointRecordSize

	for i, kp := range store.Keypoints() {
		rec := buf[recordsOff+i*keypointRecordSize : recordsOff+(i+1)*keypointRecordSize]
		putKeypointRecord(rec, kp)
		copy(buf[descOff+i*sift.DescriptorLength:descOff+(i+1)*sift.DescriptorLength], store.Descriptor(i))
	}

	return buf
}

// DecodeStore parses the wire format EncodeStore produces.
func DecodeStore(data []byte) (*sift.Store, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))

	recordsOff := 4
	descOff := 4 + n*keypointRecordSize
	if len(data) < descOff+n*sift.DescriptorLength {
		return nil, ErrTruncated
	}

	store := sift.NewStore(n)
	for i := 0; i < n; i++ {
		rec := data[recordsOff+i*keypointRecordSize : recordsOff+(i+1)*keypointRecordSize]
		kp := keypointFromRecord(rec)
		desc := data[descOff+i*sift.DescriptorLength : descOff+(i+1)*sift.DescriptorLength]
		store.Append(kp, desc)
	}

	return store, nil
}

func putKeypointRecord(rec []byte, kp sift.Keypoint) {
	binary.LittleEndian.PutUint32(rec[0:4], uint32(int32(kp.X)))
	binary.LittleEndian.PutUint32(rec[4:8], uint32(int32(kp.Y)))
	binary.LittleEndian.PutUint32(rec[8:12], math.Float32bits(kp.Xs))
	binary.LittleEndian.PutUint32(rec[12:16], math.Float32bits(kp.Ys))
	binary.LittleEndian.PutUint32(rec[16:20], uint32(int32(kp.Octave)))
	binary.LittleEndian.PutUint32(rec[20:24], math.Float32bits(kp.Scale))
	binary.LittleEndian.PutUint32(rec[24:28], math.Float32bits(kp.Sigma))
	binary.LittleEndian.PutUint32(rec[28:32], math.Float32bits(kp.Response))
	binary.LittleEndian.PutUint32(rec[32:36], math.Float32bits(kp.Orientation))
	binary.LittleEndian.PutUint64(rec[36:44], uint64(int64(kp.ID)))
}

func keypointFromRecord(rec []byte) sift.Keypoint {
	return sift.Keypoint{
		X:           int(int32(binary.LittleEndian.Uint32(rec[0:4]))),
		Y:           int(int32(binary.LittleEndian.Uint32(rec[4:8]))),
		Xs:          math.Float32frombits(binary.LittleEndian.Uint32(rec[8:12])),
		Ys:          math.Float32frombits(binary.LittleEndian.Uint32(rec[12:16])),
		Octave:      int(int32(binary.LittleEndian.Uint32(rec[16:20]))),
		Scale:       math.Float32frombits(binary.LittleEndian.Uint32(rec[20:24])),
		Sigma:       math.Float32frombits(binary.LittleEndian.Uint32(rec[24:28])),
		Response:    math.Float32frombits(binary.LittleEndian.Uint32(rec[28:32])),
		Orientation: math.Float32frombits(binary.LittleEndian.Uint32(rec[32:36])),
		ID:          int(int64(binary.LittleEndian.Uint64(rec[36:44]))),
	}
}
