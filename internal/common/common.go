package common

import "encoding/binary"

// Widths of the little-endian fixed fields used by the legacy layouts.
const (
	Int16Size  = 2
	Int32Size  = 4
	Uint32Size = 4
)

// AppendInt32 appends v to dst as 4 little-endian bytes.
func AppendInt32(dst []byte, v int32) []byte {
	return AppendUint32(dst, uint32(v))
}

// AppendUint32 appends v to dst as 4 little-endian bytes using a small stack scratch.
func AppendUint32(dst []byte, v uint32) []byte {
	var scratch [Uint32Size]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	return append(dst, scratch[:]...)
}

// AppendInt16 appends v to dst as 2 little-endian bytes.
func AppendInt16(dst []byte, v int16) []byte {
	var scratch [Int16Size]byte
	binary.LittleEndian.PutUint16(scratch[:], uint16(v))
	return append(dst, scratch[:]...)
}

// Int32 reads a little-endian int32 at off. ok is false when b is too short.
func Int32(b []byte, off int) (v int32, ok bool) {
	if off < 0 || len(b)-off < Int32Size {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(b[off:])), true
}

// Uint32 reads a little-endian uint32 at off. ok is false when b is too short.
func Uint32(b []byte, off int) (v uint32, ok bool) {
	if off < 0 || len(b)-off < Uint32Size {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[off:]), true
}

// Int16 reads a little-endian int16 at off. ok is false when b is too short.
func Int16(b []byte, off int) (v int16, ok bool) {
	if off < 0 || len(b)-off < Int16Size {
		return 0, false
	}
	return int16(binary.LittleEndian.Uint16(b[off:])), true
}

// Grow makes sure dst has room for n more bytes without reallocating
// in the middle of a fixed-width write.
func Grow(dst []byte, n int) []byte {
	if cap(dst)-len(dst) >= n {
		return dst
	}
	out := make([]byte, len(dst), len(dst)+n)
	copy(out, dst)
	return out
}
