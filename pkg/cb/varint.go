package cb

import "math/bits"

// MaxVarUIntSize is the widest varint encoding: a marker byte plus 8 value bytes.
const MaxVarUIntSize = 9

// MeasureVarUInt returns the encoded width announced by the first byte of data.
// The number of leading one bits is the number of bytes following the first.
// It returns 0 for empty input.
func MeasureVarUInt(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	return bits.LeadingZeros8(^data[0]) + 1
}

// VarUIntSize returns the minimal encoded width of v.
func VarUIntSize(v uint64) int {
	if v == 0 {
		return 1
	}
	n := (bits.Len64(v)-1)/7 + 1
	if n > MaxVarUIntSize {
		n = MaxVarUIntSize
	}
	return n
}

// ReadVarUInt decodes the varint at the front of data and returns the value and
// the number of bytes consumed. ok is false when data is shorter than the width
// announced by its first byte.
func ReadVarUInt(data []byte) (v uint64, n int, ok bool) {
	n = MeasureVarUInt(data)
	if n == 0 || len(data) < n {
		return 0, 0, false
	}
	v = uint64(data[0] & (0xff >> n))
	for _, b := range data[1:n] {
		v = v<<8 | uint64(b)
	}
	return v, n, true
}

// AppendVarUInt appends the minimal encoding of v to dst.
func AppendVarUInt(dst []byte, v uint64) []byte {
	n := VarUIntSize(v)
	var buf [MaxVarUIntSize]byte
	for i := n - 1; i > 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	// The marker is n-1 leading ones; for n == 9 the first byte is all marker.
	marker := byte(0xff << (9 - n))
	buf[0] = marker | byte(v)
	return append(dst, buf[:n]...)
}
