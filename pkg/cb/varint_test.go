package cb

import (
	"bytes"
	"math"
	"testing"
)

func TestVarUIntEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x80}},
		{0x3fff, []byte{0xbf, 0xff}},
		{0x4000, []byte{0xc0, 0x40, 0x00}},
		{0x1fffff, []byte{0xdf, 0xff, 0xff}},
		{0x200000, []byte{0xe0, 0x20, 0x00, 0x00}},
		{1<<56 - 1, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{1 << 56, []byte{0xff, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tc := range tests {
		got := AppendVarUInt(nil, tc.v)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("AppendVarUInt(%#x): got % x want % x", tc.v, got, tc.want)
		}
		if n := VarUIntSize(tc.v); n != len(tc.want) {
			t.Fatalf("VarUIntSize(%#x): got %d want %d", tc.v, n, len(tc.want))
		}
		if n := MeasureVarUInt(tc.want); n != len(tc.want) {
			t.Fatalf("MeasureVarUInt(% x): got %d want %d", tc.want, n, len(tc.want))
		}
		v, n, ok := ReadVarUInt(tc.want)
		if !ok || v != tc.v || n != len(tc.want) {
			t.Fatalf("ReadVarUInt(% x): got (%#x, %d, %v) want (%#x, %d, true)", tc.want, v, n, ok, tc.v, len(tc.want))
		}
	}
}

func TestReadVarUIntShort(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, {0x80}, {0xc0, 0}, {0xff, 0, 0, 0, 0, 0, 0, 0}} {
		if _, _, ok := ReadVarUInt(data); ok {
			t.Fatalf("ReadVarUInt(% x): expected failure", data)
		}
	}
}

func TestReadVarUIntNonCanonical(t *testing.T) {
	t.Parallel()

	// Wider encodings decode to the same value; validators flag them.
	v, n, ok := ReadVarUInt([]byte{0xc0, 0x00, 0x05})
	if !ok || v != 5 || n != 3 {
		t.Fatalf("got (%d, %d, %v) want (5, 3, true)", v, n, ok)
	}
	if VarUIntSize(v) >= n {
		t.Fatalf("expected a wider than minimal encoding")
	}
}
