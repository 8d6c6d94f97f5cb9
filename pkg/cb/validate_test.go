package cb

import (
	"bytes"
	"testing"
)

const (
	nullNoName   = byte(TypeNull)
	nullWithName = byte(TypeNull | HasFieldName)
	intNoName    = byte(TypeIntegerPositive)
	intWithName  = byte(TypeIntegerPositive | HasFieldName)
	float32Named = byte(TypeFloat32 | HasFieldName)
)

func zeros(n int) []byte { return make([]byte, n) }

func withType(typ FieldType, payload ...byte) []byte {
	return append([]byte{byte(typ)}, payload...)
}

type fieldCase struct {
	name string
	data []byte
	typ  FieldType
	mode Mode
	want ValidateError
}

func runFieldCases(t *testing.T, cases []fieldCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			typ := tc.typ
			if typ == TypeNone {
				typ = HasFieldType
			}
			if got := ValidateField(tc.data, tc.mode, typ); got != tc.want {
				t.Fatalf("ValidateField(% x, %s, %s): got %s want %s", tc.data, tc.mode, typ, got, tc.want)
			}
		})
	}
}

func TestValidateFieldOutOfBounds(t *testing.T) {
	t.Parallel()

	runFieldCases(t, []fieldCase{
		{name: "empty", data: nil, mode: ModeAll, want: OutOfBounds},
		{name: "empty mode none", data: nil, mode: ModeNone, want: ValidateNone},

		{name: "null", data: []byte{nullNoName}, mode: ModeAll},
		{name: "null name", data: []byte{nullWithName, 1, 'N'}, mode: ModeAll},
		{name: "null name missing", data: []byte{nullWithName}, mode: ModeAll, want: OutOfBounds},
		{name: "null name short", data: []byte{nullWithName, 1}, mode: ModeAll, want: OutOfBounds},
		{name: "null name size short", data: []byte{nullWithName, 0x80}, mode: ModeAll, want: OutOfBounds},
		{name: "null name long", data: []byte{nullWithName, 0x80, 128}, mode: ModeAll, want: OutOfBounds},

		{name: "object empty", data: withType(TypeObject, 0), mode: ModeAll},
		{name: "object empty external", data: []byte{0}, typ: TypeObject, mode: ModeAll},
		{name: "object", data: withType(TypeObject, 7, nullWithName, 1, 'N', intWithName, 1, 'I', 0), mode: ModeAll},
		{name: "object external", data: []byte{7, nullWithName, 1, 'N', intWithName, 1, 'I', 0}, typ: TypeObject, mode: ModeAll},
		{name: "object no size", data: withType(TypeObject), mode: ModeAll, want: OutOfBounds},
		{name: "object no size external", data: nil, typ: TypeObject, mode: ModeAll, want: OutOfBounds},
		{name: "object short", data: withType(TypeObject, 1), mode: ModeAll, want: OutOfBounds},
		{name: "object short external", data: []byte{1}, typ: TypeObject, mode: ModeAll, want: OutOfBounds},
		{name: "object field short", data: withType(TypeObject, 3, float32Named, 1, 'N'), mode: ModeAll, want: OutOfBounds},
		{name: "object field short external", data: []byte{3, float32Named, 1, 'N'}, typ: TypeObject, mode: ModeAll, want: OutOfBounds},

		{name: "uniform object", data: withType(TypeUniformObject, 3, nullWithName, 1, 'N'), mode: ModeAll},
		{name: "uniform object external", data: []byte{3, nullWithName, 1, 'N'}, typ: TypeUniformObject, mode: ModeAll},
		{name: "uniform object no size", data: withType(TypeUniformObject), mode: ModeAll, want: OutOfBounds},
		{name: "uniform object short", data: withType(TypeUniformObject, 1), mode: ModeAll, want: OutOfBounds},
		{name: "uniform object field short", data: withType(TypeUniformObject, 3, float32Named, 1, 'N'), mode: ModeAll, want: OutOfBounds},
		{name: "uniform object field short external", data: []byte{3, float32Named, 1, 'N'}, typ: TypeUniformObject, mode: ModeAll, want: OutOfBounds},

		{name: "array empty", data: withType(TypeArray, 1, 0), mode: ModeAll},
		{name: "array empty external", data: []byte{1, 0}, typ: TypeArray, mode: ModeAll},
		{name: "array", data: withType(TypeArray, 4, 2, nullNoName, intNoName, 0), mode: ModeAll},
		{name: "array external", data: []byte{4, 2, nullNoName, intNoName, 0}, typ: TypeArray, mode: ModeAll},
		{name: "array no size", data: withType(TypeArray), mode: ModeAll, want: OutOfBounds},
		{name: "array short", data: withType(TypeArray, 1), mode: ModeAll, want: OutOfBounds},
		{name: "array short external", data: []byte{1}, typ: TypeArray, mode: ModeAll, want: OutOfBounds},
		{name: "array field short", data: withType(TypeArray, 2, 1, byte(TypeFloat32)), mode: ModeAll, want: OutOfBounds},
		{name: "array field short external", data: []byte{2, 1, byte(TypeFloat32)}, typ: TypeArray, mode: ModeAll, want: OutOfBounds},

		{name: "uniform array", data: withType(TypeUniformArray, 3, 1, intNoName, 0), mode: ModeAll},
		{name: "uniform array external", data: []byte{3, 1, intNoName, 0}, typ: TypeUniformArray, mode: ModeAll},
		{name: "uniform array no size", data: withType(TypeUniformArray), mode: ModeAll, want: OutOfBounds},
		{name: "uniform array short", data: withType(TypeUniformArray, 1), mode: ModeAll, want: OutOfBounds},
		{name: "uniform array field short", data: withType(TypeUniformArray, 2, 1, byte(TypeFloat32)), mode: ModeAll, want: OutOfBounds},

		{name: "binary empty", data: withType(TypeBinary, 0), mode: ModeAll},
		{name: "binary", data: withType(TypeBinary, 1, 0), mode: ModeAll},
		{name: "binary external", data: []byte{1, 0}, typ: TypeBinary, mode: ModeAll},
		{name: "binary no size", data: withType(TypeBinary), mode: ModeAll, want: OutOfBounds},
		{name: "binary short", data: withType(TypeBinary, 1), mode: ModeAll, want: OutOfBounds},

		{name: "string empty", data: withType(TypeString, 0), mode: ModeAll},
		{name: "string", data: withType(TypeString, 1, 'S'), mode: ModeAll},
		{name: "string external", data: []byte{1, 'S'}, typ: TypeString, mode: ModeAll},
		{name: "string short", data: withType(TypeString, 1), mode: ModeAll, want: OutOfBounds},

		{name: "positive 1 byte", data: withType(TypeIntegerPositive, 0), mode: ModeAll},
		{name: "positive 2 byte", data: withType(TypeIntegerPositive, 0x80, 0x80), mode: ModeAll},
		{name: "positive 2 byte external", data: []byte{0x80, 0x80}, typ: TypeIntegerPositive, mode: ModeAll},
		{name: "positive missing", data: withType(TypeIntegerPositive), mode: ModeAll, want: OutOfBounds},
		{name: "positive 2 byte short", data: withType(TypeIntegerPositive, 0x80), mode: ModeAll, want: OutOfBounds},
		{name: "positive 9 byte short", data: withType(TypeIntegerPositive, 0xff, 0, 0, 0, 0, 0, 0, 0), mode: ModeAll, want: OutOfBounds},
		{name: "negative 2 byte", data: withType(TypeIntegerNegative, 0x80, 0x80), mode: ModeAll},
		{name: "negative 9 byte short external", data: []byte{0xff, 0, 0, 0, 0, 0, 0, 0}, typ: TypeIntegerNegative, mode: ModeAll, want: OutOfBounds},

		{name: "float32", data: withType(TypeFloat32, 0, 0, 0, 0), mode: ModeAll},
		{name: "float32 short", data: withType(TypeFloat32, 0, 0, 0), mode: ModeAll, want: OutOfBounds},
		{name: "float64", data: withType(TypeFloat64, 0x3f, 0xff, 0xff, 0xff, 0xf0, 0, 0, 0), mode: ModeAll},
		{name: "float64 short", data: withType(TypeFloat64, zeros(7)...), mode: ModeAll, want: OutOfBounds},
		{name: "bool false", data: withType(TypeBoolFalse), mode: ModeAll},
		{name: "bool true", data: withType(TypeBoolTrue), mode: ModeAll},

		{name: "compact binary attachment", data: withType(TypeCompactBinaryAttachment, zeros(20)...), mode: ModeAll},
		{name: "compact binary attachment short", data: withType(TypeCompactBinaryAttachment, zeros(19)...), mode: ModeAll, want: OutOfBounds},
		{name: "binary attachment external", data: zeros(20), typ: TypeBinaryAttachment, mode: ModeAll},
		{name: "binary attachment short external", data: zeros(19), typ: TypeBinaryAttachment, mode: ModeAll, want: OutOfBounds},
		{name: "hash", data: withType(TypeHash, zeros(20)...), mode: ModeAll},
		{name: "hash short", data: withType(TypeHash, zeros(19)...), mode: ModeAll, want: OutOfBounds},
		{name: "uuid", data: withType(TypeUuid, zeros(16)...), mode: ModeAll},
		{name: "uuid short external", data: zeros(15), typ: TypeUuid, mode: ModeAll, want: OutOfBounds},
		{name: "date time", data: withType(TypeDateTime, zeros(8)...), mode: ModeAll},
		{name: "date time short", data: withType(TypeDateTime, zeros(7)...), mode: ModeAll, want: OutOfBounds},
		{name: "time span external", data: zeros(8), typ: TypeTimeSpan, mode: ModeAll},
		{name: "time span short", data: withType(TypeTimeSpan, zeros(7)...), mode: ModeAll, want: OutOfBounds},
	})
}

func TestValidateFieldInvalidType(t *testing.T) {
	t.Parallel()

	runFieldCases(t, []fieldCase{
		{name: "unknown", data: []byte{byte(TypeTimeSpan) + 1}, mode: ModeAll, want: InvalidType},
		{name: "unknown external", data: nil, typ: TypeTimeSpan + 1, mode: ModeAll, want: InvalidType},
		{name: "serialized external flag", data: []byte{byte(TypeNull | HasFieldType)}, mode: ModeAll, want: InvalidType},
		{name: "zero size null", data: nil, typ: TypeNull, mode: ModeAll, want: InvalidType},
		{name: "zero size false", data: nil, typ: TypeBoolFalse, mode: ModeAll, want: InvalidType},
		{name: "zero size true", data: nil, typ: TypeBoolTrue, mode: ModeAll, want: InvalidType},
		{name: "zero size in uniform array", data: withType(TypeUniformArray, 2, 2, nullNoName), mode: ModeAll, want: InvalidType},
		{name: "zero size in uniform object", data: withType(TypeUniformObject, 2, nullNoName, 0), mode: ModeAll, want: InvalidType},
	})
}

func TestValidateFieldNames(t *testing.T) {
	t.Parallel()

	noNames := ModeAll &^ ModeNames
	runFieldCases(t, []fieldCase{
		{name: "duplicate", data: withType(TypeUniformObject, 7, nullWithName, 1, 'A', 1, 'B', 1, 'A'), mode: ModeAll, want: DuplicateName},
		{name: "duplicate case sensitive", data: withType(TypeUniformObject, 7, nullWithName, 1, 'A', 1, 'B', 1, 'a'), mode: ModeAll},
		{name: "duplicate mode", data: withType(TypeUniformObject, 7, nullWithName, 1, 'A', 1, 'B', 1, 'A'), mode: noNames},

		{name: "missing", data: withType(TypeObject, 3, nullNoName, intNoName, 0), mode: ModeAll, want: MissingName},
		{name: "missing uniform", data: withType(TypeUniformObject, 3, intNoName, 0, 0), mode: ModeAll, want: MissingName},
		{name: "missing mode", data: withType(TypeObject, 3, nullNoName, intNoName, 0), mode: noNames},
		{name: "missing uniform mode", data: withType(TypeUniformObject, 3, intNoName, 0, 0), mode: noNames},
		{name: "empty name", data: withType(TypeObject, 2, nullWithName, 0), mode: ModeAll, want: MissingName | NonUniformObject},
		{name: "empty name uniform", data: withType(TypeUniformObject, 3, intWithName, 0, 0), mode: ModeAll, want: MissingName},
		{name: "empty name mode", data: withType(TypeObject, 2, nullWithName, 0), mode: noNames, want: NonUniformObject},
		{name: "empty name uniform mode", data: withType(TypeUniformObject, 3, intWithName, 0, 0), mode: noNames},
		{name: "empty name and named", data: withType(TypeUniformObject, 4, nullWithName, 0, 1, 'A'), mode: ModeAll, want: MissingName},

		{name: "array", data: withType(TypeArray, 5, 2, nullNoName, nullWithName, 1, 'F'), mode: ModeAll, want: ArrayName},
		{name: "array uniform", data: withType(TypeUniformArray, 4, 1, nullWithName, 1, 'F'), mode: ModeAll, want: ArrayName},
		{name: "array mode", data: withType(TypeArray, 5, 2, nullNoName, nullWithName, 1, 'F'), mode: noNames},
		{name: "array uniform mode", data: withType(TypeUniformArray, 4, 1, nullWithName, 1, 'F'), mode: noNames},
	})
}

func TestValidateFieldFormat(t *testing.T) {
	t.Parallel()

	noFormat := ModeAll &^ ModeFormat
	runFieldCases(t, []fieldCase{
		{name: "name size", data: []byte{nullWithName, 0x80, 1, 'N'}, mode: ModeAll, want: InvalidInteger},
		{name: "object size", data: withType(TypeObject, 0xc0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "array size", data: withType(TypeArray, 0xe0, 0, 0, 1, 0), mode: ModeAll, want: InvalidInteger},
		{name: "array count", data: withType(TypeArray, 5, 0xf0, 0, 0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "binary size", data: withType(TypeBinary, 0xf8, 0, 0, 0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "string size", data: withType(TypeString, 0xfc, 0, 0, 0, 0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "positive", data: withType(TypeIntegerPositive, 0xfe, 0, 0, 0, 0, 0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "negative", data: withType(TypeIntegerNegative, 0xff, 0, 0, 0, 0, 0, 0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "array size 2 byte", data: withType(TypeArray, 0x80, 1, 0), mode: ModeAll, want: InvalidInteger},
		{name: "array count 3 byte", data: withType(TypeArray, 3, 0xc0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "object size 4 byte", data: withType(TypeObject, 0xe0, 0, 0, 0), mode: ModeAll, want: InvalidInteger},
		{name: "name size mode", data: []byte{nullWithName, 0x80, 1, 'N'}, mode: noFormat},
		{name: "array size mode", data: withType(TypeArray, 0xc0, 0, 1, 0), mode: noFormat},
		{name: "object size mode", data: withType(TypeObject, 0xe0, 0, 0, 0), mode: noFormat},

		// 1.9999999403953552 and 6.8056469327705771e38 need 64 bits.
		{name: "float past significand", data: withType(TypeFloat64, 0x3f, 0xff, 0xff, 0xff, 0xf0, 0, 0, 0), mode: ModeAll},
		{name: "float past exponent", data: withType(TypeFloat64, 0x47, 0xff, 0xff, 0xff, 0xe0, 0, 0, 0), mode: ModeAll},
		// 1.9999998807907104 and 3.4028234663852886e38 fit in 32 bits.
		{name: "float max significand", data: withType(TypeFloat64, 0x3f, 0xff, 0xff, 0xff, 0xe0, 0, 0, 0), mode: ModeAll, want: InvalidFloat},
		{name: "float max exponent", data: withType(TypeFloat64, 0x47, 0xef, 0xff, 0xff, 0xe0, 0, 0, 0), mode: ModeAll, want: InvalidFloat},
		{name: "float max significand mode", data: withType(TypeFloat64, 0x3f, 0xff, 0xff, 0xff, 0xe0, 0, 0, 0), mode: noFormat},
		{name: "float max exponent mode", data: withType(TypeFloat64, 0x47, 0xef, 0xff, 0xff, 0xe0, 0, 0, 0), mode: noFormat},

		{name: "object one field", data: withType(TypeObject, 3, nullWithName, 1, 'A'), mode: ModeAll, want: NonUniformObject},
		{name: "object same fields", data: withType(TypeObject, 6, nullWithName, 1, 'A', nullWithName, 1, 'B'), mode: ModeAll, want: NonUniformObject},
		{name: "object one field mode", data: withType(TypeObject, 3, nullWithName, 1, 'A'), mode: noFormat},
		{name: "object same fields mode", data: withType(TypeObject, 6, nullWithName, 1, 'A', nullWithName, 1, 'B'), mode: noFormat},

		{name: "array one field", data: withType(TypeArray, 3, 1, intNoName, 0), mode: ModeAll, want: NonUniformArray},
		{name: "array same fields", data: withType(TypeArray, 5, 2, intNoName, 1, intNoName, 2), mode: ModeAll, want: NonUniformArray},
		{name: "array nulls", data: withType(TypeArray, 3, 2, nullNoName, nullNoName), mode: ModeAll},
		{name: "array false", data: withType(TypeArray, 3, 2, byte(TypeBoolFalse), byte(TypeBoolFalse)), mode: ModeAll},
		{name: "array true", data: withType(TypeArray, 3, 2, byte(TypeBoolTrue), byte(TypeBoolTrue)), mode: ModeAll},
		{name: "array mixed bools", data: withType(TypeArray, 3, 2, byte(TypeBoolTrue), byte(TypeBoolFalse)), mode: ModeAll},
		{name: "array one field mode", data: withType(TypeArray, 3, 1, intNoName, 0), mode: noFormat},
		{name: "array same fields mode", data: withType(TypeArray, 5, 2, intNoName, 1, intNoName, 2), mode: noFormat},
	})
}

func TestValidateFieldPadding(t *testing.T) {
	t.Parallel()

	noPadding := ModeAll &^ ModePadding
	runFieldCases(t, []fieldCase{
		{name: "null", data: []byte{nullNoName, 0}, mode: ModeAll, want: Padding},
		{name: "array", data: withType(TypeArray, 1, 0, 0), mode: ModeAll, want: Padding},
		{name: "object", data: withType(TypeObject, 0, 0), mode: ModeAll, want: Padding},
		{name: "inside array", data: withType(TypeArray, 2, 0, 0), mode: ModeAll, want: Padding},
		{name: "null mode", data: []byte{nullNoName, 0}, mode: noPadding},
		{name: "array mode", data: withType(TypeArray, 1, 0, 0), mode: noPadding},
		{name: "object mode", data: withType(TypeObject, 0, 0), mode: noPadding},
	})
}

func TestValidateFieldDepth(t *testing.T) {
	t.Parallel()

	nest := func(depth int) []byte {
		data := withType(TypeArray, 1, 0)
		for range depth - 1 {
			data = withType(TypeArray, sizedBytes(append([]byte{1}, data...))...)
		}
		return data
	}

	if got := ValidateField(nest(MaxDepth), ModeAll&^ModeFormat, HasFieldType); got != ValidateNone {
		t.Fatalf("depth %d: got %s want None", MaxDepth, got)
	}
	if got := ValidateField(nest(MaxDepth+1), ModeAll&^ModeFormat, HasFieldType); got != OutOfBounds {
		t.Fatalf("depth %d: got %s want OutOfBounds", MaxDepth+1, got)
	}
}

func TestValidateFieldDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	data := withType(TypeObject, 7, nullWithName, 1, 'N', intWithName, 1, 'I', 0)
	orig := bytes.Clone(data)
	first := ValidateField(data, ModeAll, HasFieldType)
	if !bytes.Equal(data, orig) {
		t.Fatalf("input modified: got % x want % x", data, orig)
	}
	if second := ValidateField(data, ModeAll, HasFieldType); second != first {
		t.Fatalf("second validation differs: got %s want %s", second, first)
	}

	broken := withType(TypeArray, 4, 2, nullWithName, 1)
	first = ValidateField(broken, ModeAll, HasFieldType)
	if second := ValidateField(broken, ModeAll, HasFieldType); second != first || first == ValidateNone {
		t.Fatalf("invalid input: got %s then %s", first, second)
	}
}

func TestValidateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		mode Mode
		want ValidateError
	}{
		{name: "empty", data: nil, mode: ModeAll},
		{name: "two nulls", data: []byte{nullNoName, nullNoName}, mode: ModeAll},
		{name: "zero byte", data: []byte{nullNoName, 0}, mode: ModeAll, want: InvalidType},
		{name: "truncated binary", data: []byte{nullNoName, byte(TypeBinary)}, mode: ModeAll, want: OutOfBounds},
		{name: "truncated binary mode none", data: []byte{nullNoName, byte(TypeBinary)}, mode: ModeNone},
		{name: "accumulates", data: cat(withType(TypeIntegerPositive, 0x80, 1), []byte{byte(TypeTimeSpan) + 1}), mode: ModeAll, want: InvalidInteger | InvalidType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidateRange(tc.data, tc.mode); got != tc.want {
				t.Fatalf("ValidateRange(% x): got %s want %s", tc.data, got, tc.want)
			}
		})
	}
}
