package cb

import "testing"

func TestFieldTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  FieldType
		want string
	}{
		{TypeNull, "Null"},
		{TypeIntegerPositive | HasFieldName, "IntegerPositive+Name"},
		{TypeObject | HasFieldType, "Object+Type"},
		{TypeString | HasFieldName | HasFieldType, "String+Name+Type"},
		{FieldType(0x3e), "FieldType(0x3e)"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("FieldType(0x%02x).String(): got %q want %q", uint8(tc.typ), got, tc.want)
		}
	}
}
