package cb

// Helpers that assemble compact binary by hand for tests.

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// sizedBytes prefixes b with its length.
func sizedBytes(b []byte) []byte {
	return append(AppendVarUInt(nil, uint64(len(b))), b...)
}

// encodeField writes a field with its type byte. A non-empty name sets HasFieldName.
func encodeField(typ FieldType, name string, payload []byte) []byte {
	if name == "" {
		return cat([]byte{byte(typ)}, payload)
	}
	return cat([]byte{byte(typ | HasFieldName)}, sizedBytes([]byte(name)), payload)
}

func binaryField(name string, data []byte) []byte {
	return encodeField(TypeBinary, name, sizedBytes(data))
}

func hashField(typ FieldType, name string, h Hash) []byte {
	return encodeField(typ, name, h[:])
}

func intField(name string, v uint64) []byte {
	return encodeField(TypeIntegerPositive, name, AppendVarUInt(nil, v))
}

// objectField writes a non-uniform object of the given fields.
func objectField(name string, fields ...[]byte) []byte {
	return encodeField(TypeObject, name, sizedBytes(cat(fields...)))
}

// fieldObject is {"Field": 42} as a uniform object.
var fieldObject = []byte{byte(TypeUniformObject), 8, byte(TypeIntegerPositive | HasFieldName), 5, 'F', 'i', 'e', 'l', 'd', 42}

var binaryValue = []byte{0, 1, 2, 3}

var nullField = []byte{byte(TypeNull)}
