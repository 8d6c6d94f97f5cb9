package cb

import "fmt"

// FieldType is the serialized type byte of a field.
// The low six bits select the kind, the two high bits are flags.
// Keep these stable forever; they are part of the wire format.
type FieldType uint8

const (
	TypeNone                    FieldType = 0x00
	TypeNull                    FieldType = 0x01
	TypeObject                  FieldType = 0x02
	TypeUniformObject           FieldType = 0x03
	TypeArray                   FieldType = 0x04
	TypeUniformArray            FieldType = 0x05
	TypeBinary                  FieldType = 0x06
	TypeString                  FieldType = 0x07
	TypeIntegerPositive         FieldType = 0x08
	TypeIntegerNegative         FieldType = 0x09
	TypeFloat32                 FieldType = 0x0a
	TypeFloat64                 FieldType = 0x0b
	TypeBoolFalse               FieldType = 0x0c
	TypeBoolTrue                FieldType = 0x0d
	TypeCompactBinaryAttachment FieldType = 0x0e
	TypeBinaryAttachment        FieldType = 0x0f
	TypeHash                    FieldType = 0x10
	TypeUuid                    FieldType = 0x11
	TypeDateTime                FieldType = 0x12
	TypeTimeSpan                FieldType = 0x13
)

const (
	// TypeMask selects the kind bits.
	TypeMask FieldType = 0x3f

	// HasFieldType means the type byte is stored at the start of the field data.
	// It never appears in serialized type bytes.
	HasFieldType FieldType = 0x40

	// HasFieldName means a length-prefixed name follows the type byte.
	HasFieldName FieldType = 0x80
)

var fieldTypeNames = [...]string{
	TypeNone:                    "None",
	TypeNull:                    "Null",
	TypeObject:                  "Object",
	TypeUniformObject:           "UniformObject",
	TypeArray:                   "Array",
	TypeUniformArray:            "UniformArray",
	TypeBinary:                  "Binary",
	TypeString:                  "String",
	TypeIntegerPositive:         "IntegerPositive",
	TypeIntegerNegative:         "IntegerNegative",
	TypeFloat32:                 "Float32",
	TypeFloat64:                 "Float64",
	TypeBoolFalse:               "BoolFalse",
	TypeBoolTrue:                "BoolTrue",
	TypeCompactBinaryAttachment: "CompactBinaryAttachment",
	TypeBinaryAttachment:        "BinaryAttachment",
	TypeHash:                    "Hash",
	TypeUuid:                    "Uuid",
	TypeDateTime:                "DateTime",
	TypeTimeSpan:                "TimeSpan",
}

// Kind strips the flag bits.
func (t FieldType) Kind() FieldType { return t & TypeMask }

// Serialized returns the byte as it appears in data: kind plus name flag.
func (t FieldType) Serialized() FieldType { return t &^ HasFieldType }

func (t FieldType) HasFieldType() bool { return t&HasFieldType != 0 }
func (t FieldType) HasFieldName() bool { return t&HasFieldName != 0 }

// Valid reports whether the kind is one of the enumerated kinds.
func (t FieldType) Valid() bool { return t.Kind() <= TypeTimeSpan }

func (t FieldType) IsObject() bool {
	k := t.Kind()
	return k == TypeObject || k == TypeUniformObject
}

func (t FieldType) IsArray() bool {
	k := t.Kind()
	return k == TypeArray || k == TypeUniformArray
}

func (t FieldType) IsInteger() bool {
	k := t.Kind()
	return k == TypeIntegerPositive || k == TypeIntegerNegative
}

func (t FieldType) IsFloat() bool {
	k := t.Kind()
	return k == TypeFloat32 || k == TypeFloat64 || t.IsInteger()
}

func (t FieldType) IsBool() bool {
	k := t.Kind()
	return k == TypeBoolFalse || k == TypeBoolTrue
}

func (t FieldType) IsAttachment() bool {
	k := t.Kind()
	return k == TypeCompactBinaryAttachment || k == TypeBinaryAttachment
}

// IsHash is true for every 20-byte hash kind, attachments included.
func (t FieldType) IsHash() bool {
	return t.Kind() == TypeHash || t.IsAttachment()
}

// fixedPayloadSize returns the payload width of fixed-size kinds.
func (t FieldType) fixedPayloadSize() (int, bool) {
	switch t.Kind() {
	case TypeNull, TypeBoolFalse, TypeBoolTrue:
		return 0, true
	case TypeFloat32:
		return 4, true
	case TypeFloat64, TypeDateTime, TypeTimeSpan:
		return 8, true
	case TypeCompactBinaryAttachment, TypeBinaryAttachment, TypeHash:
		return HashSize, true
	case TypeUuid:
		return 16, true
	}
	return 0, false
}

func (t FieldType) String() string {
	k := t.Kind()
	name := fmt.Sprintf("FieldType(0x%02x)", uint8(k))
	if int(k) < len(fieldTypeNames) {
		name = fieldTypeNames[k]
	}
	if t.HasFieldName() {
		name += "+Name"
	}
	if t.HasFieldType() {
		name += "+Type"
	}
	return name
}
