package cb

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field is a read-only view of one validated field. It references the
// caller's buffer and must not outlive it.
type Field struct {
	typ     FieldType // kind and name flag, never HasFieldType
	name    []byte
	payload []byte
	body    []byte // everything after the type byte: name and payload
}

// ReadField validates the first field of data with ModeDefault and returns it
// with the bytes that follow it.
func ReadField(data []byte) (Field, []byte, error) {
	c := checker{mode: ModeDefault}
	s := view(data)
	f, ok := c.field(&s, HasFieldType)
	if c.err != ValidateNone || !ok {
		return Field{}, nil, fmt.Errorf("%w: %w", ErrInvalidField, c.err)
	}
	return f, s, nil
}

// ReadRange validates data as a range of fields with ModeDefault and returns them.
func ReadRange(data []byte) ([]Field, error) {
	if err := ValidateRange(data, ModeDefault); err != ValidateNone {
		return nil, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}
	var fields []Field
	c := checker{}
	s := view(data)
	for len(s) > 0 {
		f, ok := c.field(&s, HasFieldType)
		if !ok {
			break
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (f Field) Type() FieldType { return f.typ }
func (f Field) Kind() FieldType { return f.typ.Kind() }
func (f Field) HasName() bool   { return f.typ.HasFieldName() }
func (f Field) Name() string    { return string(f.name) }
func (f Field) IsNull() bool    { return f.Kind() == TypeNull }
func (f Field) IsObject() bool  { return f.typ.IsObject() }
func (f Field) IsArray() bool   { return f.typ.IsArray() }

// Payload returns the value bytes, including any size prefix.
func (f Field) Payload() []byte { return f.payload }

// Hash hashes the serialized field without its HasFieldType flag.
func (f Field) Hash() Hash {
	return hashParts([]byte{byte(f.typ)}, f.body)
}

func (f Field) wrongType(want string) error {
	return fmt.Errorf("%w: %s is not %s", ErrWrongType, f.Kind(), want)
}

// binary returns the bytes of a Binary or String payload.
func (f Field) binary() []byte {
	size, n, ok := ReadVarUInt(f.payload)
	if !ok || uint64(len(f.payload)-n) < size {
		return nil
	}
	return f.payload[n : n+int(size)]
}

// containerBody returns the payload of an object or array after its size.
func (f Field) containerBody() []byte {
	if !f.IsObject() && !f.IsArray() {
		return nil
	}
	return f.binary()
}

func (f Field) attachmentHash() (Hash, bool) {
	var h Hash
	if !f.typ.IsAttachment() || len(f.payload) != HashSize {
		return h, false
	}
	copy(h[:], f.payload)
	return h, true
}

func (f Field) magnitude() uint64 {
	v, _, _ := ReadVarUInt(f.payload)
	return v
}

func (f Field) AsUint64() (uint64, error) {
	switch f.Kind() {
	case TypeIntegerPositive:
		return f.magnitude(), nil
	case TypeIntegerNegative:
		return 0, fmt.Errorf("%w: negative integer", ErrOutOfRange)
	}
	return 0, f.wrongType("an integer")
}

// AsInt64 returns an integer value. Negative integers store the magnitude
// minus one, so -1 is stored as 0.
func (f Field) AsInt64() (int64, error) {
	switch f.Kind() {
	case TypeIntegerPositive:
		v := f.magnitude()
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
		}
		return int64(v), nil
	case TypeIntegerNegative:
		v := f.magnitude()
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: -%d-1", ErrOutOfRange, v)
		}
		return -int64(v) - 1, nil
	}
	return 0, f.wrongType("an integer")
}

// AsFloat64 accepts Float32, Float64 and integers that convert without loss.
func (f Field) AsFloat64() (float64, error) {
	const maxExact = 1 << 53
	switch f.Kind() {
	case TypeFloat32:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(f.payload))), nil
	case TypeFloat64:
		return math.Float64frombits(binary.BigEndian.Uint64(f.payload)), nil
	case TypeIntegerPositive:
		v := f.magnitude()
		if v > maxExact {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
		}
		return float64(v), nil
	case TypeIntegerNegative:
		v := f.magnitude()
		if v >= maxExact {
			return 0, fmt.Errorf("%w: -%d-1", ErrOutOfRange, v)
		}
		return -float64(v) - 1, nil
	}
	return 0, f.wrongType("a number")
}

func (f Field) AsBool() (bool, error) {
	switch f.Kind() {
	case TypeBoolTrue:
		return true, nil
	case TypeBoolFalse:
		return false, nil
	}
	return false, f.wrongType("a bool")
}

func (f Field) AsString() (string, error) {
	if f.Kind() != TypeString {
		return "", f.wrongType("a string")
	}
	return string(f.binary()), nil
}

// AsBinary returns the payload of a Binary field without copying.
func (f Field) AsBinary() ([]byte, error) {
	if f.Kind() != TypeBinary {
		return nil, f.wrongType("binary")
	}
	return f.binary(), nil
}

// AsHash accepts Hash and both attachment kinds.
func (f Field) AsHash() (Hash, error) {
	var h Hash
	if !f.typ.IsHash() || len(f.payload) != HashSize {
		return h, f.wrongType("a hash")
	}
	copy(h[:], f.payload)
	return h, nil
}

// AsAttachment accepts only CompactBinaryAttachment and BinaryAttachment.
func (f Field) AsAttachment() (Hash, error) {
	h, ok := f.attachmentHash()
	if !ok {
		return h, f.wrongType("an attachment")
	}
	return h, nil
}

func (f Field) AsUuid() (uuid.UUID, error) {
	if f.Kind() != TypeUuid {
		return uuid.Nil, f.wrongType("a uuid")
	}
	return uuid.FromBytes(f.payload)
}

// DateTime and TimeSpan count 100ns ticks. DateTime ticks start at 0001-01-01 UTC.
const (
	ticksPerSecond = 10_000_000
	unixEpochTicks = 621_355_968_000_000_000
)

func (f Field) ticks(kind FieldType, want string) (int64, error) {
	if f.Kind() != kind {
		return 0, f.wrongType(want)
	}
	return int64(binary.BigEndian.Uint64(f.payload)), nil
}

func (f Field) AsDateTime() (time.Time, error) {
	ticks, err := f.ticks(TypeDateTime, "a date time")
	if err != nil {
		return time.Time{}, err
	}
	if ticks < 0 {
		return time.Time{}, fmt.Errorf("%w: %d ticks", ErrOutOfRange, ticks)
	}
	rel := ticks - unixEpochTicks
	return time.Unix(rel/ticksPerSecond, (rel%ticksPerSecond)*100).UTC(), nil
}

func (f Field) AsTimeSpan() (time.Duration, error) {
	ticks, err := f.ticks(TypeTimeSpan, "a time span")
	if err != nil {
		return 0, err
	}
	if ticks > math.MaxInt64/100 || ticks < math.MinInt64/100 {
		return 0, fmt.Errorf("%w: %d ticks", ErrOutOfRange, ticks)
	}
	return time.Duration(ticks) * 100, nil
}

// Fields iterates the fields of an object or array. It yields nothing for
// other kinds.
func (f Field) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		if !f.IsObject() && !f.IsArray() {
			return
		}
		c := checker{}
		s := view(f.containerBody())
		count := uint64(math.MaxUint64)
		if f.IsArray() {
			count = c.uint(&s)
		}
		external := HasFieldType
		if k := f.Kind(); (k == TypeUniformObject || k == TypeUniformArray) && (len(s) > 0 || count > 0) {
			external = c.fieldType(&s, HasFieldType)
		}
		for i := uint64(0); i < count && len(s) > 0; i++ {
			child, ok := c.field(&s, external)
			if !ok || !yield(child) {
				return
			}
		}
	}
}

// Count returns the number of fields in an object or array.
func (f Field) Count() int {
	n := 0
	for range f.Fields() {
		n++
	}
	return n
}

// Find returns the object field with the given name. Names are compared exactly.
func (f Field) Find(name string) (Field, bool) {
	return f.find(func(n string) bool { return n == name })
}

// FindIgnoreCase is Find with a case-insensitive comparison.
func (f Field) FindIgnoreCase(name string) (Field, bool) {
	return f.find(func(n string) bool { return strings.EqualFold(n, name) })
}

func (f Field) find(match func(string) bool) (Field, bool) {
	if !f.IsObject() {
		return Field{}, false
	}
	for child := range f.Fields() {
		if match(string(child.name)) {
			return child, true
		}
	}
	return Field{}, false
}

// Get is Find returning ErrFieldNotFound for a missing name.
func (f Field) Get(name string) (Field, error) {
	child, ok := f.Find(name)
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return child, nil
}
