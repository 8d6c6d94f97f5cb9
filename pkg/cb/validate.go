package cb

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
)

// MaxDepth bounds container nesting. Deeper data is reported as OutOfBounds.
const MaxDepth = 256

// ValidateField validates one field at the front of data.
//
// typ is the externally known type of the field. Pass HasFieldType to read the
// type from the first byte of data. Bytes after the field are Padding.
func ValidateField(data []byte, mode Mode, typ FieldType) ValidateError {
	if !mode.Has(ModeAll) {
		return ValidateNone
	}
	c := checker{mode: mode}
	s := view(data)
	c.field(&s, typ)
	if len(s) > 0 && mode.Has(ModePadding) {
		c.add(Padding)
	}
	return c.err
}

// ValidateRange validates back-to-back fields that each start with a type byte.
// An empty range is valid.
func ValidateRange(data []byte, mode Mode) ValidateError {
	if !mode.Has(ModeAll) {
		return ValidateNone
	}
	c := checker{mode: mode}
	s := view(data)
	for len(s) > 0 {
		c.field(&s, HasFieldType)
	}
	return c.err
}

// view is the unread remainder of a buffer.
type view []byte

func (s *view) advance(n int) { *s = (*s)[n:] }

// reset drops the remainder so no further fields are read from it.
func (s *view) reset() { *s = (*s)[len(*s):] }

// checker accumulates errors for one validation call.
type checker struct {
	mode  Mode
	err   ValidateError
	depth int
}

func (c *checker) add(e ValidateError) { c.err |= e }

// broken reports errors after which field boundaries can no longer be trusted.
func (c *checker) broken() bool { return c.err.Has(OutOfBounds | InvalidType) }

func (c *checker) fieldType(s *view, typ FieldType) FieldType {
	if typ.HasFieldType() {
		if len(*s) == 0 {
			c.add(OutOfBounds)
			return TypeNone
		}
		typ = FieldType((*s)[0])
		s.advance(1)
		if typ.HasFieldType() {
			c.add(InvalidType)
		}
	}
	if !typ.Valid() {
		c.add(InvalidType)
		s.reset()
	}
	return typ
}

func (c *checker) uint(s *view) uint64 {
	v, n, ok := ReadVarUInt(*s)
	if !ok {
		c.add(OutOfBounds)
		s.reset()
		return 0
	}
	if c.mode.Has(ModeFormat) && n > VarUIntSize(v) {
		c.add(InvalidInteger)
	}
	s.advance(n)
	return v
}

// sized reads a varint length followed by that many bytes.
func (c *checker) sized(s *view) []byte {
	size := c.uint(s)
	if uint64(len(*s)) < size {
		c.add(OutOfBounds)
		s.reset()
		return nil
	}
	b := (*s)[:size]
	s.advance(int(size))
	return b
}

func (c *checker) fixed(s *view, size int) {
	if len(*s) < size {
		c.add(OutOfBounds)
		s.reset()
		return
	}
	s.advance(size)
}

func (c *checker) float64(s *view) {
	if len(*s) < 8 {
		c.add(OutOfBounds)
		s.reset()
		return
	}
	if c.mode.Has(ModeFormat) && fitsFloat32(math.Float64frombits(binary.BigEndian.Uint64(*s))) {
		c.add(InvalidFloat)
	}
	s.advance(8)
}

// fitsFloat32 reports whether v survives a round trip through float32.
func fitsFloat32(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
		return false
	}
	return float64(float32(v)) == v
}

// field validates one field and returns a view of it. ok is false when the
// field could not be delimited.
func (c *checker) field(s *view, external FieldType) (f Field, ok bool) {
	start := *s
	typ := c.fieldType(s, external)
	var name []byte
	if typ.HasFieldName() {
		name = c.sized(s)
	}
	if c.broken() {
		s.reset()
		return Field{}, false
	}
	afterName := *s

	switch typ.Kind() {
	case TypeNull, TypeBoolFalse, TypeBoolTrue:
		// A zero-size field that consumed nothing would make container
		// iteration loop forever.
		if len(*s) == len(start) {
			c.add(InvalidType)
			s.reset()
		}
	case TypeObject, TypeUniformObject:
		c.object(s, typ.Kind())
	case TypeArray, TypeUniformArray:
		c.array(s, typ.Kind())
	case TypeBinary, TypeString:
		c.sized(s)
	case TypeIntegerPositive, TypeIntegerNegative:
		c.uint(s)
	case TypeFloat64:
		c.float64(s)
	case TypeNone:
		c.add(InvalidType)
		s.reset()
	default:
		size, _ := typ.fixedPayloadSize()
		c.fixed(s, size)
	}
	if c.broken() {
		s.reset()
		return Field{}, false
	}

	end := len(start) - len(*s)
	bodyStart := 0
	if external.HasFieldType() {
		bodyStart = 1
	}
	return Field{
		typ:     typ.Serialized(),
		name:    name,
		payload: afterName[:len(afterName)-len(*s)],
		body:    start[bodyStart:end],
	}, true
}

// uniformTracker records whether every field of a container carried the same
// type byte. It only tracks containers whose fields store their own type.
type uniformTracker struct {
	external FieldType
	count    int
	first    FieldType
	mixed    bool
}

func (u *uniformTracker) field(c *checker, s *view) (Field, bool) {
	data := *s
	f, ok := c.field(s, u.external)
	if !ok {
		u.mixed = true
		return f, false
	}
	u.count++
	if u.external.HasFieldType() {
		t := FieldType(data[0])
		if u.count == 1 {
			u.first = t
		} else if t != u.first {
			u.mixed = true
		}
	}
	return f, true
}

func (u *uniformTracker) uniform() bool { return u.count > 0 && !u.mixed }

// enter tracks container depth. The returned func must be called on exit.
func (c *checker) enter() (func(), bool) {
	c.depth++
	leave := func() { c.depth-- }
	if c.depth > MaxDepth {
		c.add(OutOfBounds)
		return leave, false
	}
	return leave, true
}

// container splits a size-prefixed container payload off s.
func (c *checker) container(s *view) (view, bool) {
	size := c.uint(s)
	if c.broken() {
		return nil, false
	}
	if size > uint64(len(*s)) {
		c.add(OutOfBounds)
		s.reset()
		return nil, false
	}
	body := (*s)[:size]
	s.advance(int(size))
	return body, true
}

func (c *checker) object(s *view, kind FieldType) {
	body, ok := c.container(s)
	if !ok || len(body) == 0 {
		return
	}
	leave, ok := c.enter()
	defer leave()
	if !ok {
		return
	}

	uniform := kind == TypeUniformObject
	external := HasFieldType
	if uniform {
		external = c.fieldType(&body, HasFieldType)
	}

	tracker := uniformTracker{external: external}
	var names [][]byte
	for {
		f, ok := tracker.field(c, &body)
		if ok && c.mode.Has(ModeNames) {
			if f.HasName() && len(f.name) > 0 {
				names = append(names, f.name)
			} else {
				c.add(MissingName)
			}
		}
		if len(body) == 0 {
			break
		}
	}

	if c.mode.Has(ModeNames) && len(names) > 1 {
		slices.SortFunc(names, bytes.Compare)
		for i := 1; i < len(names); i++ {
			if bytes.Equal(names[i-1], names[i]) {
				c.add(DuplicateName)
				break
			}
		}
	}

	if !uniform && c.mode.Has(ModeFormat) && tracker.uniform() {
		c.add(NonUniformObject)
	}
}

func (c *checker) array(s *view, kind FieldType) {
	body, ok := c.container(s)
	if !ok {
		return
	}
	leave, ok := c.enter()
	defer leave()
	if !ok {
		return
	}

	count := c.uint(&body)
	fieldsSize := uint64(len(body))
	uniform := kind == TypeUniformArray
	external := HasFieldType
	if uniform {
		external = c.fieldType(&body, HasFieldType)
	}

	tracker := uniformTracker{external: external}
	for i := uint64(0); i < count; i++ {
		f, ok := tracker.field(c, &body)
		if !ok {
			// Every following field would fail the same way.
			break
		}
		if f.HasName() && c.mode.Has(ModeNames) {
			c.add(ArrayName)
		}
	}

	// Arrays of zero-size fields are exempt: they cannot be written smaller.
	if !uniform && c.mode.Has(ModeFormat) && tracker.uniform() && fieldsSize > count {
		c.add(NonUniformArray)
	}
	if len(body) > 0 && !c.broken() && c.mode.Has(ModePadding) {
		c.add(Padding)
	}
}
