package cb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMode   = errors.New("cb: unknown validation mode")
	ErrInvalidField  = errors.New("cb: invalid compact binary")
	ErrWrongType     = errors.New("cb: field has a different type")
	ErrFieldNotFound = errors.New("cb: field not found")
	ErrOutOfRange    = errors.New("cb: value out of range")
)

// ValidateError is the set of problems found by a validator.
// Several flags may be set at once; ValidateNone means the data is valid.
type ValidateError uint32

const (
	ValidateNone ValidateError = 0

	// OutOfBounds: a field, name or declared size extends past the available bytes.
	OutOfBounds ValidateError = 1 << 0
	// InvalidType: an unknown type, a serialized HasFieldType flag, or a
	// zero-size field that consumed no bytes.
	InvalidType ValidateError = 1 << 1
	// DuplicateName: two fields of one object share a name.
	DuplicateName ValidateError = 1 << 2
	// MissingName: an object field has no name.
	MissingName ValidateError = 1 << 3
	// ArrayName: an array field has a name.
	ArrayName ValidateError = 1 << 4
	// InvalidString is reserved. String content is not checked.
	InvalidString ValidateError = 1 << 5
	// InvalidInteger: a varint is longer than the minimal encoding of its value.
	InvalidInteger ValidateError = 1 << 6
	// InvalidFloat: a Float64 that converts to Float32 without loss.
	InvalidFloat ValidateError = 1 << 7
	// NonUniformObject: every field of an object has the same type, so it
	// should have been written as a uniform object.
	NonUniformObject ValidateError = 1 << 8
	// NonUniformArray: the array equivalent of NonUniformObject.
	NonUniformArray ValidateError = 1 << 9
	// Padding: bytes remain after the validated value.
	Padding ValidateError = 1 << 10
	// InvalidPackageFormat: the data does not have the package or attachment shape.
	InvalidPackageFormat ValidateError = 1 << 11
	// InvalidPackageHash: a hash does not match the value it follows.
	InvalidPackageHash ValidateError = 1 << 12
	// MultiplePackageObjects: more than one root object in a package.
	MultiplePackageObjects ValidateError = 1 << 13
	// DuplicateAttachments: two attachments in a package have the same hash.
	DuplicateAttachments ValidateError = 1 << 14
	// NullPackageObject: the package object has no fields.
	NullPackageObject ValidateError = 1 << 15
	// NullPackageAttachment: a package attachment has an empty payload.
	NullPackageAttachment ValidateError = 1 << 16
)

var validateErrorNames = []struct {
	flag ValidateError
	name string
}{
	{OutOfBounds, "OutOfBounds"},
	{InvalidType, "InvalidType"},
	{DuplicateName, "DuplicateName"},
	{MissingName, "MissingName"},
	{ArrayName, "ArrayName"},
	{InvalidString, "InvalidString"},
	{InvalidInteger, "InvalidInteger"},
	{InvalidFloat, "InvalidFloat"},
	{NonUniformObject, "NonUniformObject"},
	{NonUniformArray, "NonUniformArray"},
	{Padding, "Padding"},
	{InvalidPackageFormat, "InvalidPackageFormat"},
	{InvalidPackageHash, "InvalidPackageHash"},
	{MultiplePackageObjects, "MultiplePackageObjects"},
	{DuplicateAttachments, "DuplicateAttachments"},
	{NullPackageObject, "NullPackageObject"},
	{NullPackageAttachment, "NullPackageAttachment"},
}

// Has reports whether any flag of o is set in e.
func (e ValidateError) Has(o ValidateError) bool { return e&o != 0 }

// Flags returns the names of the set flags in a stable order.
func (e ValidateError) Flags() []string {
	if e == ValidateNone {
		return nil
	}
	var out []string
	for _, n := range validateErrorNames {
		if e.Has(n.flag) {
			out = append(out, n.name)
		}
	}
	if rest := e &^ allValidateErrors(); rest != 0 {
		out = append(out, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return out
}

func (e ValidateError) String() string {
	if e == ValidateNone {
		return "None"
	}
	return strings.Join(e.Flags(), "|")
}

func (e ValidateError) Error() string {
	return "cb: validation failed: " + e.String()
}

// Err returns e as an error, or nil when no flag is set.
func (e ValidateError) Err() error {
	if e == ValidateNone {
		return nil
	}
	return e
}

// Is lets errors.Is match a ValidateError against ErrInvalidField or
// against a single flag.
func (e ValidateError) Is(target error) bool {
	if target == ErrInvalidField {
		return e != ValidateNone
	}
	var flag ValidateError
	if errors.As(target, &flag) {
		return flag != ValidateNone && e&flag == flag
	}
	return false
}

func allValidateErrors() ValidateError {
	var all ValidateError
	for _, n := range validateErrorNames {
		all |= n.flag
	}
	return all
}
