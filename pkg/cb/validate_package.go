package cb

import "slices"

// ValidateAttachment validates a single attachment: an unnamed Binary value
// followed by an unnamed attachment hash of its payload. An empty Binary is a
// null attachment and has no hash.
func ValidateAttachment(data []byte, mode Mode) ValidateError {
	if !mode.Has(ModeAll) {
		return ValidateNone
	}
	c := checker{mode: mode}
	s := view(data)
	if value, ok := c.packageField(&s); ok {
		c.attachment(value, &s)
	}
	if len(s) > 0 && mode.Has(ModePadding) {
		c.add(Padding)
	}
	return c.err
}

// ValidatePackage validates a package: any number of (Binary, hash) attachments
// and at most one (Object, hash) pair, terminated by a Null field.
func ValidatePackage(data []byte, mode Mode) ValidateError {
	if !mode.Has(ModeAll) {
		return ValidateNone
	}
	c := checker{mode: mode}
	s := view(data)
	var attachments []Hash
	objects := 0

loop:
	for {
		value, ok := c.packageField(&s)
		if !ok {
			break
		}
		switch {
		case value.Kind() == TypeBinary:
			h := c.attachment(value, &s)
			if mode.Has(ModePackage) {
				attachments = append(attachments, h)
				if len(value.binary()) == 0 {
					c.add(NullPackageAttachment)
				}
			}
		case value.IsObject():
			c.packageObject(value, &s)
			objects++
			if objects > 1 && mode.Has(ModePackage) {
				c.add(MultiplePackageObjects)
			}
		case value.Kind() == TypeNull:
			break loop
		default:
			if mode.Has(ModePackage) {
				c.add(InvalidPackageFormat)
			}
		}
		if c.err.Has(OutOfBounds) {
			break
		}
	}

	if len(s) > 0 && mode.Has(ModePadding) {
		c.add(Padding)
	}

	if len(attachments) > 1 && mode.Has(ModePackage) {
		slices.SortFunc(attachments, Hash.Compare)
		for i := 1; i < len(attachments); i++ {
			if attachments[i-1] == attachments[i] {
				c.add(DuplicateAttachments)
				break
			}
		}
	}
	return c.err
}

// packageField reads one top-level field of a package. Running out of data is
// a format error because a package always ends with a Null field.
func (c *checker) packageField(s *view) (Field, bool) {
	if len(*s) == 0 {
		if c.mode.Has(ModePackage) {
			c.add(InvalidPackageFormat)
		}
		return Field{}, false
	}
	f, ok := c.field(s, HasFieldType)
	if !ok {
		return Field{}, false
	}
	if f.HasName() && c.mode.Has(ModePackage) {
		c.add(InvalidPackageFormat)
	}
	return f, true
}

// attachment checks the hash that follows a non-empty Binary value and returns it.
func (c *checker) attachment(value Field, s *view) Hash {
	if value.Kind() != TypeBinary {
		if c.mode.Has(ModePackage) {
			c.add(InvalidPackageFormat)
		}
		return ZeroHash
	}
	data := value.binary()
	if len(data) == 0 {
		return ZeroHash
	}
	hf, ok := c.packageField(s)
	if !ok {
		return ZeroHash
	}
	h, isAttachment := hf.attachmentHash()
	if c.mode.Has(ModePackage) {
		if !isAttachment {
			c.add(InvalidPackageFormat)
		} else if h != HashOf(data) {
			c.add(InvalidPackageHash)
		}
	}
	return h
}

// packageObject checks the hash that follows the package object and returns it.
func (c *checker) packageObject(value Field, s *view) Hash {
	hf, ok := c.packageField(s)
	if !ok {
		return ZeroHash
	}
	h, isAttachment := hf.attachmentHash()
	if c.mode.Has(ModePackage) {
		if len(value.containerBody()) == 0 {
			c.add(NullPackageObject)
		}
		if !isAttachment {
			c.add(InvalidPackageFormat)
		} else if h != value.Hash() {
			c.add(InvalidPackageHash)
		}
	}
	return h
}
