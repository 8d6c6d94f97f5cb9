package cb

import "fmt"

// Attachment is a binary payload referenced from a package by its hash.
type Attachment struct {
	Hash Hash
	Data []byte
	// CompactBinary is set when the hash field was a CompactBinaryAttachment,
	// meaning Data holds compact binary fields.
	CompactBinary bool
}

// IsNull reports whether the attachment has an empty payload.
func (a Attachment) IsNull() bool { return len(a.Data) == 0 }

// Package is a parsed package: an optional root object and its attachments.
type Package struct {
	Object      Field
	ObjectHash  Hash
	HasObject   bool
	Attachments []Attachment
}

// Attachment returns the attachment with hash h.
func (p *Package) Attachment(h Hash) (Attachment, bool) {
	for _, a := range p.Attachments {
		if a.Hash == h {
			return a, true
		}
	}
	return Attachment{}, false
}

// ReadPackage validates data with ModeAll and parses it.
func ReadPackage(data []byte) (*Package, error) {
	if err := ValidatePackage(data, ModeAll); err != ValidateNone {
		return nil, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}
	p := &Package{}
	c := checker{}
	s := view(data)
	for len(s) > 0 {
		value, ok := c.field(&s, HasFieldType)
		if !ok || value.IsNull() {
			break
		}
		hf, ok := c.field(&s, HasFieldType)
		if !ok {
			break
		}
		h, _ := hf.attachmentHash()
		if value.IsObject() {
			p.Object, p.ObjectHash, p.HasObject = value, h, true
			continue
		}
		p.Attachments = append(p.Attachments, Attachment{
			Hash:          h,
			Data:          value.binary(),
			CompactBinary: hf.Kind() == TypeCompactBinaryAttachment,
		})
	}
	return p, nil
}

// ReadAttachment validates data with ModeAll as a single attachment and parses it.
func ReadAttachment(data []byte) (Attachment, error) {
	if err := ValidateAttachment(data, ModeAll); err != ValidateNone {
		return Attachment{}, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}
	c := checker{}
	s := view(data)
	value, _ := c.field(&s, HasFieldType)
	a := Attachment{Data: value.binary()}
	if len(a.Data) == 0 {
		return a, nil
	}
	hf, _ := c.field(&s, HasFieldType)
	a.Hash, _ = hf.attachmentHash()
	a.CompactBinary = hf.Kind() == TypeCompactBinaryAttachment
	return a, nil
}
