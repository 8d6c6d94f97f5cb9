// Package report turns validation results into reports for the CLI and the HTTP service.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samcharles93/cbtool/pkg/cb"
)

var ErrUnknownKind = errors.New("report: unknown input kind")

// Kind names the shape an input is validated as.
type Kind string

const (
	KindField      Kind = "field"
	KindRange      Kind = "range"
	KindAttachment Kind = "attachment"
	KindPackage    Kind = "package"
)

var kinds = []Kind{KindField, KindRange, KindAttachment, KindPackage}

// Kinds lists every supported kind.
func Kinds() []Kind { return kinds }

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// DefaultMode is the mode used when none is configured. Package checks
// only run for the shapes that carry hashes.
func (k Kind) DefaultMode() cb.Mode {
	switch k {
	case KindAttachment, KindPackage:
		return cb.ModeAll
	}
	return cb.ModeDefault
}

// Validate runs the validator for kind over data.
func (k Kind) Validate(data []byte, mode cb.Mode) (cb.ValidateError, error) {
	switch k {
	case KindField:
		return cb.ValidateField(data, mode, cb.HasFieldType), nil
	case KindRange:
		return cb.ValidateRange(data, mode), nil
	case KindAttachment:
		return cb.ValidateAttachment(data, mode), nil
	case KindPackage:
		return cb.ValidatePackage(data, mode), nil
	}
	return cb.ValidateNone, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// Report is the result of validating one input.
type Report struct {
	ID     string   `json:"id,omitempty" yaml:"id,omitempty"`
	Path   string   `json:"path,omitempty" yaml:"path,omitempty"`
	Kind   Kind     `json:"kind" yaml:"kind"`
	Mode   string   `json:"mode" yaml:"mode"`
	Size   int      `json:"size" yaml:"size"`
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors" yaml:"errors"`

	// Fields lists top-level fields of valid field and range inputs.
	Fields []FieldInfo `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Object and Attachments describe valid packages and attachments.
	Object      *Entry  `json:"object,omitempty" yaml:"object,omitempty"`
	Attachments []Entry `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// FieldInfo summarises one top-level field.
type FieldInfo struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Hash string `json:"hash" yaml:"hash"`
}

// Entry identifies a hashed value inside a package.
type Entry struct {
	Hash          string `json:"hash" yaml:"hash"`
	CID           string `json:"cid" yaml:"cid"`
	Size          int    `json:"size" yaml:"size"`
	CompactBinary bool   `json:"compact_binary,omitempty" yaml:"compact_binary,omitempty"`
}

// Build validates data as kind and describes it. Inputs that fail
// validation get a report with Valid unset and the failing flags.
func Build(path string, kind Kind, mode cb.Mode, data []byte) (*Report, error) {
	verr, err := kind.Validate(data, mode)
	if err != nil {
		return nil, err
	}
	r := &Report{
		Path:   path,
		Kind:   kind,
		Mode:   mode.String(),
		Size:   len(data),
		Valid:  verr == cb.ValidateNone,
		Errors: verr.Flags(),
	}
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if !r.Valid {
		return r, nil
	}

	// Details are read back with the strict readers, which may reject
	// inputs that passed a weaker mode. Those reports simply carry no details.
	switch kind {
	case KindField:
		if f, _, err := cb.ReadField(data); err == nil {
			r.Fields = []FieldInfo{fieldInfo(f)}
		}
	case KindRange:
		if fields, err := cb.ReadRange(data); err == nil {
			for _, f := range fields {
				r.Fields = append(r.Fields, fieldInfo(f))
			}
		}
	case KindAttachment:
		if a, err := cb.ReadAttachment(data); err == nil && !a.IsNull() {
			r.Attachments = []Entry{attachmentEntry(a)}
		}
	case KindPackage:
		if p, err := cb.ReadPackage(data); err == nil {
			if p.HasObject {
				r.Object = &Entry{
					Hash: p.ObjectHash.String(),
					CID:  CID(p.ObjectHash),
					Size: len(p.Object.Payload()),
				}
			}
			for _, a := range p.Attachments {
				r.Attachments = append(r.Attachments, attachmentEntry(a))
			}
		}
	}
	return r, nil
}

func fieldInfo(f cb.Field) FieldInfo {
	return FieldInfo{Type: f.Type().String(), Name: f.Name(), Hash: f.Hash().String()}
}

func attachmentEntry(a cb.Attachment) Entry {
	return Entry{
		Hash:          a.Hash.String(),
		CID:           CID(a.Hash),
		Size:          len(a.Data),
		CompactBinary: a.CompactBinary,
	}
}
