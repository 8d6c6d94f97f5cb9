package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("report: unknown output format")

// Format selects how reports are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write encodes reports to w. JSON and YAML write a single list.
func Write(w io.Writer, format Format, reports []*Report) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, reports)
	case FormatYAML:
		return encodeYAML(w, reports)
	case FormatText, "":
		for _, r := range reports {
			if err := writeText(w, r); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Encode writes any value in a structured format. Text falls back to YAML.
func Encode(w io.Writer, format Format, v any) error {
	if format == FormatJSON {
		return encodeJSON(w, v)
	}
	return encodeYAML(w, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, r *Report) error {
	name := r.Path
	if name == "" {
		name = "-"
	}
	status := "ok"
	if !r.Valid {
		status = "invalid: " + strings.Join(r.Errors, "|")
	}
	if _, err := fmt.Fprintf(w, "%s: %s (%d bytes, mode %s) %s\n", name, r.Kind, r.Size, r.Mode, status); err != nil {
		return err
	}
	for _, f := range r.Fields {
		label := f.Type
		if f.Name != "" {
			label = fmt.Sprintf("%s %q", f.Type, f.Name)
		}
		if _, err := fmt.Fprintf(w, "  field %s %s\n", label, f.Hash); err != nil {
			return err
		}
	}
	if r.Object != nil {
		if _, err := fmt.Fprintf(w, "  object %s %s\n", r.Object.Hash, r.Object.CID); err != nil {
			return err
		}
	}
	for _, a := range r.Attachments {
		kind := "binary"
		if a.CompactBinary {
			kind = "compact-binary"
		}
		if _, err := fmt.Fprintf(w, "  attachment %s %s %s %d bytes\n", kind, a.Hash, a.CID, a.Size); err != nil {
			return err
		}
	}
	return nil
}
