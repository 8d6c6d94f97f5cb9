package cb

import (
	"fmt"
	"strings"
)

// Mode selects which classes of checks a validator runs.
// A Mode with no bits set skips validation entirely.
type Mode uint32

const (
	ModeNone Mode = 0

	// ModeNames checks that object fields are named, array fields are not,
	// and object names are unique.
	ModeNames Mode = 1 << 0

	// ModeFormat checks the canonical form of the encoding: minimal varints,
	// Float64 values that need the width, and containers that should be uniform.
	ModeFormat Mode = 1 << 1

	// ModePadding checks that no bytes follow the validated value.
	ModePadding Mode = 1 << 2

	// ModePackage checks package and attachment shape and hashes.
	ModePackage Mode = 1 << 3

	ModeAll = ModeNames | ModeFormat | ModePadding | ModePackage

	// ModeDefault is the mode used by the readers in this package.
	ModeDefault = ModeNames | ModeFormat
)

var modeNames = []struct {
	mode Mode
	name string
}{
	{ModeNames, "names"},
	{ModeFormat, "format"},
	{ModePadding, "padding"},
	{ModePackage, "package"},
}

// Has reports whether any bit of o is set in m.
func (m Mode) Has(o Mode) bool { return m&o != 0 }

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAll:
		return "all"
	}
	var parts []string
	for _, mn := range modeNames {
		if m.Has(mn.mode) {
			parts = append(parts, mn.name)
		}
	}
	if rest := m &^ ModeAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, ",")
}

// ParseMode parses a comma separated list of mode names.
// "all" and "none" are accepted, and a leading '-' removes a mode,
// so "all,-padding" is every check except padding.
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		remove := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")

		var bit Mode
		switch part {
		case "all":
			bit = ModeAll
		case "none":
			bit = ModeNone
		default:
			found := false
			for _, mn := range modeNames {
				if mn.name == part {
					bit, found = mn.mode, true
					break
				}
			}
			if !found {
				return 0, fmt.Errorf("%w: %q", ErrUnknownMode, part)
			}
		}
		if remove {
			m &^= bit
		} else {
			m |= bit
		}
	}
	return m, nil
}

// ParseModes joins several mode lists, as read from flags or config.
func ParseModes(list []string) (Mode, error) {
	return ParseMode(strings.Join(list, ","))
}
