package viewer

import (
	"fmt"
	"strings"
)

// Mode selects how records are presented.
type Mode int

const (
	// ModeStructured shows each record as a colorized, collapsible tree,
	// rendered in batches.
	ModeStructured Mode = iota
	// ModeRaw shows every record's original line text.
	ModeRaw
)

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	default:
		return "structured"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeRaw {
		return ModeStructured
	}
	return ModeRaw
}

// ParseMode parses "structured" or "raw". An empty string is structured.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "structured", "pretty", "tree":
		return ModeStructured, nil
	case "raw":
		return ModeRaw, nil
	default:
		return ModeStructured, fmt.Errorf("unknown view mode %q (want structured or raw)", s)
	}
}
