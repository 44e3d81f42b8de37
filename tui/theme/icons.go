package theme

import (
	"os"

	"github.com/grovetools/jsonlview/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconSuccess  = "\U000F012C" // md-check (U+F012C)
	nerdIconError    = "\uEA87"     // cod-error (U+EA87)
	nerdIconWarning  = "\uF071"     // fa-warning (U+F071)
	nerdIconInfo     = "\U000F02FC" // md-information (U+F02FC)
	nerdIconRunning  = "\uF021"     // fa-refresh (U+F021)
	nerdIconArrow    = "\U000F0054" // md-arrow_right (U+F0054)
	nerdIconBullet   = "\uF444"     // oct-dot_fill (U+F444)
	nerdIconFilter   = "\U000F18EC" // md-filter_check (U+F18EC)
	nerdIconSave     = "\U000F0249" // md-floppy (U+F0249)
	nerdIconDocument = "\U000F0219" // md-file_document (U+F0219)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconSuccess  = "✓"
	asciiIconError    = "✗"
	asciiIconWarning  = "⚠"
	asciiIconInfo     = "ℹ"
	asciiIconRunning  = "◐"
	asciiIconArrow    = "→"
	asciiIconBullet   = "•"
	asciiIconFilter   = "/"
	asciiIconSave     = "[S]"
	asciiIconDocument = "[F]"
)

// Public Icon Variables
var (
	IconSuccess  string
	IconError    string
	IconWarning  string
	IconInfo     string
	IconRunning  string
	IconArrow    string
	IconBullet   string
	IconFilter   string
	IconSave     string
	IconDocument string
)

// init function determines which icon set to use
func init() {
	UseASCIIIcons(wantASCII())
}

func wantASCII() bool {
	// 1. Check environment variable first
	if os.Getenv("JSONLVIEW_ICONS") == "ascii" {
		return true
	}
	// 2. Check config file
	cfg, err := config.LoadDefault()
	return err == nil && cfg.Theme.Icons == "ascii"
}

// UseASCIIIcons switches between the ASCII and the Nerd Font icon sets.
func UseASCIIIcons(ascii bool) {
	if ascii {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconRunning = asciiIconRunning
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconFilter = asciiIconFilter
		IconSave = asciiIconSave
		IconDocument = asciiIconDocument
		return
	}

	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconWarning = nerdIconWarning
	IconInfo = nerdIconInfo
	IconRunning = nerdIconRunning
	IconArrow = nerdIconArrow
	IconBullet = nerdIconBullet
	IconFilter = nerdIconFilter
	IconSave = nerdIconSave
	IconDocument = nerdIconDocument
}
