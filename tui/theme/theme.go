package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/pkg/colorize"
)

const defaultThemeName = "default"

// --- Kanagawa Dragon (dark) palette ---
const (
	kanagawaDarkGreen              = "#98BB6C"
	kanagawaDarkYellow             = "#FF9E3B"
	kanagawaDarkRed                = "#FF5D62"
	kanagawaDarkOrange             = "#FFA066"
	kanagawaDarkCyan               = "#7E9CD8"
	kanagawaDarkBlue               = "#7FB4CA"
	kanagawaDarkViolet             = "#957FB8"
	kanagawaDarkPink               = "#D27E99"
	kanagawaDarkLightText          = "#DCD7BA"
	kanagawaDarkMutedText          = "#727169"
	kanagawaDarkDarkText           = "#1D1C19"
	kanagawaDarkBorder             = "#363646"
	kanagawaDarkSelectedBackground = "#223249"
	kanagawaDarkMatchBackground    = "#49443C"
)

// --- Kanagawa Wave (light-inspired) palette ---
const (
	kanagawaLightGreen              = "#4E7C5A"
	kanagawaLightYellow             = "#A68A64"
	kanagawaLightRed                = "#C34043"
	kanagawaLightOrange             = "#CC6B4E"
	kanagawaLightCyan               = "#5B8BBE"
	kanagawaLightBlue               = "#4F7CAC"
	kanagawaLightViolet             = "#674D7A"
	kanagawaLightPink               = "#B35C74"
	kanagawaLightLightText          = "#2B2F42"
	kanagawaLightMutedText          = "#6C7086"
	kanagawaLightDarkText           = "#E6E9EF"
	kanagawaLightBorder             = "#B5BDC5"
	kanagawaLightSelectedBackground = "#E2E6F3"
	kanagawaLightMatchBackground    = "#F3E2B8"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen              = "2"
	terminalYellow             = "3"
	terminalRed                = "1"
	terminalOrange             = "208"
	terminalCyan               = "6"
	terminalBlue               = "4"
	terminalViolet             = "5"
	terminalPink               = "13"
	terminalLightText          = "7"
	terminalMutedText          = "8"
	terminalDarkText           = "0"
	terminalBorder             = "8"
	terminalSelectedBackground = "8"
	terminalMatchBackground    = "3"
)

// Colors encapsulates the palette used by a theme. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	Pink               lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	DarkText           lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
	MatchBackground    lipgloss.TerminalColor
}

// Theme holds all the pre-configured styles of the viewer.
type Theme struct {
	Name   string
	Colors Colors

	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles - visual hierarchy
	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Accent   lipgloss.Style

	// Interactive elements
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	StatusBar   lipgloss.Style
	Box         lipgloss.Style

	// Search highlights
	Highlight    lipgloss.Style
	CurrentMatch lipgloss.Style

	// Tokens styles rendered JSON by span class.
	Tokens map[colorize.Class]lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"default":  newKanagawaColors,
	"terminal": newTerminalColors,
	"mono":     newMonoColors,
}

var themeAliases = map[string]string{
	"kanagawa": "default",
	"ansi":     "terminal",
	"none":     "mono",
}

// DefaultTheme is the theme selected by JSONLVIEW_THEME or the config file.
var DefaultTheme = NewTheme()

// NewTheme creates a theme based on the configured theme selection.
func NewTheme() *Theme {
	return NewThemeWithName(getThemeName())
}

// NewThemeWithName constructs a theme from a specific palette name. Unknown
// names fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	key := resolveThemeName(name)
	return newThemeFromColors(themeRegistry[key](), key)
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

// Token returns the style for a span class. Plain text is unstyled.
func (t *Theme) Token(class colorize.Class) lipgloss.Style {
	if style, ok := t.Tokens[class]; ok {
		return style
	}
	return t.Normal
}

// RenderSpans renders spans for the terminal. Highlighted pieces use
// Highlight, and the piece carrying ordinal current uses CurrentMatch.
// Multi-line spans are styled line by line so that lipgloss never pads a
// block across a newline.
func (t *Theme) RenderSpans(spans colorize.Spans, current int) string {
	var b strings.Builder
	for _, s := range spans {
		style := t.Token(s.Class)
		switch {
		case s.Match < 0:
		case s.Match == current:
			style = t.CurrentMatch
		default:
			style = t.Highlight
		}
		if s.Class == colorize.ClassPlain && s.Match < 0 {
			b.WriteString(s.Text)
			continue
		}
		lines := strings.Split(s.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

func newThemeFromColors(colors Colors, name string) *Theme {
	mono := name == "mono"

	highlight := lipgloss.NewStyle().
		Background(colors.MatchBackground).
		Foreground(colors.DarkText)
	current := lipgloss.NewStyle().
		Background(colors.Orange).
		Foreground(colors.DarkText).
		Bold(true)
	if mono {
		highlight = lipgloss.NewStyle().Underline(true)
		current = lipgloss.NewStyle().Reverse(true).Bold(true)
	}

	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colors.Cyan).
			Bold(true),

		// Text hierarchy: Bold → Normal → Muted
		Bold: lipgloss.NewStyle().
			Bold(true),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Faint(true),

		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(colors.LightText),

		Placeholder: lipgloss.NewStyle().
			Foreground(colors.MutedText).
			Italic(true),

		Cursor: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(colors.MutedText),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Highlight:    highlight,
		CurrentMatch: current,

		Tokens: map[colorize.Class]lipgloss.Style{
			colorize.ClassKey:     lipgloss.NewStyle().Foreground(colors.Cyan),
			colorize.ClassString:  lipgloss.NewStyle().Foreground(colors.Green),
			colorize.ClassNumber:  lipgloss.NewStyle().Foreground(colors.Orange),
			colorize.ClassBool:    lipgloss.NewStyle().Foreground(colors.Violet),
			colorize.ClassNull:    lipgloss.NewStyle().Foreground(colors.Pink).Italic(true),
			colorize.ClassBracket: lipgloss.NewStyle().Foreground(colors.Blue),
			colorize.ClassBrace:   lipgloss.NewStyle().Foreground(colors.Yellow),
			colorize.ClassColon:   lipgloss.NewStyle().Foreground(colors.MutedText),
			colorize.ClassComma:   lipgloss.NewStyle().Foreground(colors.MutedText),
		},
	}
}

func resolveThemeName(name string) string {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if _, ok := themeRegistry[key]; ok {
		return key
	}
	return defaultThemeName
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("JSONLVIEW_THEME")); theme != "" {
		return theme
	}
	if os.Getenv("NO_COLOR") != "" {
		return "mono"
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}
	if theme := normalizeThemeName(cfg.Theme.Name); theme != "" {
		return theme
	}
	return defaultThemeName
}

func newKanagawaColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:             lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:                lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Orange:             lipgloss.AdaptiveColor{Light: kanagawaLightOrange, Dark: kanagawaDarkOrange},
		Cyan:               lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Blue:               lipgloss.AdaptiveColor{Light: kanagawaLightBlue, Dark: kanagawaDarkBlue},
		Violet:             lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		Pink:               lipgloss.AdaptiveColor{Light: kanagawaLightPink, Dark: kanagawaDarkPink},
		LightText:          lipgloss.AdaptiveColor{Light: kanagawaLightLightText, Dark: kanagawaDarkLightText},
		MutedText:          lipgloss.AdaptiveColor{Light: kanagawaLightMutedText, Dark: kanagawaDarkMutedText},
		DarkText:           lipgloss.AdaptiveColor{Light: kanagawaLightDarkText, Dark: kanagawaDarkDarkText},
		Border:             lipgloss.AdaptiveColor{Light: kanagawaLightBorder, Dark: kanagawaDarkBorder},
		SelectedBackground: lipgloss.AdaptiveColor{Light: kanagawaLightSelectedBackground, Dark: kanagawaDarkSelectedBackground},
		MatchBackground:    lipgloss.AdaptiveColor{Light: kanagawaLightMatchBackground, Dark: kanagawaDarkMatchBackground},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color(terminalGreen),
		Yellow:             lipgloss.Color(terminalYellow),
		Red:                lipgloss.Color(terminalRed),
		Orange:             lipgloss.Color(terminalOrange),
		Cyan:               lipgloss.Color(terminalCyan),
		Blue:               lipgloss.Color(terminalBlue),
		Violet:             lipgloss.Color(terminalViolet),
		Pink:               lipgloss.Color(terminalPink),
		LightText:          lipgloss.Color(terminalLightText),
		MutedText:          lipgloss.Color(terminalMutedText),
		DarkText:           lipgloss.Color(terminalDarkText),
		Border:             lipgloss.Color(terminalBorder),
		SelectedBackground: lipgloss.Color(terminalSelectedBackground),
		MatchBackground:    lipgloss.Color(terminalMatchBackground),
	}
}

func newMonoColors() Colors {
	none := lipgloss.NoColor{}
	return Colors{
		Green:              none,
		Yellow:             none,
		Red:                none,
		Orange:             none,
		Cyan:               none,
		Blue:               none,
		Violet:             none,
		Pink:               none,
		LightText:          none,
		MutedText:          none,
		DarkText:           none,
		Border:             none,
		SelectedBackground: none,
		MatchBackground:    none,
	}
}
