// Package tui holds the terminal setup shared by the interactive commands.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/grovetools/jsonlview/logging"
)

// InitializeTUI prepares the terminal environment for TUI applications.
// It checks for environment variables that force color output (`CLICOLOR_FORCE`,
// `COLORTERM`) and sets the appropriate lipgloss color profile when present,
// so styling stays consistent when the viewer is driven by scripts or CI.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// Run starts a full-screen program for model. Terminal log output is
// silenced while the program owns the screen so log lines cannot corrupt the
// display; file logging is unaffected.
func Run(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	InitializeTUI()
	restore := logging.SilenceTerminal()
	defer restore()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(model, opts...).Run()
}
