package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette entries adapt to the terminal background.
var (
	Primary = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"}
	Success = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"}
	Warning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"}
	Error   = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	Muted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

// Styles for the one-line messages the client prints around a session.
var (
	NoticeStyle  = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	HintStyle    = lipgloss.NewStyle().Foreground(Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(Error)
)

// Initialize sets the background the adaptive colors resolve against.
// UBOTERM_THEME=light or dark overrides isDarkMode.
func Initialize(isDarkMode bool) {
	switch strings.ToLower(os.Getenv("UBOTERM_THEME")) {
	case "light":
		isDarkMode = false
	case "dark":
		isDarkMode = true
	}
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// Notice renders a highlighted informational line.
func Notice(s string) string { return NoticeStyle.Render(s) }

// Hint renders a de-emphasized line.
func Hint(s string) string { return HintStyle.Render(s) }

// Ok renders a success line.
func Ok(s string) string { return SuccessStyle.Render(s) }

// Warn renders a warning line.
func Warn(s string) string { return WarningStyle.Render(s) }

// Fail renders an error line.
func Fail(s string) string { return ErrorStyle.Render(s) }
