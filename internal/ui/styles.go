package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the scan UI
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, RW markers
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - phase messages
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 120 // Maximum content width before capping
	DefaultPadding   = 2   // Default padding inside boxes
)

// Shared styles for the scan UI
var (
	// TitleStyle is for the application title line
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			PaddingLeft(2)

	// PhaseStyle is for the current scan phase message
	PhaseStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			PaddingLeft(2)

	// StatusStyle is for secondary status lines (counts, endpoint)
	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// SpinnerStyle colors the phase spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// HelpStyle is for the key help footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// SuccessTitleStyle is for the scan summary title
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// ErrorMessageStyle is for error message text
	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				PaddingLeft(2)

	// SummaryKeyStyle is for summary detail keys
	SummaryKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	// SummaryValueStyle is for summary detail values
	SummaryValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// IsInteractive reports whether stdout is a terminal. Piped output gets
// the plain line-oriented mode instead of the TUI.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SummaryBoxStyle returns the border style for the scan summary box
func SummaryBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SuccessColor).
		Width(width - 2).
		Padding(1, 2)
}

// ErrorBoxStyle returns the border style for error result boxes
func ErrorBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ErrorColor).
		Width(width - 2).
		Padding(1, 2)
}
