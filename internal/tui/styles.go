package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nutrikit/nutriplan/internal/version"
)

// Application branding constants
const (
	AppName       = "NUTRIPLAN"
	GitHubURL     = "github.com/nutrikit/nutriplan"
	GitHubFullURL = "https://github.com/nutrikit/nutriplan"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 72  // Minimum supported terminal width
	MaxContentWidth   = 120 // Maximum content width before capping
	DefaultBoxPadding = 2   // Default padding inside boxes
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#43BF6D") // Green
	SecondaryColor = lipgloss.Color("#7D56F4") // Purple
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red

	// Neutral colors
	TextColor       = lipgloss.Color("#FFFFFF") // White
	SubtleColor     = lipgloss.Color("#626262") // Gray
	BorderColor     = lipgloss.Color("#43BF6D") // Green (same as primary)
	HighlightColor  = lipgloss.Color("#7D56F4") // Purple (same as secondary)
	BackgroundColor = lipgloss.Color("#1A1A1A") // Dark gray
)

// Common styles
var (
	// Title style - large, bold, centered
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Section title style
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Field label style (unfocused)
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Field label style (focused)
	FocusedFieldLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Field error annotation style
	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// Preview line style (live estimates under fields)
	PreviewStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	// Preview warning style (advisory, non-blocking)
	PreviewWarningStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Italic(true)

	// Indicator dot styles (section navigation)
	ActiveDotStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	InactiveDotStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor)

	// Info box style
	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Success box style (for result screens)
	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Error box style (for result screens)
	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// Warning box style (for result screens)
	WarningBoxStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(1, 2)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// RenderSuccess renders a success message
func RenderSuccess(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// RenderInfo renders an info box
func RenderInfo(text string) string {
	return InfoBoxStyle.Render(text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
// Returns a string formatted for use in the application container
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	// Join with space in between
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// BuildFooterContent creates footer content with help text
// Returns a styled string for use in the application container
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer is the wrapper for all screens in the application.
// It provides:
// - Consistent full-screen panel using terminal width/height
// - Application header (name, version, GitHub URL)
// - Context-sensitive footer (help text)
// - Bordered outer container
//
// Every screen uses this function. Pattern:
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    helpText := "context-specific help..."
//	    return RenderApplicationContainer(content, helpText, m.Width, m.Height)
//	}
//
// Uses lipgloss.Place() to fill the entire terminal and pin footer to bottom
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	// Build header content
	header := BuildHeaderContent()

	// Build footer content
	footer := BuildFooterContent(footerText)

	// Create header section with bottom border
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	styledHeader := headerStyle.Render(header)

	// Create footer section with top border
	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	styledFooter := footerStyle.Render(footer)

	// Create content area
	// Note: No padding here - callers control their own content margins
	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4) // Leave room for outer border

	styledContent := contentStyle.Render(content)

	// Combine header + content + footer vertically
	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styledHeader,
		styledContent,
		styledFooter,
	)

	// Create outer border container with full terminal height
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).   // Account for border width
		Height(terminalHeight - 2). // Full height for proper background
		AlignVertical(lipgloss.Top) // Align content to top, preventing footer expansion

	bordered := borderStyle.Render(innerContent)

	// Use lipgloss.Place to fill the full terminal and ensure proper positioning
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// CalculateBoxWidth calculates the appropriate box width based on terminal width
// Uses full terminal width for maximum screen usage
func CalculateBoxWidth(terminalWidth int) int {
	if terminalWidth < MinTerminalWidth {
		return MinTerminalWidth
	}
	return terminalWidth
}
