package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorLike      = lipgloss.Color("78")  // Green
	colorDismiss   = lipgloss.Color("196") // Red
	colorHighlight = lipgloss.Color("212") // Pink
)

// CardStyle is the base style for the cat card.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2).
	Width(44)

// CardDimStyle is the card as it fades past a third of the way out.
var CardDimStyle = CardStyle.
	BorderForeground(colorSecondary).
	Foreground(colorSecondary)

// CardFaintStyle is the card near the edge of the fade.
var CardFaintStyle = CardStyle.
	BorderForeground(colorMuted).
	Foreground(colorMuted).
	Faint(true)

// CardTitle style for the card header line.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// FallbackBadge marks items that came from the fallback reference.
var FallbackBadge = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// LikeHint style for the "LIKE" edge label.
var LikeHint = lipgloss.NewStyle().
	Foreground(colorLike).
	Bold(true)

// DismissHint style for the "NOPE" edge label.
var DismissHint = lipgloss.NewStyle().
	Foreground(colorDismiss).
	Bold(true)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// LoadingStyle for the loading screen text.
var LoadingStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(1, 2)

// SummaryHeader style for the summary screen title.
var SummaryHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(1, 2, 0, 2)

// SummaryItem style for each liked entry.
var SummaryItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 4)

// SummaryEmpty style when nothing was liked.
var SummaryEmpty = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true).
	Padding(1, 4)

// ErrorStyle for displaying fatal errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDismiss).
	Bold(true).
	Padding(0, 1)
