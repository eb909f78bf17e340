package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorAccent   = lipgloss.Color("#00acee")
	ColorRetweet  = lipgloss.Color("10")
	ColorFavorite = lipgloss.Color("11")
	ColorMuted    = lipgloss.Color("241")
	ColorBorder   = lipgloss.Color("240")
	ColorFocus    = lipgloss.Color("15")
	ColorError    = lipgloss.Color("9")
	ColorSuccess  = lipgloss.Color("2")
)

// Item frames. The focused item gets the heavier border.
var (
	ItemStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			PaddingLeft(1).
			PaddingRight(1)

	FocusedItemStyle = ItemStyle.
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorFocus)
)

// Text styles.
var (
	NameStyle        = lipgloss.NewStyle().Foreground(ColorAccent)
	RetweetNameStyle = lipgloss.NewStyle().Foreground(ColorRetweet)
	DimStyle         = lipgloss.NewStyle().Foreground(ColorMuted)
	RetweetOnStyle   = lipgloss.NewStyle().Foreground(ColorRetweet).Bold(true)
	FavoriteOnStyle  = lipgloss.NewStyle().Foreground(ColorFavorite).Bold(true)
	ErrorStyle       = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	ResultStyle      = lipgloss.NewStyle().Foreground(ColorSuccess)
	HintStyle        = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	HeaderStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Column tabs.
var (
	TabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorMuted)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ColorFocus).Background(ColorBorder)
)
