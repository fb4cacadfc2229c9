package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by both views.
type Theme struct {
	Surface string
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// DefaultTheme is tuned for dark terminal backgrounds.
func DefaultTheme() Theme {
	return Theme{
		Surface: "#1e1f29",
		Text:    "#f8f8f2",
		Muted:   "#9ea3b0",
		Faint:   "#666666",
		Accent:  "#6495ed",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
	}
}

// LightTheme is tuned for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Surface: "#e8e8e8",
		Text:    "#1a1a1a",
		Muted:   "#555555",
		Faint:   "#999999",
		Accent:  "#1f5fbf",
		Success: "#1a7f37",
		Warning: "#9a6700",
		Danger:  "#cf222e",
	}
}

// ThemeByName resolves a preference string to a theme. Unknown names fall
// back to the dark default.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// Styles returns pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
	}
}

// Styles contains the pre-built lipgloss styles.
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	Text      lipgloss.Style
	MutedText lipgloss.Style
	FaintText lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
}
