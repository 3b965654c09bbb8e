package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Sphere lipgloss.Color
	Error  lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:   "midnight",
		Title:  lipgloss.Color("#00ffff"),
		Accent: lipgloss.Color("#ff00ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Border: lipgloss.Color("#444466"),
		Sphere: lipgloss.Color("#3a3a4a"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Title:  lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#007700"),
		Sphere: lipgloss.Color("#004400"),
		Error:  lipgloss.Color("#ffff00"),
	}

	ThemePaper = Theme{
		Name:   "paper",
		Title:  lipgloss.Color("#222222"),
		Accent: lipgloss.Color("#0066cc"),
		Text:   lipgloss.Color("#111111"),
		Muted:  lipgloss.Color("#888888"),
		Border: lipgloss.Color("#bbbbbb"),
		Sphere: lipgloss.Color("#d3d3d3"),
		Error:  lipgloss.Color("#cc0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
		Sphere: lipgloss.Color("#1d3f5c"),
		Error:  lipgloss.Color("#ff4444"),
	}

	CurrentTheme = ThemeMidnight

	Themes = []Theme{
		ThemeMidnight,
		ThemePhosphor,
		ThemePaper,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, or the default theme when unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return CurrentTheme
		}
	}
	CurrentTheme = ThemeMidnight
	return CurrentTheme
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
