package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the panel around the 3D view.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeField = Theme{
		Name:      "field",
		Primary:   lipgloss.Color("#80ff00"),
		Secondary: lipgloss.Color("#527746"),
		Text:      lipgloss.Color("#e8f0e0"),
		Muted:     lipgloss.Color("#6b7a62"),
		Border:    lipgloss.Color("#3d4a36"),
		Warning:   lipgloss.Color("#ff8000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#444444"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Border:    lipgloss.Color("#1d3d5c"),
		Warning:   lipgloss.Color("#ffcc00"),
	}

	Themes = []Theme{ThemeField, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	graph  lipgloss.Style
	panel  lipgloss.Style
	canvas lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(panelWidth),
		canvas: lipgloss.NewStyle().Padding(0, 1),
	}
}
