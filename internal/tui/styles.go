package tui

import "github.com/charmbracelet/lipgloss"

// Theme centralizes colors and styles for one palette.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Button   lipgloss.Style
	Active   lipgloss.Style
	Disabled lipgloss.Style
	Error    lipgloss.Style
	Frame    lipgloss.Style
}

func newTheme(name string, fg, muted, accent, surface, errColor lipgloss.Color) Theme {
	return Theme{
		Name:     name,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Button:   lipgloss.NewStyle().Padding(0, 1).Foreground(fg).Background(surface),
		Active:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(surface).Background(accent),
		Disabled: lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(errColor),
		Frame:    lipgloss.NewStyle().Padding(1, 2),
	}
}

// LightTheme is the default palette.
func LightTheme() Theme {
	return newTheme("light",
		lipgloss.Color("#111517"),
		lipgloss.Color("#6b7280"),
		lipgloss.Color("#2563eb"),
		lipgloss.Color("#e5e7eb"),
		lipgloss.Color("#b91c1c"))
}

// DarkTheme mirrors the web dark mode.
func DarkTheme() Theme {
	return newTheme("dark",
		lipgloss.Color("#ffffff"),
		lipgloss.Color("#94a3b8"),
		lipgloss.Color("#89b4fa"),
		lipgloss.Color("#2b3945"),
		lipgloss.Color("#f38ba8"))
}

// ThemeByName returns the dark palette for "dark" and the light one otherwise.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}
