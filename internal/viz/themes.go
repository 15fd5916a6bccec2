package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the chrome around the pixel canvas.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Done    lipgloss.Color
	Waiting lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#666666"),
		Running: lipgloss.Color("#ffffff"),
		Done:    lipgloss.Color("#aaaaaa"),
		Waiting: lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
		Running: lipgloss.Color("#88ff88"),
		Done:    lipgloss.Color("#00ff00"),
		Waiting: lipgloss.Color("#008800"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Title:   lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Running: lipgloss.Color("#feca57"),
		Done:    lipgloss.Color("#5fd068"),
		Waiting: lipgloss.Color("#ff9ff3"),
		Error:   lipgloss.Color("#ff4757"),
	}

	CurrentTheme = ThemeMinimal

	Themes = []Theme{
		ThemeMinimal,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
