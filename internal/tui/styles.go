package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/KaramelBytes/writeit-cli/internal/store"
)

type palette struct {
	Accent  string
	Text    string
	Dim     string
	Border  string
	Warning string
	Error   string
	Success string
	Bar     string
	BarText string
}

var palettes = map[store.Theme]palette{
	store.ThemeLight: {
		Accent:  "25",  // blue
		Text:    "235", // near black
		Dim:     "244",
		Border:  "250",
		Warning: "130",
		Error:   "160",
		Success: "28",
		Bar:     "254",
		BarText: "236",
	},
	store.ThemeDark: {
		Accent:  "170", // magenta
		Text:    "252",
		Dim:     "241",
		Border:  "240",
		Warning: "214",
		Error:   "196",
		Success: "42",
		Bar:     "62",
		BarText: "230",
	},
}

type styles struct {
	theme store.Theme

	Title      lipgloss.Style
	Header     lipgloss.Style
	Normal     lipgloss.Style
	Dim        lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	StatusBar  lipgloss.Style
	ActivePane lipgloss.Style
	Pane       lipgloss.Style
	Label      lipgloss.Style
	HelpKey    lipgloss.Style
}

func newStyles(theme store.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		theme = store.ThemeLight
		p = palettes[theme]
	}
	return styles{
		theme: theme,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Warning)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Dim)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)),
		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Bar)).
			Foreground(lipgloss.Color(p.BarText)).
			Padding(0, 1),
		ActivePane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Dim)).
			Width(10),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),
	}
}

// toggle returns the other theme.
func toggle(t store.Theme) store.Theme {
	if t == store.ThemeDark {
		return store.ThemeLight
	}
	return store.ThemeDark
}
