package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Main content panels
	SurfaceAlt string // Secondary surfaces

	// Selection colors
	SelectionBg   string // Selected card border / row background
	SelectionText string // Selected card text

	// Border colors
	Border      string // Default border
	BorderFocus string // Focus border

	// Text colors
	Text      string
	Muted     string
	Faint     string
	Primary   string // brand accent, buttons
	Secondary string // supporting accent
	Success   string
	Warning   string
	Danger    string
	Info      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		PrimaryText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)),

		SecondaryText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Available: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Success)).
			Padding(0, 1),

		Borrowed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Danger)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text          lipgloss.Style
	MutedText     lipgloss.Style
	FaintText     lipgloss.Style
	PrimaryText   lipgloss.Style
	SecondaryText lipgloss.Style
	SuccessText   lipgloss.Style
	WarningText   lipgloss.Style
	DangerText    lipgloss.Style
	InfoText      lipgloss.Style

	Header       lipgloss.Style
	Footer       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Available    lipgloss.Style
	Borrowed     lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Indigo":   indigoTheme(),
	"Slate":    slateTheme(),
	"Nightfox": nightfoxTheme(),
}

var themeOrder = []string{"Indigo", "Slate", "Nightfox"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return indigoTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func indigoTheme() Theme {
	// Tailwind CSS Indigo/Slate palette: https://tailwindcss.com/docs/colors
	// Brand tokens: primary indigo-600, secondary slate-500.
	return Theme{
		Name: "Indigo",

		Background: "#0f172a", // slate-900
		Surface:    "#1e293b", // slate-800
		SurfaceAlt: "#334155", // slate-700

		SelectionBg:   "#4f46e5", // indigo-600
		SelectionText: "#eef2ff", // indigo-50

		Border:      "#334155", // slate-700
		BorderFocus: "#818cf8", // indigo-400

		Text:      "#f1f5f9", // slate-100
		Muted:     "#94a3b8", // slate-400
		Faint:     "#64748b", // slate-500
		Primary:   "#4f46e5", // indigo-600
		Secondary: "#64748b", // slate-500
		Success:   "#10b981", // emerald-500
		Warning:   "#f59e0b", // amber-500
		Danger:    "#f43f5e", // rose-500
		Info:      "#06b6d4", // cyan-500
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:      "#f1f5f9", // slate-100
		Muted:     "#94a3b8", // slate-400
		Faint:     "#64748b", // slate-500
		Primary:   "#0ea5e9", // sky-500
		Secondary: "#64748b", // slate-500
		Success:   "#22c55e", // green-500
		Warning:   "#f59e0b", // amber-500
		Danger:    "#ef4444", // red-500
		Info:      "#06b6d4", // cyan-500
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:      "#cdcecf", // fg1
		Muted:     "#738091", // comment
		Faint:     "#71839b", // fg3
		Primary:   "#719cd6", // blue
		Secondary: "#9d79d6", // magenta
		Success:   "#81b29a", // green
		Warning:   "#dbc074", // yellow
		Danger:    "#c94f6d", // red
		Info:      "#63cdcf", // cyan
	}
}
