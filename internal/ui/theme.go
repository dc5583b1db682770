package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. All colors are hex strings.
type Theme struct {
	Name string

	Background string // behind surfaces
	Surface    string // header, command bar and footer

	SelectionBg   string // focused card or row
	SelectionText string

	Border      string
	BorderFocus string // surface frames and the focused card

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	Sale     string // discounted price
	Heart    string // wishlisted marker
	Rating   string // stars
	CartMark string // already in cart
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	Sale     lipgloss.Style
	Heart    lipgloss.Style
	Rating   lipgloss.Style
	CartMark lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   bar.Foreground(lipgloss.Color(t.Text)),
		Footer:   bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		Sale:     fg(t.Sale).Bold(true),
		Heart:    fg(t.Heart),
		Rating:   fg(t.Rating),
		CartMark: fg(t.CartMark),
	}
}

// NoticeStyle returns the footer style for a notice.
func (s Styles) NoticeStyle(isError bool) lipgloss.Style {
	if isError {
		return s.DangerText
	}
	return s.SuccessText
}

// WithBackground returns a copy in which every style paints color behind its
// text. Bars need this; a style without a background shows the terminal's.
func (s Styles) WithBackground(color string) Styles {
	bg := lipgloss.Color(color)
	out := s
	for _, st := range out.all() {
		*st = st.Background(bg)
	}
	return out
}

func (s *Styles) all() []*lipgloss.Style {
	return []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Header, &s.Footer, &s.Logo, &s.Selected,
		&s.Sale, &s.Heart, &s.Rating, &s.CartMark,
	}
}

// themes is the cycle order; the first entry is the fallback.
var themes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name: "Nightfox",
		Background: "#131a24", Surface: "#192330",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		Sale: "#f4a261", Heart: "#c94f6d", Rating: "#dbc074", CartMark: "#81b29a",
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name: "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		Sale: "#FFA066", Heart: "#E46876", Rating: "#E6C384", CartMark: "#98BB6C",
	},
	{
		// Tailwind slate and sky
		Name: "Slate",
		Background: "#020617", Surface: "#0f172a",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		Sale: "#f59e0b", Heart: "#f43f5e", Rating: "#facc15", CartMark: "#22c55e",
	},
}

// GetTheme returns the named theme, or the first theme for unknown names.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
