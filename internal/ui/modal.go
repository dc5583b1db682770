package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// renderModal draws content in a bordered box of the given outer width.
// Height follows the content.
func (m Model) renderModal(title, content string, width int) string {
	styles := m.theme.Styles()
	header := styles.AccentText.Bold(true).Render(title)
	body := header + "\n\n" + content

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(maxInt(width-2, 10)).
		Render(body)
}

// overlayHeight is the screen height left for surfaces above the footer.
func (m Model) overlayHeight() int {
	return maxInt(m.height-1, 1)
}

// placeModal centers box above the footer.
func (m Model) placeModal(box string) string {
	return lipgloss.Place(
		m.width,
		m.overlayHeight(),
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// modalRect returns where placeModal puts box.
func (m Model) modalRect(box string) rect {
	w := lipgloss.Width(box)
	h := lipgloss.Height(box)
	return rect{
		x: maxInt((m.width-w)/2, 0),
		y: maxInt((m.overlayHeight()-h)/2, 0),
		w: w,
		h: h,
	}
}
