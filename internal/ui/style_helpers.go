package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barPainter paints text segments onto a bar with a solid background. Every
// cell gets the background, including the spaces between words; otherwise
// the ANSI reset after each styled word leaves unpainted holes in the bar.
type barPainter struct {
	fill  lipgloss.Style
	space string
}

func newBarPainter(color string) barPainter {
	fill := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return barPainter{fill: fill, space: fill.Render(" ")}
}

// paint renders text in style over the bar background.
func (p barPainter) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Inherit(p.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, p.space)
}

func (p barPainter) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return p.fill.Render(strings.Repeat(" ", n))
}

// hint renders a "key:desc" pair.
func (p barPainter) hint(key, desc string, keyStyle, descStyle lipgloss.Style) string {
	return p.paint(key, keyStyle) + p.fill.Render(":") + p.paint(desc, descStyle)
}

// badge renders a count suffix such as " (3)", or nothing for an empty badge.
func (p barPainter) badge(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return p.space + p.paint(text, style)
}

// spread joins each side with two-cell gaps and pushes right to the far edge
// of a bar width cells wide with one cell of padding on each side.
func (p barPainter) spread(left, right []string, width int) string {
	l := strings.Join(left, p.gap(2))
	r := strings.Join(right, p.gap(2))
	fill := width - 2 - lipgloss.Width(l) - lipgloss.Width(r)
	return l + p.gap(max(fill, 1)) + r
}
