package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#1DB954", "#04B575", "#FF5F5F", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	muted    lipgloss.Style
	link     lipgloss.Style
	heading  lipgloss.Style
	avatar   lipgloss.Style
	cell     lipgloss.Style
	selected lipgloss.Style
	navbar   lipgloss.Style
	focused  lipgloss.Style
	blurred  lipgloss.Style
}

func NewPalette(accent, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(accent).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		muted:    NewStyle(h),
		link:     NewStyle(accent).Underline(true),
		heading:  NewBold(accent),
		avatar:   NewBold("#000000").Background(lipgloss.Color(accent)).Padding(0, 1),
		cell:     lipgloss.NewStyle().Padding(0, 1),
		selected: NewBold("#000000").Background(lipgloss.Color(accent)).Padding(0, 1),
		navbar:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color(h)),
		focused:  lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		blurred:  lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
	}
}

// panel picks the border style for a focusable section.
func (p *Palette) panel(focused bool) lipgloss.Style {
	if focused {
		return p.focused
	}
	return p.blurred
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
