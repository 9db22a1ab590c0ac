package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tandem/internal/listing"
	"tandem/internal/panel"
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("105"))

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	pathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	selectedActiveStyle = lipgloss.NewStyle().
				Reverse(true).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.tooSmall() {
		msg := "Window too small! Resize to continue (q quits)."
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane(m.left, leftWidth, m.focus == focusLeft),
		m.renderPane(m.right, rightWidth, m.focus == focusRight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.renderBar())
}

func (m *model) renderPane(p *panel.Panel, width int, active bool) string {
	innerWidth := width - 2 // border
	if innerWidth < 1 {
		innerWidth = 1
	}

	title := p.Path()
	if p.Filter() != "" {
		title = fmt.Sprintf("%s [%s]", title, p.Filter())
	}
	lines := []string{pathStyle.Render(truncate(title, innerWidth))}

	entries := p.Entries()
	end := p.Offset() + p.Rows()
	if end > len(entries) {
		end = len(entries)
	}

	for i := p.Offset(); i < end; i++ {
		lines = append(lines, m.renderEntry(p, entries[i], i, innerWidth, active))
	}
	for len(lines) < p.Rows()+1 {
		lines = append(lines, "")
	}

	style := inactiveBorderStyle
	if active {
		style = activeBorderStyle
	}
	return style.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

func (m *model) renderEntry(p *panel.Panel, e listing.Entry, index, width int, active bool) string {
	name := e.Name
	if e.IsDir() {
		name = "/" + name
	}
	line := truncate(fmt.Sprintf("%-5s %s", kindTag(e.Kind), name), width)

	switch {
	case index == p.Selected() && active:
		return selectedActiveStyle.Width(width).Render(line)
	case index == p.Selected():
		return selectedStyle.Width(width).Render(line)
	case e.IsDir():
		return folderStyle.Render(line)
	default:
		return line
	}
}

// renderBar draws the three-line terminal strip: key help, the active input
// buffer, and the transient status message.
func (m *model) renderBar() string {
	help := helpStyle.Render(truncate(
		"F1 copy | F2 paste | F3 rename | F5 delete | tab switch | ctrl+f filter | enter open/run | q quit",
		m.width))

	var input string
	switch m.mode {
	case modeRename:
		input = m.renameInput.View()
	case modeFilter:
		input = m.filterInput.View()
	default:
		input = m.commandInput.View()
	}

	status := statusStyle.Render(truncate(m.statusMsg, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, help, input, status)
}

func kindTag(k listing.Kind) string {
	switch k {
	case listing.KindFolder:
		return "[DIR]"
	case listing.KindText:
		return "[TXT]"
	case listing.KindExecutable:
		return "[EXE]"
	case listing.KindImage:
		return "[IMG]"
	case listing.KindVideo:
		return "[VID]"
	default:
		return "[OTH]"
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
