package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240"))

var (
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const helpText = "space: play/pause  o: open  p: play  s: pause  l: loop  q: quit"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderBar())
	b.WriteString("\n")

	if m.entering {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("enter: play  esc: cancel"))
	} else {
		b.WriteString(subtleStyle.Render(helpText))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.errMsg))
	}

	return b.String()
}

func (m Model) renderBar() string {
	status := "⏸ paused"
	if m.player.IsPlaying() {
		status = activeStyle.Render("▶ playing")
	}

	loop := subtleStyle.Render("loop off")
	if m.player.Loop() {
		loop = activeStyle.Render("loop on")
	}

	content := fmt.Sprintf(" %s  %s  %s ", status, loop, m.trackLabel())

	innerWidth := max(m.width-2, lipgloss.Width(content))
	return barStyle.Width(innerWidth).Render(content)
}

func (m Model) trackLabel() string {
	src := m.player.Source()
	if src == "" {
		return subtleStyle.Render("no source")
	}

	if info := m.player.TrackInfo(); info != nil {
		label := info.Title
		if info.Artist != "" {
			label = info.Artist + " - " + label
		}
		return label
	}
	return filepath.Base(src)
}
