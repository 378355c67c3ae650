package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/driftfm/drift/internal/session"
)

var (
	windowStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	bookmarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
)

func (m Model) View() string {
	info := m.session.Snapshot()
	width := m.cfg.Width

	lines := []string{
		statusLine(info, width),
	}
	if time.Now().Before(m.volumeFlashUntil) {
		lines = append(lines, volumeBar(info.Volume, width))
	} else {
		lines = append(lines, progressBar(info, width))
	}
	if !m.cfg.Minimalist {
		lines = append(lines, dimStyle.Render(controlsLine(width)))
	}

	content := strings.Join(lines, "\n")
	if m.cfg.Borderless {
		return content + "\n"
	}
	return windowStyle.Render(content) + "\n"
}

// statusLine renders the state icon, track name, and bookmark marker.
func statusLine(info session.Info, width int) string {
	icon := "▶"
	name := "loading..."
	switch info.State {
	case session.StateLoading:
		icon = "⟳"
	case session.StatePaused:
		icon = "⏸"
	case session.StatePlaying:
		icon = "▶"
	}
	if info.Track != nil {
		name = info.Track.DisplayName
	}

	marker := ""
	if info.Bookmarked {
		marker = " " + bookmarkStyle.Render("♥")
	}

	avail := width - runewidth.StringWidth(icon) - 1
	if info.Bookmarked {
		avail -= 2
	}
	name = runewidth.Truncate(name, avail, "…")

	return fmt.Sprintf("%s %s%s", icon, name, marker)
}

// progressBar renders elapsed time, a filled bar, and the total time.
func progressBar(info session.Info, width int) string {
	elapsed := session.FormatDuration(info.Position)
	total := session.FormatDuration(info.Duration)
	times := fmt.Sprintf("%s/%s", elapsed, total)

	barWidth := width - runewidth.StringWidth(times) - 1
	if barWidth < 4 {
		return times
	}

	filled := 0
	if info.Duration > 0 {
		filled = int(float64(barWidth) * float64(info.Position) / float64(info.Duration))
		if filled > barWidth {
			filled = barWidth
		}
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %s", bar, times)
}

// volumeBar renders the volume level; shown briefly after adjustments.
func volumeBar(volume float64, width int) string {
	label := fmt.Sprintf("%3.0f%%", volume*100)

	barWidth := width - runewidth.StringWidth(label) - 5
	if barWidth < 4 {
		return label
	}

	filled := int(float64(barWidth) * volume)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("vol %s %s", bar, label)
}

func controlsLine(width int) string {
	return runewidth.Truncate("[space] pause  [s] skip  [b] bookmark  [q] quit", width, "…")
}
