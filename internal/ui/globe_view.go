package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/layers"
	"github.com/emxsys/wmt-explorer/internal/marker"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
)

type globeStyles struct {
	title    lipgloss.Style
	category lipgloss.Style
	text     lipgloss.Style
	dimmed   lipgloss.Style
	border   lipgloss.Style
}

func newGlobeStyles() globeStyles {
	return globeStyles{
		title:    common.DefaultPalette.Get("globe title").Padding(0, 1),
		category: common.DefaultPalette.Get("globe category"),
		text:     common.DefaultPalette.Get("globe text"),
		dimmed:   common.DefaultPalette.Get("globe dimmed"),
		border:   common.DefaultPalette.GetBorder("globe border", lipgloss.RoundedBorder()),
	}
}

// renderGlobe lists the render order as the engine draws it, bottom first.
func renderGlobe(earth *globe.Earth, styles globeStyles, width, height int) string {
	innerWidth := max(width-2, 0)
	innerHeight := max(height-2, 0)
	lines := []string{styles.title.Render(fmt.Sprintf("Render order (%d layers, %d redraws)",
		earth.Registry().Len(), earth.Window().Redraws()))}
	for i, l := range earth.Registry().RenderOrder() {
		lines = append(lines, renderLayerLine(styles, i, l))
	}
	if innerHeight > 0 && len(lines) > innerHeight {
		lines = append(lines[:innerHeight-1], styles.dimmed.Render(fmt.Sprintf("… %d more", len(lines)-innerHeight+1)))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	content = lipgloss.NewStyle().MaxWidth(innerWidth).Render(content)
	if innerHeight > 0 {
		content = lipgloss.Place(innerWidth, innerHeight, lipgloss.Left, lipgloss.Top, content)
	}
	return styles.border.Width(innerWidth).Render(content)
}

func renderLayerLine(styles globeStyles, index int, l *layers.Layer) string {
	state, style := "○", styles.dimmed
	if l.Enabled() {
		state, style = "●", styles.text
	}
	line := fmt.Sprintf("%2d %s %-10s %s", index, state, l.Category(), l.DisplayName)
	if l.Opacity() < 1 {
		line += fmt.Sprintf(" (%.0f%%)", l.Opacity()*100)
	}
	if markers, ok := l.Renderable.(*marker.Layer); ok {
		line += fmt.Sprintf(" (%d markers)", markers.Len())
	}
	if l.IsTemporal() {
		line += " ⟳"
	}
	return style.Render(line)
}
