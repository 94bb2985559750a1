// Package helppage is the full key reference shown over the globe panel.
package helppage

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
)

type Model struct {
	*common.ViewNode
	keyMap  config.KeyMappings[key.Binding]
	scripts []key.Binding
	styles  styles
}

type styles struct {
	border   lipgloss.Style
	title    lipgloss.Style
	text     lipgloss.Style
	shortcut lipgloss.Style
	dimmed   lipgloss.Style
}

func (h *Model) Init() tea.Cmd {
	return nil
}

func (h *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, h.keyMap.Help), key.Matches(msg, h.keyMap.Cancel):
			return common.Close
		}
	}
	return nil
}

func (h *Model) printKeyBinding(k key.Binding) string {
	if !k.Enabled() {
		return ""
	}
	return h.printKey(k.Help().Key, k.Help().Desc)
}

func (h *Model) printKey(key string, desc string) string {
	keyAligned := fmt.Sprintf("%12s", key)
	return lipgloss.JoinHorizontal(0, h.styles.shortcut.Render(keyAligned), h.styles.dimmed.Render(desc))
}

func (h *Model) printTitle(header string) string {
	return lipgloss.JoinHorizontal(0, h.styles.shortcut.Render(fmt.Sprintf("%12s", "")), h.styles.title.Render(header))
}

func (h *Model) column(lines ...string) string {
	var kept []string
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, kept...)
}

func (h *Model) View() string {
	k := h.keyMap
	left := h.column(
		h.printTitle("Layers"),
		h.printKeyBinding(k.Up),
		h.printKeyBinding(k.Down),
		h.printKeyBinding(k.Toggle),
		h.printKeyBinding(k.Filter),
		h.printKeyBinding(k.Cancel),
		h.printKeyBinding(k.Refresh),
	)
	middle := h.column(
		h.printTitle("Globe"),
		h.printKeyBinding(k.ZoomIn),
		h.printKeyBinding(k.ZoomOut),
		h.printKeyBinding(k.PanUp),
		h.printKeyBinding(k.PanDown),
		h.printKeyBinding(k.PanLeft),
		h.printKeyBinding(k.PanRight),
		h.printKeyBinding(k.ResetHeading),
		h.printKeyBinding(k.ResetHeadingAndTilt),
		h.printKeyBinding(k.ResetView),
		h.printKeyBinding(k.CopyViewpoint),
	)
	rightLines := []string{
		h.printTitle("UI"),
		h.printKeyBinding(k.Help),
		h.printKeyBinding(k.Quit),
	}
	if len(h.scripts) > 0 {
		rightLines = append(rightLines, h.printTitle("Scripts"))
		for _, s := range h.scripts {
			rightLines = append(rightLines, h.printKeyBinding(s))
		}
	}
	right := h.column(rightLines...)

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", middle, "  ", right)
	return h.styles.border.Render(content)
}

func New(keyMap config.KeyMappings[key.Binding], scripts []key.Binding) *Model {
	return &Model{
		ViewNode: common.NewViewNode(0, 0),
		keyMap:   keyMap,
		scripts:  scripts,
		styles: styles{
			border:   common.DefaultPalette.GetBorder("help border", lipgloss.RoundedBorder()).Padding(1),
			title:    common.DefaultPalette.Get("help title").PaddingLeft(1),
			text:     common.DefaultPalette.Get("help text"),
			dimmed:   common.DefaultPalette.Get("help dimmed").PaddingLeft(1),
			shortcut: common.DefaultPalette.Get("help shortcut"),
		},
	}
}
