// Package layermenu is the side panel listing the base, overlay and data
// layers with a checkbox each. It follows the registry through its events, so
// layers added or toggled elsewhere (scripts, start-up wiring) show up without
// a manual refresh.
package layermenu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/layers"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
	"github.com/sahilm/fuzzy"
)

// menuCategories are the categories a user may toggle.
var menuCategories = []layers.Category{layers.Base, layers.Overlay, layers.Data}

type row struct {
	category layers.Category
	// layer is nil for category headers
	layer   *layers.Layer
	matches []int
}

type styles struct {
	title    lipgloss.Style
	category lipgloss.Style
	selected lipgloss.Style
	text     lipgloss.Style
	dimmed   lipgloss.Style
	matched  lipgloss.Style
	border   lipgloss.Style
}

type Model struct {
	*common.ViewNode
	registry    *layers.Registry
	keyMap      config.KeyMappings[key.Binding]
	rows        []row
	cursor      int
	filter      string
	filtering   bool
	filterInput textinput.Model
	unsubscribe func()
	styles      styles
}

func New(registry *layers.Registry, keyMap config.KeyMappings[key.Binding]) *Model {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "filter layers"

	m := &Model{
		ViewNode:    common.NewViewNode(0, 0),
		registry:    registry,
		keyMap:      keyMap,
		filterInput: fi,
		styles: styles{
			title:    common.DefaultPalette.Get("menu title").Padding(0, 1),
			category: common.DefaultPalette.Get("menu category"),
			selected: common.DefaultPalette.Get("menu selected"),
			text:     common.DefaultPalette.Get("menu text"),
			dimmed:   common.DefaultPalette.Get("menu dimmed"),
			matched:  common.DefaultPalette.Get("menu matched"),
			border:   common.DefaultPalette.GetBorder("menu border", lipgloss.RoundedBorder()),
		},
	}
	m.filterInput.PromptStyle = m.styles.matched
	m.unsubscribe = registry.Subscribe(m.handleEvent)
	m.rebuild()
	return m
}

func (m *Model) handleEvent(e layers.Event) {
	switch e.(type) {
	case layers.LayerAdded, layers.LayerRemoved:
		m.rebuild()
	}
}

// Close stops following the registry.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) IsFiltering() bool {
	return m.filtering
}

// Selected returns the layer under the cursor, or nil when the menu is empty.
func (m *Model) Selected() *layers.Layer {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].layer
}

// Visible returns the layers currently listed, in menu order.
func (m *Model) Visible() []*layers.Layer {
	var out []*layers.Layer
	for _, r := range m.rows {
		if r.layer != nil {
			out = append(out, r.layer)
		}
	}
	return out
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.filtering {
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return cmd
		}
		return nil
	}
	if m.filtering {
		return m.updateFilter(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keyMap.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keyMap.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keyMap.Toggle):
		return m.toggleSelected()
	case key.Matches(keyMsg, m.keyMap.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.filter)
		m.filterInput.CursorEnd()
		return m.filterInput.Focus()
	case key.Matches(keyMsg, m.keyMap.Cancel):
		if m.filter != "" {
			m.setFilter("")
		}
	}
	return nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.filtering = false
		m.filterInput.Blur()
		m.setFilter("")
		return nil
	case msg.Type == tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return nil
	case msg.Type == tea.KeyUp:
		m.move(-1)
		return nil
	case msg.Type == tea.KeyDown:
		m.move(1)
		return nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if v := m.filterInput.Value(); v != m.filter {
		m.setFilter(v)
	}
	return cmd
}

func (m *Model) toggleSelected() tea.Cmd {
	l := m.Selected()
	if l == nil {
		return nil
	}
	if err := m.registry.ToggleLayer(l); err != nil {
		return common.CommandCompleted("", err)
	}
	return nil
}

func (m *Model) setFilter(filter string) {
	m.filter = filter
	m.rebuild()
}

// move steps the cursor over layer rows, skipping headers.
func (m *Model) move(delta int) {
	for i := m.cursor + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].layer != nil {
			m.cursor = i
			return
		}
	}
}

func (m *Model) rebuild() {
	selected := m.Selected()
	m.rows = m.rows[:0]
	for _, category := range menuCategories {
		candidates := m.registry.MenuLayers(category)
		var matched []row
		if m.filter == "" {
			for _, l := range candidates {
				matched = append(matched, row{category: category, layer: l})
			}
		} else {
			names := make([]string, len(candidates))
			for i, l := range candidates {
				names[i] = l.DisplayName
			}
			hits := map[int][]int{}
			for _, match := range fuzzy.Find(m.filter, names) {
				hits[match.Index] = match.MatchedIndexes
			}
			for i, l := range candidates {
				if indexes, ok := hits[i]; ok {
					matched = append(matched, row{category: category, layer: l, matches: indexes})
				}
			}
		}
		if len(matched) == 0 {
			continue
		}
		m.rows = append(m.rows, row{category: category})
		m.rows = append(m.rows, matched...)
	}

	m.cursor = -1
	for i, r := range m.rows {
		if r.layer == nil {
			continue
		}
		if m.cursor < 0 || r.layer == selected {
			m.cursor = i
		}
		if r.layer == selected {
			break
		}
	}
}

func (m *Model) View() string {
	innerWidth := max(m.Width-2, 0)
	lines := []string{m.styles.title.Render("Layers")}
	switch {
	case m.filtering:
		m.filterInput.Width = max(innerWidth-2, 1)
		lines = append(lines, m.filterInput.View())
	case m.filter != "":
		lines = append(lines, m.styles.dimmed.Render("filter: ")+m.styles.matched.Render(m.filter))
	}

	body := m.renderRows(innerWidth)
	if len(body) == 0 {
		body = []string{m.styles.dimmed.Render("No layers")}
	}
	if m.Height > 0 {
		available := max(m.Height-2-len(lines), 1)
		body = window(body, m.cursor, available)
	}
	lines = append(lines, body...)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.Height > 2 {
		content = lipgloss.Place(innerWidth, m.Height-2, lipgloss.Left, lipgloss.Top, content)
	}
	return m.styles.border.Width(innerWidth).Render(content)
}

func (m *Model) renderRows(width int) []string {
	out := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		if r.layer == nil {
			out = append(out, m.styles.category.Render(r.category.String()))
			continue
		}
		check := "[ ]"
		style := m.styles.dimmed
		if r.layer.Enabled() {
			check = "[x]"
			style = m.styles.text
		}
		name := truncate(r.layer.DisplayName, width-5)
		if i == m.cursor {
			out = append(out, m.styles.selected.Width(width).Render(fmt.Sprintf(" %s %s", check, name)))
			continue
		}
		if len(r.matches) > 0 {
			name = lipgloss.StyleRunes(name, r.matches, m.styles.matched, style)
		} else {
			name = style.Render(name)
		}
		out = append(out, " "+style.Render(check)+" "+name)
	}
	return out
}

// window returns at most height lines of lines, scrolled so that line focus
// stays visible.
func window(lines []string, focus, height int) []string {
	if len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	return lines[start : start+height]
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return strings.TrimRight(string(r), " ") + "…"
}
