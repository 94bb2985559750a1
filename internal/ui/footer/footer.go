// Package footer renders the viewpoint readout and the key help line at the
// bottom of the screen.
package footer

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
)

// Source is what the footer reads the camera state from.
type Source interface {
	Navigator() globe.Navigator
	Viewpoint() globe.Viewpoint
}

type Model struct {
	*common.ViewNode
	source   Source
	help     help.Model
	bindings []key.Binding
	label    lipgloss.Style
	text     lipgloss.Style
}

func New(source Source, bindings []key.Binding) *Model {
	h := help.New()
	h.Styles.ShortKey = common.DefaultPalette.Get("footer label")
	h.Styles.ShortDesc = common.DefaultPalette.Get("footer text")
	h.Styles.ShortSeparator = common.DefaultPalette.Get("footer dimmed")
	return &Model{
		ViewNode: common.NewViewNode(0, 2),
		source:   source,
		help:     h,
		bindings: bindings,
		label:    common.DefaultPalette.Get("footer label"),
		text:     common.DefaultPalette.Get("footer text"),
	}
}

func (m *Model) View() string {
	m.help.Width = m.Width
	return lipgloss.JoinVertical(lipgloss.Left, m.readout(), m.help.ShortHelpView(m.bindings))
}

func (m *Model) readout() string {
	nav := m.source.Navigator()
	fields := []string{
		m.field("Eye", formatLatitude(nav.Latitude)+" "+formatLongitude(nav.Longitude)),
		m.field("Alt", formatAltitude(nav.Range)),
		m.field("Hdg", fmt.Sprintf("%.0f°", nav.Heading)),
		m.field("Tilt", fmt.Sprintf("%.0f°", nav.Tilt)),
	}
	vp := m.source.Viewpoint()
	if vp.Target.Valid() {
		t := vp.Target
		fields = append(fields,
			m.field("Target", formatLatitude(t.Latitude)+" "+formatLongitude(t.Longitude)),
			m.field("Elev", formatAltitude(t.Elevation)),
			m.field("Slope", fmt.Sprintf("%.0f°", t.Slope)),
			m.field("Aspect", fmt.Sprintf("%.0f°", t.Aspect)),
		)
	} else {
		fields = append(fields, m.field("Target", "-"))
	}
	line := strings.Join(fields, "  ")
	if m.Width > 0 && lipgloss.Width(line) > m.Width {
		line = lipgloss.NewStyle().MaxWidth(m.Width).Render(line)
	}
	return line
}

func (m *Model) field(label, value string) string {
	return m.label.Render(label) + " " + m.text.Render(value)
}

func formatLatitude(lat float64) string {
	hemisphere := "N"
	if lat < 0 {
		hemisphere = "S"
	}
	return fmt.Sprintf("%.4f°%s", math.Abs(lat), hemisphere)
}

func formatLongitude(lon float64) string {
	hemisphere := "E"
	if lon < 0 {
		hemisphere = "W"
	}
	return fmt.Sprintf("%.4f°%s", math.Abs(lon), hemisphere)
}

// formatAltitude switches to kilometers above 10 km.
func formatAltitude(meters float64) string {
	if math.Abs(meters) >= 10_000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}
