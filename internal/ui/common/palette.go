package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/config"
)

// Palette maps style names such as "menu selected" to lipgloss styles.
// A name that is not defined falls back to its last word, so "footer error"
// resolves to "error" unless it is configured itself.
type Palette struct {
	styles map[string]lipgloss.Style
}

var DefaultPalette = NewPalette()

func NewPalette() *Palette {
	return &Palette{styles: map[string]lipgloss.Style{}}
}

func (p *Palette) Update(colors map[string]config.Color) {
	for name, c := range colors {
		p.styles[name] = createStyle(c)
	}
}

func (p *Palette) Get(selector string) lipgloss.Style {
	if s, ok := p.styles[selector]; ok {
		return s
	}
	if i := strings.LastIndexByte(selector, ' '); i >= 0 {
		return p.Get(selector[i+1:])
	}
	return lipgloss.NewStyle()
}

// GetBorder returns a style drawing border in the foreground colour of selector.
func (p *Palette) GetBorder(selector string, border lipgloss.Border) lipgloss.Style {
	s := p.Get(selector)
	return lipgloss.NewStyle().Border(border).BorderForeground(s.GetForeground())
}

func createStyle(c config.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.Fg != "" {
		s = s.Foreground(lipgloss.Color(c.Fg))
	}
	if c.Bg != "" {
		s = s.Background(lipgloss.Color(c.Bg))
	}
	if c.Bold {
		s = s.Bold(true)
	}
	if c.Underline {
		s = s.Underline(true)
	}
	return s
}
