package common

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestPalette_Get(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{
		"error":         {Fg: "1"},
		"menu selected": {Fg: "0", Bg: "6", Bold: true},
	})

	selected := p.Get("menu selected")
	assert.Equal(t, lipgloss.Color("0"), selected.GetForeground())
	assert.Equal(t, lipgloss.Color("6"), selected.GetBackground())
	assert.True(t, selected.GetBold())

	assert.Equal(t, lipgloss.Color("1"), p.Get("footer error").GetForeground(), "falls back to the last word")
	assert.Equal(t, lipgloss.NewStyle().GetForeground(), p.Get("unknown").GetForeground())
}

func TestPalette_GetBorder(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{"menu border": {Fg: "8"}})

	s := p.GetBorder("menu border", lipgloss.RoundedBorder())

	assert.Equal(t, lipgloss.Color("8"), s.GetBorderTopForeground())
	assert.Equal(t, lipgloss.RoundedBorder(), s.GetBorderStyle())
}

func TestViewNode_SetSizeKeepsOrigin(t *testing.T) {
	v := NewViewNode(10, 5)
	v.Frame.Min.X, v.Frame.Min.Y = 3, 4
	v.SetSize(20, 2)

	assert.Equal(t, 20, v.Width)
	assert.Equal(t, 2, v.Height)
	x, y := v.ToLocal(5, 4)
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}
