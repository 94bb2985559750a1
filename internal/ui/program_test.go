package ui

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_ZoomThenQuitSavesSession(t *testing.T) {
	cfg := config.Default()
	earth, err := globe.New(cfg, globe.OptionsFromConfig(cfg), nil)
	require.NoError(t, err)
	store := session.MemoryStore{}
	model := New(cfg, earth, Options{Session: store, Clipboard: func(string) error { return nil }})

	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(120, 30))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Render order"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	saved, err := strconv.ParseFloat(store[session.StartupAltitudeKey], 64)
	require.NoError(t, err)
	assert.InDelta(t, cfg.Startup.Altitude*(1-cfg.UI.ZoomIncrement), saved, 1e-6)
	assert.Equal(t, "34.29", store[session.StartupLatitudeKey])
}
