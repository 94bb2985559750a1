package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/session"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
	"github.com/emxsys/wmt-explorer/internal/ui/flash"
	"github.com/emxsys/wmt-explorer/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	model   *Model
	earth   *globe.Earth
	cfg     *config.Config
	store   session.MemoryStore
	copied  []string
	clipErr error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	earth, err := globe.New(cfg, globe.OptionsFromConfig(cfg), nil)
	require.NoError(t, err)
	f := &fixture{earth: earth, cfg: cfg, store: session.MemoryStore{}}
	f.model = NewUI(cfg, earth, Options{
		Session: f.store,
		Clipboard: func(s string) error {
			if f.clipErr != nil {
				return f.clipErr
			}
			f.copied = append(f.copied, s)
			return nil
		},
	})
	f.model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return f
}

// keys sends key presses and returns every message the model produced in
// response, without running timers.
func (f *fixture) keys(names ...string) []tea.Msg {
	var produced []tea.Msg
	for _, name := range names {
		produced = append(produced, test.Collect(f.model.Update(test.KeyMsg(name)))...)
	}
	return produced
}

func flashTexts(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if m, ok := msg.(flash.AddMessage); ok {
			if m.Err != nil {
				out = append(out, "error: "+m.Err.Error())
			} else {
				out = append(out, m.Text)
			}
		}
	}
	return out
}

func TestLayout(t *testing.T) {
	f := newFixture(t)
	m := f.model

	assert.Equal(t, 32, m.layerMenu.Width)
	assert.Equal(t, 28, m.layerMenu.Height)
	assert.Equal(t, 28, m.footer.Frame.Min.Y)
	assert.Equal(t, 120, m.flash.Width)
}

func TestView_ShowsMenuRenderOrderAndFooter(t *testing.T) {
	f := newFixture(t)

	view := f.model.View()

	assert.Contains(t, view, "Layers")
	assert.Contains(t, view, "[ ] Landsat")
	assert.Contains(t, view, "[x] OpenStreetMap")
	assert.Contains(t, view, "Render order (11 layers")
	assert.Contains(t, view, " 0 ● Background Sky")
	assert.Contains(t, view, "Bing Roads (70%)")
	assert.Contains(t, view, "Eye 34.2900°N 119.2900°W")
}

func TestView_CountsMarkers(t *testing.T) {
	f := newFixture(t)
	_, err := f.earth.AddMarker("Camp", 34.29, -119.29)
	require.NoError(t, err)
	_, err = f.earth.AddMarker("Lookout", 34.5, -119.1)
	require.NoError(t, err)

	assert.Contains(t, f.model.View(), "Markers (2 markers)")
}

func TestPanKeys(t *testing.T) {
	f := newFixture(t)
	start := f.earth.Navigator()

	f.keys("w")
	assert.Greater(t, f.earth.Navigator().Latitude, start.Latitude)
	assert.InDelta(t, start.Longitude, f.earth.Navigator().Longitude, 1e-9)

	f.keys("s", "d")
	assert.InDelta(t, start.Latitude, f.earth.Navigator().Latitude, 1e-9)
	assert.Greater(t, f.earth.Navigator().Longitude, start.Longitude)

	f.keys("left", "shift+up", "shift+down")
	assert.InDelta(t, start.Latitude, f.earth.Navigator().Latitude, 1e-9)
	assert.InDelta(t, start.Longitude, f.earth.Navigator().Longitude, 1e-9)
	assert.Equal(t, start.Range, f.earth.Navigator().Range)

	landsat, _ := f.earth.FindLayer("Landsat")
	f.keys("down", " ")
	assert.False(t, landsat.Enabled(), "arrow keys still move the menu cursor")
}

func TestZoomKeys(t *testing.T) {
	f := newFixture(t)
	start := f.earth.Navigator().Range

	f.keys("+")
	assert.InDelta(t, start*(1-f.cfg.UI.ZoomIncrement), f.earth.Navigator().Range, 1e-6)

	f.keys("-")
	assert.InDelta(t, start*(1-f.cfg.UI.ZoomIncrement)*(1+f.cfg.UI.ZoomIncrement), f.earth.Navigator().Range, 1e-6)
}

func TestResetKeys(t *testing.T) {
	f := newFixture(t)
	start := f.earth.Navigator()
	f.earth.Window().Navigator.Heading = 45
	f.earth.Window().Navigator.Tilt = 30

	f.keys("n")
	assert.Zero(t, f.earth.Navigator().Heading)
	assert.Equal(t, 30.0, f.earth.Navigator().Tilt)

	f.keys("r")
	assert.Zero(t, f.earth.Navigator().Tilt)

	require.NoError(t, f.earth.LookAt(10, 10, 5000))
	f.keys("home")
	assert.Equal(t, start, f.earth.Navigator())
}

func TestToggleFromMenu(t *testing.T) {
	f := newFixture(t)
	landsat, _ := f.earth.FindLayer("Landsat")
	redraws := f.earth.Window().Redraws()

	f.keys(" ")

	assert.True(t, landsat.Enabled())
	assert.Equal(t, redraws+1, f.earth.Window().Redraws())
	assert.Contains(t, f.model.View(), "[x] Landsat")
}

func TestFilteringCapturesKeys(t *testing.T) {
	f := newFixture(t)
	start := f.earth.Navigator()

	f.keys("/", "+", "q")

	assert.True(t, f.model.layerMenu.IsFiltering())
	assert.Equal(t, start, f.earth.Navigator(), "typed into the filter, not zoomed")
	assert.False(t, f.model.quitting)

	f.keys("esc")
	assert.False(t, f.model.layerMenu.IsFiltering())
}

func TestRefreshKey(t *testing.T) {
	f := newFixture(t)
	fires, _ := f.earth.FindLayer("Active Fires")

	msgs := f.keys("ctrl+r")

	assert.Equal(t, []string{"Refreshed 1 temporal layer(s)"}, flashTexts(msgs))
	assert.Equal(t, 1, fires.Renderable.(*globe.ImageryLayer).Generation)
}

func TestAutoRefresh(t *testing.T) {
	f := newFixture(t)
	fires, _ := f.earth.FindLayer("Active Fires")

	assert.Nil(t, f.model.scheduleAutoRefresh(), "disabled by default")

	f.model.Update(common.AutoRefreshMsg{})
	assert.Equal(t, 1, fires.Renderable.(*globe.ImageryLayer).Generation)

	f.cfg.UI.AutoRefreshInterval = 60
	assert.NotNil(t, f.model.scheduleAutoRefresh())
}

func TestCopyViewpoint(t *testing.T) {
	f := newFixture(t)

	msgs := f.keys("y")

	require.Len(t, f.copied, 1)
	assert.Equal(t, f.earth.Viewpoint().String(), f.copied[0])
	assert.Equal(t, []string{"Copied " + f.copied[0]}, flashTexts(msgs))

	f.clipErr = errors.New("no clipboard")
	msgs = f.keys("y")
	assert.Equal(t, []string{"error: copy viewpoint: no clipboard"}, flashTexts(msgs))
}

func TestScriptKey(t *testing.T) {
	f := newFixture(t)

	msgs := f.keys("f")

	fires, _ := f.earth.FindLayer("Active Fires")
	landsat, _ := f.earth.FindLayer("Landsat")
	assert.True(t, fires.Enabled())
	assert.True(t, landsat.Enabled())
	assert.Equal(t, []string{"fire season imagery on"}, flashTexts(msgs))
	assert.Contains(t, f.model.View(), "[x] Landsat", "menu follows script changes")
}

func TestFailingScriptFlashesError(t *testing.T) {
	f := newFixture(t)
	f.model.scripts = []script{{name: "broken", binding: f.cfg.Scripts["fire-season"].Binding("broken"), lua: `layers.toggle("Nope")`}}

	msgs := f.keys("f")

	texts := flashTexts(msgs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "error: broken: lua:")
	assert.Contains(t, texts[0], `unknown layer "Nope"`)
}

func TestCancelDismissesOldestFlash(t *testing.T) {
	f := newFixture(t)
	test.SimulateModel(f.model, tea.Sequence(
		flash.Cmd(flash.AddMessage{Err: errors.New("first failure")}),
		flash.Cmd(flash.AddMessage{Err: errors.New("second failure")}),
	))
	require.True(t, f.model.flash.Any())

	f.keys("esc")
	view := f.model.View()
	assert.NotContains(t, view, "first failure")
	assert.Contains(t, view, "second failure")

	f.keys("esc")
	assert.False(t, f.model.flash.Any())

	f.keys("/", "esc")
	assert.False(t, f.model.layerMenu.IsFiltering(), "with no flash, cancel reaches the menu")
}

func TestFlashMessagesAreOverlaid(t *testing.T) {
	f := newFixture(t)

	test.SimulateModel(f.model, flash.Cmd(flash.AddMessage{Text: "hello there", NoTimeout: true}))

	assert.Contains(t, f.model.View(), "hello there")
}

func TestQuitSavesViewpoint(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.earth.LookAt(40, -105, 5000))

	msgs := f.keys("q")

	assert.Contains(t, msgs, tea.Msg(tea.QuitMsg{}))
	assert.Equal(t, "40", f.store["startupLatitude"])
	assert.Equal(t, "-105", f.store["startupLongitude"])
	assert.Equal(t, "5000", f.store["startupAltitude"])
	assert.Empty(t, f.model.View())

	restored := session.RestoreViewpoint(f.store, f.cfg.Startup, nil)
	assert.Equal(t, 40.0, restored.Latitude)
}

func TestOverlay(t *testing.T) {
	base := "aaaaaa\nbbbbbb\ncccccc"
	boxes := []flash.Box{{Content: "XY"}}
	boxes[0].Rect.Min.X, boxes[0].Rect.Min.Y = 4, 1

	assert.Equal(t, "aaaaaa\nbbbbXY\ncccccc", overlay(base, boxes))
	assert.Equal(t, base, overlay(base, nil))
}

func TestWrapper_RendersOnFrameTick(t *testing.T) {
	f := newFixture(t)
	w := &wrapper{ui: f.model}

	assert.Empty(t, w.View())
	_, cmd := w.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	assert.NotNil(t, cmd)
	w.Update(frameTickMsg{})

	assert.Contains(t, w.View(), "Render order")
}

func TestHelpPage(t *testing.T) {
	f := newFixture(t)

	f.keys("?")
	require.NotNil(t, f.model.help)
	assert.Contains(t, f.model.View(), "north up, nadir")

	start := f.earth.Navigator()
	f.keys("+")
	assert.Equal(t, start, f.earth.Navigator(), "keys go to the help page while it is open")

	test.SimulateModel(f.model, test.Keys("esc"))
	assert.Nil(t, f.model.help)
	assert.Contains(t, f.model.View(), "Render order")
}
