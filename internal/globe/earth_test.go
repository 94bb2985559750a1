package globe

import (
	"math"
	"testing"

	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEarth(t *testing.T) (*Earth, *config.Config) {
	t.Helper()
	cfg := config.Default()
	e, err := New(cfg, OptionsFromConfig(cfg), nil)
	require.NoError(t, err)
	return e, cfg
}

func displayNames(ls []*layers.Layer) []string {
	var out []string
	for _, l := range ls {
		out = append(out, l.DisplayName)
	}
	return out
}

func TestNew_BuildsDefaultLayerStack(t *testing.T) {
	e, _ := newTestEarth(t)

	want := []string{
		"Sky",
		"Blue Marble", "Landsat", "Bing Aerial", "Bing Roads", "OpenStreetMap",
		"Active Fires",
		"Markers",
		"Crosshairs", "Compass", "Controls",
	}
	assert.Equal(t, want, displayNames(e.Registry().RenderOrder()))
	assert.Equal(t, want, displayNames(e.Window().Layers()))

	bmng, ok := e.FindLayer("Blue Marble")
	require.True(t, ok)
	assert.False(t, bmng.ShowInMenu())
	assert.Equal(t, 0.1, bmng.DetailHint())

	roads, ok := e.FindLayer("Bing Roads")
	require.True(t, ok)
	assert.False(t, roads.Enabled())
	assert.Equal(t, 0.7, roads.Opacity())

	markers, ok := e.FindLayer("Markers")
	require.True(t, ok)
	assert.Equal(t, layers.Data, markers.Category())
	assert.Same(t, e.Markers(), markers.Renderable)
}

func TestNew_OptionalFurniture(t *testing.T) {
	cfg := config.Default()
	e, err := New(cfg, Options{}, nil)
	require.NoError(t, err)

	assert.Empty(t, e.Registry().Layers(layers.Background))
	assert.Empty(t, e.Registry().Layers(layers.Widget))
}

func TestNew_ViewControlsFollowOptions(t *testing.T) {
	cfg := config.Default()
	opts := OptionsFromConfig(cfg)
	opts.IncludePanControls = true
	e, err := New(cfg, opts, nil)
	require.NoError(t, err)

	l, ok := e.FindLayer("Controls")
	require.True(t, ok)
	controls := l.Renderable.(*ViewControls)
	assert.True(t, controls.ShowPan)
	assert.False(t, controls.ShowExaggeration)
	assert.Equal(t, "vertical", controls.Orientation)
}

func TestEarth_ResetUsesStartupViewpoint(t *testing.T) {
	e, cfg := newTestEarth(t)
	require.NoError(t, e.LookAt(40, -105, 5000))
	e.Window().Navigator.Heading = 45

	e.Reset()

	nav := e.Navigator()
	assert.Equal(t, cfg.Startup.Latitude, nav.Latitude)
	assert.Equal(t, cfg.Startup.Longitude, nav.Longitude)
	assert.Equal(t, cfg.Startup.Altitude, nav.Range)
	assert.Zero(t, nav.Heading)
}

func TestEarth_LookAtRejectsInvalidLocations(t *testing.T) {
	e, _ := newTestEarth(t)
	before := e.Navigator()

	assert.ErrorIs(t, e.LookAt(math.NaN(), 0, 0), ErrInvalidLocation)
	assert.ErrorIs(t, e.LookAt(0, 181, 0), ErrInvalidLocation)
	assert.Equal(t, before, e.Navigator())

	require.NoError(t, e.LookAt(0, 0, 0))
	assert.Zero(t, e.Navigator().Latitude)
	assert.Equal(t, before.Range, e.Navigator().Range)
}

func TestEarth_ZoomIsClamped(t *testing.T) {
	e, cfg := newTestEarth(t)

	e.Zoom(100)
	assert.Equal(t, cfg.Globe.NavigatorMaxRange, e.Navigator().Range)

	e.Zoom(0.5)
	assert.Equal(t, cfg.Globe.NavigatorMaxRange/2, e.Navigator().Range)

	e.Zoom(-1)
	assert.Equal(t, cfg.Globe.NavigatorMaxRange/2, e.Navigator().Range)
}

func TestEarth_PanWrapsLongitudeAndClampsLatitude(t *testing.T) {
	e, _ := newTestEarth(t)
	require.NoError(t, e.LookAt(80, 170, 0))
	redraws := e.Window().Redraws()

	e.Pan(15, 20)
	assert.Equal(t, 90.0, e.Navigator().Latitude)
	assert.InDelta(t, -170, e.Navigator().Longitude, 1e-9)
	assert.Equal(t, redraws+1, e.Window().Redraws())

	e.Pan(-200, -30)
	assert.Equal(t, -90.0, e.Navigator().Latitude)
	assert.InDelta(t, 160, e.Navigator().Longitude, 1e-9)

	before := e.Navigator()
	e.Pan(math.NaN(), 1)
	assert.Equal(t, before, e.Navigator())
}

func TestEarth_PanTowardFollowsHeading(t *testing.T) {
	e, _ := newTestEarth(t)
	require.NoError(t, e.LookAt(0, 0, metersPerDegree*10))

	e.PanToward(0, 0.1)
	assert.InDelta(t, 1, e.Navigator().Latitude, 1e-9)
	assert.InDelta(t, 0, e.Navigator().Longitude, 1e-9)

	e.Window().Navigator.Heading = 90
	e.PanToward(180, 0.1)
	assert.InDelta(t, 1, e.Navigator().Latitude, 1e-9)
	assert.InDelta(t, -1, e.Navigator().Longitude, 1e-9)
}

func TestEarth_Markers(t *testing.T) {
	e, _ := newTestEarth(t)
	redraws := e.Window().Redraws()

	camp, err := e.AddMarker("Camp", 34.29, -119.29)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Markers().Len())
	assert.Equal(t, redraws+1, e.Window().Redraws())

	_, err = e.AddMarker("Camp", 0, 0)
	assert.ErrorIs(t, err, ErrMarkerExists)
	_, err = e.AddMarker("Nowhere", 91, 0)
	assert.ErrorIs(t, err, ErrInvalidLocation)

	require.NoError(t, e.MoveMarker("Camp", 35, -118))
	assert.Equal(t, 35.0, camp.Latitude)
	assert.Equal(t, -118.0, camp.Longitude)

	camp.Locked = true
	require.NoError(t, e.MoveMarker("Camp", 10, 10))
	assert.Equal(t, 35.0, camp.Latitude)

	assert.ErrorIs(t, e.MoveMarker("Ghost", 0, 0), ErrUnknownMarker)
	assert.ErrorIs(t, e.MoveMarker("Camp", math.NaN(), 0), ErrInvalidLocation)
}

func TestEarth_ResetHeadingAndTiltKeepsTarget(t *testing.T) {
	e, _ := newTestEarth(t)
	require.NoError(t, e.LookAt(35, -118, 20000))
	nav := e.Window().Navigator
	nav.Heading = 90
	nav.Tilt = 30

	e.ResetHeadingAndTilt()

	assert.Zero(t, e.Navigator().Heading)
	assert.Zero(t, e.Navigator().Tilt)
	assert.Equal(t, 35.0, e.Navigator().Latitude)
	assert.Equal(t, 20000.0, e.Navigator().Range)
}

type elevated struct{}

func (elevated) TerrainAt(lat, lon float64) Terrain {
	return Terrain{Latitude: lat, Longitude: lon, Elevation: 500, Aspect: 180, Slope: 12}
}

func TestEarth_Viewpoint(t *testing.T) {
	cfg := config.Default()
	opts := OptionsFromConfig(cfg)
	opts.Terrain = elevated{}
	e, err := New(cfg, opts, nil)
	require.NoError(t, err)

	vp := e.Viewpoint()

	assert.Equal(t, cfg.Startup.Latitude, vp.Target.Latitude)
	assert.Equal(t, 500.0, vp.Target.Elevation)
	assert.Equal(t, cfg.Startup.Altitude+500, vp.Eye.Altitude)
	assert.True(t, vp.Equals(e.Viewpoint()))
	assert.False(t, InvalidViewpoint.Equals(InvalidViewpoint))
}

func TestEarth_RefreshLayersOnlyTouchesTemporal(t *testing.T) {
	e, _ := newTestEarth(t)
	fires, _ := e.FindLayer("Active Fires")
	landsat, _ := e.FindLayer("Landsat")
	redraws := e.Window().Redraws()

	n := e.RefreshLayers()

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, fires.Renderable.(*ImageryLayer).Generation)
	assert.Zero(t, landsat.Renderable.(*ImageryLayer).Generation)
	assert.Equal(t, redraws+1, e.Window().Redraws())
}

func TestTerrain_String(t *testing.T) {
	assert.Equal(t, "(34.29°, -119.29°, 12m, 90°, 5°)", Terrain{34.29, -119.29, 12, 90, 5}.String())
	assert.False(t, InvalidTerrain.Valid())
	assert.True(t, ZeroTerrain.Valid())
}

func TestWindow_InsertAndRemove(t *testing.T) {
	w := NewWindow()
	a, b, c := layers.NewNamedLayer("a"), layers.NewNamedLayer("b"), layers.NewNamedLayer("c")

	w.InsertLayer(0, b)
	w.InsertLayer(0, a)
	w.InsertLayer(10, c)
	w.RemoveLayer(1)
	w.RemoveLayer(7)
	w.Redraw()

	assert.Equal(t, []string{"a", "c"}, displayNames(w.Layers()))
	assert.Equal(t, 1, w.Redraws())
}
