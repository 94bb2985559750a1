// Package globe assembles the explorer's globe: the engine window, the layer
// registry and the layers every session starts with.
package globe

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/layers"
	"github.com/emxsys/wmt-explorer/internal/marker"
)

var (
	ErrInvalidLocation = errors.New("invalid latitude and/or longitude")
	ErrMarkerExists    = errors.New("marker name already used")
	ErrUnknownMarker   = errors.New("unknown marker")
)

// metersPerDegree is the length of a degree of latitude on the globe's sphere.
const metersPerDegree = 111_320.0

// Options selects the optional furniture of the globe.
type Options struct {
	ShowBackground              bool
	ShowReticule                bool
	ShowViewControls            bool
	ShowCompass                 bool
	IncludePanControls          bool
	IncludeRotateControls       bool
	IncludeTiltControls         bool
	IncludeZoomControls         bool
	IncludeExaggerationControls bool
	IncludeFieldOfViewControls  bool
	Terrain                     TerrainProvider
}

// OptionsFromConfig mirrors the [globe] section.
func OptionsFromConfig(cfg *config.Config) Options {
	g := cfg.Globe
	return Options{
		ShowBackground:              g.ShowBackground,
		ShowReticule:                g.ShowReticule,
		ShowViewControls:            g.ShowViewControls,
		ShowCompass:                 g.ShowCompass,
		IncludePanControls:          g.ShowPanControl,
		IncludeRotateControls:       true,
		IncludeTiltControls:         true,
		IncludeZoomControls:         true,
		IncludeExaggerationControls: g.ShowExaggerationControl,
		IncludeFieldOfViewControls:  g.ShowFieldOfViewControl,
	}
}

type Earth struct {
	cfg      *config.Config
	window   *Window
	registry *layers.Registry
	markers  *marker.Layer
	terrain  TerrainProvider
	logger   *slog.Logger
}

// New builds the globe and adds the background, widget, marker and
// configured imagery layers.
func New(cfg *config.Config, opts Options, logger *slog.Logger) (*Earth, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	terrain := opts.Terrain
	if terrain == nil {
		terrain = FlatTerrain{}
	}
	window := NewWindow()
	e := &Earth{
		cfg:      cfg,
		window:   window,
		registry: layers.New(window, logger.With("component", "layers")),
		markers:  marker.NewLayer(cfg.Names.Markers),
		terrain:  terrain,
		logger:   logger,
	}
	if err := e.addDefaultLayers(opts); err != nil {
		return nil, err
	}
	e.markers.Subscribe(func(ev marker.Event) {
		e.logger.Debug("marker event", "event", ev.Kind, "marker", ev.Marker.Name)
		e.window.Redraw()
	})
	e.Reset()
	return e, nil
}

func (e *Earth) addDefaultLayers(opts Options) error {
	names := e.cfg.Names
	r := e.registry
	var errs []error

	if opts.ShowBackground {
		sky := &SkyBackground{Name: names.Sky, TopColor: "#001a3a", BottomColor: "#2a5a8a"}
		errs = append(errs, r.AddBackgroundLayer(layers.NewLayer(sky)))
	}

	for _, spec := range e.cfg.Layers {
		l := layers.NewLayer(&ImageryLayer{Name: spec.Name})
		errs = append(errs, r.Add(spec.Category, l, spec.Options(e.cfg.Globe)...))
	}

	errs = append(errs, r.AddDataLayer(layers.NewLayer(e.markers), layers.WithEnabled(true), layers.WithPickEnabled(true)))

	if opts.ShowReticule {
		errs = append(errs, r.AddWidgetLayer(layers.NewLayer(&Crosshairs{Name: names.Crosshairs})))
	}
	if opts.ShowCompass {
		compass := &Compass{Name: names.Compass, ImagePath: imageFile(e.cfg.Globe.ImagePath, "notched-compass.png")}
		errs = append(errs, r.AddWidgetLayer(layers.NewLayer(compass)))
	}
	if opts.ShowViewControls {
		controls := &ViewControls{
			Name:             names.ViewControls,
			Orientation:      e.cfg.Globe.ViewControlOrientation,
			ShowPan:          opts.IncludePanControls,
			ShowHeading:      opts.IncludeRotateControls,
			ShowTilt:         opts.IncludeTiltControls,
			ShowZoom:         opts.IncludeZoomControls,
			ShowExaggeration: opts.IncludeExaggerationControls,
			ShowFieldOfView:  opts.IncludeFieldOfViewControls,
		}
		errs = append(errs, r.AddWidgetLayer(layers.NewLayer(controls)))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("building globe layers: %w", err)
	}
	return nil
}

func (e *Earth) Registry() *layers.Registry { return e.registry }
func (e *Earth) Window() *Window            { return e.window }
func (e *Earth) Markers() *marker.Layer     { return e.markers }

// FindLayer looks a layer up by display name.
func (e *Earth) FindLayer(name string) (*layers.Layer, bool) {
	return e.registry.FindLayer(name)
}

// RefreshLayers reloads the temporal layers and returns how many were refreshed.
func (e *Earth) RefreshLayers() int {
	n := e.registry.RefreshTemporal()
	if n > 0 {
		e.logger.Info("refreshed temporal layers", "count", n)
	}
	return n
}

// Reset returns to the configured start-up viewpoint.
func (e *Earth) Reset() {
	e.GoTo(e.cfg.Startup)
}

// GoTo applies a complete viewpoint, e.g. one restored from a session.
func (e *Earth) GoTo(s config.Startup) {
	nav := e.window.Navigator
	nav.Latitude = s.Latitude
	nav.Longitude = s.Longitude
	nav.Range = e.clampRange(s.Altitude)
	nav.Heading = s.Heading
	nav.Tilt = s.Tilt
	nav.Roll = s.Roll
	e.window.Redraw()
}

// ResetHeading turns the view north up.
func (e *Earth) ResetHeading() {
	e.window.Navigator.Heading = 0
	e.window.Redraw()
}

// ResetHeadingAndTilt turns the view north up and looks straight down,
// keeping the crosshairs on the same target.
func (e *Earth) ResetHeadingAndTilt() {
	target := e.Viewpoint().Target
	e.window.Navigator.Heading = 0
	e.window.Navigator.Tilt = 0
	e.window.Redraw()
	if target.Valid() {
		_ = e.LookAt(target.Latitude, target.Longitude, 0)
	}
}

// LookAt centres the view on a location. A non-positive rng keeps the
// current range.
func (e *Earth) LookAt(latitude, longitude, rng float64) error {
	if !validLocation(latitude, longitude) {
		e.logger.Error("look at rejected", "latitude", latitude, "longitude", longitude)
		return fmt.Errorf("look at (%v, %v): %w", latitude, longitude, ErrInvalidLocation)
	}
	nav := e.window.Navigator
	nav.Latitude = latitude
	nav.Longitude = longitude
	if rng > 0 {
		nav.Range = e.clampRange(rng)
	}
	e.window.Redraw()
	return nil
}

func validLocation(latitude, longitude float64) bool {
	return !math.IsNaN(latitude) && !math.IsNaN(longitude) &&
		latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

// AddMarker places a new marker on the Markers layer. Marker names are unique.
func (e *Earth) AddMarker(name string, latitude, longitude float64) (*marker.Marker, error) {
	if !validLocation(latitude, longitude) {
		return nil, fmt.Errorf("add marker %q at (%v, %v): %w", name, latitude, longitude, ErrInvalidLocation)
	}
	if _, ok := e.markers.Find(name); ok {
		return nil, fmt.Errorf("add marker %q: %w", name, ErrMarkerExists)
	}
	m := marker.New(name, latitude, longitude)
	e.markers.Add(m)
	return m, nil
}

// FindMarker looks a marker up by name.
func (e *Earth) FindMarker(name string) (*marker.Marker, error) {
	m, ok := e.markers.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMarker, name)
	}
	return m, nil
}

// MoveMarker drags the named marker to a new location. Locked markers stay
// where they are.
func (e *Earth) MoveMarker(name string, latitude, longitude float64) error {
	m, err := e.FindMarker(name)
	if err != nil {
		return err
	}
	if !validLocation(latitude, longitude) {
		return fmt.Errorf("move marker %q to (%v, %v): %w", name, latitude, longitude, ErrInvalidLocation)
	}
	var mover marker.Movable = m
	mover.MoveStarted()
	mover.MoveTo(latitude, longitude)
	mover.MoveFinished()
	return nil
}

// Pan moves the look-at location by the given degrees. Latitude stops at
// the poles and longitude wraps around the antimeridian.
func (e *Earth) Pan(dLat, dLon float64) {
	if math.IsNaN(dLat) || math.IsNaN(dLon) || math.IsInf(dLat, 0) || math.IsInf(dLon, 0) {
		return
	}
	nav := e.window.Navigator
	nav.Latitude = min(max(nav.Latitude+dLat, -90), 90)
	nav.Longitude = wrapLongitude(nav.Longitude + dLon)
	e.window.Redraw()
}

// PanToward moves the look-at location by fraction of the current range,
// along bearing degrees clockwise from the view heading.
func (e *Earth) PanToward(bearing, fraction float64) {
	nav := e.window.Navigator
	degrees := fraction * nav.Range / metersPerDegree
	rad := (nav.Heading + bearing) * math.Pi / 180
	e.Pan(degrees*math.Cos(rad), degrees*math.Sin(rad))
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// Zoom multiplies the range by factor; factors below 1 move closer.
func (e *Earth) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	e.window.Navigator.Range = e.clampRange(e.window.Navigator.Range * factor)
	e.window.Redraw()
}

func (e *Earth) clampRange(rng float64) float64 {
	maxRange := e.cfg.Globe.NavigatorMaxRange
	if maxRange > 0 && rng > maxRange {
		return maxRange
	}
	return max(rng, 1)
}

// Navigator exposes the current camera state.
func (e *Earth) Navigator() Navigator {
	return *e.window.Navigator
}

// Viewpoint reports the eye position and the terrain under the crosshairs.
func (e *Earth) Viewpoint() Viewpoint {
	nav := e.window.Navigator
	target := e.terrain.TerrainAt(nav.Latitude, nav.Longitude)
	if !target.Valid() {
		return InvalidViewpoint
	}
	return Viewpoint{
		Eye:    Position{Latitude: nav.Latitude, Longitude: nav.Longitude, Altitude: target.Elevation + nav.Range},
		Target: target,
	}
}
