// Package config holds the explorer's start-up configuration. A Config is
// built once by Load and then only read.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/emxsys/wmt-explorer/internal/layers"
)

//go:embed default.toml
var defaultConfig string

type Config struct {
	Startup Startup           `toml:"startup"`
	Globe   Globe             `toml:"globe"`
	Names   Names             `toml:"names"`
	UI      UIConfig          `toml:"ui"`
	Keys    KeyMappings[Keys] `toml:"keys"`
	Layers  []LayerSpec       `toml:"layers"`
	Scripts map[string]Script `toml:"scripts"`
}

// Startup is the viewpoint the globe opens with and resets to.
type Startup struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Altitude  float64 `toml:"altitude"`
	Heading   float64 `toml:"heading"`
	Tilt      float64 `toml:"tilt"`
	Roll      float64 `toml:"roll"`
}

type Globe struct {
	ShowBackground          bool    `toml:"show_background"`
	ShowReticule            bool    `toml:"show_reticule"`
	ShowViewControls        bool    `toml:"show_view_controls"`
	ShowCompass             bool    `toml:"show_compass"`
	ShowPanControl          bool    `toml:"show_pan_control"`
	ShowExaggerationControl bool    `toml:"show_exaggeration_control"`
	ShowFieldOfViewControl  bool    `toml:"show_field_of_view_control"`
	ViewControlOrientation  string  `toml:"view_control_orientation"`
	ImagePath               string  `toml:"image_path"`
	ImageryDetailHint       float64 `toml:"imagery_detail_hint"`
	NavigatorMaxRange       float64 `toml:"navigator_max_range"`
}

// Names are the display names of the layers the explorer creates itself.
type Names struct {
	Sky          string `toml:"sky"`
	Crosshairs   string `toml:"crosshairs"`
	Compass      string `toml:"compass"`
	ViewControls string `toml:"view_controls"`
	Markers      string `toml:"markers"`
}

type UIConfig struct {
	// AutoRefreshInterval is in seconds; 0 disables refreshing temporal layers.
	AutoRefreshInterval int              `toml:"auto_refresh_interval"`
	ZoomIncrement       float64          `toml:"zoom_increment"`
	// PanIncrement is the distance of one pan step as a fraction of the range.
	PanIncrement        float64          `toml:"pan_increment"`
	Colors              map[string]Color `toml:"colors"`
}

type Color struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Underline bool   `toml:"underline"`
}

// LayerSpec describes an imagery layer added at start-up.
type LayerSpec struct {
	Name       string          `toml:"name"`
	Category   layers.Category `toml:"category"`
	Enabled    *bool           `toml:"enabled"`
	Pickable   *bool           `toml:"pickable"`
	HideInMenu bool            `toml:"hide_in_menu"`
	DetailHint *float64        `toml:"detail_hint"`
	Opacity    *float64        `toml:"opacity"`
	Temporal   bool            `toml:"temporal"`
}

// Options converts the layer spec into registry options. Imagery without its own
// detail hint gets the globe-wide one.
func (s LayerSpec) Options(globe Globe) []layers.Option {
	var opts []layers.Option
	if s.Enabled != nil {
		opts = append(opts, layers.WithEnabled(*s.Enabled))
	}
	if s.Pickable != nil {
		opts = append(opts, layers.WithPickEnabled(*s.Pickable))
	}
	if s.HideInMenu {
		opts = append(opts, layers.HiddenInMenu())
	}
	hint := globe.ImageryDetailHint
	if s.DetailHint != nil {
		hint = *s.DetailHint
	}
	opts = append(opts, layers.WithDetailHint(hint))
	if s.Opacity != nil {
		opts = append(opts, layers.WithOpacity(*s.Opacity))
	}
	if s.Temporal {
		opts = append(opts, layers.Temporal())
	}
	return opts
}

// Script is a Lua snippet the UI runs when one of its keys is pressed.
type Script struct {
	Key Keys   `toml:"key"`
	Lua string `toml:"lua"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c, err := parse(defaultConfig, "")
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults are invalid: %v", err))
	}
	return c
}

// Load reads the built-in defaults and overlays the user file at path, if
// path is not empty and the file exists.
func Load(path string) (*Config, error) {
	var user string
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			user = string(data)
		}
	}
	c, err := parse(defaultConfig, user)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		return nil, err
	}
	return c, nil
}

func parse(defaults, user string) (*Config, error) {
	c := &Config{}
	if _, err := toml.Decode(defaults, c); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	if user != "" {
		var raw map[string]any
		if _, err := toml.Decode(user, &raw); err != nil {
			return nil, err
		}
		// a user layer list replaces the built-in one instead of being merged into it
		if _, ok := raw["layers"]; ok {
			c.Layers = nil
		}
		md, err := toml.Decode(user, c)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	var errs []error
	s := c.Startup
	if math.IsNaN(s.Latitude) || s.Latitude < -90 || s.Latitude > 90 {
		errs = append(errs, fmt.Errorf("startup.latitude %v out of range", s.Latitude))
	}
	if math.IsNaN(s.Longitude) || s.Longitude < -180 || s.Longitude > 180 {
		errs = append(errs, fmt.Errorf("startup.longitude %v out of range", s.Longitude))
	}
	if !(s.Altitude > 0) {
		errs = append(errs, fmt.Errorf("startup.altitude must be positive, got %v", s.Altitude))
	}
	if !(c.UI.ZoomIncrement > 0 && c.UI.ZoomIncrement < 1) {
		errs = append(errs, fmt.Errorf("ui.zoom_increment must be in (0, 1), got %v", c.UI.ZoomIncrement))
	}
	if !(c.UI.PanIncrement > 0 && c.UI.PanIncrement <= 1) {
		errs = append(errs, fmt.Errorf("ui.pan_increment must be in (0, 1], got %v", c.UI.PanIncrement))
	}
	if c.UI.AutoRefreshInterval < 0 {
		errs = append(errs, errors.New("ui.auto_refresh_interval must not be negative"))
	}

	seen := map[string]bool{}
	for _, reserved := range []string{c.Names.Sky, c.Names.Crosshairs, c.Names.Compass, c.Names.ViewControls, c.Names.Markers} {
		seen[reserved] = true
	}
	for i, spec := range c.Layers {
		switch {
		case strings.TrimSpace(spec.Name) == "":
			errs = append(errs, fmt.Errorf("layers[%d]: name is required", i))
		case seen[spec.Name]:
			errs = append(errs, fmt.Errorf("layers[%d]: duplicate layer name %q", i, spec.Name))
		}
		seen[spec.Name] = true
		if spec.Category == layers.Background || spec.Category == layers.Widget {
			errs = append(errs, fmt.Errorf("layers[%d]: %s layers are created by the globe, not configured", i, spec.Category))
		}
		if spec.Opacity != nil && (*spec.Opacity < 0 || *spec.Opacity > 1) {
			errs = append(errs, fmt.Errorf("layers[%d]: opacity %v out of range [0, 1]", i, *spec.Opacity))
		}
	}
	return errors.Join(errs...)
}
