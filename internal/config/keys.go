package config

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Keys is the list of key names bound to one action.
type Keys []string

type KeyMappings[T any] struct {
	Up                  T `toml:"up"`
	Down                T `toml:"down"`
	Toggle              T `toml:"toggle"`
	Filter              T `toml:"filter"`
	Cancel              T `toml:"cancel"`
	ZoomIn              T `toml:"zoom_in"`
	ZoomOut             T `toml:"zoom_out"`
	PanUp               T `toml:"pan_up"`
	PanDown             T `toml:"pan_down"`
	PanLeft             T `toml:"pan_left"`
	PanRight            T `toml:"pan_right"`
	ResetHeading        T `toml:"reset_heading"`
	ResetHeadingAndTilt T `toml:"reset_heading_and_tilt"`
	ResetView           T `toml:"reset_view"`
	Refresh             T `toml:"refresh"`
	CopyViewpoint       T `toml:"copy_viewpoint"`
	Help                T `toml:"help"`
	Quit                T `toml:"quit"`
}

func (c *Config) GetKeyMap() KeyMappings[key.Binding] {
	k := c.Keys
	return KeyMappings[key.Binding]{
		Up:                  binding(k.Up, "up"),
		Down:                binding(k.Down, "down"),
		Toggle:              binding(k.Toggle, "toggle layer"),
		Filter:              binding(k.Filter, "filter"),
		Cancel:              binding(k.Cancel, "cancel"),
		ZoomIn:              binding(k.ZoomIn, "zoom in"),
		ZoomOut:             binding(k.ZoomOut, "zoom out"),
		PanUp:               binding(k.PanUp, "pan up"),
		PanDown:             binding(k.PanDown, "pan down"),
		PanLeft:             binding(k.PanLeft, "pan left"),
		PanRight:            binding(k.PanRight, "pan right"),
		ResetHeading:        binding(k.ResetHeading, "north up"),
		ResetHeadingAndTilt: binding(k.ResetHeadingAndTilt, "north up, nadir"),
		ResetView:           binding(k.ResetView, "reset view"),
		Refresh:             binding(k.Refresh, "refresh layers"),
		CopyViewpoint:       binding(k.CopyViewpoint, "copy viewpoint"),
		Help:                binding(k.Help, "help"),
		Quit:                binding(k.Quit, "quit"),
	}
}

// Binding returns the key binding for the script configured under name.
func (s Script) Binding(name string) key.Binding {
	return binding(s.Key, name)
}

func binding(keys Keys, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(displayKeys(keys), desc))
}

func displayKeys(keys Keys) string {
	shown := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		shown = append(shown, k)
	}
	return strings.Join(shown, "/")
}
