package session

import (
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/globe"
)

const (
	StartupLatitudeKey  = "startupLatitude"
	StartupLongitudeKey = "startupLongitude"
	StartupAltitudeKey  = "startupAltitude"
	StartupHeadingKey   = "startupHeading"
	StartupTiltKey      = "startupTilt"
	StartupRollKey      = "startupRoll"
)

// SaveViewpoint records the camera so the next session opens where this one
// ended.
func SaveViewpoint(store Store, nav globe.Navigator) error {
	set := func(key string, v float64) {
		store.Set(key, strconv.FormatFloat(v, 'g', -1, 64))
	}
	set(StartupLatitudeKey, nav.Latitude)
	set(StartupLongitudeKey, nav.Longitude)
	set(StartupAltitudeKey, nav.Range)
	set(StartupHeadingKey, nav.Heading)
	set(StartupTiltKey, nav.Tilt)
	set(StartupRollKey, nav.Roll)
	return store.Flush()
}

// RestoreViewpoint reads the saved camera. Values that are missing or not
// numbers fall back to defaults in groups: the location, the altitude and
// the three view angles.
func RestoreViewpoint(store Store, defaults config.Startup, logger *slog.Logger) config.Startup {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	get := func(key string) float64 {
		s, ok := store.Get(key)
		if !ok {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(v, 0) {
			return math.NaN()
		}
		return v
	}

	out := config.Startup{
		Latitude:  get(StartupLatitudeKey),
		Longitude: get(StartupLongitudeKey),
		Altitude:  get(StartupAltitudeKey),
		Heading:   get(StartupHeadingKey),
		Tilt:      get(StartupTiltKey),
		Roll:      get(StartupRollKey),
	}

	if math.IsNaN(out.Latitude) || math.IsNaN(out.Longitude) ||
		math.Abs(out.Latitude) > 90 || math.Abs(out.Longitude) > 180 {
		logger.Warn("previous session location invalid, using default lat/lon")
		out.Latitude, out.Longitude = defaults.Latitude, defaults.Longitude
	}
	if math.IsNaN(out.Altitude) || out.Altitude <= 0 {
		logger.Warn("previous session altitude invalid, using default altitude")
		out.Altitude = defaults.Altitude
	}
	if math.IsNaN(out.Heading) || math.IsNaN(out.Tilt) || math.IsNaN(out.Roll) {
		logger.Warn("previous session view angles invalid, using default view angles")
		out.Heading, out.Tilt, out.Roll = defaults.Heading, defaults.Tilt, defaults.Roll
	}
	return out
}
