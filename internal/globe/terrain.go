package globe

import (
	"fmt"
	"math"
)

// Position is a geographic location with an altitude in meters.
type Position struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Terrain is the ground at a location: elevation in meters, aspect and slope
// in degrees.
type Terrain struct {
	Latitude  float64
	Longitude float64
	Elevation float64
	Aspect    float64
	Slope     float64
}

var (
	ZeroTerrain    = Terrain{}
	InvalidTerrain = Terrain{math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()}
)

// Valid is false when any component is NaN, e.g. a pick above the horizon.
func (t Terrain) Valid() bool {
	return !math.IsNaN(t.Latitude) && !math.IsNaN(t.Longitude) && !math.IsNaN(t.Elevation) &&
		!math.IsNaN(t.Aspect) && !math.IsNaN(t.Slope)
}

// Equals compares component-wise, so an invalid terrain never equals anything.
func (t Terrain) Equals(o Terrain) bool {
	return t.Latitude == o.Latitude && t.Longitude == o.Longitude && t.Elevation == o.Elevation &&
		t.Aspect == o.Aspect && t.Slope == o.Slope
}

func (t Terrain) String() string {
	return fmt.Sprintf("(%g°, %g°, %gm, %g°, %g°)", t.Latitude, t.Longitude, t.Elevation, t.Aspect, t.Slope)
}

// Viewpoint pairs the eye position with the terrain under the crosshairs.
type Viewpoint struct {
	Eye    Position
	Target Terrain
}

var InvalidViewpoint = Viewpoint{
	Eye:    Position{math.NaN(), math.NaN(), math.NaN()},
	Target: InvalidTerrain,
}

func (v Viewpoint) Equals(o Viewpoint) bool {
	return v.Eye == o.Eye && v.Target.Equals(o.Target)
}

func (v Viewpoint) String() string {
	return fmt.Sprintf("(%g°, %g°, %gm, %g°, %g°, %gm, %g°, %g°)",
		v.Eye.Latitude, v.Eye.Longitude, v.Eye.Altitude,
		v.Target.Latitude, v.Target.Longitude, v.Target.Elevation, v.Target.Aspect, v.Target.Slope)
}

// TerrainProvider samples elevation data. Real providers live with the
// rendering engine.
type TerrainProvider interface {
	TerrainAt(latitude, longitude float64) Terrain
}

// FlatTerrain reports sea-level, level ground everywhere.
type FlatTerrain struct{}

func (FlatTerrain) TerrainAt(latitude, longitude float64) Terrain {
	return Terrain{Latitude: latitude, Longitude: longitude}
}
