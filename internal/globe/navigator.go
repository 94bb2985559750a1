package globe

// Navigator is the look-at camera: a surface location, the eye distance from
// it and the camera orientation in degrees.
type Navigator struct {
	Latitude  float64
	Longitude float64
	Range     float64
	Heading   float64
	Tilt      float64
	Roll      float64
}
