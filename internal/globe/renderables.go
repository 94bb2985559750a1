package globe

import "path"

// SkyBackground paints the gradient behind the globe.
type SkyBackground struct {
	Name        string
	TopColor    string
	BottomColor string
}

func (s *SkyBackground) DisplayName() string { return s.Name }

// Crosshairs marks the look-at point in the middle of the view.
type Crosshairs struct {
	Name string
}

func (c *Crosshairs) DisplayName() string { return c.Name }

// Compass is drawn in a screen corner from an image file.
type Compass struct {
	Name      string
	ImagePath string
}

func (c *Compass) DisplayName() string { return c.Name }

// ViewControls are the on-screen navigation buttons.
type ViewControls struct {
	Name             string
	Orientation      string
	ShowPan          bool
	ShowHeading      bool
	ShowTilt         bool
	ShowZoom         bool
	ShowExaggeration bool
	ShowFieldOfView  bool
}

func (v *ViewControls) DisplayName() string { return v.Name }

// ImageryLayer is a tiled imagery source. Refresh bumps Generation so the
// engine refetches tiles; temporal imagery is refreshed periodically.
type ImageryLayer struct {
	Name       string
	Generation int
}

func (i *ImageryLayer) DisplayName() string { return i.Name }

func (i *ImageryLayer) Refresh() {
	i.Generation++
}

func imageFile(dir, name string) string {
	return path.Join(dir, name)
}
