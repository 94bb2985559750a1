package layers

import "github.com/google/uuid"

// Renderable is the rendering engine's own layer object. The registry never
// constructs one; it only annotates what callers hand it.
type Renderable interface {
	DisplayName() string
}

// Refresher is implemented by renderables whose content changes over time.
type Refresher interface {
	Refresh()
}

// Layer is a Renderable annotated with the registry's category and
// visibility state.
type Layer struct {
	ID          uuid.UUID
	DisplayName string
	Renderable  Renderable

	category    Category
	enabled     bool
	pickEnabled bool
	showInMenu  bool
	temporal    bool
	detailHint  float64
	opacity     float64

	enabledBinding    *Observable[bool]
	showInMenuBinding *Observable[bool]
}

// NewLayer wraps r. The layer is inert until it is added to a Registry.
func NewLayer(r Renderable) *Layer {
	l := NewNamedLayer("")
	if r != nil {
		l.DisplayName = r.DisplayName()
	}
	l.Renderable = r
	return l
}

// NewNamedLayer creates a layer without an engine primitive behind it.
func NewNamedLayer(name string) *Layer {
	return &Layer{
		ID:                uuid.New(),
		DisplayName:       name,
		pickEnabled:       true,
		opacity:           1,
		enabledBinding:    newObservable(false),
		showInMenuBinding: newObservable(false),
	}
}

func (l *Layer) Category() Category  { return l.category }
func (l *Layer) Enabled() bool       { return l.enabled }
func (l *Layer) PickEnabled() bool   { return l.pickEnabled }
func (l *Layer) ShowInMenu() bool    { return l.showInMenu }
func (l *Layer) IsTemporal() bool    { return l.temporal }
func (l *Layer) DetailHint() float64 { return l.detailHint }
func (l *Layer) Opacity() float64    { return l.opacity }
func (l *Layer) String() string      { return l.DisplayName }

// EnabledBinding mirrors Enabled for UI controls.
func (l *Layer) EnabledBinding() *Observable[bool] { return l.enabledBinding }

// ShowInMenuBinding mirrors ShowInMenu for UI controls.
func (l *Layer) ShowInMenuBinding() *Observable[bool] { return l.showInMenuBinding }

func (l *Layer) setEnabled(enabled bool) {
	l.enabled = enabled
	l.enabledBinding.set(enabled)
}

// refresh asks the renderable to reload its content, if it knows how.
func (l *Layer) refresh() bool {
	if r, ok := l.Renderable.(Refresher); ok {
		r.Refresh()
		return true
	}
	return false
}
