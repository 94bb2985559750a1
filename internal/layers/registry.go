// Package layers keeps the globe's layer stack ordered by category and keeps
// each layer's enabled state in step with the UI.
//
// The render order handed to the Engine is always the concatenation of the
// Background, Base, Overlay, Data and Widget sequences. Within a category
// layers are kept in insertion order.
package layers

import (
	"io"
	"log/slog"

	"github.com/emxsys/wmt-explorer/internal/pubsub"
	"github.com/google/uuid"
)

// Engine is the rendering engine's side of the layer list.
type Engine interface {
	InsertLayer(index int, l *Layer)
	RemoveLayer(index int)
	Redraw()
}

// Registry owns the categorised layer sequences. It is driven from a single
// goroutine and is not safe for concurrent use.
type Registry struct {
	engine    Engine
	logger    *slog.Logger
	sequences [len(categoryNames)][]*Layer
	tracked   map[*Layer]string // the name each layer is indexed under
	names     map[string]*Layer
	events    pubsub.Topic[Event]
}

func New(engine Engine, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		engine:  engine,
		logger:  logger,
		tracked: make(map[*Layer]string),
		names:   make(map[string]*Layer),
	}
}

// AddBackgroundLayer appends l to the background layers. Background layers
// are always enabled and hidden from the menu.
func (r *Registry) AddBackgroundLayer(l *Layer) error {
	return r.add("AddBackgroundLayer", l, Background, collectOptions(forcedOn))
}

// AddBaseLayer appends l to the opaque base imagery.
func (r *Registry) AddBaseLayer(l *Layer, opts ...Option) error {
	return r.add("AddBaseLayer", l, Base, collectOptions(opts))
}

// AddOverlayLayer appends l to the translucent or sparse overlays.
func (r *Registry) AddOverlayLayer(l *Layer, opts ...Option) error {
	return r.add("AddOverlayLayer", l, Overlay, collectOptions(opts))
}

// AddDataLayer appends l to the shape and marker layers.
func (r *Registry) AddDataLayer(l *Layer, opts ...Option) error {
	return r.add("AddDataLayer", l, Data, collectOptions(opts))
}

// AddWidgetLayer appends l after every other layer. Widgets are always on and
// never in the menu; opts are accepted for symmetry and ignored.
func (r *Registry) AddWidgetLayer(l *Layer, opts ...Option) error {
	return r.add("AddWidgetLayer", l, Widget, collectOptions(forcedOn))
}

// Add dispatches to the category-specific add operation.
func (r *Registry) Add(category Category, l *Layer, opts ...Option) error {
	switch category {
	case Background:
		return r.AddBackgroundLayer(l)
	case Base:
		return r.AddBaseLayer(l, opts...)
	case Overlay:
		return r.AddOverlayLayer(l, opts...)
	case Data:
		return r.AddDataLayer(l, opts...)
	case Widget:
		return r.AddWidgetLayer(l, opts...)
	}
	return invalidArgument("Add", l, "unknown category "+category.String())
}

func (r *Registry) add(op string, l *Layer, category Category, o options) error {
	if l == nil {
		return invalidArgument(op, nil, "nil layer")
	}
	if _, ok := r.tracked[l]; ok {
		return duplicateLayer(op, l, "already in "+l.category.String())
	}
	if l.DisplayName != "" {
		if other, ok := r.names[l.DisplayName]; ok {
			return duplicateLayer(op, l, "name already used in "+other.category.String())
		}
	}

	applyOptions(l, category, o)

	index := r.offset(category) + len(r.sequences[category])
	if r.engine != nil {
		r.engine.InsertLayer(index, l)
	}
	r.sequences[category] = append(r.sequences[category], l)
	r.tracked[l] = l.DisplayName
	if l.DisplayName != "" {
		r.names[l.DisplayName] = l
	}

	r.logger.Debug("layer added", "layer", l.DisplayName, "id", l.ID, "category", category, "index", index,
		"enabled", l.enabled, "pickEnabled", l.pickEnabled, "showInMenu", l.showInMenu)
	r.events.Publish(LayerAdded{Layer: l, Index: index})
	return nil
}

// ToggleLayer flips l's enabled state, updates its binding and asks the
// engine to redraw.
func (r *Registry) ToggleLayer(l *Layer) error {
	if err := r.checkTracked("ToggleLayer", l); err != nil {
		return err
	}
	r.applyEnabled(l, !l.enabled)
	return nil
}

// SetLayerEnabled is ToggleLayer with an explicit target state. Setting the
// current state is a no-op.
func (r *Registry) SetLayerEnabled(l *Layer, enabled bool) error {
	if err := r.checkTracked("SetLayerEnabled", l); err != nil {
		return err
	}
	if l.enabled == enabled {
		return nil
	}
	r.applyEnabled(l, enabled)
	return nil
}

func (r *Registry) applyEnabled(l *Layer, enabled bool) {
	l.setEnabled(enabled)
	if l.enabled != enabled {
		// A binding subscriber changed the state again and reported it.
		return
	}
	if r.engine != nil {
		r.engine.Redraw()
	}
	r.logger.Debug("layer toggled", "layer", l.DisplayName, "enabled", enabled)
	r.events.Publish(LayerToggled{Layer: l, Enabled: enabled})
}

// RemoveLayer drops l from its category and from the engine's list. Layers
// after it move up by one; the category order is unaffected.
func (r *Registry) RemoveLayer(l *Layer) error {
	if err := r.checkTracked("RemoveLayer", l); err != nil {
		return err
	}
	index, _ := r.IndexOf(l)
	seq := r.sequences[l.category]
	for i, candidate := range seq {
		if candidate == l {
			r.sequences[l.category] = append(seq[:i:i], seq[i+1:]...)
			break
		}
	}
	indexed := r.tracked[l]
	delete(r.tracked, l)
	if r.names[indexed] == l {
		delete(r.names, indexed)
	}
	if r.engine != nil {
		r.engine.RemoveLayer(index)
		r.engine.Redraw()
	}
	r.logger.Debug("layer removed", "layer", l.DisplayName, "category", l.category, "index", index)
	r.events.Publish(LayerRemoved{Layer: l, Index: index})
	return nil
}

func (r *Registry) checkTracked(op string, l *Layer) error {
	if l == nil {
		return invalidArgument(op, nil, "nil layer")
	}
	if _, ok := r.tracked[l]; !ok {
		return invalidArgument(op, l, "layer is not registered")
	}
	return nil
}

// offset is the render-order index of the first slot of category.
func (r *Registry) offset(category Category) int {
	n := 0
	for c := Background; c < category; c++ {
		n += len(r.sequences[c])
	}
	return n
}

// Subscribe registers fn for every subsequent Event.
func (r *Registry) Subscribe(fn func(Event)) (cancel func()) {
	return r.events.Subscribe(fn)
}

// Layers returns a copy of the layers in category, in insertion order.
func (r *Registry) Layers(category Category) []*Layer {
	if category < Background || category > Widget {
		return nil
	}
	return append([]*Layer(nil), r.sequences[category]...)
}

// MenuLayers returns the layers in category that the layer menu may show.
func (r *Registry) MenuLayers(category Category) []*Layer {
	var out []*Layer
	for _, l := range r.Layers(category) {
		if l.showInMenu {
			out = append(out, l)
		}
	}
	return out
}

// RenderOrder returns every layer in the order the engine draws them.
func (r *Registry) RenderOrder() []*Layer {
	out := make([]*Layer, 0, r.Len())
	for _, seq := range r.sequences {
		out = append(out, seq...)
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.tracked)
}

// IndexOf returns l's position in the render order.
func (r *Registry) IndexOf(l *Layer) (int, bool) {
	if _, ok := r.tracked[l]; !ok {
		return -1, false
	}
	base := r.offset(l.category)
	for i, candidate := range r.sequences[l.category] {
		if candidate == l {
			return base + i, true
		}
	}
	return -1, false
}

// FindLayer looks a layer up by the display name it was added with.
func (r *Registry) FindLayer(name string) (*Layer, bool) {
	l, ok := r.names[name]
	return l, ok
}

// LayerByID looks a tracked layer up by its ID.
func (r *Registry) LayerByID(id uuid.UUID) (*Layer, bool) {
	for l := range r.tracked {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// TemporalLayers returns the layers marked for periodic refresh, in render order.
func (r *Registry) TemporalLayers() []*Layer {
	var out []*Layer
	for _, l := range r.RenderOrder() {
		if l.temporal {
			out = append(out, l)
		}
	}
	return out
}

// RefreshTemporal reloads every temporal layer that supports it and
// requests a single redraw. It returns the number of layers refreshed.
func (r *Registry) RefreshTemporal() int {
	n := 0
	for _, l := range r.TemporalLayers() {
		if l.refresh() {
			n++
		}
	}
	if n > 0 && r.engine != nil {
		r.engine.Redraw()
	}
	return n
}
