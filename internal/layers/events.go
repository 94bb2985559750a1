package layers

// Event is published by a Registry after its state has changed.
type Event interface {
	isEvent()
}

// LayerAdded reports an insertion at Index of the render order.
type LayerAdded struct {
	Layer *Layer
	Index int
}

// LayerToggled reports a change of Layer.Enabled.
type LayerToggled struct {
	Layer   *Layer
	Enabled bool
}

// LayerRemoved reports that the layer formerly at Index is gone.
type LayerRemoved struct {
	Layer *Layer
	Index int
}

func (LayerAdded) isEvent()   {}
func (LayerToggled) isEvent() {}
func (LayerRemoved) isEvent() {}
