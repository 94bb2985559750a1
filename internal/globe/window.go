package globe

import "github.com/emxsys/wmt-explorer/internal/layers"

var _ layers.Engine = (*Window)(nil)

// Window is the headless side of the rendering engine: it keeps the layer
// list in draw order and records redraw requests. Drawing itself happens
// elsewhere.
type Window struct {
	Navigator *Navigator
	layers    []*layers.Layer
	redraws   int
}

func NewWindow() *Window {
	return &Window{Navigator: &Navigator{}}
}

func (w *Window) InsertLayer(index int, l *layers.Layer) {
	index = min(max(index, 0), len(w.layers))
	w.layers = append(w.layers, nil)
	copy(w.layers[index+1:], w.layers[index:])
	w.layers[index] = l
}

func (w *Window) RemoveLayer(index int) {
	if index < 0 || index >= len(w.layers) {
		return
	}
	w.layers = append(w.layers[:index], w.layers[index+1:]...)
}

// Redraw is a fire-and-forget request.
func (w *Window) Redraw() {
	w.redraws++
}

// Layers returns the draw list, bottom first.
func (w *Window) Layers() []*layers.Layer {
	return append([]*layers.Layer(nil), w.layers...)
}

// Redraws counts the redraw requests received so far.
func (w *Window) Redraws() int {
	return w.redraws
}
