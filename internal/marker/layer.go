package marker

import (
	"github.com/emxsys/wmt-explorer/internal/pubsub"
	"github.com/google/uuid"
)

// Layer is the renderable behind the Markers data layer. It re-publishes the
// events of the markers it holds.
type Layer struct {
	name    string
	markers []*Marker
	cancels map[uuid.UUID]func()
	events  pubsub.Topic[Event]
}

func NewLayer(name string) *Layer {
	return &Layer{name: name, cancels: make(map[uuid.UUID]func())}
}

func (l *Layer) DisplayName() string { return l.name }

// Add appends m unless a marker with the same ID is already present.
func (l *Layer) Add(m *Marker) bool {
	if m == nil {
		return false
	}
	if _, ok := l.cancels[m.ID]; ok {
		return false
	}
	l.markers = append(l.markers, m)
	l.cancels[m.ID] = m.Subscribe(l.events.Publish)
	l.events.Publish(Event{Kind: Added, Marker: m})
	return true
}

func (l *Layer) Remove(m *Marker) bool {
	if m == nil {
		return false
	}
	cancel, ok := l.cancels[m.ID]
	if !ok {
		return false
	}
	cancel()
	delete(l.cancels, m.ID)
	for i, candidate := range l.markers {
		if candidate.ID == m.ID {
			l.markers = append(l.markers[:i:i], l.markers[i+1:]...)
			break
		}
	}
	l.events.Publish(Event{Kind: Removed, Marker: m})
	return true
}

// Find returns the first marker called name.
func (l *Layer) Find(name string) (*Marker, bool) {
	for _, m := range l.markers {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func (l *Layer) Len() int {
	return len(l.markers)
}

func (l *Layer) Markers() []*Marker {
	return append([]*Marker(nil), l.markers...)
}

func (l *Layer) Subscribe(fn func(Event)) (cancel func()) {
	return l.events.Subscribe(fn)
}
