package marker

import (
	"fmt"

	"github.com/emxsys/wmt-explorer/internal/pubsub"
	"github.com/google/uuid"
)

var (
	_ Movable    = (*Marker)(nil)
	_ Openable   = (*Marker)(nil)
	_ Selectable = (*Marker)(nil)
)

// Marker is a named placemark.
type Marker struct {
	ID        uuid.UUID
	Name      string
	Latitude  float64
	Longitude float64
	// Locked markers ignore move requests.
	Locked bool

	selected bool
	moving   bool
	events   pubsub.Topic[Event]
}

func New(name string, latitude, longitude float64) *Marker {
	return &Marker{ID: uuid.New(), Name: name, Latitude: latitude, Longitude: longitude}
}

func (m *Marker) Subscribe(fn func(Event)) (cancel func()) {
	return m.events.Subscribe(fn)
}

func (m *Marker) fire(kind EventKind) {
	m.events.Publish(Event{Kind: kind, Marker: m})
}

func (m *Marker) MoveStarted() {
	if m.Locked {
		return
	}
	m.moving = true
	m.fire(MoveStarted)
}

func (m *Marker) MoveTo(latitude, longitude float64) {
	if m.Locked {
		return
	}
	m.Latitude = latitude
	m.Longitude = longitude
	m.fire(Moved)
}

func (m *Marker) MoveFinished() {
	if m.Locked || !m.moving {
		return
	}
	m.moving = false
	m.fire(MoveFinished)
}

func (m *Marker) Open() {
	m.fire(Opened)
}

func (m *Marker) Select(selected bool) {
	if m.selected == selected {
		return
	}
	m.selected = selected
	if selected {
		m.fire(Selected)
	} else {
		m.fire(Deselected)
	}
}

func (m *Marker) Selected() bool {
	return m.selected
}

func (m *Marker) String() string {
	return fmt.Sprintf("%s (%.4f°, %.4f°)", m.Name, m.Latitude, m.Longitude)
}
