// Package marker holds the placemarks shown on the globe's Markers layer and
// the capabilities objects on the globe can have.
package marker

// Movable objects can be dragged to a new location.
type Movable interface {
	MoveStarted()
	MoveTo(latitude, longitude float64)
	MoveFinished()
}

// Openable objects have a detail view.
type Openable interface {
	Open()
}

// Selectable objects can be highlighted.
type Selectable interface {
	Select(selected bool)
	Selected() bool
}

type EventKind int

const (
	MoveStarted EventKind = iota
	Moved
	MoveFinished
	Opened
	Selected
	Deselected
	Added
	Removed
)

var eventNames = [...]string{"moveStarted", "moved", "moveFinished", "opened", "selected", "deselected", "added", "removed"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

type Event struct {
	Kind   EventKind
	Marker *Marker
}
