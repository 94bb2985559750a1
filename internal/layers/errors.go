package layers

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateLayer  = errors.New("duplicate layer")
)

// LayerError reports a rejected registry operation. Kind is one of the
// sentinel errors above, so callers can use errors.Is.
type LayerError struct {
	Kind  error
	Op    string
	Layer string
	Msg   string
}

func (e *LayerError) Error() string {
	if e == nil {
		return ""
	}
	s := e.Op + ": " + e.Kind.Error()
	if e.Layer != "" {
		s += fmt.Sprintf(" %q", e.Layer)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *LayerError) Unwrap() error { return e.Kind }

func invalidArgument(op string, l *Layer, msg string) error {
	err := &LayerError{Kind: ErrInvalidArgument, Op: op, Msg: msg}
	if l != nil {
		err.Layer = l.DisplayName
	}
	return err
}

func duplicateLayer(op string, l *Layer, msg string) error {
	return &LayerError{Kind: ErrDuplicateLayer, Op: op, Layer: l.DisplayName, Msg: msg}
}
