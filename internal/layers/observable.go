package layers

import "github.com/emxsys/wmt-explorer/internal/pubsub"

// Observable is a value UI code can bind to. Subscribers are told about
// every change and only about changes.
type Observable[T comparable] struct {
	value T
	topic pubsub.Topic[T]
}

func newObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

func (o *Observable[T]) Get() T {
	return o.value
}

// Subscribe registers fn for future changes and returns its cancel function.
func (o *Observable[T]) Subscribe(fn func(T)) (cancel func()) {
	return o.topic.Subscribe(fn)
}

func (o *Observable[T]) set(v T) {
	if o.value == v {
		return
	}
	o.value = v
	o.topic.PublishWhile(v, func() bool { return o.value == v })
}
