// Package pubsub provides a small synchronous publish/subscribe primitive.
package pubsub

// Topic delivers published values to every subscriber, in subscription order,
// on the publishing goroutine. A Topic is not safe for concurrent use.
type Topic[T any] struct {
	nextId      uint64
	subscribers []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (t *Topic[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	t.nextId++
	id := t.nextId
	t.subscribers = append(t.subscribers, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range t.subscribers {
			if s.id == id {
				t.subscribers = append(t.subscribers[:i:i], t.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish hands value to the subscribers registered when Publish was called.
// Subscribers added or removed by a handler take effect on the next Publish.
func (t *Topic[T]) Publish(value T) {
	t.PublishWhile(value, nil)
}

// PublishWhile is Publish that checks current before each delivery and
// stops at the first false. A handler that publishes a newer value makes
// the rest of the older delivery moot.
func (t *Topic[T]) PublishWhile(value T, current func() bool) {
	subscribers := t.subscribers
	for _, s := range subscribers {
		if current != nil && !current() {
			return
		}
		s.fn(value)
	}
}

// Len reports the number of active subscribers.
func (t *Topic[T]) Len() int {
	return len(t.subscribers)
}
