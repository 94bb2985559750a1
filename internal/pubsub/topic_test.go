package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	var topic Topic[int]
	var got []string

	topic.Subscribe(func(v int) { got = append(got, "first") })
	topic.Subscribe(func(v int) { got = append(got, "second") })

	topic.Publish(1)

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	var topic Topic[string]
	var got []string

	cancel := topic.Subscribe(func(v string) { got = append(got, v) })
	topic.Publish("a")
	cancel()
	cancel()
	topic.Publish("b")

	assert.Equal(t, []string{"a"}, got)
	assert.Zero(t, topic.Len())
}

func TestSubscribe_CancelInsideHandlerKeepsCurrentDelivery(t *testing.T) {
	var topic Topic[int]
	calls := 0

	var cancelFirst func()
	cancelFirst = topic.Subscribe(func(int) { cancelFirst() })
	topic.Subscribe(func(int) { calls++ })

	topic.Publish(1)
	topic.Publish(2)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, topic.Len())
}

func TestSubscribe_NilHandlerIsIgnored(t *testing.T) {
	var topic Topic[int]

	cancel := topic.Subscribe(nil)
	cancel()

	assert.Zero(t, topic.Len())
}

func TestPublishWhile_StopsOnceValueIsSuperseded(t *testing.T) {
	var topic Topic[int]
	latest := 0
	var got []int

	publish := func(v int) {
		latest = v
		topic.PublishWhile(v, func() bool { return latest == v })
	}
	topic.Subscribe(func(v int) {
		if v == 1 {
			publish(2)
		}
	})
	topic.Subscribe(func(v int) { got = append(got, v) })

	publish(1)

	assert.Equal(t, []int{2}, got)
}
