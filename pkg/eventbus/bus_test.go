package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishNotifiesSubscribers(t *testing.T) {
	bus := New()

	calls := 0
	bus.Subscribe("levels_updated", func() { calls++ })
	bus.Subscribe("levels_updated", func() { calls++ })

	bus.Publish("levels_updated")
	assert.Equal(t, 2, calls)

	// Чужая тема подписчиков не трогает.
	bus.Publish("other")
	assert.Equal(t, 2, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := New()
	bus.Publish("levels_updated") // не должно паниковать
}
