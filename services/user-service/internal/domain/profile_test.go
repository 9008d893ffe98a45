package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvatarPrice(t *testing.T) {
	// Первые три пресета бесплатные
	for id := 1; id <= FreeAvatarLimit; id++ {
		price, ok := AvatarPrice(id)
		assert.True(t, ok)
		assert.Equal(t, 0, price)
	}

	price, ok := AvatarPrice(4)
	assert.True(t, ok)
	assert.Equal(t, 50, price)

	price, ok = AvatarPrice(20)
	assert.True(t, ok)
	assert.Equal(t, 850, price)

	_, ok = AvatarPrice(0)
	assert.False(t, ok)
	_, ok = AvatarPrice(21)
	assert.False(t, ok)
}
