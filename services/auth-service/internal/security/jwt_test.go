package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret")

	access, refresh, err := m.Generate("u-1")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	userID, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	userID, err = m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret")

	access, refresh, err := m.Generate("u-1")
	require.NoError(t, err)

	// Секреты разные: access не проходит как refresh и наоборот.
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	m := NewTokenManager("a", "b")
	_, err := m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, h.Compare(hash, "secret123"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestPasswordHasherClampsBadCost(t *testing.T) {
	// Неприличная стоимость откатывается к дефолтной, хеширование работает.
	h := NewPasswordHasherWithCost(99)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "secret123"))
}
