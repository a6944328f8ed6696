package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ownerID, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", ownerID)
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	token, err := NewJWTManager("secret-a").GenerateToken("user-123")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_GarbageRejected(t *testing.T) {
	manager := NewJWTManager("test-secret")

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = manager.ValidateToken("")
	assert.Error(t, err)
}
