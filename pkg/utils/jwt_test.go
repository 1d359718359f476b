package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "identity", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "clerk@example.com", []string{"staff"}, []string{"manage-sales"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"manage-sales"}, claims.Permissions)
	assert.Equal(t, "identity", claims.Issuer)
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", "identity", time.Hour)
	verifier := NewJWTManager("two", "identity", time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", "identity", -time.Minute)
	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManagerRejectsNilUser(t *testing.T) {
	m := NewJWTManager("secret", "identity", time.Hour)
	token, err := m.GenerateAccessToken(uuid.Nil, "a@b.c", nil, nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
