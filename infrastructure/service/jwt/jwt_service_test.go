package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetora/fleetora/domain/entity"
)

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGenerateAndValidate(t *testing.T) {
	service, err := New("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := service.Generate("user-1", entity.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestValidateRejectsGarbage(t *testing.T) {
	service, err := New("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = service.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := New("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := New("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate("user-1", entity.RoleDriver)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	service, err := New("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := service.Generate("user-1", entity.RoleDriver)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
