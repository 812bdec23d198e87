package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 7)
	role := domain.UserRoleDonor

	token, expiresAt, err := tm.GenerateToken("user-123", "donor@example.com", domain.ActorKindUser, &role)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.SubjectID)
	assert.Equal(t, "donor@example.com", claims.Email)
	assert.Equal(t, domain.ActorKindUser, claims.Kind)
	require.NotNil(t, claims.Role)
	assert.Equal(t, domain.UserRoleDonor, *claims.Role)

	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)
}

func TestGenerateTokenBloodBankOmitsRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 7)

	token, _, err := tm.GenerateToken("bank-1", "bank@example.com", domain.ActorKindBloodBank, nil)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.ActorKindBloodBank, claims.Kind)
	assert.Nil(t, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 7)
	other := NewTokenManager("secret-b", 7)

	token, _, err := tm.GenerateToken("user-123", "donor@example.com", domain.ActorKindUser, nil)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 7)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenTTLDefaultsToWeek(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.GenerateToken("user-123", "donor@example.com", domain.ActorKindUser, nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)
}
