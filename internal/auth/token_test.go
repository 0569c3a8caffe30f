package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hotelops/guestdesk/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("staff-1", domain.StaffRoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "staff-1", claims.StaffID)
	require.Equal(t, domain.StaffRoleManager, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("staff-1", domain.StaffRoleAdmin)
	require.NoError(t, err)

	other := NewTokenManager("different-secret", 60)
	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-jwt")
	require.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password", 4)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "s3cret-password"))
	require.Error(t, ComparePassword(hash, "wrong-password"))
}
