package auth_test

import (
	"testing"
	"time"

	"parcelmybox/internal/auth"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long-for-hs256"

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "jane@example.com", "jane", "", "", "hash", role, time.Now())
	require.NoError(t, err)
	return u
}

func newManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(testSecret, "parcelmybox-test", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	// Given
	u := newUser(t, user.Staff)
	m := newManager(t)

	// When
	pair, err := m.Issue(u.ID(), u.Role())
	require.NoError(t, err)
	access, accessErr := m.ParseAccess(pair.AccessToken)
	refresh, refreshErr := m.ParseRefresh(pair.RefreshToken)

	// Then
	require.NoError(t, accessErr)
	require.NoError(t, refreshErr)
	assert.True(t, u.ID().IsEqual(access.UserID))
	assert.Equal(t, user.Staff, access.Role)
	assert.True(t, u.ID().IsEqual(refresh.UserID))
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	actor, err := access.Actor()
	require.NoError(t, err)
	assert.True(t, actor.IsStaff())
}

func TestTokenManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	m := newManager(t)
	pair, err := m.Issue(kernel.NewUUID(), user.Customer)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.ParseRefresh(pair.AccessToken)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_RejectsBadTokens(t *testing.T) {
	m := newManager(t)
	pair, err := m.Issue(kernel.NewUUID(), user.Customer)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   kernel.NewUUID().String(),
			Issuer:    "parcelmybox-test",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
		Role: "customer",
		Type: auth.TokenTypeAccess,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherIssuer, err := auth.NewTokenManager(testSecret, "someone-else", time.Hour, time.Hour)
	require.NoError(t, err)
	foreignPair, err := otherIssuer.Issue(kernel.NewUUID(), user.Customer)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{Type: auth.TokenTypeAccess})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered", pair.AccessToken + "x"},
		{"expired", expired},
		{"other issuer", foreignPair.AccessToken},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseAccess(tt.token)
			require.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenManager_Issue_RejectsUnknownRole(t *testing.T) {
	_, err := newManager(t).Issue(kernel.NewUUID(), user.UnknownRole)
	require.Error(t, err)
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := auth.NewTokenManager("short", "iss", time.Minute, time.Hour)
	require.Error(t, err)

	_, err = auth.NewTokenManager(testSecret, "iss", 0, time.Hour)
	require.Error(t, err)
}
