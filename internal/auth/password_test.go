package auth_test

import (
	"testing"

	"parcelmybox/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", hash)
	require.NoError(t, hasher.Compare(hash, "correct horse battery"))
	require.ErrorIs(t, hasher.Compare(hash, "wrong password"), auth.ErrPasswordMismatch)
}

func TestBcryptHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	hasher := auth.NewBcryptHasher(100)

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	err := auth.NewBcryptHasher(bcrypt.MinCost).Compare("not-a-hash", "password1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrPasswordMismatch)
}
