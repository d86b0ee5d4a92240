// Package auth issues and validates the API's JWTs and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	minSecretLength = 32
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the registered claims plus the role and the token type, so a
// refresh token is never accepted where an access token is expected.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Type string `json:"typ"`
}

// Identity is what a validated token says about its bearer.
type Identity struct {
	UserID kernel.UUID
	Role   user.Role
}

func (i Identity) Actor() (kernel.Actor, error) {
	return kernel.NewActor(i.UserID, i.Role.IsStaff())
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken      string    `json:"access"`
	RefreshToken     string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// TokenManager signs HS256 tokens.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive, got access %s refresh %s", accessTTL, refreshTTL)
	}
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Issue signs a fresh access/refresh pair for the account.
func (m *TokenManager) Issue(id kernel.UUID, role user.Role) (TokenPair, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return TokenPair{}, err
	}
	now := m.now()

	access, accessExp, err := m.sign(id, role, TokenTypeAccess, now, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := m.sign(id, role, TokenTypeRefresh, now, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (m *TokenManager) sign(
	id kernel.UUID,
	role user.Role,
	typ string,
	now time.Time,
	ttl time.Duration,
) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        kernel.NewUUID().String(),
		},
		Role: role.String(),
		Type: typ,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, exp, nil
}

func (m *TokenManager) ParseAccess(token string) (Identity, error) {
	return m.parse(token, TokenTypeAccess)
}

func (m *TokenManager) ParseRefresh(token string) (Identity, error) {
	return m.parse(token, TokenTypeRefresh)
}

func (m *TokenManager) parse(token, typ string) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Type != typ {
		return Identity{}, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, typ, claims.Type)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return Identity{UserID: id, Role: role}, nil
}
