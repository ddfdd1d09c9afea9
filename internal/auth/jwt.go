package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret means the server was started without JWT_SECRET.
	// This is a configuration failure, not a client error.
	ErrMissingSecret = errors.New("jwt signing secret is not configured")

	ErrInvalidToken = errors.New("invalid token")
)

type Claims struct {
	UserID int64  `json:"userId"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// Configured reports whether a signing secret is present. The auth guard
// maps an unconfigured secret to a 500, not a 401.
func (m *Manager) Configured() bool {
	return len(m.secret) > 0
}

func (m *Manager) Issue(userID int64, login string) (string, error) {
	if !m.Configured() {
		return "", ErrMissingSecret
	}

	now := time.Now().UTC()

	claims := Claims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	if !m.Configured() {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
