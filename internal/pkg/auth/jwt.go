package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails parsing or verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a guest session token.
type Claims struct {
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// JWTManager issues and verifies HS256 session tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a JWTManager signing with secret; tokens expire after ttl.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns how long issued tokens stay valid.
func (m *JWTManager) TTL() time.Duration { return m.ttl }

// GenerateToken signs a token for the given guest email.
func (m *JWTManager) GenerateToken(email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("email is required")
	}

	now := m.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry of tokenStr.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NormalizeEmail lower-cases and trims an identity so comparisons are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
