package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid indicates the token is malformed, carries an unexpected
	// signing method, or fails signature validation.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired indicates the token signature is valid but the token
	// has expired.
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims is the payload embedded in issued access tokens.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 access tokens. The signing secret is
// mandatory; there is no fallback default.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
}

// NewTokenManager constructs a TokenManager. It fails when the secret is empty
// so a missing deployment secret aborts startup instead of silently signing
// with a known value.
func NewTokenManager(secret string, accessTTL time.Duration, issuer string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token manager: signing secret is required")
	}
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}

	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    issuer,
	}, nil
}

// AccessTTL returns the lifetime applied to issued tokens.
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// Issue signs an access token carrying the user identity claims.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// Parse verifies the token signature and expiry and returns the claims.
func (m *TokenManager) Parse(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
