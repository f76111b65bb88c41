package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinevault/internal/domain"
)

// TokenManager issues and verifies the signed access tokens used on every
// protected request. Tokens are stateless: verification trusts the signature
// and expiry alone and never consults the user store, so a deregistered
// user's token stays valid until it expires.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (t *TokenManager) TTL() time.Duration {
	return t.ttl
}

// Issue signs an HS256 token with the username as subject and an expiry
// fixed at issuance.
func (t *TokenManager) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and returns the authenticated subject. Structural and
// signature failures map to ErrMalformedToken, expiry to ErrTokenExpired.
func (t *TokenManager) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrMalformedToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrMalformedToken
	}
	return claims.Subject, nil
}
