package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and validates signed access tokens. Tokens are HS256
// JWTs carrying the user id as subject; callers treat them as opaque.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

const tokenIssuerName = "franes-backend"

// NewTokenIssuer creates an issuer with the given signing secret and default
// time-to-live in minutes.
func NewTokenIssuer(secret string, ttlMinutes int) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// TTL returns the configured token lifetime
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue creates a signed token for the given user id, expiring after the
// configured TTL.
func (ti *TokenIssuer) Issue(userID int) (string, error) {
	return ti.IssueWithTTL(userID, ti.ttl)
}

// IssueWithTTL creates a signed token with an explicit lifetime. Expiry is
// fixed at issuance time.
func (ti *TokenIssuer) IssueWithTTL(userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuerName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the user id encoded in
// the subject claim. Fails with ErrTokenExpired past expiry and ErrTokenInvalid
// for anything else, including a missing or non-integer subject.
func (ti *TokenIssuer) Validate(tokenString string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return 0, ErrTokenInvalid
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrTokenInvalid
	}

	return userID, nil
}
