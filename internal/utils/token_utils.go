package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionLeeway tolerates clock skew between the storefront and the ERP that signed the token.
const sessionLeeway = 30 * time.Second

// IssueSessionToken signs an HS256 session token for a customer. The ERP issues the real
// tokens; this mirrors their shape for local tooling and tests.
func IssueSessionToken(customerID string, secret string, ttl time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   customerID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies a session token's HS256 signature and expiry and returns its claims.
// Tokens signed with any other algorithm are rejected.
func ParseSessionToken(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(sessionLeeway),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
