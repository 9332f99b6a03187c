package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies service tokens. Overridden from the
// JWT_SECRET environment variable at startup via InitJWTSecret.
var jwtSecretKey = []byte("xero-dev-only-jwt-secret")

// InitJWTSecret loads the signing key from the environment. Call once at
// service startup, before any token is issued or validated.
func InitJWTSecret() {
	jwtSecretKey = []byte(Getenv("JWT_SECRET", string(jwtSecretKey)))
}

const serviceTokenTTL = 24 * time.Hour

// Claims defines the JWT claims structure. ActorID identifies the caller
// (a user principal or a peer service) for audit trails and owner checks.
type Claims struct {
	ActorID string `json:"actor_id"`
	jwt.RegisteredClaims
}

// GenerateServiceToken creates a signed token for the given actor identity.
func GenerateServiceToken(actorID string) (string, error) {
	expirationTime := time.Now().Add(serviceTokenTTL)
	claims := &Claims{
		ActorID: actorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "xero-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
