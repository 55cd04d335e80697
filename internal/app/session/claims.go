package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Role claim values issued by the backend.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
	// RoleNone is derived from any token that cannot be decoded.
	RoleNone = ""
)

// Claims is the subset of the backend's JWT this client reads.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeClaims decodes a token without verifying its signature. The signing
// key lives with the backend; the client only needs the embedded expiry and
// role, and the backend re-validates every authorized call anyway.
func DecodeClaims(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	if err != nil {
		return nil, errors.Wrap(err, "decoding session token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, errors.New("unexpected session token claims")
	}
	return claims, nil
}

// RoleOf derives the role claim from a raw token, returning RoleNone when the
// token cannot be decoded. Never cached; recomputed on every query.
func RoleOf(token string) string {
	claims, err := DecodeClaims(token)
	if err != nil {
		return RoleNone
	}
	return claims.Role
}

// expired reports whether the claims' expiry is at or before now. A token
// without an exp claim is treated as unexpired.
func expired(claims *Claims, now time.Time) bool {
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}
