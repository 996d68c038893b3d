package claims

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a bearer token whose payload could not be
// decoded.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the fields this client extracts from a bearer token's payload.
// No signature verification is performed client-side-- the server remains
// authoritative on token validity. Decoded claims are used only for expiry
// checks and optimistic caching of identity fields.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Decode parses the payload of the given bearer token without verifying its
// signature. It returns ErrInvalidToken if the token is not a structurally
// valid JWT.
func Decode(token string) (Claims, error) {
	decoded := Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &decoded); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return decoded, nil
}

// IsExpired returns true if the given token's exp claim is in the past. A
// token that cannot be decoded, or that carries no exp claim at all, is also
// reported as expired. Unparseable implies untrusted.
func IsExpired(token string) bool {
	decoded, err := Decode(token)
	if err != nil {
		return true
	}
	if decoded.ExpiresAt == nil {
		return true
	}
	return time.Now().After(decoded.ExpiresAt.Time)
}
