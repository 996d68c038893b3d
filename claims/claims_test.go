package claims

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return token
}

func TestDecode(t *testing.T) {
	token := signedToken(
		t,
		Claims{
			UserID: "u1",
			Email:  "tony@starkindustries.com",
			Role:   "ADMIN",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
	)
	decoded, err := Decode(token)
	require.NoError(t, err)
	require.Equal(t, "u1", decoded.UserID)
	require.Equal(t, "tony@starkindustries.com", decoded.Email)
	require.Equal(t, "ADMIN", decoded.Role)
	require.NotNil(t, decoded.ExpiresAt)
}

func TestDecodeInvalidTokens(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{
			name:  "empty string",
			token: "",
		},
		{
			name:  "not a JWT at all",
			token: "definitely not a token",
		},
		{
			name:  "wrong number of segments",
			token: "abc.def",
		},
		{
			name:  "payload is not base64",
			token: "abc.!!!.def",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Decode(testCase.token)
			require.ErrorIs(t, err, ErrInvalidToken)
			require.True(t, IsExpired(testCase.token))
		})
	}
}

func TestIsExpired(t *testing.T) {
	fresh := signedToken(
		t,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
	)
	require.False(t, IsExpired(fresh))

	stale := signedToken(
		t,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		},
	)
	require.True(t, IsExpired(stale))

	// A token with no exp claim is treated as expired rather than immortal.
	noExpiry := signedToken(t, Claims{UserID: "u1"})
	require.True(t, IsExpired(noExpiry))
}
