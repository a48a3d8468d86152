package auth

import (
	"time"

	"rasoi/globals"
	"rasoi/middleware"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are self-contained: user id plus expiry, HS256-signed. Nothing is
// stored server-side, so logout cannot revoke one before it expires.
const tokenTTL = 7 * 24 * time.Hour

func GenerateToken(userID string) (string, error) {
	return signToken(userID, time.Now().Add(tokenTTL))
}

func signToken(userID string, expiresAt time.Time) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
