package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"rasoi/globals"
	"rasoi/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Authenticate gates a route behind a valid bearer token. The resolved user
// id lands in the request context; downstream handlers never re-derive it.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			utils.RespondWithMessage(w, http.StatusUnauthorized, "Missing token")
			return
		}

		if len(tokenString) < 8 || !strings.HasPrefix(tokenString, "Bearer ") {
			utils.RespondWithMessage(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := ValidateJWT(tokenString[7:])
		if err != nil {
			utils.RespondWithMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth resolves an identity when a valid token is present but lets
// the request through either way. Handlers that need auth check the context.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if len(tokenString) >= 8 && strings.HasPrefix(tokenString, "Bearer ") {
			if claims, err := ValidateJWT(tokenString[7:]); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, claims.UserID))
			}
		}
		next(w, r, ps)
	}
}

// ValidateJWT checks signature and expiry of a raw token (no Bearer prefix)
// and returns its claims. Verification is stateless, no lookup involved.
func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}
