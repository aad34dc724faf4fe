// Package auth provides JWT authentication middleware for the HTTP layer.
// Tokens are HS256-signed bearer tokens whose subject claim carries the
// user's numeric id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"fork-kitchen/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUserID ctxKey = "user_id"

// UserID retrieves the authenticated user's id from the context.
// The second return value is false for unauthenticated requests.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxUserID).(int64)
	return id, ok
}

// WithUser returns a context carrying the authenticated user's id.
// The middleware attaches it after token validation; handler tests use
// it to simulate an authenticated request.
func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// UserIDPtr retrieves the authenticated user's id as a pointer, or nil
// for unauthenticated requests. Handlers that serve both anonymous and
// authenticated viewers pass this straight to the use case layer.
func UserIDPtr(ctx context.Context) *int64 {
	if id, ok := UserID(ctx); ok {
		return &id
	}
	return nil
}

// Authz is an authorization middleware that requires JWT authentication.
// All write endpoints and the library endpoints go through it; a request
// without a valid bearer token is rejected with 401.
func Authz(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := validateJWT(r.Header.Get("Authorization"), secret)
		if err != nil {
			RecordAuthRequest("failure")
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		RecordAuthRequest("success")
		ctx := WithUser(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional is an authorization middleware for read endpoints whose
// response depends on who is asking (private recipes, view counting).
// A valid token attaches the user to the context; a missing token is
// fine; a PRESENT but invalid token is still rejected, so a client with
// an expired session hears about it instead of silently losing access
// to its own private recipes.
func Optional(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := validateJWT(authz, secret)
		if err != nil {
			RecordAuthRequest("failure")
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		RecordAuthRequest("success")
		ctx := WithUser(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validateJWT(authz string, secret []byte) (int64, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return 0, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return 0, errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("invalid sub claim")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid sub claim")
	}
	return userID, nil
}
