package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	claimsKey
)

// BlacklistKey is the Redis key marking a token ID as revoked.
func BlacklistKey(jti string) string {
	return "blacklist:" + jti
}

// Authenticator verifies bearer tokens and rejects revoked ones.
type Authenticator struct {
	secret []byte
	redis  *redis.Client
	log    logrus.FieldLogger
}

func NewAuthenticator(secret string, redisClient *redis.Client, log logrus.FieldLogger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		redis:  redisClient,
		log:    log,
	}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeUnauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := a.validateToken(parts[1])
		if err != nil {
			a.log.WithError(err).Debug("Rejected bearer token")
			writeUnauthorized(w, "Invalid token")
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || userID <= 0 {
			writeUnauthorized(w, "Invalid token")
			return
		}

		if a.isRevoked(r.Context(), claims.ID) {
			writeUnauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) validateToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

func (a *Authenticator) isRevoked(ctx context.Context, jti string) bool {
	if a.redis == nil || jti == "" {
		return false
	}

	n, err := a.redis.Exists(ctx, BlacklistKey(jti)).Result()
	if err != nil {
		a.log.WithError(err).Warn("Token blacklist lookup failed")
		return false
	}
	return n > 0
}

// UserIDFromContext returns the authenticated user set by Authenticator.Middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

func ClaimsFromContext(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.RegisteredClaims)
	return claims, ok
}

// WithUserID attaches an authenticated user to ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func WithClaims(ctx context.Context, claims *jwt.RegisteredClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
