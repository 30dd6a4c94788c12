package middleware

import (
	"crypto/subtle"
	"net/http"

	"foodmarket-be/internal/auth"
	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/utils"

	"go.uber.org/zap"
)

const (
	msgNotAuthorized = "not authorized"
	msgForbidden     = "forbidden"
	AdminKeyHeader   = "X-Admin-Key"
)

// TokenParser validates a bearer token and returns its payload.
type TokenParser interface {
	Parse(token string) (*auth.Payload, error)
}

// Authenticate rejects requests without a valid token. Missing and invalid
// tokens produce the same response.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				utils.WriteJSONError(w, msgNotAuthorized, http.StatusUnauthorized)
				return
			}

			payload, err := parser.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("token rejected", zap.Error(err))
				utils.WriteJSONError(w, msgNotAuthorized, http.StatusUnauthorized)
				return
			}

			ctx := utils.SetIdentity(r.Context(), *payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if utils.GetUserRoleFromContext(r.Context()) != role {
				utils.WriteJSONError(w, msgForbidden, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminKey guards admin routes with a shared secret header. An empty key
// leaves the routes open, which is only meant for local development.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(AdminKeyHeader)), []byte(key)) != 1 {
				utils.WriteJSONError(w, msgNotAuthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
