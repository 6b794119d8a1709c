package middleware

import (
	"context"
	"net/http"
	"strings"

	"muthawwif-booking/pkg/auth"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Blacklist is the slice of the Redis layer the auth middleware needs:
// has this token been revoked by a logout.
type Blacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthJWT validates the bearer token, rejects blacklisted tokens, and
// stores the user identity plus the raw token in the request context.
func AuthJWT(blacklist Blacklist, jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			token := parts[1]

			revoked, err := blacklist.IsTokenBlacklisted(r.Context(), token)
			if err != nil {
				logger.Error("Failed to check token blacklist", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if revoked {
				utils.ResponseUnauthorized(w, "Token has been revoked")
				return
			}

			claims, err := auth.ParseToken(jwtSecret, token)
			if err != nil {
				logger.Warn("Invalid token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				logger.Warn("Token carries malformed user ID", zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Type)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
