package middleware

import (
	"net/http"
	"strings"

	"event-booking/internal/data/repository"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

// Auth resolves the "Authorization: JWT <token>" header into a user on
// the request context. Requests without a valid token continue as
// anonymous; individual resolvers decide whether they require a login.
func Auth(userRepo repository.UserRepository, secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "JWT") {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := utils.VerifyToken(token, secret)
			if err != nil {
				logger.Debug("Token rejected", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to resolve token user",
					zap.Error(err), zap.String("user_id", userID.String()))
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				logger.Warn("Token for unknown user", zap.String("user_id", userID.String()))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
