package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/utils"
	"github.com/sirupsen/logrus"
)

type contextKey string

const userKey contextKey = "user"

// UserLookup loads the account a token's subject names.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// RequireUser rejects requests without a valid token, loads the token's user
// and attaches it to the context for downstream handlers.
func RequireUser(users UserLookup, log logrus.FieldLogger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetSubject(r)
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					utils.WriteError(w, http.StatusUnauthorized, "Not authorized, user not found")
					return
				}
				log.WithError(err).Error("failed to load user")
				utils.WriteError(w, http.StatusInternalServerError, "Server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserFromContext returns the user RequireUser attached.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
