package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/andrewpaige1/lexideck-api/auth"
	"github.com/andrewpaige1/lexideck-api/utils"
	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/sirupsen/logrus"
)

// CustomClaims holds the non-registered claims we put in tokens.
type CustomClaims struct {
	Username string `json:"username"`
}

func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken verifies bearer tokens signed by iss. Requests without a
// token pass through unauthenticated; RequireUser decides whether a route
// needs one. A present but invalid token is rejected with 401.
func EnsureValidToken(iss *auth.Issuer, log logrus.FieldLogger) (func(http.Handler) http.Handler, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return iss.Secret(), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		iss.Issuer(),
		[]string{iss.Audience()},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.WithError(err).WithField("path", r.URL.Path).Debug("rejected token")
		utils.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
	)
	return mw.CheckJWT, nil
}
