package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseUsers resolves or provisions the local user behind a Firebase identity.
type FirebaseUsers interface {
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	LinkFirebaseUID(ctx context.Context, id uint, firebaseUID string) error
	CreateUser(ctx context.Context, user *models.User) error
}

// FirebaseAuthMiddleware creates an Echo middleware to verify Firebase ID tokens
func FirebaseAuthMiddleware(verifier IDTokenVerifier, users FirebaseUsers, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				log.Debug("firebase token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := resolveFirebaseUser(ctx, users, token)
			if err != nil {
				return err
			}

			c.Set(ViewerIDKey, user.ID)
			return next(c)
		}
	}
}

func resolveFirebaseUser(ctx context.Context, users FirebaseUsers, token *auth.Token) (*models.User, error) {
	user, err := users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil || !apperr.IsNotFound(err) {
		return user, err
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Firebase account has no email")
	}

	user, err = users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.LinkFirebaseUID(ctx, user.ID, token.UID); err != nil {
			return nil, err
		}
		return user, nil
	case !apperr.IsNotFound(err):
		return nil, err
	}

	first, last := splitDisplayName(token.Claims["name"], email)
	uid := token.UID
	user = &models.User{
		FirstName:   first,
		LastName:    last,
		Email:       strings.ToLower(email),
		FirebaseUID: &uid,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func splitDisplayName(claim interface{}, email string) (string, string) {
	name, _ := claim.(string)
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return strings.SplitN(email, "@", 2)[0], ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
