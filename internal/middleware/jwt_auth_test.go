package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func runProtected(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (int, uint) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uint
	err := mw(func(c echo.Context) error {
		seen, _ = ViewerID(c)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "unexpected error %v", err)
		return he.Code, 0
	}
	return rec.Code, seen
}

func TestJWTAuthMiddleware(t *testing.T) {
	alice := &models.User{ID: 7, Email: "alice@example.com"}
	ghost := &models.User{ID: 99, Email: "ghost@example.com"}
	issuer := NewTokenIssuer("test-secret", time.Hour)
	mw := JWTAuthMiddleware(issuer, fakeUsers{alice.ID: alice})

	good, err := issuer.Issue(alice)
	require.NoError(t, err)
	orphan, err := issuer.Issue(ghost)
	require.NoError(t, err)
	forged, err := NewTokenIssuer("other-secret", time.Hour).Issue(alice)
	require.NoError(t, err)

	expiredIssuer := NewTokenIssuer("test-secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue(alice)
	require.NoError(t, err)

	code, viewer := runProtected(t, mw, "Bearer "+good)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, alice.ID, viewer)

	for name, header := range map[string]string{
		"missing":       "",
		"wrong scheme":  "Basic " + good,
		"forged":        "Bearer " + forged,
		"expired":       "Bearer " + expired,
		"deleted user":  "Bearer " + orphan,
		"garbage token": "Bearer not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			code, _ := runProtected(t, mw, header)
			assert.Equal(t, http.StatusUnauthorized, code)
		})
	}
}
