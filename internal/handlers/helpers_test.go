package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/metrics"
	"github.com/anonto42/friendfeed/backend/internal/middleware"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/internal/router"
	"github.com/anonto42/friendfeed/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	db     *gorm.DB
	tokens *middleware.TokenIssuer
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := config.OpenDatabase("sqlite", ":memory:", 1)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Env:                  "test",
		DBDriver:             "sqlite",
		TimelineDefaultLimit: 20,
		TimelineMaxLimit:     50,
		CommentsDefaultLimit: 50,
		CommentsMaxLimit:     100,
	}
	tokens := middleware.NewTokenIssuer("handler-test-secret", time.Hour)
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := router.New(router.Deps{
		Config:       cfg,
		DB:           db,
		Logger:       zap.NewNop(),
		Metrics:      metrics.New(),
		Auth:         router.JWTAuth(db, tokens),
		Tokens:       tokens,
		LoginLimiter: passthrough,
	})
	return &testServer{t: t, e: e, db: db, tokens: tokens}
}

// user creates a user directly in the store and returns it with a bearer token.
func (s *testServer) user(first string) (*models.User, string) {
	s.t.Helper()
	u := &models.User{FirstName: first, LastName: "Test", Email: fmt.Sprintf("%s@example.com", first), Password: "x"}
	require.NoError(s.t, repositories.NewGormUserRepository(s.db).CreateUser(context.Background(), u))
	token, err := s.tokens.Issue(u)
	require.NoError(s.t, err)
	return u, token
}

func (s *testServer) befriend(a, b *models.User) {
	s.t.Helper()
	require.NoError(s.t, repositories.NewGormFriendshipRepository(s.db).AddFriendship(context.Background(), a.ID, b.ID))
}

func (s *testServer) post(author *models.User, content string) *models.Post {
	s.t.Helper()
	p := &models.Post{UserID: author.ID, Content: content}
	require.NoError(s.t, repositories.NewGormPostRepository(s.db).CreatePost(context.Background(), p))
	return p
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}
