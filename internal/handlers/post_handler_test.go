package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	s := newTestServer(t)
	author, at := s.user("author")
	_, vt := s.user("viewer")

	code, env := s.do(http.MethodPost, "/api/posts", at, map[string]string{"content": "  hello world  "})
	require.Equal(t, http.StatusCreated, code, env.Error)
	created := decode[models.PostView](t, env.Data)
	assert.Equal(t, "hello world", created.Content)
	assert.Equal(t, author.ID, created.User.ID)
	assert.Zero(t, created.LikeCount)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/like", created.ID), vt, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", created.ID), at, map[string]string{"content": "first"})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), vt, nil)
	require.Equal(t, http.StatusOK, code)
	got := decode[models.PostView](t, env.Data)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.Equal(t, int64(1), got.CommentCount)
	assert.True(t, got.ViewerHasLiked)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), at, nil)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decode[models.PostView](t, env.Data).ViewerHasLiked)
}

func TestPostErrors(t *testing.T) {
	s := newTestServer(t)
	_, tok := s.user("author")

	code, env := s.do(http.MethodPost, "/api/posts", tok, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, env.Details)

	code, _ = s.do(http.MethodPost, "/api/posts", tok, map[string]string{"content": strings.Repeat("x", 1001)})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/posts/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", env.Error)

	code, _ = s.do(http.MethodGet, "/api/posts/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
