package handlers_test

import (
	"net/http"
	"testing"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineEndpoint(t *testing.T) {
	s := newTestServer(t)
	v, vt := s.user("viewer")
	f1, _ := s.user("friend")
	stranger, _ := s.user("stranger")

	code, env := s.do(http.MethodGet, "/api/timeline", vt, nil)
	require.Equal(t, http.StatusOK, code)
	empty := decode[models.TimelinePage](t, env.Data)
	assert.NotNil(t, empty.Posts)
	assert.Empty(t, empty.Posts)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 20, Total: 0, Pages: 0}, empty.Pagination)

	s.befriend(v, f1)
	s.post(f1, "one")
	s.post(f1, "two")
	s.post(f1, "three")
	s.post(stranger, "hidden")

	code, env = s.do(http.MethodGet, "/api/timeline?page=0&limit=2", vt, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[models.TimelinePage](t, env.Data)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 2, Total: 3, Pages: 2}, page.Pagination)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "three", page.Posts[0].Content)
	assert.Equal(t, f1.ID, page.Posts[0].User.ID)

	code, env = s.do(http.MethodGet, "/api/timeline?limit=1000", vt, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50, decode[models.TimelinePage](t, env.Data).Pagination.Limit)

	code, env = s.do(http.MethodGet, "/api/timeline?page=abc", vt, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[models.TimelinePage](t, env.Data).Pagination.Page)
}
