package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author")

	post := &models.Post{UserID: author.ID, Content: "first"}
	require.NoError(t, repo.CreatePost(ctx, post))
	assert.NotZero(t, post.ID)
	assert.Equal(t, "author", post.Author.FirstName)

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)

	_, err = repo.GetPostByID(ctx, post.ID+100)
	assert.True(t, apperr.IsNotFound(err))

	ok, err := repo.Exists(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostsByAuthorsOrderingAndWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()
	f1, f2, stranger := seedUser(t, db, "f1"), seedUser(t, db, "f2"), seedUser(t, db, "stranger")

	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := seedPost(t, db, f1, "older", same.Add(-time.Hour))
	tieA := seedPost(t, db, f1, "tie a", same)
	tieB := seedPost(t, db, f2, "tie b", same)
	newest := seedPost(t, db, f2, "newest", same.Add(time.Hour))
	seedPost(t, db, stranger, "not a friend", same.Add(2*time.Hour))

	authors := []uint{f1.ID, f2.ID}
	posts, total, err := repo.PostsByAuthors(ctx, authors, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	var ids []uint
	for _, p := range posts {
		ids = append(ids, p.ID)
		assert.NotZero(t, p.Author.ID)
	}
	assert.Equal(t, []uint{newest.ID, tieB.ID, tieA.ID, older.ID}, ids)

	again, _, err := repo.PostsByAuthors(ctx, authors, 0, 10)
	require.NoError(t, err)
	for i := range again {
		assert.Equal(t, posts[i].ID, again[i].ID)
	}

	page2, total, err := repo.PostsByAuthors(ctx, authors, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page2, 2)
	assert.Equal(t, tieA.ID, page2[0].ID)
	assert.Equal(t, older.ID, page2[1].ID)

	beyond, total, err := repo.PostsByAuthors(ctx, authors, 40, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, beyond)
}

func TestPostsByAuthorsEmptySet(t *testing.T) {
	db := newTestDB(t)
	posts, total, err := NewGormPostRepository(db).PostsByAuthors(context.Background(), nil, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}
