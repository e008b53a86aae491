package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/metrics"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	queries     *metrics.QueryCounter
	users       *repositories.GormUserRepository
	friendships *repositories.GormFriendshipRepository
	posts       *repositories.GormPostRepository
	comments    *repositories.GormCommentRepository
	likes       *repositories.GormLikeRepository
	aggregator  *Aggregator
	timeline    *TimelineService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := config.OpenDatabase("sqlite", ":memory:", 1)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	qc := metrics.NewQueryCounter(nil)
	require.NoError(t, db.Use(qc))

	f := &fixture{
		db:          db,
		queries:     qc,
		users:       repositories.NewGormUserRepository(db),
		friendships: repositories.NewGormFriendshipRepository(db),
		posts:       repositories.NewGormPostRepository(db),
		comments:    repositories.NewGormCommentRepository(db),
		likes:       repositories.NewGormLikeRepository(db),
	}
	f.aggregator = NewAggregator(f.comments, f.likes)
	f.timeline = NewTimelineService(f.friendships, f.posts, f.aggregator, PageLimits{DefaultLimit: 20, MaxLimit: 50}, nil, nil)
	return f
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{FirstName: name, LastName: "Test", Email: fmt.Sprintf("%s@example.com", name), Password: "x"}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	require.NoError(t, f.friendships.AddFriendship(context.Background(), a.ID, b.ID))
}

func (f *fixture) post(t *testing.T, author *models.User, content string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{UserID: author.ID, Content: content, CreatedAt: at}
	require.NoError(t, f.db.Omit("Author").Create(p).Error)
	return p
}

func (f *fixture) comment(t *testing.T, post *models.Post, author *models.User) {
	t.Helper()
	require.NoError(t, f.comments.CreateComment(context.Background(), &models.Comment{PostID: post.ID, UserID: author.ID, Content: "nice"}))
}

func (f *fixture) like(t *testing.T, post *models.Post, u *models.User) {
	t.Helper()
	_, err := f.likes.CreateLike(context.Background(), post.ID, u.ID)
	require.NoError(t, err)
}
