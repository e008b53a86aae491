package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase("sqlite", ":memory:", 1)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// newFileTestDB opens a file-backed database with several connections so
// goroutines really race.
func newFileTestDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase("sqlite", filepath.Join(t.TempDir(), "friendfeed.db"), conns)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, first string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName: first,
		LastName:  "Tester",
		Email:     fmt.Sprintf("%s@example.com", first),
		Password:  "x",
	}
	require.NoError(t, NewGormUserRepository(db).CreateUser(context.Background(), u))
	return u
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, content string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{UserID: author.ID, Content: content, CreatedAt: at}
	require.NoError(t, db.Omit("Author").Create(p).Error)
	return p
}
