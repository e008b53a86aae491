package repositories

import (
	"errors"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the apperr taxonomy. The database must be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func translate(op, resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(resource + " already exists")
	default:
		return apperr.Store(op, err)
	}
}

// postCount is one row of a grouped COUNT(*) keyed by post.
type postCount struct {
	PostID uint
	Count  int64
}

func countsByPost(rows []postCount, postIDs []uint) map[uint]int64 {
	counts := make(map[uint]int64, len(postIDs))
	for _, id := range postIDs {
		counts[id] = 0
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts
}
