package repositories

import (
	"context"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	PostsByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, int64, error)
}

// GormPostRepository implements PostRepository on top of gorm
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost inserts a post and loads its author.
func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(post).Error; err != nil {
		return apperr.Store("create post", err)
	}
	created, err := r.GetPostByID(ctx, post.ID)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

// GetPostByID retrieves a post together with its author
func (r *GormPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Joins("Author").First(&post, "posts.id = ?", id).Error; err != nil {
		return nil, translate("get post", "Post", err)
	}
	return &post, nil
}

// Exists reports whether a post with id is stored
func (r *GormPostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.Store("check post", err)
	}
	return count > 0, nil
}

// PostsByAuthors returns one window of the posts written by any of authorIDs,
// newest first with id as tie-break, plus the total number of matching posts.
// An empty author set matches nothing and issues no query.
func (r *GormPostRepository) PostsByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	posts := []models.Post{}
	if len(authorIDs) == 0 {
		return posts, 0, nil
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id IN ?", authorIDs).
		Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count posts by authors", err)
	}
	if total == 0 || int64(offset) >= total {
		return posts, total, nil
	}

	err := r.db.WithContext(ctx).
		Joins("Author").
		Where("posts.user_id IN ?", authorIDs).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, apperr.Store("list posts by authors", err)
	}
	return posts, total, nil
}
