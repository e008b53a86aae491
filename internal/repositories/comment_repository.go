package repositories

import (
	"context"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID uint, offset, limit int) ([]models.Comment, int64, error)
	GetCommentsByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Comment, int64, error)
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// GormCommentRepository implements CommentRepository on top of gorm
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateComment inserts a comment and loads its author.
func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error; err != nil {
		return apperr.Store("create comment", err)
	}
	var created models.Comment
	if err := r.db.WithContext(ctx).Joins("Author").First(&created, "comments.id = ?", comment.ID).Error; err != nil {
		return translate("load comment", "Comment", err)
	}
	*comment = created
	return nil
}

// GetCommentsByPostID pages through a post's comments, oldest first.
func (r *GormCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint, offset, limit int) ([]models.Comment, int64, error) {
	comments := []models.Comment{}
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count comments", err)
	}
	if total == 0 {
		return comments, 0, nil
	}
	err := r.db.WithContext(ctx).
		Joins("Author").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, apperr.Store("list comments", err)
	}
	return comments, total, nil
}

// GetCommentsByUserID pages through the comments a user wrote, newest first, with their post.
func (r *GormCommentRepository) GetCommentsByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Comment, int64, error) {
	comments := []models.Comment{}
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count user comments", err)
	}
	if total == 0 {
		return comments, 0, nil
	}
	err := r.db.WithContext(ctx).
		Joins("Post").
		Where("comments.user_id = ?", userID).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, apperr.Store("list user comments", err)
	}
	return comments, total, nil
}

// CountByPostIDs counts comments for every post in postIDs with a single grouped query.
// Posts without comments are present with 0.
func (r *GormCommentRepository) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	if len(postIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []postCount
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("count comments by post", err)
	}
	return countsByPost(rows, postIDs), nil
}
