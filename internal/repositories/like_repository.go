package repositories

import (
	"context"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, postID, userID uint) (*models.Like, error)
	DeleteLike(ctx context.Context, postID, userID uint) error
	GetLikersByPostID(ctx context.Context, postID uint) ([]models.User, error)
	GetLikesByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Like, int64, error)
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// GormLikeRepository implements LikeRepository on top of gorm
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike checks then inserts. idx_like_post_user settles races: the loser
// gets the same conflict as a sequential duplicate.
func (r *GormLikeRepository) CreateLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var existing int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&existing).Error; err != nil {
		return nil, apperr.Store("check like", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("Post already liked")
	}

	like := &models.Like{PostID: postID, UserID: userID}
	err := translate("create like", "Like", r.db.WithContext(ctx).Omit("User", "Post").Create(like).Error)
	if apperr.IsConflict(err) {
		return nil, apperr.Conflict("Post already liked")
	}
	if err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteLike deletes a like; a missing one is NotFound.
func (r *GormLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return apperr.Store("delete like", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Like", "Post not liked")
	}
	return nil
}

// GetLikersByPostID lists the users who liked a post, most recent like first.
func (r *GormLikeRepository) GetLikersByPostID(ctx context.Context, postID uint) ([]models.User, error) {
	likes := []models.Like{}
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, apperr.Store("list likers", err)
	}
	users := make([]models.User, len(likes))
	for i, l := range likes {
		users[i] = l.User
	}
	return users, nil
}

// GetLikesByUserID pages through the likes a user gave, newest first, with the liked post and its author.
func (r *GormLikeRepository) GetLikesByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Like, int64, error) {
	likes := []models.Like{}
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count user likes", err)
	}
	if total == 0 {
		return likes, 0, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&likes).Error
	if err != nil {
		return nil, 0, apperr.Store("list user likes", err)
	}
	return likes, total, nil
}

// CountByPostIDs counts likes for every post in postIDs with a single grouped query.
func (r *GormLikeRepository) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	if len(postIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []postCount
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("count likes by post", err)
	}
	return countsByPost(rows, postIDs), nil
}

// LikedPostIDs reports, in one query, which of postIDs userID has liked.
func (r *GormLikeRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		result[id] = false
	}
	if len(postIDs) == 0 {
		return result, nil
	}
	var liked []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error
	if err != nil {
		return nil, apperr.Store("list liked posts", err)
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}
