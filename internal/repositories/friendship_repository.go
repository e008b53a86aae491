package repositories

import (
	"context"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository is the social graph store. A friendship is one logical
// record to callers; internally it is two directed rows written and removed together.
type FriendshipRepository interface {
	FriendIDsOf(ctx context.Context, userID uint) ([]uint, error)
	AddFriendship(ctx context.Context, userID, friendID uint) error
	RemoveFriendship(ctx context.Context, userID, friendID uint) error
	IsFriend(ctx context.Context, userID, friendID uint) (bool, error)
	GetUserFriends(ctx context.Context, userID uint) ([]models.User, error)
}

// GormFriendshipRepository implements FriendshipRepository on top of gorm
type GormFriendshipRepository struct {
	db *gorm.DB
}

// NewGormFriendshipRepository creates a new GormFriendshipRepository
func NewGormFriendshipRepository(db *gorm.DB) *GormFriendshipRepository {
	return &GormFriendshipRepository{db: db}
}

// FriendIDsOf returns the ids of userID's friends; empty, never an error, when there are none.
func (r *GormFriendshipRepository) FriendIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Friend{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, apperr.Store("list friend ids", err)
	}
	return ids, nil
}

// AddFriendship inserts both directions in one transaction. An edge in either
// direction already present is a conflict; so is losing a race on idx_friend_pair.
func (r *GormFriendshipRepository) AddFriendship(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return apperr.Validation("You cannot add yourself as a friend")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Friend{}).
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Conflict("Already friends with this user")
		}
		// Lower id first so concurrent (a,b) and (b,a) lock index entries in the same order.
		lo, hi := userID, friendID
		if lo > hi {
			lo, hi = hi, lo
		}
		edges := []models.Friend{
			{UserID: lo, FriendID: hi},
			{UserID: hi, FriendID: lo},
		}
		return tx.Create(&edges).Error
	})
	if err = translate("add friendship", "Friendship", err); apperr.IsConflict(err) {
		return apperr.Conflict("Already friends with this user")
	}
	return err
}

// RemoveFriendship deletes both directions in one transaction.
func (r *GormFriendshipRepository) RemoveFriendship(ctx context.Context, userID, friendID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
			Delete(&models.Friend{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("Friendship", "Not friends with this user")
		}
		return nil
	})
	return apperr.Store("remove friendship", err)
}

// IsFriend reports whether userID owns an edge to friendID.
func (r *GormFriendshipRepository) IsFriend(ctx context.Context, userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friend{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Store("check friendship", err)
	}
	return count > 0, nil
}

// GetUserFriends retrieves the friends of userID ordered by first name
func (r *GormFriendshipRepository) GetUserFriends(ctx context.Context, userID uint) ([]models.User, error) {
	friends := []models.User{}
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.Friend{}).Select("friend_id").Where("user_id = ?", userID)).
		Order("first_name ASC").Order("last_name ASC").Order("id ASC").
		Find(&friends).Error
	if err != nil {
		return nil, apperr.Store("list friends", err)
	}
	return friends, nil
}
