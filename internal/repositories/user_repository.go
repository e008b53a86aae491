package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateUser(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error)
	LinkFirebaseUID(ctx context.Context, id uint, firebaseUID string) error
	SearchUsers(ctx context.Context, excludeID uint, query string) ([]models.User, error)
}

// GormUserRepository implements UserRepository on top of gorm
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser inserts a user; a taken email is a conflict.
func (r *GormUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := translate("create user", "User", r.db.WithContext(ctx).Create(user).Error)
	if apperr.IsConflict(err) {
		return apperr.Conflict("Email already exists")
	}
	return err
}

// GetUserByID retrieves a user by ID
func (r *GormUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("get user", "User", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *GormUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, translate("get user by email", "User", err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *GormUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translate("get user by firebase uid", "User", err)
	}
	return &user, nil
}

// Exists reports whether a user with id is stored
func (r *GormUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.Store("check user", err)
	}
	return count > 0, nil
}

// UpdateUser applies the non-nil fields of req and returns the fresh row.
func (r *GormUserRepository) UpdateUser(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error) {
	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, apperr.Store("update user", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apperr.NotFound("User")
		}
	}
	return r.GetUserByID(ctx, id)
}

// LinkFirebaseUID attaches a Firebase identity to an existing account.
func (r *GormUserRepository) LinkFirebaseUID(ctx context.Context, id uint, firebaseUID string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("firebase_uid", firebaseUID)
	if res.Error != nil {
		return translate("link firebase uid", "User", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// SearchUsers lists everyone but excludeID, optionally filtered by name or email.
func (r *GormUserRepository) SearchUsers(ctx context.Context, excludeID uint, query string) ([]models.User, error) {
	var users []models.User
	tx := r.db.WithContext(ctx).Where("id <> ?", excludeID)
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	if err := tx.Order("first_name ASC").Order("last_name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, apperr.Store("search users", err)
	}
	return users, nil
}
