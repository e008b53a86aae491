package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"firstName" gorm:"size:50;not null"`
	LastName    string    `json:"lastName" gorm:"size:50;not null"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`                      // bcrypt hash, never serialized
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"`          // set only for Firebase-provisioned users
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserCompact is the public identity of a user: never carries email or credentials.
type UserCompact struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToCompact strips a user down to its public identity fields.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// UserProfile is a user as seen by another user.
type UserProfile struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	IsFriend  bool      `json:"isFriend"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=2,max=50"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserSelf `json:"user"`
	Token string   `json:"token"`
}

// UserSelf is what a user sees about themselves.
type UserSelf struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u *User) ToSelf() UserSelf {
	return UserSelf{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
