package models

import "time"

// Like represents a like on a post. At most one per (post, user), enforced by idx_like_post_user.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_like_post_user"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Post Post `json:"-" gorm:"foreignKey:PostID"`
}

// PostLikes is the likers list of a post.
type PostLikes struct {
	Users     []UserCompact `json:"users"`
	LikeCount int           `json:"likeCount"`
}
