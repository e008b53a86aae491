package models

import "time"

// Post is immutable once created.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index:idx_post_author_created,priority:1"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_post_author_created,priority:2"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author User `json:"-" gorm:"foreignKey:UserID"`
}

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// PostAnnotation holds the read-time aggregates of a post for one viewer.
type PostAnnotation struct {
	CommentCount   int64 `json:"commentCount"`
	LikeCount      int64 `json:"likeCount"`
	ViewerHasLiked bool  `json:"userHasLiked"`
}

// PostView is a post enriched with its author's public identity and annotation.
type PostView struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	User      UserCompact `json:"user"`
	PostAnnotation
}

// NewPostView merges a post, its author and its annotation.
func NewPostView(p *Post, a PostAnnotation) PostView {
	return PostView{
		ID:             p.ID,
		Content:        p.Content,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		User:           p.Author.ToCompact(),
		PostAnnotation: a,
	}
}

// LikedPostView is a post as listed among the posts a user liked.
type LikedPostView struct {
	PostView
	LikedAt time.Time `json:"likedAt"`
}
