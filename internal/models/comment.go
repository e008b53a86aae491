package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;index"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author User `json:"-" gorm:"foreignKey:UserID"`
	Post   Post `json:"-" gorm:"foreignKey:PostID"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentView is a comment with its author's public identity.
type CommentView struct {
	ID        uint        `json:"id"`
	PostID    uint        `json:"postId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	User      UserCompact `json:"user"`
}

func (c *Comment) ToView() CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      c.Author.ToCompact(),
	}
}

// PostSummary is the minimal post shown next to a user's comment.
type PostSummary struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

// UserCommentView is a comment listed on its author's profile.
type UserCommentView struct {
	ID        uint        `json:"id"`
	PostID    uint        `json:"postId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	Post      PostSummary `json:"post"`
}
