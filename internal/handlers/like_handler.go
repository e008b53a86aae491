package handlers

import (
	"net/http"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeStatus is returned by like and unlike.
type LikeStatus struct {
	PostID    uint  `json:"postId"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes repositories.LikeRepository
	posts repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes repositories.LikeRepository, posts repositories.PostRepository) *LikeHandler {
	return &LikeHandler{likes: likes, posts: posts}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.GET("/posts/:id/likes", h.GetPostLikes)
}

// LikePost handles liking a post. A second like by the same user is a conflict.
func (h *LikeHandler) LikePost(c echo.Context) error {
	viewerID, postID, err := h.target(c)
	if err != nil {
		return err
	}
	if _, err := h.likes.CreateLike(c.Request().Context(), postID, viewerID); err != nil {
		return err
	}
	return h.status(c, postID, true, "Post liked successfully")
}

// UnlikePost handles removing the viewer's like.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	viewerID, postID, err := h.target(c)
	if err != nil {
		return err
	}
	if err := h.likes.DeleteLike(c.Request().Context(), postID, viewerID); err != nil {
		return err
	}
	return h.status(c, postID, false, "Post unliked successfully")
}

// GetPostLikes lists who liked a post, most recent like first.
func (h *LikeHandler) GetPostLikes(c echo.Context) error {
	_, postID, err := h.target(c)
	if err != nil {
		return err
	}

	users, err := h.likes.GetLikersByPostID(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return success(c, http.StatusOK, models.PostLikes{Users: compact, LikeCount: len(compact)})
}

// target resolves the viewer and an existing post from the request.
func (h *LikeHandler) target(c echo.Context) (uint, uint, error) {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return 0, 0, err
	}
	postID, err := parseID(c, "id", "post ID")
	if err != nil {
		return 0, 0, err
	}
	ok, err := h.posts.Exists(c.Request().Context(), postID)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, apperr.NotFound("Post")
	}
	return viewerID, postID, nil
}

func (h *LikeHandler) status(c echo.Context, postID uint, liked bool, message string) error {
	counts, err := h.likes.CountByPostIDs(c.Request().Context(), []uint{postID})
	if err != nil {
		return err
	}
	return successMessage(c, http.StatusOK, message, LikeStatus{PostID: postID, Liked: liked, LikeCount: counts[postID]})
}
